// Package faculty содержит доменную модель преподавателя школы Zenith.
package faculty

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Teacher - преподаватель школы. Курс ссылается на преподавателя по ID,
// но ссылка не обязана существовать: удаление преподавателя не каскадирует,
// и read-сторона разрешает висячий TeacherID в значение "N/A".
type Teacher struct {
	// ID - уникальный идентификатор, выдаётся при создании.
	ID shared.ID `json:"id"`

	// Name - полное имя преподавателя.
	Name string `json:"name"`

	// Subject - преподаваемый предмет.
	Subject string `json:"subject"`

	// Experience - стаж в годах.
	Experience int `json:"experience"`

	// Email - рабочая почта.
	Email string `json:"email"`

	// Avatar - ссылка на аватар.
	Avatar string `json:"avatar"`
}

var (
	// ErrTeacherNotFound - преподаватель не найден.
	ErrTeacherNotFound = errors.New("teacher not found")

	// ErrTeacherAlreadyExists - преподаватель с таким ID уже существует.
	ErrTeacherAlreadyExists = errors.New("teacher already exists")

	// ErrInvalidName - невалидное имя.
	ErrInvalidName = errors.New("invalid teacher name: must be 1-100 chars")

	// ErrInvalidExperience - невалидный стаж.
	ErrInvalidExperience = errors.New("invalid experience: must be non-negative")
)

// NewTeacherParams содержит параметры для создания нового преподавателя.
type NewTeacherParams struct {
	Name       string
	Subject    string
	Experience int
	Email      string
	Avatar     string
}

// NewTeacher создаёт нового преподавателя с валидацией полей.
func NewTeacher(params NewTeacherParams) (*Teacher, error) {
	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 100 {
		return nil, ErrInvalidName
	}

	if params.Experience < 0 {
		return nil, ErrInvalidExperience
	}

	return &Teacher{
		ID:         shared.NewID(),
		Name:       name,
		Subject:    params.Subject,
		Experience: params.Experience,
		Email:      params.Email,
		Avatar:     params.Avatar,
	}, nil
}

// String возвращает строковое представление преподавателя для логирования.
func (t *Teacher) String() string {
	return fmt.Sprintf("Teacher{ID: %d, Name: %s, Subject: %s}", t.ID, t.Name, t.Subject)
}

// Clone создаёт копию преподавателя.
func (t *Teacher) Clone() *Teacher {
	if t == nil {
		return nil
	}

	clone := *t
	return &clone
}
