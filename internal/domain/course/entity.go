// Package course содержит доменную модель учебного курса.
package course

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Course - учебный курс. TeacherID ссылается на преподавателя, но ссылка
// не проверяется на существование: это наблюдаемое поведение системы,
// висячая ссылка разрешается на read-стороне.
type Course struct {
	// ID - уникальный идентификатор, выдаётся при создании.
	ID shared.ID `json:"id"`

	// Title - название курса.
	Title string `json:"title"`

	// TeacherID - ссылка на преподавателя (может быть висячей).
	TeacherID shared.ID `json:"teacherId"`

	// Department - кафедра ("Math", "Science", "Arts").
	Department string `json:"department"`

	// Credits - количество кредитов.
	Credits int `json:"credits"`
}

var (
	// ErrCourseNotFound - курс не найден.
	ErrCourseNotFound = errors.New("course not found")

	// ErrCourseAlreadyExists - курс с таким ID уже существует.
	ErrCourseAlreadyExists = errors.New("course already exists")

	// ErrInvalidTitle - невалидное название.
	ErrInvalidTitle = errors.New("invalid course title: must be 1-200 chars")

	// ErrInvalidCredits - невалидное количество кредитов.
	ErrInvalidCredits = errors.New("invalid credits: must be non-negative")
)

// NewCourseParams содержит параметры для создания нового курса.
type NewCourseParams struct {
	Title      string
	TeacherID  shared.ID
	Department string
	Credits    int
}

// NewCourse создаёт новый курс с валидацией полей.
func NewCourse(params NewCourseParams) (*Course, error) {
	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	if params.Credits < 0 {
		return nil, ErrInvalidCredits
	}

	return &Course{
		ID:         shared.NewID(),
		Title:      title,
		TeacherID:  params.TeacherID,
		Department: params.Department,
		Credits:    params.Credits,
	}, nil
}

// String возвращает строковое представление курса для логирования.
func (c *Course) String() string {
	return fmt.Sprintf("Course{ID: %d, Title: %s, Department: %s}", c.ID, c.Title, c.Department)
}

// Clone создаёт копию курса.
func (c *Course) Clone() *Course {
	if c == nil {
		return nil
	}

	clone := *c
	return &clone
}
