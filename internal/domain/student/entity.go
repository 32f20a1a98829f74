// Package student содержит доменную модель ученика школы Zenith.
// Это ядро бизнес-логики - здесь нет внешних зависимостей.
package student

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Performance - категория успеваемости ученика.
type Performance string

const (
	// PerformanceExcellent - отличная успеваемость.
	PerformanceExcellent Performance = "Excellent"
	// PerformanceGood - хорошая успеваемость.
	PerformanceGood Performance = "Good"
	// PerformanceAverage - средняя успеваемость.
	PerformanceAverage Performance = "Average"
	// PerformancePoor - слабая успеваемость.
	PerformancePoor Performance = "Poor"
)

// IsValid проверяет, что категория успеваемости корректна.
func (p Performance) IsValid() bool {
	switch p {
	case PerformanceExcellent, PerformanceGood, PerformanceAverage, PerformancePoor:
		return true
	default:
		return false
	}
}

// Rank возвращает фиксированный ранг категории для сортировки:
// Excellent=4 > Good=3 > Average=2 > Poor=1. Неизвестная категория даёт 0.
func (p Performance) Rank() int {
	switch p {
	case PerformanceExcellent:
		return 4
	case PerformanceGood:
		return 3
	case PerformanceAverage:
		return 2
	case PerformancePoor:
		return 1
	default:
		return 0
	}
}

// String возвращает строковое представление категории.
func (p Performance) String() string {
	return string(p)
}

// ══════════════════════════════════════════════════════════════════════════════
// MAIN ENTITY: STUDENT
// ══════════════════════════════════════════════════════════════════════════════

// Student - центральная сущность системы, представляющая ученика школы.
//
// Процент посещаемости НЕ хранится на сущности: он всегда вычисляется из
// журнала отметок посещаемости (см. domain/attendance). JSON-теги совпадают
// с форматом блобов хранилища снапшотов.
type Student struct {
	// ID - уникальный идентификатор, выдаётся при создании.
	ID shared.ID `json:"id"`

	// Name - полное имя ученика.
	Name string `json:"name"`

	// Age - возраст в годах.
	Age int `json:"age"`

	// Grade - ступень обучения (целочисленный уровень, например 10).
	Grade int `json:"grade"`

	// Class - буквенная метка класса внутри ступени ("A", "B", "C").
	Class string `json:"class"`

	// Performance - категория успеваемости.
	Performance Performance `json:"performance"`

	// Avatar - ссылка на аватар.
	Avatar string `json:"avatar"`

	// Address - домашний адрес.
	Address string `json:"address"`

	// EmergencyContactName - имя контактного лица на экстренный случай.
	EmergencyContactName string `json:"emergencyContactName"`

	// EmergencyContactPhone - телефон контактного лица.
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrStudentNotFound - ученик не найден.
	ErrStudentNotFound = errors.New("student not found")

	// ErrStudentAlreadyExists - ученик с таким ID уже существует.
	ErrStudentAlreadyExists = errors.New("student already exists")

	// ErrInvalidName - невалидное имя.
	ErrInvalidName = errors.New("invalid student name: must be 1-100 chars")

	// ErrInvalidAge - невалидный возраст.
	ErrInvalidAge = errors.New("invalid age: must be positive")

	// ErrInvalidGrade - невалидная ступень обучения.
	ErrInvalidGrade = errors.New("invalid grade: must be positive")

	// ErrInvalidPerformance - невалидная категория успеваемости.
	ErrInvalidPerformance = errors.New("invalid performance category")
)

// ══════════════════════════════════════════════════════════════════════════════
// FACTORY & VALIDATION
// ══════════════════════════════════════════════════════════════════════════════

// NewStudentParams содержит параметры для создания нового ученика.
// Все поля, кроме ID и Avatar, приходят из формы клиента.
type NewStudentParams struct {
	Name                  string
	Age                   int
	Grade                 int
	Class                 string
	Performance           Performance
	Avatar                string
	Address               string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// NewStudent создаёт нового ученика с валидацией полей.
// ID выдаётся фабрикой; движок не проверяет уникальность имени или адреса -
// валидация за пределами корректности типов является нецелью системы.
func NewStudent(params NewStudentParams) (*Student, error) {
	name := strings.TrimSpace(params.Name)
	if len(name) == 0 || len(name) > 100 {
		return nil, ErrInvalidName
	}

	if params.Age <= 0 {
		return nil, ErrInvalidAge
	}

	if params.Grade <= 0 {
		return nil, ErrInvalidGrade
	}

	if !params.Performance.IsValid() {
		return nil, ErrInvalidPerformance
	}

	return &Student{
		ID:                    shared.NewID(),
		Name:                  name,
		Age:                   params.Age,
		Grade:                 params.Grade,
		Class:                 params.Class,
		Performance:           params.Performance,
		Avatar:                params.Avatar,
		Address:               params.Address,
		EmergencyContactName:  params.EmergencyContactName,
		EmergencyContactPhone: params.EmergencyContactPhone,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN METHODS
// ══════════════════════════════════════════════════════════════════════════════

// String возвращает строковое представление ученика для логирования.
func (s *Student) String() string {
	return fmt.Sprintf(
		"Student{ID: %d, Name: %s, Grade: %d%s, Performance: %s}",
		s.ID, s.Name, s.Grade, s.Class, s.Performance,
	)
}

// Clone создаёт копию ученика.
func (s *Student) Clone() *Student {
	if s == nil {
		return nil
	}

	clone := *s
	return &clone
}
