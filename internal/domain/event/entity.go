// Package event содержит доменную модель события школьного календаря.
package event

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Type - тип календарного события.
type Type string

const (
	// TypeHoliday - каникулы или праздник.
	TypeHoliday Type = "Holiday"
	// TypeExam - экзамен.
	TypeExam Type = "Exam"
	// TypeActivity - внеклассное мероприятие.
	TypeActivity Type = "Activity"
	// TypeMeeting - собрание.
	TypeMeeting Type = "Meeting"
)

// IsValid проверяет, что тип события корректен.
func (t Type) IsValid() bool {
	switch t {
	case TypeHoliday, TypeExam, TypeActivity, TypeMeeting:
		return true
	default:
		return false
	}
}

// String возвращает строковое представление типа.
func (t Type) String() string {
	return string(t)
}

// Event - событие школьного календаря с точностью до календарного дня.
type Event struct {
	// ID - уникальный идентификатор, выдаётся при создании.
	ID shared.ID `json:"id"`

	// Title - название события.
	Title string `json:"title"`

	// Date - календарная дата события (YYYY-MM-DD).
	Date shared.Date `json:"date"`

	// Type - тип события.
	Type Type `json:"type"`
}

var (
	// ErrEventNotFound - событие не найдено.
	ErrEventNotFound = errors.New("event not found")

	// ErrEventAlreadyExists - событие с таким ID уже существует.
	ErrEventAlreadyExists = errors.New("event already exists")

	// ErrInvalidTitle - невалидное название.
	ErrInvalidTitle = errors.New("invalid event title: must be 1-200 chars")

	// ErrInvalidDate - невалидная дата.
	ErrInvalidDate = errors.New("invalid event date: expected YYYY-MM-DD")

	// ErrInvalidType - невалидный тип события.
	ErrInvalidType = errors.New("invalid event type")
)

// NewEventParams содержит параметры для создания нового события.
type NewEventParams struct {
	Title string
	Date  shared.Date
	Type  Type
}

// NewEvent создаёт новое событие с валидацией полей.
func NewEvent(params NewEventParams) (*Event, error) {
	title := strings.TrimSpace(params.Title)
	if len(title) == 0 || len(title) > 200 {
		return nil, ErrInvalidTitle
	}

	if !params.Date.IsValid() {
		return nil, ErrInvalidDate
	}

	if !params.Type.IsValid() {
		return nil, ErrInvalidType
	}

	return &Event{
		ID:    shared.NewID(),
		Title: title,
		Date:  params.Date,
		Type:  params.Type,
	}, nil
}

// String возвращает строковое представление события для логирования.
func (e *Event) String() string {
	return fmt.Sprintf("Event{ID: %d, Title: %s, Date: %s, Type: %s}", e.ID, e.Title, e.Date, e.Type)
}

// Clone создаёт копию события.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}

	clone := *e
	return &clone
}
