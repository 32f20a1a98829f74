// Package attendance содержит журнал посещаемости и движок вычисления
// процента посещаемости.
//
// Запись посещаемости - связующая сущность без собственного ID: её
// идентичность определяется составным ключом (StudentID, CourseID, Date).
// На ключ существует не более одной записи; повторная отметка того же ключа
// перезаписывает статус на месте (upsert, история не хранится).
package attendance

import (
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENUMS
// ══════════════════════════════════════════════════════════════════════════════

// Status - статус посещения одного занятия.
//
// Отсутствие записи и StatusAbsent - разные состояния: "не отмечен" не
// означает "отсутствовал".
type Status string

const (
	// StatusPresent - присутствовал.
	StatusPresent Status = "Present"
	// StatusAbsent - отсутствовал.
	StatusAbsent Status = "Absent"
	// StatusLate - опоздал. Для расчёта процента посещаемости опоздание
	// считается присутствием.
	StatusLate Status = "Late"
)

// IsValid проверяет, что статус корректен.
func (s Status) IsValid() bool {
	switch s {
	case StatusPresent, StatusAbsent, StatusLate:
		return true
	default:
		return false
	}
}

// CountsAsPresent сообщает, засчитывается ли статус как присутствие
// при вычислении процента посещаемости.
func (s Status) CountsAsPresent() bool {
	return s == StatusPresent || s == StatusLate
}

// String возвращает строковое представление статуса.
func (s Status) String() string {
	return string(s)
}

// ══════════════════════════════════════════════════════════════════════════════
// RECORD
// ══════════════════════════════════════════════════════════════════════════════

// Record - отметка посещаемости одного ученика на одном занятии курса
// в конкретный календарный день.
// JSON-теги совпадают с форматом блобов хранилища снапшотов.
type Record struct {
	// StudentID - ссылка на ученика.
	StudentID shared.ID `json:"studentId"`

	// CourseID - ссылка на курс.
	CourseID shared.ID `json:"courseId"`

	// Date - календарный день занятия (YYYY-MM-DD).
	Date shared.Date `json:"date"`

	// Status - статус посещения. Единственное изменяемое поле.
	Status Status `json:"status"`
}

// Key - составной ключ записи посещаемости.
type Key struct {
	StudentID shared.ID
	CourseID  shared.ID
	Date      shared.Date
}

// Key возвращает составной ключ записи.
func (r Record) Key() Key {
	return Key{StudentID: r.StudentID, CourseID: r.CourseID, Date: r.Date}
}

// String возвращает строковое представление для логирования.
func (r Record) String() string {
	return fmt.Sprintf("Record{Student: %d, Course: %d, Date: %s, Status: %s}",
		r.StudentID, r.CourseID, r.Date, r.Status)
}

// ══════════════════════════════════════════════════════════════════════════════
// DOMAIN ERRORS
// ══════════════════════════════════════════════════════════════════════════════

var (
	// ErrInvalidKey - невалидный составной ключ.
	ErrInvalidKey = errors.New("invalid attendance key: student id, course id and date are required")

	// ErrInvalidStatus - невалидный статус посещения.
	ErrInvalidStatus = errors.New("invalid attendance status")
)

// NewRecord создаёт запись посещаемости с валидацией ключа и статуса.
// Движок намеренно НЕ проверяет, зачислен ли ученик на курс: выбор пары
// ограничивает вызывающая сторона, контракт движка этого не требует.
func NewRecord(studentID, courseID shared.ID, date shared.Date, status Status) (Record, error) {
	if !studentID.IsValid() || !courseID.IsValid() || !date.IsValid() {
		return Record{}, ErrInvalidKey
	}
	if !status.IsValid() {
		return Record{}, ErrInvalidStatus
	}
	return Record{StudentID: studentID, CourseID: courseID, Date: date, Status: status}, nil
}
