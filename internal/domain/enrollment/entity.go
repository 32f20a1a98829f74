// Package enrollment содержит связку "ученик зачислен на курс".
//
// Зачисление - связующая сущность без собственного ID: его идентичность
// определяется составным ключом (StudentID, CourseID), и в коллекции может
// существовать не более одной записи на пару. Хранилище обязано обеспечивать
// множественную семантику структурно (map по составному ключу), а не
// линейной дедупликацией.
package enrollment

import (
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Enrollment - факт зачисления ученика на курс.
// JSON-теги совпадают с форматом блобов хранилища снапшотов.
type Enrollment struct {
	// StudentID - ссылка на ученика.
	StudentID shared.ID `json:"studentId"`

	// CourseID - ссылка на курс.
	CourseID shared.ID `json:"courseId"`
}

// Key - составной ключ зачисления.
type Key struct {
	StudentID shared.ID
	CourseID  shared.ID
}

// Key возвращает составной ключ записи.
func (e Enrollment) Key() Key {
	return Key{StudentID: e.StudentID, CourseID: e.CourseID}
}

// String возвращает строковое представление для логирования.
func (e Enrollment) String() string {
	return fmt.Sprintf("Enrollment{Student: %d, Course: %d}", e.StudentID, e.CourseID)
}

var (
	// ErrInvalidEnrollment - невалидная пара (нулевые ID).
	ErrInvalidEnrollment = errors.New("invalid enrollment: student and course ids are required")
)

// New создаёт запись о зачислении с валидацией ключа.
func New(studentID, courseID shared.ID) (Enrollment, error) {
	if !studentID.IsValid() || !courseID.IsValid() {
		return Enrollment{}, ErrInvalidEnrollment
	}
	return Enrollment{StudentID: studentID, CourseID: courseID}, nil
}
