package attendance

import (
	"math"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE DERIVATION ENGINE
// Процент посещаемости - всегда производная величина. Он не хранится ни на
// ученике, ни в снапшотах и пересчитывается из журнала при каждом чтении:
// корректность важнее микрооптимизации, мемоизации нет намеренно.
// ══════════════════════════════════════════════════════════════════════════════

// FullAttendance - процент посещаемости ученика без единой отметки.
// Ученик, у которого нет записей ни по одному курсу, считается полностью
// присутствовавшим. Это осознанное правило системы, а не заглушка.
const FullAttendance = 100

// RatedStudent - ученик вместе с вычисленным процентом посещаемости.
type RatedStudent struct {
	student.Student

	// Attendance - процент посещаемости в диапазоне [0, 100],
	// округлённый до ближайшего целого.
	Attendance int `json:"attendance"`
}

// DeriveRates вычисляет процент посещаемости для каждого ученика из полного
// журнала отметок. Чистая функция: входные срезы не изменяются, порядок
// учеников на выходе совпадает с порядком на входе.
//
// Для каждого ученика берутся все его записи независимо от курса. Пустой
// набор даёт FullAttendance; иначе процент равен
// round(100 * присутствия / всего), где Late засчитывается как присутствие.
func DeriveRates(students []*student.Student, records []Record) []RatedStudent {
	perStudent := make(map[shared.ID][]Record, len(students))
	for _, r := range records {
		perStudent[r.StudentID] = append(perStudent[r.StudentID], r)
	}

	rated := make([]RatedStudent, 0, len(students))
	for _, s := range students {
		rated = append(rated, RatedStudent{
			Student:    *s,
			Attendance: RateFor(perStudent[s.ID]),
		})
	}
	return rated
}

// RateFor вычисляет процент посещаемости по набору записей одного ученика.
func RateFor(records []Record) int {
	if len(records) == 0 {
		return FullAttendance
	}

	present := 0
	for _, r := range records {
		if r.Status.CountsAsPresent() {
			present++
		}
	}
	return int(math.Round(float64(present) / float64(len(records)) * 100))
}

// RateForStudent - удобная обёртка: выбирает записи ученика из полного
// журнала и вычисляет его процент.
func RateForStudent(studentID shared.ID, records []Record) int {
	own := make([]Record, 0)
	for _, r := range records {
		if r.StudentID == studentID {
			own = append(own, r)
		}
	}
	return RateFor(own)
}
