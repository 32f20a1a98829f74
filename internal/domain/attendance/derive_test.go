package attendance

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

func mkStudent(id shared.ID, name string) *student.Student {
	return &student.Student{
		ID:          id,
		Name:        name,
		Age:         16,
		Grade:       10,
		Class:       "A",
		Performance: student.PerformanceGood,
	}
}

func TestRateFor_NoRecordsDefaultsToFull(t *testing.T) {
	assert.Equal(t, FullAttendance, RateFor(nil))
	assert.Equal(t, FullAttendance, RateFor([]Record{}))
}

func TestRateFor_LateCountsAsPresent(t *testing.T) {
	records := []Record{
		{StudentID: 1, CourseID: 10, Date: "2024-01-01", Status: StatusPresent},
		{StudentID: 1, CourseID: 10, Date: "2024-01-02", Status: StatusAbsent},
		{StudentID: 1, CourseID: 10, Date: "2024-01-03", Status: StatusLate},
	}

	// 2 of 3 present-or-late -> round(66.66) = 67
	assert.Equal(t, 67, RateFor(records))
}

func TestRateFor_Rounding(t *testing.T) {
	tests := []struct {
		name     string
		statuses []Status
		want     int
	}{
		{"all present", []Status{StatusPresent, StatusPresent}, 100},
		{"all absent", []Status{StatusAbsent, StatusAbsent}, 0},
		{"3 of 4", []Status{StatusPresent, StatusLate, StatusPresent, StatusAbsent}, 75},
		{"1 of 3 rounds down", []Status{StatusPresent, StatusAbsent, StatusAbsent}, 33},
		{"2 of 3 rounds up", []Status{StatusPresent, StatusLate, StatusAbsent}, 67},
		{"1 of 2", []Status{StatusPresent, StatusAbsent}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := make([]Record, 0, len(tt.statuses))
			for i, s := range tt.statuses {
				records = append(records, Record{
					StudentID: 1,
					CourseID:  10,
					Date:      shared.Date("2024-01-0" + string(rune('1'+i))),
					Status:    s,
				})
			}
			assert.Equal(t, tt.want, RateFor(records))
		})
	}
}

func TestDeriveRates_SelectsAcrossAllCourses(t *testing.T) {
	students := []*student.Student{mkStudent(1, "Alice Johnson")}
	records := []Record{
		{StudentID: 1, CourseID: 10, Date: "2024-01-01", Status: StatusPresent},
		{StudentID: 1, CourseID: 20, Date: "2024-01-01", Status: StatusAbsent},
	}

	rated := DeriveRates(students, records)
	assert.Len(t, rated, 1)
	assert.Equal(t, 50, rated[0].Attendance)
}

func TestDeriveRates_IgnoresOtherStudents(t *testing.T) {
	students := []*student.Student{mkStudent(1, "Alice Johnson"), mkStudent(2, "Bob Williams")}
	records := []Record{
		{StudentID: 2, CourseID: 10, Date: "2024-01-01", Status: StatusAbsent},
	}

	rated := DeriveRates(students, records)
	assert.Len(t, rated, 2)
	assert.Equal(t, FullAttendance, rated[0].Attendance, "no records anywhere -> presumed fully present")
	assert.Equal(t, 0, rated[1].Attendance)
}

func TestDeriveRates_PreservesInputOrder(t *testing.T) {
	students := []*student.Student{
		mkStudent(3, "Charlie Brown"),
		mkStudent(1, "Alice Johnson"),
		mkStudent(2, "Bob Williams"),
	}

	rated := DeriveRates(students, nil)
	assert.Equal(t, "Charlie Brown", rated[0].Name)
	assert.Equal(t, "Alice Johnson", rated[1].Name)
	assert.Equal(t, "Bob Williams", rated[2].Name)
}

func TestDeriveRates_PureFunction(t *testing.T) {
	students := []*student.Student{mkStudent(1, "Alice Johnson")}
	records := []Record{
		{StudentID: 1, CourseID: 10, Date: "2024-01-01", Status: StatusAbsent},
	}

	_ = DeriveRates(students, records)

	// Inputs stay untouched: the percentage never lands on the entity.
	assert.Equal(t, StatusAbsent, records[0].Status)
	assert.Equal(t, "Alice Johnson", students[0].Name)
}

func TestRateForStudent_ScenarioFromLog(t *testing.T) {
	records := []Record{
		{StudentID: 7, CourseID: 10, Date: "2024-01-01", Status: StatusPresent},
		{StudentID: 7, CourseID: 10, Date: "2024-01-02", Status: StatusAbsent},
		{StudentID: 7, CourseID: 10, Date: "2024-01-03", Status: StatusLate},
		{StudentID: 8, CourseID: 10, Date: "2024-01-03", Status: StatusAbsent},
	}

	assert.Equal(t, 67, RateForStudent(7, records))
	assert.Equal(t, 0, RateForStudent(8, records))
	assert.Equal(t, FullAttendance, RateForStudent(9, records))
}
