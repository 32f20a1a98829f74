// Package seed holds the built-in dataset the hub falls back to when a
// collection has never been persisted or its blob is unreadable.
package seed

import (
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/pkg/timeutil"
)

// Students returns the seed student body. Attendance percentage is not part
// of the dataset: it is always derived from the (initially empty) log.
func Students() []*student.Student {
	return []*student.Student{
		{ID: 1, Name: "Alice Johnson", Age: 16, Grade: 10, Class: "A", Performance: student.PerformanceExcellent, Avatar: "https://picsum.photos/seed/alice/100", Address: "123 Maple St", EmergencyContactName: "John Johnson", EmergencyContactPhone: "555-1234"},
		{ID: 2, Name: "Bob Williams", Age: 17, Grade: 11, Class: "B", Performance: student.PerformanceGood, Avatar: "https://picsum.photos/seed/bob/100", Address: "456 Oak Ave", EmergencyContactName: "Mary Williams", EmergencyContactPhone: "555-5678"},
		{ID: 3, Name: "Charlie Brown", Age: 15, Grade: 9, Class: "C", Performance: student.PerformanceGood, Avatar: "https://picsum.photos/seed/charlie/100", Address: "789 Pine Ln", EmergencyContactName: "James Brown", EmergencyContactPhone: "555-8765"},
		{ID: 4, Name: "Diana Miller", Age: 18, Grade: 12, Class: "A", Performance: student.PerformanceAverage, Avatar: "https://picsum.photos/seed/diana/100", Address: "101 Elm Ct", EmergencyContactName: "Susan Miller", EmergencyContactPhone: "555-4321"},
		{ID: 5, Name: "Ethan Davis", Age: 16, Grade: 10, Class: "B", Performance: student.PerformancePoor, Avatar: "https://picsum.photos/seed/ethan/100", Address: "212 Birch Rd", EmergencyContactName: "Robert Davis", EmergencyContactPhone: "555-3456"},
		{ID: 6, Name: "Fiona Garcia", Age: 17, Grade: 11, Class: "C", Performance: student.PerformanceExcellent, Avatar: "https://picsum.photos/seed/fiona/100", Address: "333 Cedar Blvd", EmergencyContactName: "Patricia Garcia", EmergencyContactPhone: "555-6543"},
	}
}

// Teachers returns the seed faculty.
func Teachers() []*faculty.Teacher {
	return []*faculty.Teacher{
		{ID: 1, Name: "Mr. Smith", Subject: "Mathematics", Experience: 15, Email: "smith@zenith.edu", Avatar: "https://picsum.photos/seed/smith/100"},
		{ID: 2, Name: "Ms. Jones", Subject: "Physics", Experience: 12, Email: "jones@zenith.edu", Avatar: "https://picsum.photos/seed/jones/100"},
		{ID: 3, Name: "Dr. Rodriguez", Subject: "Chemistry", Experience: 20, Email: "rodriguez@zenith.edu", Avatar: "https://picsum.photos/seed/rodriguez/100"},
		{ID: 4, Name: "Mrs. Wilson", Subject: "English", Experience: 8, Email: "wilson@zenith.edu", Avatar: "https://picsum.photos/seed/wilson/100"},
	}
}

// Courses returns the seed course catalogue.
func Courses() []*course.Course {
	return []*course.Course{
		{ID: 1, Title: "Algebra II", TeacherID: 1, Department: "Math", Credits: 4},
		{ID: 2, Title: "Quantum Mechanics", TeacherID: 2, Department: "Science", Credits: 5},
		{ID: 3, Title: "Organic Chemistry", TeacherID: 3, Department: "Science", Credits: 5},
		{ID: 4, Title: "Shakespearean Literature", TeacherID: 4, Department: "Arts", Credits: 3},
		{ID: 5, Title: "Calculus I", TeacherID: 1, Department: "Math", Credits: 4},
	}
}

// Events returns the seed calendar, anchored to the current school year and
// month so a fresh install always starts with some upcoming entries.
func Events() []*event.Event {
	now := timeutil.Now()
	month := fmt.Sprintf("%04d-%02d", now.Year(), int(now.Month()))
	year := fmt.Sprintf("%04d", now.Year())

	return []*event.Event{
		{ID: 1, Title: "Mid-term Exams", Date: shared.Date(month + "-10"), Type: event.TypeExam},
		{ID: 2, Title: "Science Fair", Date: shared.Date(month + "-15"), Type: event.TypeActivity},
		{ID: 3, Title: "Parent-Teacher Meeting", Date: shared.Date(month + "-22"), Type: event.TypeMeeting},
		{ID: 4, Title: "Winter Break", Date: shared.Date(year + "-12-24"), Type: event.TypeHoliday},
		{ID: 5, Title: "Final Exams", Date: shared.Date(year + "-12-15"), Type: event.TypeExam},
	}
}

// Data bundles the complete seed dataset.
func Data() (students []*student.Student, teachers []*faculty.Teacher, courses []*course.Course, events []*event.Event) {
	return Students(), Teachers(), Courses(), Events()
}
