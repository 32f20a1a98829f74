package query

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/memory"
	"github.com/zenith-edu/zenith-admin-hub/pkg/timeutil"
)

func seedStudent(t *testing.T, store *memory.StudentStore, id shared.ID, name string, grade int, perf student.Performance) {
	t.Helper()
	err := store.Create(context.Background(), &student.Student{
		ID: id, Name: name, Age: 16, Grade: grade, Class: "A", Performance: perf,
	})
	require.NoError(t, err)
}

func seedRecord(t *testing.T, store *memory.AttendanceStore, studentID, courseID shared.ID, date shared.Date, status attendance.Status) {
	t.Helper()
	require.NoError(t, store.Upsert(context.Background(), attendance.Record{
		StudentID: studentID, CourseID: courseID, Date: date, Status: status,
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Students
// ──────────────────────────────────────────────────────────────────────────────

func TestListStudents_SortByNameIsStableAndAscending(t *testing.T) {
	students := memory.NewStudentStore()
	attendanceStore := memory.NewAttendanceStore()
	seedStudent(t, students, 1, "Charlie", 10, student.PerformanceGood)
	seedStudent(t, students, 2, "alice", 10, student.PerformanceGood)
	seedStudent(t, students, 3, "Bob", 10, student.PerformanceGood)

	handler := NewListStudentsHandler(students, attendanceStore)
	result, err := handler.Handle(context.Background(), ListStudentsQuery{SortBy: StudentSortName})
	require.NoError(t, err)

	names := []string{result.Students[0].Name, result.Students[1].Name, result.Students[2].Name}
	assert.Equal(t, []string{"alice", "Bob", "Charlie"}, names)
}

func TestListStudents_SortByAttendanceKeepsInsertionOrderOnTies(t *testing.T) {
	students := memory.NewStudentStore()
	attendanceStore := memory.NewAttendanceStore()
	seedStudent(t, students, 1, "First", 10, student.PerformanceGood)
	seedStudent(t, students, 2, "Second", 10, student.PerformanceGood)
	seedStudent(t, students, 3, "Third", 10, student.PerformanceGood)

	// First and Second have no records: both 100. Third: 50.
	seedRecord(t, attendanceStore, 3, 7, "2026-03-02", attendance.StatusPresent)
	seedRecord(t, attendanceStore, 3, 7, "2026-03-03", attendance.StatusAbsent)

	handler := NewListStudentsHandler(students, attendanceStore)
	result, err := handler.Handle(context.Background(), ListStudentsQuery{SortBy: StudentSortAttendance})
	require.NoError(t, err)

	assert.Equal(t, "First", result.Students[0].Name)
	assert.Equal(t, "Second", result.Students[1].Name)
	assert.Equal(t, "Third", result.Students[2].Name)
	assert.Equal(t, 100, result.Students[0].Attendance)
	assert.Equal(t, 50, result.Students[2].Attendance)
}

func TestListStudents_SortByPerformanceRank(t *testing.T) {
	students := memory.NewStudentStore()
	attendanceStore := memory.NewAttendanceStore()
	seedStudent(t, students, 1, "Poor", 10, student.PerformancePoor)
	seedStudent(t, students, 2, "Excellent", 10, student.PerformanceExcellent)
	seedStudent(t, students, 3, "Average", 10, student.PerformanceAverage)
	seedStudent(t, students, 4, "Good", 10, student.PerformanceGood)

	handler := NewListStudentsHandler(students, attendanceStore)
	result, err := handler.Handle(context.Background(), ListStudentsQuery{SortBy: StudentSortPerformance})
	require.NoError(t, err)

	order := make([]string, 0, 4)
	for _, s := range result.Students {
		order = append(order, s.Name)
	}
	assert.Equal(t, []string{"Excellent", "Good", "Average", "Poor"}, order)
}

func TestListStudents_GradeFilterAndDistinctGrades(t *testing.T) {
	students := memory.NewStudentStore()
	attendanceStore := memory.NewAttendanceStore()
	seedStudent(t, students, 1, "Alice", 10, student.PerformanceGood)
	seedStudent(t, students, 2, "Bob", 11, student.PerformanceGood)
	seedStudent(t, students, 3, "Carol", 10, student.PerformanceGood)
	seedStudent(t, students, 4, "Dave", 9, student.PerformanceGood)

	handler := NewListStudentsHandler(students, attendanceStore)

	result, err := handler.Handle(context.Background(), ListStudentsQuery{Grade: 10})
	require.NoError(t, err)
	assert.Len(t, result.Students, 2)
	assert.Equal(t, 4, result.TotalCount)

	grades, err := handler.DistinctGrades(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []int{9, 10, 11}, grades)
}

func TestListStudents_RejectsUnknownSort(t *testing.T) {
	handler := NewListStudentsHandler(memory.NewStudentStore(), memory.NewAttendanceStore())
	_, err := handler.Handle(context.Background(), ListStudentsQuery{SortBy: "xp"})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Courses
// ──────────────────────────────────────────────────────────────────────────────

func TestListCourses_ResolvesDanglingTeacherToNA(t *testing.T) {
	ctx := context.Background()
	courses := memory.NewCourseStore()
	teachers := memory.NewTeacherStore()
	enrollments := memory.NewEnrollmentStore()

	require.NoError(t, teachers.Create(ctx, &faculty.Teacher{ID: 1, Name: "Mr. Smith", Subject: "Math"}))
	require.NoError(t, courses.Create(ctx, &course.Course{ID: 10, Title: "Algebra II", TeacherID: 1}))
	require.NoError(t, courses.Create(ctx, &course.Course{ID: 11, Title: "Physics", TeacherID: 99}))
	require.NoError(t, enrollments.Add(ctx, enrollment.Enrollment{StudentID: 5, CourseID: 10}))

	handler := NewListCoursesHandler(courses, teachers, enrollments)
	result, err := handler.Handle(ctx)
	require.NoError(t, err)

	require.Len(t, result.Courses, 2)
	assert.Equal(t, "Mr. Smith", result.Courses[0].TeacherName)
	assert.Equal(t, 1, result.Courses[0].EnrolledCount)
	assert.Equal(t, UnknownTeacherName, result.Courses[1].TeacherName)
	assert.Equal(t, 0, result.Courses[1].EnrolledCount)
}

func TestListCourses_CoursesForStudent(t *testing.T) {
	ctx := context.Background()
	courses := memory.NewCourseStore()
	teachers := memory.NewTeacherStore()
	enrollments := memory.NewEnrollmentStore()

	require.NoError(t, courses.Create(ctx, &course.Course{ID: 10, Title: "Algebra II", TeacherID: 1}))
	require.NoError(t, courses.Create(ctx, &course.Course{ID: 11, Title: "Physics", TeacherID: 1}))
	require.NoError(t, enrollments.Add(ctx, enrollment.Enrollment{StudentID: 5, CourseID: 11}))

	handler := NewListCoursesHandler(courses, teachers, enrollments)
	views, err := handler.CoursesFor(ctx, 5)
	require.NoError(t, err)

	require.Len(t, views, 1)
	assert.Equal(t, "Physics", views[0].Title)
}

// ──────────────────────────────────────────────────────────────────────────────
// Roster
// ──────────────────────────────────────────────────────────────────────────────

func TestGetRoster_SplitsEnrolledAndAvailable(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStudentStore()
	courses := memory.NewCourseStore()
	enrollments := memory.NewEnrollmentStore()
	attendanceStore := memory.NewAttendanceStore()

	seedStudent(t, students, 1, "Alice", 10, student.PerformanceGood)
	seedStudent(t, students, 2, "Bob", 10, student.PerformanceGood)
	seedStudent(t, students, 3, "Carol", 10, student.PerformanceGood)
	require.NoError(t, courses.Create(ctx, &course.Course{ID: 10, Title: "Algebra II", TeacherID: 1}))
	require.NoError(t, enrollments.Add(ctx, enrollment.Enrollment{StudentID: 2, CourseID: 10}))
	seedRecord(t, attendanceStore, 2, 10, "2026-03-02", attendance.StatusLate)

	handler := NewGetRosterHandler(students, courses, enrollments, attendanceStore)
	result, err := handler.Handle(ctx, 10)
	require.NoError(t, err)

	require.Len(t, result.Enrolled, 1)
	assert.Equal(t, "Bob", result.Enrolled[0].Name)
	assert.Equal(t, 100, result.Enrolled[0].Attendance) // Late counts as present

	require.Len(t, result.Available, 2)
	assert.Equal(t, "Alice", result.Available[0].Name)
	assert.Equal(t, "Carol", result.Available[1].Name)
}

func TestGetRoster_UnknownCourse(t *testing.T) {
	handler := NewGetRosterHandler(
		memory.NewStudentStore(), memory.NewCourseStore(),
		memory.NewEnrollmentStore(), memory.NewAttendanceStore(),
	)
	_, err := handler.Handle(context.Background(), 404)
	assert.ErrorIs(t, err, course.ErrCourseNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Attendance sheet
// ──────────────────────────────────────────────────────────────────────────────

func TestAttendanceSheet_UnmarkedIsNotAbsent(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStudentStore()
	enrollments := memory.NewEnrollmentStore()
	attendanceStore := memory.NewAttendanceStore()

	seedStudent(t, students, 1, "Alice", 10, student.PerformanceGood)
	seedStudent(t, students, 2, "Bob", 10, student.PerformanceGood)
	require.NoError(t, enrollments.Add(ctx, enrollment.Enrollment{StudentID: 1, CourseID: 10}))
	require.NoError(t, enrollments.Add(ctx, enrollment.Enrollment{StudentID: 2, CourseID: 10}))
	seedRecord(t, attendanceStore, 1, 10, "2026-03-02", attendance.StatusAbsent)

	handler := NewGetAttendanceHandler(students, enrollments, attendanceStore)
	sheet, err := handler.Sheet(ctx, 10, "2026-03-02")
	require.NoError(t, err)

	require.Len(t, sheet.Entries, 2)
	assert.True(t, sheet.Entries[0].Marked)
	assert.Equal(t, attendance.StatusAbsent, sheet.Entries[0].Status)
	assert.False(t, sheet.Entries[1].Marked)
	assert.Empty(t, sheet.Entries[1].Status)

	// Point lookup distinguishes the same two states.
	status, ok, err := handler.StatusOf(ctx, attendance.Key{StudentID: 1, CourseID: 10, Date: "2026-03-02"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, status)

	_, ok, err = handler.StatusOf(ctx, attendance.Key{StudentID: 2, CourseID: 10, Date: "2026-03-02"})
	require.NoError(t, err)
	assert.False(t, ok)
}

// ──────────────────────────────────────────────────────────────────────────────
// Events
// ──────────────────────────────────────────────────────────────────────────────

func TestGetEvents_UpcomingFiltersSortsAndCaps(t *testing.T) {
	ctx := context.Background()
	events := memory.NewEventStore()

	add := func(id shared.ID, title string, date string) {
		require.NoError(t, events.Create(ctx, &event.Event{
			ID: id, Title: title, Date: shared.Date(date), Type: event.TypeActivity,
		}))
	}

	add(1, "Yesterday", timeutil.ShiftDays(-1))
	add(2, "Today", timeutil.ShiftDays(0))
	add(3, "Far", timeutil.ShiftDays(30))
	add(4, "Near", timeutil.ShiftDays(2))
	add(5, "Mid", timeutil.ShiftDays(10))
	add(6, "Later", timeutil.ShiftDays(12))
	add(7, "Latest", timeutil.ShiftDays(20))

	handler := NewGetEventsHandler(events)
	upcoming, err := handler.Upcoming(ctx)
	require.NoError(t, err)

	// Yesterday is excluded, today is included, and the widget caps at five.
	require.Len(t, upcoming, 5)
	titles := make([]string, 0, 5)
	for _, e := range upcoming {
		titles = append(titles, e.Title)
	}
	assert.Equal(t, []string{"Today", "Near", "Mid", "Later", "Latest"}, titles)
}

func TestGetEvents_AllSortedWithoutCap(t *testing.T) {
	ctx := context.Background()
	events := memory.NewEventStore()

	dates := []string{"2026-09-05", "2026-09-01", "2026-09-03", "2026-09-01", "2026-08-30", "2026-09-02"}
	for i, d := range dates {
		require.NoError(t, events.Create(ctx, &event.Event{
			ID: shared.ID(i + 1), Title: d, Date: shared.Date(d), Type: event.TypeExam,
		}))
	}

	handler := NewGetEventsHandler(events)
	all, err := handler.All(ctx)
	require.NoError(t, err)

	require.Len(t, all, 6)
	for i := 1; i < len(all); i++ {
		assert.LessOrEqual(t, string(all[i-1].Date), string(all[i].Date))
	}
	// Same-day events keep insertion order.
	assert.Equal(t, shared.ID(2), all[1].ID)
	assert.Equal(t, shared.ID(4), all[2].ID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard stats
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboardStats(t *testing.T) {
	ctx := context.Background()
	students := memory.NewStudentStore()
	teachers := memory.NewTeacherStore()
	courses := memory.NewCourseStore()
	events := memory.NewEventStore()
	attendanceStore := memory.NewAttendanceStore()

	seedStudent(t, students, 1, "Alice", 10, student.PerformanceExcellent)
	seedStudent(t, students, 2, "Bob", 11, student.PerformanceExcellent)
	seedStudent(t, students, 3, "Carol", 9, student.PerformancePoor)
	require.NoError(t, teachers.Create(ctx, &faculty.Teacher{ID: 1, Name: "Mr. Smith"}))
	require.NoError(t, courses.Create(ctx, &course.Course{ID: 10, Title: "Algebra II"}))

	// Alice 50%, Bob and Carol 100% (no records) -> average round(250/3) = 83.
	seedRecord(t, attendanceStore, 1, 10, "2026-03-02", attendance.StatusPresent)
	seedRecord(t, attendanceStore, 1, 10, "2026-03-03", attendance.StatusAbsent)

	handler := NewGetDashboardStatsHandler(students, teachers, courses, events, attendanceStore)
	stats, err := handler.Handle(ctx)
	require.NoError(t, err)

	assert.Equal(t, 3, stats.TotalStudents)
	assert.Equal(t, 1, stats.TotalTeachers)
	assert.Equal(t, 1, stats.TotalCourses)
	assert.Equal(t, 0, stats.TotalEvents)
	assert.Equal(t, 2, stats.PerformanceDistribution[student.PerformanceExcellent])
	assert.Equal(t, 0, stats.PerformanceDistribution[student.PerformanceGood])
	assert.Equal(t, 1, stats.PerformanceDistribution[student.PerformancePoor])
	assert.Equal(t, 83, stats.AverageAttendance)
}

func TestDashboardStats_EmptySchool(t *testing.T) {
	handler := NewGetDashboardStatsHandler(
		memory.NewStudentStore(), memory.NewTeacherStore(), memory.NewCourseStore(),
		memory.NewEventStore(), memory.NewAttendanceStore(),
	)
	stats, err := handler.Handle(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 0, stats.TotalStudents)
	assert.Equal(t, attendance.FullAttendance, stats.AverageAttendance)
}
