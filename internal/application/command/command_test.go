package command

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/external/genai"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/memory"
)

// testFixture wires the memory stores a command test needs.
type testFixture struct {
	students    *memory.StudentStore
	teachers    *memory.TeacherStore
	courses     *memory.CourseStore
	enrollments *memory.EnrollmentStore
	attendance  *memory.AttendanceStore
}

func newFixture() *testFixture {
	return &testFixture{
		students:    memory.NewStudentStore(),
		teachers:    memory.NewTeacherStore(),
		courses:     memory.NewCourseStore(),
		enrollments: memory.NewEnrollmentStore(),
		attendance:  memory.NewAttendanceStore(),
	}
}

func (f *testFixture) createStudent(t *testing.T, name string) *student.Student {
	t.Helper()
	result, err := NewCreateStudentHandler(f.students).Handle(context.Background(), CreateStudentCommand{
		Name:        name,
		Age:         16,
		Grade:       10,
		Class:       "A",
		Performance: student.PerformanceGood,
	})
	require.NoError(t, err)
	return result.Student
}

func (f *testFixture) createCourse(t *testing.T, title string) shared.ID {
	t.Helper()
	c, err := NewCreateCourseHandler(f.courses).Handle(context.Background(), CreateCourseCommand{
		Title:      title,
		TeacherID:  1,
		Department: "Math",
		Credits:    3,
	})
	require.NoError(t, err)
	return c.ID
}

func (f *testFixture) enroll(t *testing.T, studentID, courseID shared.ID) {
	t.Helper()
	_, err := NewEnrollStudentHandler(f.students, f.courses, f.enrollments).Handle(
		context.Background(),
		EnrollStudentCommand{StudentID: studentID, CourseID: courseID},
	)
	require.NoError(t, err)
}

func (f *testFixture) mark(t *testing.T, studentID, courseID shared.ID, date shared.Date, status attendance.Status) {
	t.Helper()
	_, err := NewMarkAttendanceHandler(f.attendance, nil).Handle(context.Background(), MarkAttendanceCommand{
		StudentID: studentID,
		CourseID:  courseID,
		Date:      date,
		Status:    status,
	})
	require.NoError(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Students
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateStudent_DefaultsClassAndAvatar(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	result, err := NewCreateStudentHandler(f.students).Handle(ctx, CreateStudentCommand{
		Name:        "Alice Johnson",
		Age:         16,
		Grade:       10,
		Performance: student.PerformanceExcellent,
	})
	require.NoError(t, err)

	assert.Equal(t, "A", result.Student.Class)
	assert.Contains(t, result.Student.Avatar, "picsum.photos/seed/")

	saved, err := f.students.GetByID(ctx, result.Student.ID)
	require.NoError(t, err)
	assert.Equal(t, "Alice Johnson", saved.Name)
}

func TestCreateStudent_RejectsInvalidInput(t *testing.T) {
	f := newFixture()

	_, err := NewCreateStudentHandler(f.students).Handle(context.Background(), CreateStudentCommand{
		Name:        "",
		Age:         16,
		Grade:       10,
		Performance: student.PerformanceGood,
	})
	assert.ErrorIs(t, err, student.ErrInvalidName)

	_, err = NewCreateStudentHandler(f.students).Handle(context.Background(), CreateStudentCommand{
		Name:        "Bob",
		Age:         16,
		Grade:       10,
		Performance: "Stellar",
	})
	assert.ErrorIs(t, err, student.ErrInvalidPerformance)
}

func TestUpdateStudent_KeepsIdentity(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	s := f.createStudent(t, "Bob Williams")

	updated, err := NewUpdateStudentHandler(f.students).Handle(ctx, UpdateStudentCommand{
		ID:          s.ID,
		Name:        "Bob W. Williams",
		Age:         17,
		Grade:       11,
		Class:       "B",
		Performance: student.PerformanceExcellent,
	})
	require.NoError(t, err)

	assert.Equal(t, s.ID, updated.ID)
	assert.Equal(t, "Bob W. Williams", updated.Name)
	// Avatar falls back to the stored one when the command omits it.
	assert.Equal(t, s.Avatar, updated.Avatar)
}

func TestDeleteStudent_CascadesEnrollmentsAndAttendance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createStudent(t, "Alice")
	bob := f.createStudent(t, "Bob")
	math := f.createCourse(t, "Algebra II")
	physics := f.createCourse(t, "Physics")

	f.enroll(t, alice.ID, math)
	f.enroll(t, alice.ID, physics)
	f.enroll(t, bob.ID, math)
	f.mark(t, alice.ID, math, "2026-03-02", attendance.StatusPresent)
	f.mark(t, alice.ID, physics, "2026-03-02", attendance.StatusLate)
	f.mark(t, bob.ID, math, "2026-03-02", attendance.StatusAbsent)

	result, err := NewDeleteStudentHandler(f.students, f.enrollments, f.attendance, nil).Handle(
		ctx, DeleteStudentCommand{ID: alice.ID})
	require.NoError(t, err)

	assert.Equal(t, 2, result.EnrollmentsRemoved)
	assert.Equal(t, 2, result.AttendanceRemoved)

	// Bob's records survive.
	left, err := f.enrollments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, bob.ID, left[0].StudentID)

	records, err := f.attendance.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, bob.ID, records[0].StudentID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Courses
// ──────────────────────────────────────────────────────────────────────────────

func TestDeleteCourse_CascadesEnrollmentsAndAttendance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createStudent(t, "Alice")
	bob := f.createStudent(t, "Bob")
	math := f.createCourse(t, "Algebra II")
	physics := f.createCourse(t, "Physics")

	f.enroll(t, alice.ID, math)
	f.enroll(t, bob.ID, math)
	f.enroll(t, alice.ID, physics)
	f.mark(t, alice.ID, math, "2026-03-02", attendance.StatusPresent)
	f.mark(t, bob.ID, math, "2026-03-03", attendance.StatusAbsent)
	f.mark(t, alice.ID, physics, "2026-03-02", attendance.StatusPresent)

	result, err := NewDeleteCourseHandler(f.courses, f.enrollments, f.attendance, nil).Handle(
		ctx, DeleteCourseCommand{ID: math})
	require.NoError(t, err)

	assert.Equal(t, 2, result.EnrollmentsRemoved)
	assert.Equal(t, 2, result.AttendanceRemoved)

	// The other course is untouched.
	left, err := f.enrollments.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, physics, left[0].CourseID)
}

func TestDeleteCourse_NotFound(t *testing.T) {
	f := newFixture()

	_, err := NewDeleteCourseHandler(f.courses, f.enrollments, f.attendance, nil).Handle(
		context.Background(), DeleteCourseCommand{ID: 42})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// Enrollment
// ──────────────────────────────────────────────────────────────────────────────

func TestEnrollStudent_Idempotent(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createStudent(t, "Alice")
	math := f.createCourse(t, "Algebra II")
	handler := NewEnrollStudentHandler(f.students, f.courses, f.enrollments)

	first, err := handler.Handle(ctx, EnrollStudentCommand{StudentID: alice.ID, CourseID: math})
	require.NoError(t, err)
	assert.False(t, first.AlreadyEnrolled)

	second, err := handler.Handle(ctx, EnrollStudentCommand{StudentID: alice.ID, CourseID: math})
	require.NoError(t, err)
	assert.True(t, second.AlreadyEnrolled)

	count, err := f.enrollments.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestEnrollStudent_RequiresBothEndpoints(t *testing.T) {
	f := newFixture()
	alice := f.createStudent(t, "Alice")
	handler := NewEnrollStudentHandler(f.students, f.courses, f.enrollments)

	_, err := handler.Handle(context.Background(), EnrollStudentCommand{StudentID: alice.ID, CourseID: 999})
	assert.Error(t, err)

	_, err = handler.Handle(context.Background(), EnrollStudentCommand{StudentID: 999, CourseID: 999})
	assert.Error(t, err)
}

func TestUnenrollStudent_KeepsAttendance(t *testing.T) {
	f := newFixture()
	ctx := context.Background()

	alice := f.createStudent(t, "Alice")
	math := f.createCourse(t, "Algebra II")
	f.enroll(t, alice.ID, math)
	f.mark(t, alice.ID, math, "2026-03-02", attendance.StatusPresent)

	err := NewUnenrollStudentHandler(f.enrollments).Handle(ctx, UnenrollStudentCommand{
		StudentID: alice.ID, CourseID: math,
	})
	require.NoError(t, err)

	count, err := f.enrollments.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	// Unenrollment is not a cascade: the mark stays in the journal.
	records, err := f.attendance.GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

// ──────────────────────────────────────────────────────────────────────────────
// Attendance
// ──────────────────────────────────────────────────────────────────────────────

func TestMarkAttendance_UpsertSemantics(t *testing.T) {
	f := newFixture()
	ctx := context.Background()
	handler := NewMarkAttendanceHandler(f.attendance, nil)

	cmd := MarkAttendanceCommand{StudentID: 1, CourseID: 2, Date: "2026-03-02", Status: attendance.StatusPresent}

	first, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, first.Overwrote)

	// Same status again: no-op, still one record.
	again, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.False(t, again.Overwrote)

	// Different status for the same key overwrites in place.
	cmd.Status = attendance.StatusAbsent
	changed, err := handler.Handle(ctx, cmd)
	require.NoError(t, err)
	assert.True(t, changed.Overwrote)
	assert.Equal(t, attendance.StatusPresent, changed.PreviousStatus)

	count, err := f.attendance.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	record, ok, err := f.attendance.Get(ctx, changed.Record.Key())
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, attendance.StatusAbsent, record.Status)
}

func TestMarkAttendance_RejectsInvalidKey(t *testing.T) {
	f := newFixture()
	handler := NewMarkAttendanceHandler(f.attendance, nil)

	_, err := handler.Handle(context.Background(), MarkAttendanceCommand{
		StudentID: 0, CourseID: 2, Date: "2026-03-02", Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidKey)

	_, err = handler.Handle(context.Background(), MarkAttendanceCommand{
		StudentID: 1, CourseID: 2, Date: "03/02/2026", Status: attendance.StatusPresent,
	})
	assert.ErrorIs(t, err, attendance.ErrInvalidKey)
}

// ──────────────────────────────────────────────────────────────────────────────
// Reports
// ──────────────────────────────────────────────────────────────────────────────

// fakeGenerator is a scripted ReportGenerator.
type fakeGenerator struct {
	mu      sync.Mutex
	calls   int
	text    string
	err     error
	started chan struct{}
	release chan struct{}
}

func (g *fakeGenerator) GenerateStudentReport(ctx context.Context, subject genai.ReportSubject) (string, error) {
	g.mu.Lock()
	g.calls++
	g.mu.Unlock()
	if g.started != nil {
		close(g.started)
		g.started = nil
	}
	if g.release != nil {
		<-g.release
	}
	return g.text, g.err
}

func (g *fakeGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}

func TestGenerateReport_Success(t *testing.T) {
	f := newFixture()
	alice := f.createStudent(t, "Alice")
	gen := &fakeGenerator{text: "Alice had a strong term."}
	handler := NewGenerateReportHandler(f.students, f.attendance, gen, nil)

	report, err := handler.Handle(context.Background(), GenerateReportCommand{StudentID: alice.ID})
	require.NoError(t, err)

	assert.Equal(t, ReportStateSuccess, report.State)
	assert.Equal(t, "Alice had a strong term.", report.Text)
	assert.Equal(t, report, handler.ReportFor(alice.ID))
}

func TestGenerateReport_NotConfigured(t *testing.T) {
	f := newFixture()
	alice := f.createStudent(t, "Alice")
	gen := &fakeGenerator{err: shared.ErrNotConfigured}
	handler := NewGenerateReportHandler(f.students, f.attendance, gen, nil)

	report, err := handler.Handle(context.Background(), GenerateReportCommand{StudentID: alice.ID})
	require.NoError(t, err)

	assert.Equal(t, ReportStateError, report.State)
	assert.Equal(t, ReportTextNotConfigured, report.Text)
}

func TestGenerateReport_GenerationFailure(t *testing.T) {
	f := newFixture()
	alice := f.createStudent(t, "Alice")
	gen := &fakeGenerator{err: errors.New("upstream exploded")}
	handler := NewGenerateReportHandler(f.students, f.attendance, gen, nil)

	report, err := handler.Handle(context.Background(), GenerateReportCommand{StudentID: alice.ID})
	require.NoError(t, err)

	assert.Equal(t, ReportStateError, report.State)
	assert.Equal(t, ReportTextFailed, report.Text)
}

func TestGenerateReport_UnknownStudent(t *testing.T) {
	f := newFixture()
	handler := NewGenerateReportHandler(f.students, f.attendance, &fakeGenerator{}, nil)

	_, err := handler.Handle(context.Background(), GenerateReportCommand{StudentID: 404})
	assert.ErrorIs(t, err, student.ErrStudentNotFound)
}

func TestGenerateReport_CoalescesConcurrentRequests(t *testing.T) {
	f := newFixture()
	alice := f.createStudent(t, "Alice")
	gen := &fakeGenerator{
		text:    "One report.",
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
	handler := NewGenerateReportHandler(f.students, f.attendance, gen, nil)

	started := gen.started
	first := make(chan Report, 1)
	go func() {
		r, _ := handler.Handle(context.Background(), GenerateReportCommand{StudentID: alice.ID})
		first <- r
	}()

	<-started
	assert.Equal(t, ReportStateLoading, handler.ReportFor(alice.ID).State)

	second := make(chan Report, 1)
	go func() {
		r, _ := handler.Handle(context.Background(), GenerateReportCommand{StudentID: alice.ID})
		second <- r
	}()

	// Give the second request time to join the in-flight wait.
	time.Sleep(100 * time.Millisecond)
	close(gen.release)

	r1 := <-first
	r2 := <-second
	assert.Equal(t, ReportStateSuccess, r1.State)
	assert.Equal(t, r1, r2)
	assert.Equal(t, 1, gen.callCount())
}
