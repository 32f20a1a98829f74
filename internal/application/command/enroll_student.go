package command

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// ENROLL STUDENT COMMAND
// Enrollments form a set keyed by (studentId, courseId): enrolling an
// already enrolled student is a no-op, not an error.
// ══════════════════════════════════════════════════════════════════════════════

// EnrollStudentCommand contains the pair to enroll.
type EnrollStudentCommand struct {
	// StudentID is the student to enroll.
	StudentID shared.ID

	// CourseID is the target course.
	CourseID shared.ID
}

// EnrollStudentResult contains the result of enrolling.
type EnrollStudentResult struct {
	// Enrollment is the enrollment record (new or pre-existing).
	Enrollment enrollment.Enrollment

	// AlreadyEnrolled indicates the pair existed before the command.
	AlreadyEnrolled bool
}

// EnrollStudentHandler handles the EnrollStudentCommand.
type EnrollStudentHandler struct {
	studentRepo    student.Repository
	courseRepo     course.Repository
	enrollmentRepo enrollment.Repository
}

// NewEnrollStudentHandler creates a new EnrollStudentHandler.
func NewEnrollStudentHandler(
	studentRepo student.Repository,
	courseRepo course.Repository,
	enrollmentRepo enrollment.Repository,
) *EnrollStudentHandler {
	return &EnrollStudentHandler{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Handle executes the enroll student command.
func (h *EnrollStudentHandler) Handle(ctx context.Context, cmd EnrollStudentCommand) (*EnrollStudentResult, error) {
	e, err := enrollment.New(cmd.StudentID, cmd.CourseID)
	if err != nil {
		return nil, fmt.Errorf("enroll_student: %w", err)
	}

	// Both endpoints of the pair must exist.
	if _, err := h.studentRepo.GetByID(ctx, cmd.StudentID); err != nil {
		return nil, fmt.Errorf("enroll_student: student not found: %w", err)
	}
	if _, err := h.courseRepo.GetByID(ctx, cmd.CourseID); err != nil {
		return nil, fmt.Errorf("enroll_student: course not found: %w", err)
	}

	exists, err := h.enrollmentRepo.Exists(ctx, e.Key())
	if err != nil {
		return nil, fmt.Errorf("enroll_student: %w", err)
	}

	if err := h.enrollmentRepo.Add(ctx, e); err != nil {
		return nil, fmt.Errorf("enroll_student: failed to save: %w", err)
	}

	return &EnrollStudentResult{
		Enrollment:      e,
		AlreadyEnrolled: exists,
	}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UNENROLL STUDENT COMMAND
// Removes exactly one (studentId, courseId) pair. Attendance records
// already taken for the pair are kept: unenrollment is not a cascade.
// ══════════════════════════════════════════════════════════════════════════════

// UnenrollStudentCommand contains the pair to remove.
type UnenrollStudentCommand struct {
	// StudentID is the student to unenroll.
	StudentID shared.ID

	// CourseID is the course to unenroll from.
	CourseID shared.ID
}

// UnenrollStudentHandler handles the UnenrollStudentCommand.
type UnenrollStudentHandler struct {
	enrollmentRepo enrollment.Repository
}

// NewUnenrollStudentHandler creates a new UnenrollStudentHandler.
func NewUnenrollStudentHandler(enrollmentRepo enrollment.Repository) *UnenrollStudentHandler {
	return &UnenrollStudentHandler{enrollmentRepo: enrollmentRepo}
}

// Handle executes the unenroll student command. Removing a pair that does
// not exist is a no-op.
func (h *UnenrollStudentHandler) Handle(ctx context.Context, cmd UnenrollStudentCommand) error {
	e, err := enrollment.New(cmd.StudentID, cmd.CourseID)
	if err != nil {
		return fmt.Errorf("unenroll_student: %w", err)
	}

	if err := h.enrollmentRepo.Remove(ctx, e.Key()); err != nil {
		return fmt.Errorf("unenroll_student: failed to remove: %w", err)
	}

	return nil
}
