package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE COURSE COMMAND
// The teacherId reference is accepted as-is: it may point at a teacher
// that no longer exists and the read side resolves that to "N/A".
// ══════════════════════════════════════════════════════════════════════════════

// CreateCourseCommand contains the data to create a course.
type CreateCourseCommand struct {
	// Title is the course title.
	Title string

	// TeacherID is the referenced teacher. Not checked for existence.
	TeacherID shared.ID

	// Department is the owning department.
	Department string

	// Credits is the credit count.
	Credits int
}

// CreateCourseHandler handles the CreateCourseCommand.
type CreateCourseHandler struct {
	courseRepo course.Repository
}

// NewCreateCourseHandler creates a new CreateCourseHandler.
func NewCreateCourseHandler(courseRepo course.Repository) *CreateCourseHandler {
	return &CreateCourseHandler{courseRepo: courseRepo}
}

// Handle executes the create course command.
func (h *CreateCourseHandler) Handle(ctx context.Context, cmd CreateCourseCommand) (*course.Course, error) {
	c, err := course.NewCourse(course.NewCourseParams{
		Title:      cmd.Title,
		TeacherID:  cmd.TeacherID,
		Department: cmd.Department,
		Credits:    cmd.Credits,
	})
	if err != nil {
		return nil, fmt.Errorf("create_course: %w", err)
	}

	if err := h.courseRepo.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create_course: failed to save: %w", err)
	}

	return c, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE COURSE COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateCourseCommand replaces the mutable fields of an existing course.
type UpdateCourseCommand struct {
	// ID identifies the course to update.
	ID shared.ID

	Title      string
	TeacherID  shared.ID
	Department string
	Credits    int
}

// UpdateCourseHandler handles the UpdateCourseCommand.
type UpdateCourseHandler struct {
	courseRepo course.Repository
}

// NewUpdateCourseHandler creates a new UpdateCourseHandler.
func NewUpdateCourseHandler(courseRepo course.Repository) *UpdateCourseHandler {
	return &UpdateCourseHandler{courseRepo: courseRepo}
}

// Handle executes the update course command.
func (h *UpdateCourseHandler) Handle(ctx context.Context, cmd UpdateCourseCommand) (*course.Course, error) {
	if !cmd.ID.IsValid() {
		return nil, errors.New("update_course: id is required")
	}

	existing, err := h.courseRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("update_course: %w", err)
	}

	updated, err := course.NewCourse(course.NewCourseParams{
		Title:      cmd.Title,
		TeacherID:  cmd.TeacherID,
		Department: cmd.Department,
		Credits:    cmd.Credits,
	})
	if err != nil {
		return nil, fmt.Errorf("update_course: %w", err)
	}
	updated.ID = existing.ID

	if err := h.courseRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_course: failed to save: %w", err)
	}

	return updated, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE COURSE COMMAND
// Deletes a course and eagerly prunes everything that references it:
// enrollments and attendance records. Dependent records never outlive
// the course, so attendance derivation never sees orphans.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteCourseCommand identifies the course to delete.
type DeleteCourseCommand struct {
	// ID identifies the course to delete.
	ID shared.ID
}

// DeleteCourseResult contains the result of the cascade.
type DeleteCourseResult struct {
	// EnrollmentsRemoved is the number of enrollments pruned.
	EnrollmentsRemoved int

	// AttendanceRemoved is the number of attendance records pruned.
	AttendanceRemoved int
}

// DeleteCourseHandler handles the DeleteCourseCommand.
type DeleteCourseHandler struct {
	courseRepo     course.Repository
	enrollmentRepo enrollment.Repository
	attendanceRepo attendance.Repository
	eventPublisher shared.EventPublisher
}

// NewDeleteCourseHandler creates a new DeleteCourseHandler.
func NewDeleteCourseHandler(
	courseRepo course.Repository,
	enrollmentRepo enrollment.Repository,
	attendanceRepo attendance.Repository,
	eventPublisher shared.EventPublisher,
) *DeleteCourseHandler {
	return &DeleteCourseHandler{
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the delete course command.
func (h *DeleteCourseHandler) Handle(ctx context.Context, cmd DeleteCourseCommand) (*DeleteCourseResult, error) {
	if !cmd.ID.IsValid() {
		return nil, errors.New("delete_course: id is required")
	}

	if err := h.courseRepo.Delete(ctx, cmd.ID); err != nil {
		return nil, fmt.Errorf("delete_course: %w", err)
	}

	enrollments, err := h.enrollmentRepo.RemoveByCourse(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("delete_course: prune enrollments: %w", err)
	}

	records, err := h.attendanceRepo.RemoveByCourse(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("delete_course: prune attendance: %w", err)
	}

	if h.eventPublisher != nil {
		event := shared.NewBaseEvent(shared.EventCourseDeleted, cmd.ID.String())
		_ = h.eventPublisher.Publish(ctx, event)
	}

	return &DeleteCourseResult{
		EnrollmentsRemoved: enrollments,
		AttendanceRemoved:  records,
	}, nil
}
