// Package command contains write operations (CQRS - Commands).
package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// CREATE STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// CreateStudentCommand contains the data to create a student.
type CreateStudentCommand struct {
	// Name is the student's full name.
	Name string

	// Age is the student's age in years.
	Age int

	// Grade is the numeric grade level.
	Grade int

	// Class is the class letter within the grade ("A", "B", "C").
	Class string

	// Performance is the performance category.
	Performance student.Performance

	// Avatar is the avatar URL. Empty means a placeholder is derived.
	Avatar string

	// Address is the home address.
	Address string

	// EmergencyContactName is the emergency contact person.
	EmergencyContactName string

	// EmergencyContactPhone is the emergency contact phone number.
	EmergencyContactPhone string
}

// CreateStudentResult contains the result of creating a student.
type CreateStudentResult struct {
	// Student is the created student.
	Student *student.Student
}

// CreateStudentHandler handles the CreateStudentCommand.
type CreateStudentHandler struct {
	studentRepo student.Repository
}

// NewCreateStudentHandler creates a new CreateStudentHandler.
func NewCreateStudentHandler(studentRepo student.Repository) *CreateStudentHandler {
	return &CreateStudentHandler{studentRepo: studentRepo}
}

// Handle executes the create student command.
func (h *CreateStudentHandler) Handle(ctx context.Context, cmd CreateStudentCommand) (*CreateStudentResult, error) {
	class := cmd.Class
	if class == "" {
		class = "A"
	}

	s, err := student.NewStudent(student.NewStudentParams{
		Name:                  cmd.Name,
		Age:                   cmd.Age,
		Grade:                 cmd.Grade,
		Class:                 class,
		Performance:           cmd.Performance,
		Avatar:                cmd.Avatar,
		Address:               cmd.Address,
		EmergencyContactName:  cmd.EmergencyContactName,
		EmergencyContactPhone: cmd.EmergencyContactPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("create_student: %w", err)
	}

	// Placeholder avatar is seeded with the freshly issued ID.
	if s.Avatar == "" {
		s.Avatar = fmt.Sprintf("https://picsum.photos/seed/%d/100", s.ID)
	}

	if err := h.studentRepo.Create(ctx, s); err != nil {
		return nil, fmt.Errorf("create_student: failed to save: %w", err)
	}

	return &CreateStudentResult{Student: s}, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE STUDENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateStudentCommand replaces the mutable fields of an existing student.
type UpdateStudentCommand struct {
	// ID identifies the student to update.
	ID shared.ID

	Name                  string
	Age                   int
	Grade                 int
	Class                 string
	Performance           student.Performance
	Avatar                string
	Address               string
	EmergencyContactName  string
	EmergencyContactPhone string
}

// Validate validates the command.
func (c UpdateStudentCommand) Validate() error {
	if !c.ID.IsValid() {
		return errors.New("update_student: id is required")
	}
	return nil
}

// UpdateStudentHandler handles the UpdateStudentCommand.
type UpdateStudentHandler struct {
	studentRepo student.Repository
}

// NewUpdateStudentHandler creates a new UpdateStudentHandler.
func NewUpdateStudentHandler(studentRepo student.Repository) *UpdateStudentHandler {
	return &UpdateStudentHandler{studentRepo: studentRepo}
}

// Handle executes the update student command.
func (h *UpdateStudentHandler) Handle(ctx context.Context, cmd UpdateStudentCommand) (*student.Student, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	existing, err := h.studentRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("update_student: %w", err)
	}

	// Validate the replacement fields through the factory, then keep the
	// original identity.
	updated, err := student.NewStudent(student.NewStudentParams{
		Name:                  cmd.Name,
		Age:                   cmd.Age,
		Grade:                 cmd.Grade,
		Class:                 cmd.Class,
		Performance:           cmd.Performance,
		Avatar:                cmd.Avatar,
		Address:               cmd.Address,
		EmergencyContactName:  cmd.EmergencyContactName,
		EmergencyContactPhone: cmd.EmergencyContactPhone,
	})
	if err != nil {
		return nil, fmt.Errorf("update_student: %w", err)
	}
	updated.ID = existing.ID
	if updated.Avatar == "" {
		updated.Avatar = existing.Avatar
	}

	if err := h.studentRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_student: failed to save: %w", err)
	}

	return updated, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE STUDENT COMMAND
// Deletes a student and eagerly prunes everything that references them:
// enrollments and attendance records. Dependent records never outlive
// the student.
// ══════════════════════════════════════════════════════════════════════════════

// DeleteStudentCommand identifies the student to delete.
type DeleteStudentCommand struct {
	// ID identifies the student to delete.
	ID shared.ID
}

// DeleteStudentResult contains the result of the cascade.
type DeleteStudentResult struct {
	// EnrollmentsRemoved is the number of enrollments pruned.
	EnrollmentsRemoved int

	// AttendanceRemoved is the number of attendance records pruned.
	AttendanceRemoved int
}

// DeleteStudentHandler handles the DeleteStudentCommand.
type DeleteStudentHandler struct {
	studentRepo    student.Repository
	enrollmentRepo enrollment.Repository
	attendanceRepo attendance.Repository
	eventPublisher shared.EventPublisher
}

// NewDeleteStudentHandler creates a new DeleteStudentHandler.
func NewDeleteStudentHandler(
	studentRepo student.Repository,
	enrollmentRepo enrollment.Repository,
	attendanceRepo attendance.Repository,
	eventPublisher shared.EventPublisher,
) *DeleteStudentHandler {
	return &DeleteStudentHandler{
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the delete student command.
func (h *DeleteStudentHandler) Handle(ctx context.Context, cmd DeleteStudentCommand) (*DeleteStudentResult, error) {
	if !cmd.ID.IsValid() {
		return nil, errors.New("delete_student: id is required")
	}

	if err := h.studentRepo.Delete(ctx, cmd.ID); err != nil {
		return nil, fmt.Errorf("delete_student: %w", err)
	}

	enrollments, err := h.enrollmentRepo.RemoveByStudent(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("delete_student: prune enrollments: %w", err)
	}

	records, err := h.attendanceRepo.RemoveByStudent(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("delete_student: prune attendance: %w", err)
	}

	if h.eventPublisher != nil {
		event := shared.NewBaseEvent(shared.EventStudentDeleted, cmd.ID.String())
		_ = h.eventPublisher.Publish(ctx, event)
	}

	return &DeleteStudentResult{
		EnrollmentsRemoved: enrollments,
		AttendanceRemoved:  records,
	}, nil
}
