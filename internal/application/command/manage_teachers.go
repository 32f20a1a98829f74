package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MANAGE TEACHERS COMMANDS
// Deleting a teacher does NOT cascade: courses keep their teacherId and the
// read side resolves the dangling reference to "N/A".
// ══════════════════════════════════════════════════════════════════════════════

// CreateTeacherCommand contains the data to create a teacher.
type CreateTeacherCommand struct {
	// Name is the teacher's full name.
	Name string

	// Subject is the subject taught.
	Subject string

	// Experience is years of experience.
	Experience int

	// Email is the work email.
	Email string

	// Avatar is the avatar URL. Empty means a placeholder is derived.
	Avatar string
}

// CreateTeacherHandler handles the CreateTeacherCommand.
type CreateTeacherHandler struct {
	teacherRepo faculty.Repository
}

// NewCreateTeacherHandler creates a new CreateTeacherHandler.
func NewCreateTeacherHandler(teacherRepo faculty.Repository) *CreateTeacherHandler {
	return &CreateTeacherHandler{teacherRepo: teacherRepo}
}

// Handle executes the create teacher command.
func (h *CreateTeacherHandler) Handle(ctx context.Context, cmd CreateTeacherCommand) (*faculty.Teacher, error) {
	t, err := faculty.NewTeacher(faculty.NewTeacherParams{
		Name:       cmd.Name,
		Subject:    cmd.Subject,
		Experience: cmd.Experience,
		Email:      cmd.Email,
		Avatar:     cmd.Avatar,
	})
	if err != nil {
		return nil, fmt.Errorf("create_teacher: %w", err)
	}

	if t.Avatar == "" {
		t.Avatar = fmt.Sprintf("https://picsum.photos/seed/%d/100", t.ID)
	}

	if err := h.teacherRepo.Create(ctx, t); err != nil {
		return nil, fmt.Errorf("create_teacher: failed to save: %w", err)
	}

	return t, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE TEACHER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateTeacherCommand replaces the mutable fields of an existing teacher.
type UpdateTeacherCommand struct {
	// ID identifies the teacher to update.
	ID shared.ID

	Name       string
	Subject    string
	Experience int
	Email      string
	Avatar     string
}

// UpdateTeacherHandler handles the UpdateTeacherCommand.
type UpdateTeacherHandler struct {
	teacherRepo faculty.Repository
}

// NewUpdateTeacherHandler creates a new UpdateTeacherHandler.
func NewUpdateTeacherHandler(teacherRepo faculty.Repository) *UpdateTeacherHandler {
	return &UpdateTeacherHandler{teacherRepo: teacherRepo}
}

// Handle executes the update teacher command.
func (h *UpdateTeacherHandler) Handle(ctx context.Context, cmd UpdateTeacherCommand) (*faculty.Teacher, error) {
	if !cmd.ID.IsValid() {
		return nil, errors.New("update_teacher: id is required")
	}

	existing, err := h.teacherRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("update_teacher: %w", err)
	}

	updated, err := faculty.NewTeacher(faculty.NewTeacherParams{
		Name:       cmd.Name,
		Subject:    cmd.Subject,
		Experience: cmd.Experience,
		Email:      cmd.Email,
		Avatar:     cmd.Avatar,
	})
	if err != nil {
		return nil, fmt.Errorf("update_teacher: %w", err)
	}
	updated.ID = existing.ID
	if updated.Avatar == "" {
		updated.Avatar = existing.Avatar
	}

	if err := h.teacherRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_teacher: failed to save: %w", err)
	}

	return updated, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE TEACHER COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteTeacherCommand identifies the teacher to delete.
type DeleteTeacherCommand struct {
	// ID identifies the teacher to delete.
	ID shared.ID
}

// DeleteTeacherHandler handles the DeleteTeacherCommand.
type DeleteTeacherHandler struct {
	teacherRepo faculty.Repository
}

// NewDeleteTeacherHandler creates a new DeleteTeacherHandler.
func NewDeleteTeacherHandler(teacherRepo faculty.Repository) *DeleteTeacherHandler {
	return &DeleteTeacherHandler{teacherRepo: teacherRepo}
}

// Handle executes the delete teacher command. Courses referencing the
// teacher are left untouched.
func (h *DeleteTeacherHandler) Handle(ctx context.Context, cmd DeleteTeacherCommand) error {
	if !cmd.ID.IsValid() {
		return errors.New("delete_teacher: id is required")
	}

	if err := h.teacherRepo.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("delete_teacher: %w", err)
	}

	return nil
}
