package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MANAGE CALENDAR EVENTS COMMANDS
// Calendar events have no dependents, so deletes never cascade.
// ══════════════════════════════════════════════════════════════════════════════

// CreateEventCommand contains the data to create a calendar event.
type CreateEventCommand struct {
	// Title is the event title.
	Title string

	// Date is the calendar day of the event (YYYY-MM-DD).
	Date shared.Date

	// Type is the event type.
	Type event.Type
}

// CreateEventHandler handles the CreateEventCommand.
type CreateEventHandler struct {
	eventRepo event.Repository
}

// NewCreateEventHandler creates a new CreateEventHandler.
func NewCreateEventHandler(eventRepo event.Repository) *CreateEventHandler {
	return &CreateEventHandler{eventRepo: eventRepo}
}

// Handle executes the create event command.
func (h *CreateEventHandler) Handle(ctx context.Context, cmd CreateEventCommand) (*event.Event, error) {
	e, err := event.NewEvent(event.NewEventParams{
		Title: cmd.Title,
		Date:  cmd.Date,
		Type:  cmd.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("create_event: %w", err)
	}

	if err := h.eventRepo.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("create_event: failed to save: %w", err)
	}

	return e, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// UPDATE EVENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// UpdateEventCommand replaces the mutable fields of an existing event.
type UpdateEventCommand struct {
	// ID identifies the event to update.
	ID shared.ID

	Title string
	Date  shared.Date
	Type  event.Type
}

// UpdateEventHandler handles the UpdateEventCommand.
type UpdateEventHandler struct {
	eventRepo event.Repository
}

// NewUpdateEventHandler creates a new UpdateEventHandler.
func NewUpdateEventHandler(eventRepo event.Repository) *UpdateEventHandler {
	return &UpdateEventHandler{eventRepo: eventRepo}
}

// Handle executes the update event command.
func (h *UpdateEventHandler) Handle(ctx context.Context, cmd UpdateEventCommand) (*event.Event, error) {
	if !cmd.ID.IsValid() {
		return nil, errors.New("update_event: id is required")
	}

	existing, err := h.eventRepo.GetByID(ctx, cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("update_event: %w", err)
	}

	updated, err := event.NewEvent(event.NewEventParams{
		Title: cmd.Title,
		Date:  cmd.Date,
		Type:  cmd.Type,
	})
	if err != nil {
		return nil, fmt.Errorf("update_event: %w", err)
	}
	updated.ID = existing.ID

	if err := h.eventRepo.Update(ctx, updated); err != nil {
		return nil, fmt.Errorf("update_event: failed to save: %w", err)
	}

	return updated, nil
}

// ══════════════════════════════════════════════════════════════════════════════
// DELETE EVENT COMMAND
// ══════════════════════════════════════════════════════════════════════════════

// DeleteEventCommand identifies the event to delete.
type DeleteEventCommand struct {
	// ID identifies the event to delete.
	ID shared.ID
}

// DeleteEventHandler handles the DeleteEventCommand.
type DeleteEventHandler struct {
	eventRepo event.Repository
}

// NewDeleteEventHandler creates a new DeleteEventHandler.
func NewDeleteEventHandler(eventRepo event.Repository) *DeleteEventHandler {
	return &DeleteEventHandler{eventRepo: eventRepo}
}

// Handle executes the delete event command.
func (h *DeleteEventHandler) Handle(ctx context.Context, cmd DeleteEventCommand) error {
	if !cmd.ID.IsValid() {
		return errors.New("delete_event: id is required")
	}

	if err := h.eventRepo.Delete(ctx, cmd.ID); err != nil {
		return fmt.Errorf("delete_event: %w", err)
	}

	return nil
}
