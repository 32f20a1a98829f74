package command

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// MARK ATTENDANCE COMMAND
// Upsert semantics: at most one record exists per (studentId, courseId,
// date), and the last mark for a key wins. Marking the same status twice
// is a no-op; marking a different status overwrites in place.
// ══════════════════════════════════════════════════════════════════════════════

// MarkAttendanceCommand contains one attendance mark.
type MarkAttendanceCommand struct {
	// StudentID is the student being marked.
	StudentID shared.ID

	// CourseID is the course the class belongs to.
	CourseID shared.ID

	// Date is the calendar day of the class (YYYY-MM-DD).
	Date shared.Date

	// Status is the mark: Present, Absent or Late.
	Status attendance.Status
}

// MarkAttendanceResult contains the result of marking.
type MarkAttendanceResult struct {
	// Record is the record now stored for the key.
	Record attendance.Record

	// Overwrote indicates a previous record for the key was replaced.
	Overwrote bool

	// PreviousStatus is the replaced status, when Overwrote is true.
	PreviousStatus attendance.Status
}

// MarkAttendanceHandler handles the MarkAttendanceCommand.
type MarkAttendanceHandler struct {
	attendanceRepo attendance.Repository
	eventPublisher shared.EventPublisher
}

// NewMarkAttendanceHandler creates a new MarkAttendanceHandler.
func NewMarkAttendanceHandler(
	attendanceRepo attendance.Repository,
	eventPublisher shared.EventPublisher,
) *MarkAttendanceHandler {
	return &MarkAttendanceHandler{
		attendanceRepo: attendanceRepo,
		eventPublisher: eventPublisher,
	}
}

// Handle executes the mark attendance command.
func (h *MarkAttendanceHandler) Handle(ctx context.Context, cmd MarkAttendanceCommand) (*MarkAttendanceResult, error) {
	record, err := attendance.NewRecord(cmd.StudentID, cmd.CourseID, cmd.Date, cmd.Status)
	if err != nil {
		return nil, fmt.Errorf("mark_attendance: %w", err)
	}

	previous, existed, err := h.attendanceRepo.Get(ctx, record.Key())
	if err != nil {
		return nil, fmt.Errorf("mark_attendance: %w", err)
	}

	if err := h.attendanceRepo.Upsert(ctx, record); err != nil {
		return nil, fmt.Errorf("mark_attendance: failed to save: %w", err)
	}

	result := &MarkAttendanceResult{Record: record}
	if existed && previous.Status != record.Status {
		result.Overwrote = true
		result.PreviousStatus = previous.Status
	}

	if h.eventPublisher != nil {
		event := shared.NewBaseEvent(shared.EventAttendanceMarked, cmd.StudentID.String())
		_ = h.eventPublisher.Publish(ctx, event)
	}

	return result, nil
}
