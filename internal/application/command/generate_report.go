package command

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/external/genai"
)

// ══════════════════════════════════════════════════════════════════════════════
// GENERATE REPORT COMMAND
// Produces a narrative report for one student via the text generation API.
// Failures surface as fixed operator-facing report texts, never as raw
// transport errors: the report box always shows something readable.
// ══════════════════════════════════════════════════════════════════════════════

// Fixed report texts shown in place of a generated report.
const (
	// ReportTextNotConfigured is shown when no API key is configured.
	ReportTextNotConfigured = "Error: API key is not configured. Please contact the administrator."

	// ReportTextFailed is shown on any other generation failure.
	ReportTextFailed = "An error occurred while generating the report. Please try again later."
)

// ReportState is the lifecycle state of a report request.
type ReportState string

const (
	// ReportStateIdle - no report requested for the student yet.
	ReportStateIdle ReportState = "idle"
	// ReportStateLoading - a generation request is in flight.
	ReportStateLoading ReportState = "loading"
	// ReportStateSuccess - the last request produced a report.
	ReportStateSuccess ReportState = "success"
	// ReportStateError - the last request failed; Text holds a fixed message.
	ReportStateError ReportState = "error"
)

// Report is the tracked outcome of a report request for one student.
type Report struct {
	// StudentID is the report subject.
	StudentID shared.ID `json:"studentId"`

	// State is the lifecycle state.
	State ReportState `json:"state"`

	// Text is the report body, or a fixed error text in state error.
	Text string `json:"text"`
}

// ReportGenerator abstracts the text generation client.
type ReportGenerator interface {
	GenerateStudentReport(ctx context.Context, subject genai.ReportSubject) (string, error)
}

// GenerateReportCommand identifies the report subject.
type GenerateReportCommand struct {
	// StudentID is the student to report on.
	StudentID shared.ID
}

// ══════════════════════════════════════════════════════════════════════════════
// HANDLER
// ══════════════════════════════════════════════════════════════════════════════

// GenerateReportHandler handles the GenerateReportCommand.
//
// The handler doubles as the report tracker: per student it remembers the
// last outcome, and concurrent requests for the same student coalesce into
// one API call instead of racing.
type GenerateReportHandler struct {
	studentRepo    student.Repository
	attendanceRepo attendance.Repository
	generator      ReportGenerator
	eventPublisher shared.EventPublisher

	mu       sync.Mutex
	reports  map[shared.ID]*Report
	inflight map[shared.ID]chan struct{}
}

// NewGenerateReportHandler creates a new GenerateReportHandler.
func NewGenerateReportHandler(
	studentRepo student.Repository,
	attendanceRepo attendance.Repository,
	generator ReportGenerator,
	eventPublisher shared.EventPublisher,
) *GenerateReportHandler {
	return &GenerateReportHandler{
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
		generator:      generator,
		eventPublisher: eventPublisher,
		reports:        make(map[shared.ID]*Report),
		inflight:       make(map[shared.ID]chan struct{}),
	}
}

// ReportFor returns the tracked report for a student. A student without
// any request yet is in state idle with empty text.
func (h *GenerateReportHandler) ReportFor(studentID shared.ID) Report {
	h.mu.Lock()
	defer h.mu.Unlock()

	if r, ok := h.reports[studentID]; ok {
		return *r
	}
	return Report{StudentID: studentID, State: ReportStateIdle}
}

// Handle executes the generate report command and blocks until the report
// for the student is resolved. When a request for the same student is
// already in flight, the call waits for that request instead of issuing
// a second API call.
func (h *GenerateReportHandler) Handle(ctx context.Context, cmd GenerateReportCommand) (Report, error) {
	if !cmd.StudentID.IsValid() {
		return Report{}, errors.New("generate_report: student id is required")
	}

	s, err := h.studentRepo.GetByID(ctx, cmd.StudentID)
	if err != nil {
		return Report{}, fmt.Errorf("generate_report: %w", err)
	}

	h.mu.Lock()
	if done, ok := h.inflight[cmd.StudentID]; ok {
		h.mu.Unlock()
		select {
		case <-done:
			return h.ReportFor(cmd.StudentID), nil
		case <-ctx.Done():
			return Report{}, ctx.Err()
		}
	}

	done := make(chan struct{})
	h.inflight[cmd.StudentID] = done
	h.reports[cmd.StudentID] = &Report{StudentID: cmd.StudentID, State: ReportStateLoading}
	h.mu.Unlock()

	report := h.generate(ctx, s)

	h.mu.Lock()
	h.reports[cmd.StudentID] = &report
	delete(h.inflight, cmd.StudentID)
	close(done)
	h.mu.Unlock()

	if h.eventPublisher != nil {
		event := shared.NewBaseEvent(shared.EventReportRequested, cmd.StudentID.String())
		_ = h.eventPublisher.Publish(ctx, event)
	}

	return report, nil
}

// generate performs one generation call and maps failures to fixed texts.
func (h *GenerateReportHandler) generate(ctx context.Context, s *student.Student) Report {
	report := Report{StudentID: s.ID}

	records, err := h.attendanceRepo.ByStudent(ctx, s.ID)
	if err != nil {
		report.State = ReportStateError
		report.Text = ReportTextFailed
		return report
	}

	text, err := h.generator.GenerateStudentReport(ctx, genai.ReportSubject{
		Name:        s.Name,
		Grade:       s.Grade,
		Class:       s.Class,
		Performance: s.Performance.String(),
		Attendance:  attendance.RateFor(records),
	})
	switch {
	case errors.Is(err, shared.ErrNotConfigured):
		report.State = ReportStateError
		report.Text = ReportTextNotConfigured
	case err != nil:
		report.State = ReportStateError
		report.Text = ReportTextFailed
	default:
		report.State = ReportStateSuccess
		report.Text = text
	}
	return report
}
