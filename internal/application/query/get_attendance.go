package query

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ATTENDANCE QUERY
// Журнал посещаемости курса за календарный день: ведомость для отметки.
// Незамеченный ученик - это именно "нет записи", не "отсутствовал".
// ══════════════════════════════════════════════════════════════════════════════

// SheetEntry - одна строка ведомости посещаемости.
type SheetEntry struct {
	// Student - ученик из состава курса.
	Student student.Student `json:"student"`

	// Marked - отмечен ли ученик на этот день.
	Marked bool `json:"marked"`

	// Status - статус отметки; пустой, если Marked=false.
	Status attendance.Status `json:"status,omitempty"`
}

// SheetResult содержит ведомость курса за день.
type SheetResult struct {
	// CourseID - идентификатор курса.
	CourseID shared.ID `json:"courseId"`

	// Date - календарный день ведомости.
	Date shared.Date `json:"date"`

	// Entries - строки в порядке коллекции учеников.
	Entries []SheetEntry `json:"entries"`
}

// GetAttendanceHandler обрабатывает запросы журнала посещаемости.
type GetAttendanceHandler struct {
	studentRepo    student.Repository
	enrollmentRepo enrollment.Repository
	attendanceRepo attendance.Repository
}

// NewGetAttendanceHandler создаёт новый обработчик.
func NewGetAttendanceHandler(
	studentRepo student.Repository,
	enrollmentRepo enrollment.Repository,
	attendanceRepo attendance.Repository,
) *GetAttendanceHandler {
	return &GetAttendanceHandler{
		studentRepo:    studentRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Sheet строит ведомость курса за календарный день.
func (h *GetAttendanceHandler) Sheet(ctx context.Context, courseID shared.ID, date shared.Date) (*SheetResult, error) {
	if !date.IsValid() {
		return nil, fmt.Errorf("get_attendance: invalid date %q", date)
	}

	enrollments, err := h.enrollmentRepo.ByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get_attendance: %w", err)
	}
	enrolled := make(map[shared.ID]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.StudentID] = true
	}

	marks, err := h.attendanceRepo.ByCourseDate(ctx, courseID, date)
	if err != nil {
		return nil, fmt.Errorf("get_attendance: %w", err)
	}
	byStudent := make(map[shared.ID]attendance.Status, len(marks))
	for _, r := range marks {
		byStudent[r.StudentID] = r.Status
	}

	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_attendance: %w", err)
	}

	entries := make([]SheetEntry, 0, len(enrollments))
	for _, s := range students {
		if !enrolled[s.ID] {
			continue
		}
		entry := SheetEntry{Student: *s}
		if status, ok := byStudent[s.ID]; ok {
			entry.Marked = true
			entry.Status = status
		}
		entries = append(entries, entry)
	}

	return &SheetResult{
		CourseID: courseID,
		Date:     date,
		Entries:  entries,
	}, nil
}

// StatusOf возвращает отметку по точному ключу. Второе значение false
// означает "записи нет".
func (h *GetAttendanceHandler) StatusOf(ctx context.Context, key attendance.Key) (attendance.Status, bool, error) {
	record, ok, err := h.attendanceRepo.Get(ctx, key)
	if err != nil {
		return "", false, fmt.Errorf("get_attendance: %w", err)
	}
	if !ok {
		return "", false, nil
	}
	return record.Status, true, nil
}

// HistoryFor возвращает все записи ученика по всем курсам.
func (h *GetAttendanceHandler) HistoryFor(ctx context.Context, studentID shared.ID) ([]attendance.Record, error) {
	records, err := h.attendanceRepo.ByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("get_attendance: %w", err)
	}
	return records, nil
}
