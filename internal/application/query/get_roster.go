package query

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET ROSTER QUERY
// Состав курса: зачисленные ученики с посещаемостью и кандидаты на
// зачисление (все остальные). Порядок учеников - порядок вставки в
// коллекцию учеников, не порядок зачисления.
// ══════════════════════════════════════════════════════════════════════════════

// RosterResult содержит состав одного курса.
type RosterResult struct {
	// CourseID - идентификатор курса.
	CourseID shared.ID `json:"courseId"`

	// Enrolled - зачисленные ученики с вычисленной посещаемостью.
	Enrolled []attendance.RatedStudent `json:"enrolled"`

	// Available - ученики, которых ещё можно зачислить.
	Available []student.Student `json:"available"`
}

// GetRosterHandler обрабатывает запросы состава курса.
type GetRosterHandler struct {
	studentRepo    student.Repository
	courseRepo     course.Repository
	enrollmentRepo enrollment.Repository
	attendanceRepo attendance.Repository
}

// NewGetRosterHandler создаёт новый обработчик.
func NewGetRosterHandler(
	studentRepo student.Repository,
	courseRepo course.Repository,
	enrollmentRepo enrollment.Repository,
	attendanceRepo attendance.Repository,
) *GetRosterHandler {
	return &GetRosterHandler{
		studentRepo:    studentRepo,
		courseRepo:     courseRepo,
		enrollmentRepo: enrollmentRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Handle выполняет запрос.
func (h *GetRosterHandler) Handle(ctx context.Context, courseID shared.ID) (*RosterResult, error) {
	if _, err := h.courseRepo.GetByID(ctx, courseID); err != nil {
		return nil, fmt.Errorf("get_roster: %w", err)
	}

	enrollments, err := h.enrollmentRepo.ByCourse(ctx, courseID)
	if err != nil {
		return nil, fmt.Errorf("get_roster: %w", err)
	}
	enrolled := make(map[shared.ID]bool, len(enrollments))
	for _, e := range enrollments {
		enrolled[e.StudentID] = true
	}

	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_roster: %w", err)
	}

	records, err := h.attendanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_roster: %w", err)
	}

	in := make([]*student.Student, 0, len(enrollments))
	out := make([]student.Student, 0)
	for _, s := range students {
		if enrolled[s.ID] {
			in = append(in, s)
		} else {
			out = append(out, *s)
		}
	}

	return &RosterResult{
		CourseID:  courseID,
		Enrolled:  attendance.DeriveRates(in, records),
		Available: out,
	}, nil
}
