package query

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET DASHBOARD STATS QUERY
// Сводка для главного экрана: счётчики коллекций, распределение
// успеваемости и средняя посещаемость по школе.
// ══════════════════════════════════════════════════════════════════════════════

// DashboardStats содержит сводку для главного экрана.
type DashboardStats struct {
	// TotalStudents - количество учеников.
	TotalStudents int `json:"totalStudents"`

	// TotalTeachers - количество преподавателей.
	TotalTeachers int `json:"totalTeachers"`

	// TotalCourses - количество курсов.
	TotalCourses int `json:"totalCourses"`

	// TotalEvents - количество событий календаря.
	TotalEvents int `json:"totalEvents"`

	// PerformanceDistribution - число учеников в каждой категории.
	PerformanceDistribution map[student.Performance]int `json:"performanceDistribution"`

	// AverageAttendance - средний процент посещаемости по всем ученикам,
	// округлённый до целого. 100 при пустой школе.
	AverageAttendance int `json:"averageAttendance"`
}

// GetDashboardStatsHandler обрабатывает запрос сводки.
type GetDashboardStatsHandler struct {
	studentRepo    student.Repository
	teacherRepo    faculty.Repository
	courseRepo     course.Repository
	eventRepo      event.Repository
	attendanceRepo attendance.Repository
}

// NewGetDashboardStatsHandler создаёт новый обработчик.
func NewGetDashboardStatsHandler(
	studentRepo student.Repository,
	teacherRepo faculty.Repository,
	courseRepo course.Repository,
	eventRepo event.Repository,
	attendanceRepo attendance.Repository,
) *GetDashboardStatsHandler {
	return &GetDashboardStatsHandler{
		studentRepo:    studentRepo,
		teacherRepo:    teacherRepo,
		courseRepo:     courseRepo,
		eventRepo:      eventRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Handle выполняет запрос.
func (h *GetDashboardStatsHandler) Handle(ctx context.Context) (*DashboardStats, error) {
	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard_stats: %w", err)
	}

	teachers, err := h.teacherRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard_stats: %w", err)
	}

	courses, err := h.courseRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard_stats: %w", err)
	}

	events, err := h.eventRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard_stats: %w", err)
	}

	records, err := h.attendanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("dashboard_stats: %w", err)
	}

	distribution := map[student.Performance]int{
		student.PerformanceExcellent: 0,
		student.PerformanceGood:      0,
		student.PerformanceAverage:   0,
		student.PerformancePoor:      0,
	}
	for _, s := range students {
		distribution[s.Performance]++
	}

	rated := attendance.DeriveRates(students, records)
	average := attendance.FullAttendance
	if len(rated) > 0 {
		sum := 0
		for _, r := range rated {
			sum += r.Attendance
		}
		average = (sum + len(rated)/2) / len(rated)
	}

	return &DashboardStats{
		TotalStudents:           len(students),
		TotalTeachers:           teachers,
		TotalCourses:            courses,
		TotalEvents:             events,
		PerformanceDistribution: distribution,
		AverageAttendance:       average,
	}, nil
}
