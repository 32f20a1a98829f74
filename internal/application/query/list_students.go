// Package query contains read operations (CQRS - Queries).
package query

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST STUDENTS QUERY
// Read-сторона списка учеников: каждый ученик отдаётся с вычисленным
// процентом посещаемости. Сортировки стабильны: равные элементы сохраняют
// порядок вставки.
// ══════════════════════════════════════════════════════════════════════════════

// StudentSort - режим сортировки списка учеников.
type StudentSort string

const (
	// StudentSortName - по имени, по возрастанию.
	StudentSortName StudentSort = "name"

	// StudentSortAttendance - по проценту посещаемости, по убыванию.
	StudentSortAttendance StudentSort = "attendance"

	// StudentSortPerformance - по рангу успеваемости, по убыванию
	// (Excellent > Good > Average > Poor).
	StudentSortPerformance StudentSort = "performance"
)

// ListStudentsQuery содержит параметры запроса списка учеников.
type ListStudentsQuery struct {
	// Grade - фильтр по ступени обучения. 0 = все ступени.
	Grade int

	// SortBy - режим сортировки. Пустой = по имени.
	SortBy StudentSort
}

// Validate нормализует параметры запроса.
func (q *ListStudentsQuery) Validate() error {
	if q.SortBy == "" {
		q.SortBy = StudentSortName
	}
	switch q.SortBy {
	case StudentSortName, StudentSortAttendance, StudentSortPerformance:
		return nil
	default:
		return fmt.Errorf("list_students: unknown sort mode %q", q.SortBy)
	}
}

// ListStudentsResult содержит результат запроса.
type ListStudentsResult struct {
	// Students - ученики с вычисленной посещаемостью.
	Students []attendance.RatedStudent `json:"students"`

	// TotalCount - количество учеников до фильтрации.
	TotalCount int `json:"totalCount"`
}

// ListStudentsHandler обрабатывает запросы списка учеников.
type ListStudentsHandler struct {
	studentRepo    student.Repository
	attendanceRepo attendance.Repository
}

// NewListStudentsHandler создаёт новый обработчик.
func NewListStudentsHandler(
	studentRepo student.Repository,
	attendanceRepo attendance.Repository,
) *ListStudentsHandler {
	return &ListStudentsHandler{
		studentRepo:    studentRepo,
		attendanceRepo: attendanceRepo,
	}
}

// Handle выполняет запрос.
func (h *ListStudentsHandler) Handle(ctx context.Context, query ListStudentsQuery) (*ListStudentsResult, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}
	totalCount := len(students)

	if query.Grade > 0 {
		filtered := make([]*student.Student, 0, len(students))
		for _, s := range students {
			if s.Grade == query.Grade {
				filtered = append(filtered, s)
			}
		}
		students = filtered
	}

	records, err := h.attendanceRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}

	rated := attendance.DeriveRates(students, records)
	sortStudents(rated, query.SortBy)

	return &ListStudentsResult{
		Students:   rated,
		TotalCount: totalCount,
	}, nil
}

// sortStudents сортирует список стабильно по выбранному режиму.
func sortStudents(students []attendance.RatedStudent, mode StudentSort) {
	switch mode {
	case StudentSortAttendance:
		sort.SliceStable(students, func(i, j int) bool {
			return students[i].Attendance > students[j].Attendance
		})
	case StudentSortPerformance:
		sort.SliceStable(students, func(i, j int) bool {
			return students[i].Performance.Rank() > students[j].Performance.Rank()
		})
	default:
		sort.SliceStable(students, func(i, j int) bool {
			return strings.ToLower(students[i].Name) < strings.ToLower(students[j].Name)
		})
	}
}

// DistinctGrades возвращает отсортированный список ступеней, на которых есть
// хотя бы один ученик. Источник значений фильтра на стороне клиента.
func (h *ListStudentsHandler) DistinctGrades(ctx context.Context) ([]int, error) {
	students, err := h.studentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}

	seen := make(map[int]bool)
	grades := make([]int, 0)
	for _, s := range students {
		if !seen[s.Grade] {
			seen[s.Grade] = true
			grades = append(grades, s.Grade)
		}
	}
	sort.Ints(grades)
	return grades, nil
}

// GetStudent возвращает одного ученика с вычисленной посещаемостью.
func (h *ListStudentsHandler) GetStudent(ctx context.Context, id shared.ID) (*attendance.RatedStudent, error) {
	s, err := h.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}

	records, err := h.attendanceRepo.ByStudent(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list_students: %w", err)
	}

	return &attendance.RatedStudent{
		Student:    *s,
		Attendance: attendance.RateFor(records),
	}, nil
}
