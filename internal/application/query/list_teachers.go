package query

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST TEACHERS QUERY
// Read-сторона каталога преподавателей. К каждому преподавателю добавляется
// число назначенных ему курсов, чтобы интерфейс мог предупредить о висячих
// ссылках до удаления.
// ══════════════════════════════════════════════════════════════════════════════

// TeacherView - преподаватель вместе с разрешёнными данными для отображения.
type TeacherView struct {
	faculty.Teacher

	// CourseCount - число курсов, назначенных этому преподавателю.
	CourseCount int `json:"courseCount"`
}

// ListTeachersResult содержит результат запроса.
type ListTeachersResult struct {
	// Teachers - преподаватели в порядке вставки.
	Teachers []TeacherView `json:"teachers"`
}

// ListTeachersHandler обрабатывает запросы каталога преподавателей.
type ListTeachersHandler struct {
	teacherRepo faculty.Repository
	courseRepo  course.Repository
}

// NewListTeachersHandler создаёт новый обработчик.
func NewListTeachersHandler(
	teacherRepo faculty.Repository,
	courseRepo course.Repository,
) *ListTeachersHandler {
	return &ListTeachersHandler{
		teacherRepo: teacherRepo,
		courseRepo:  courseRepo,
	}
}

// Handle выполняет запрос.
func (h *ListTeachersHandler) Handle(ctx context.Context) (*ListTeachersResult, error) {
	teachers, err := h.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: %w", err)
	}

	courses, err := h.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers: load courses: %w", err)
	}

	counts := make(map[shared.ID]int, len(teachers))
	for _, c := range courses {
		counts[c.TeacherID]++
	}

	views := make([]TeacherView, 0, len(teachers))
	for _, t := range teachers {
		views = append(views, TeacherView{
			Teacher:     *t,
			CourseCount: counts[t.ID],
		})
	}

	return &ListTeachersResult{Teachers: views}, nil
}

// GetTeacher возвращает одного преподавателя по идентификатору.
func (h *ListTeachersHandler) GetTeacher(ctx context.Context, id shared.ID) (*TeacherView, error) {
	t, err := h.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	courses, err := h.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get teacher %d: load courses: %w", id, err)
	}

	count := 0
	for _, c := range courses {
		if c.TeacherID == id {
			count++
		}
	}

	return &TeacherView{Teacher: *t, CourseCount: count}, nil
}
