package query

import (
	"context"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// LIST COURSES QUERY
// Read-сторона каталога курсов. Висячая ссылка teacherId разрешается здесь:
// курс с удалённым преподавателем показывает "N/A", сам курс не трогается.
// ══════════════════════════════════════════════════════════════════════════════

// UnknownTeacherName - имя, отображаемое для висячей ссылки на преподавателя.
const UnknownTeacherName = "N/A"

// CourseView - курс вместе с разрешёнными данными для отображения.
type CourseView struct {
	course.Course

	// TeacherName - имя преподавателя или "N/A", если ссылка висячая.
	TeacherName string `json:"teacherName"`

	// EnrolledCount - число зачисленных учеников.
	EnrolledCount int `json:"enrolledCount"`
}

// ListCoursesResult содержит результат запроса.
type ListCoursesResult struct {
	// Courses - курсы в порядке вставки.
	Courses []CourseView `json:"courses"`
}

// ListCoursesHandler обрабатывает запросы каталога курсов.
type ListCoursesHandler struct {
	courseRepo     course.Repository
	teacherRepo    faculty.Repository
	enrollmentRepo enrollment.Repository
}

// NewListCoursesHandler создаёт новый обработчик.
func NewListCoursesHandler(
	courseRepo course.Repository,
	teacherRepo faculty.Repository,
	enrollmentRepo enrollment.Repository,
) *ListCoursesHandler {
	return &ListCoursesHandler{
		courseRepo:     courseRepo,
		teacherRepo:    teacherRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

// Handle выполняет запрос.
func (h *ListCoursesHandler) Handle(ctx context.Context) (*ListCoursesResult, error) {
	courses, err := h.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_courses: %w", err)
	}

	teachers, err := h.teacherRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_courses: %w", err)
	}
	names := make(map[shared.ID]string, len(teachers))
	for _, t := range teachers {
		names[t.ID] = t.Name
	}

	views := make([]CourseView, 0, len(courses))
	for _, c := range courses {
		enrolled, err := h.enrollmentRepo.ByCourse(ctx, c.ID)
		if err != nil {
			return nil, fmt.Errorf("list_courses: %w", err)
		}

		name, ok := names[c.TeacherID]
		if !ok {
			name = UnknownTeacherName
		}

		views = append(views, CourseView{
			Course:        *c,
			TeacherName:   name,
			EnrolledCount: len(enrolled),
		})
	}

	return &ListCoursesResult{Courses: views}, nil
}

// CoursesFor возвращает курсы, на которые зачислен ученик.
func (h *ListCoursesHandler) CoursesFor(ctx context.Context, studentID shared.ID) ([]CourseView, error) {
	enrollments, err := h.enrollmentRepo.ByStudent(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("list_courses: %w", err)
	}

	all, err := h.Handle(ctx)
	if err != nil {
		return nil, err
	}

	byID := make(map[shared.ID]CourseView, len(all.Courses))
	for _, v := range all.Courses {
		byID[v.ID] = v
	}

	views := make([]CourseView, 0, len(enrollments))
	for _, e := range enrollments {
		if v, ok := byID[e.CourseID]; ok {
			views = append(views, v)
		}
	}
	return views, nil
}
