package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/application/command"
	"github.com/zenith-edu/zenith-admin-hub/internal/application/query"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/external/genai"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/memory"
)

// stubGenerator returns a fixed report text.
type stubGenerator struct {
	text string
}

func (g *stubGenerator) GenerateStudentReport(_ context.Context, _ genai.ReportSubject) (string, error) {
	return g.text, nil
}

// newTestServer wires a server against fresh in-memory stores.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	students := memory.NewStudentStore()
	teachers := memory.NewTeacherStore()
	courses := memory.NewCourseStore()
	events := memory.NewEventStore()
	enrollments := memory.NewEnrollmentStore()
	records := memory.NewAttendanceStore()

	cfg := DefaultConfig()
	cfg.RateLimitPerMinute = 0 // not under test

	deps := Dependencies{
		CreateStudent:   command.NewCreateStudentHandler(students),
		UpdateStudent:   command.NewUpdateStudentHandler(students),
		DeleteStudent:   command.NewDeleteStudentHandler(students, enrollments, records, nil),
		CreateTeacher:   command.NewCreateTeacherHandler(teachers),
		UpdateTeacher:   command.NewUpdateTeacherHandler(teachers),
		DeleteTeacher:   command.NewDeleteTeacherHandler(teachers),
		CreateCourse:    command.NewCreateCourseHandler(courses),
		UpdateCourse:    command.NewUpdateCourseHandler(courses),
		DeleteCourse:    command.NewDeleteCourseHandler(courses, enrollments, records, nil),
		CreateEvent:     command.NewCreateEventHandler(events),
		UpdateEvent:     command.NewUpdateEventHandler(events),
		DeleteEvent:     command.NewDeleteEventHandler(events),
		EnrollStudent:   command.NewEnrollStudentHandler(students, courses, enrollments),
		UnenrollStudent: command.NewUnenrollStudentHandler(enrollments),
		MarkAttendance:  command.NewMarkAttendanceHandler(records, nil),
		GenerateReport:  command.NewGenerateReportHandler(students, records, &stubGenerator{text: "A fine student."}, nil),

		ListStudents:      query.NewListStudentsHandler(students, records),
		ListTeachers:      query.NewListTeachersHandler(teachers, courses),
		ListCourses:       query.NewListCoursesHandler(courses, teachers, enrollments),
		GetRoster:         query.NewGetRosterHandler(students, courses, enrollments, records),
		GetAttendance:     query.NewGetAttendanceHandler(students, enrollments, records),
		GetEvents:         query.NewGetEventsHandler(events),
		GetDashboardStats: query.NewGetDashboardStatsHandler(students, teachers, courses, events, records),
	}

	return NewServer(cfg, deps)
}

// do runs a request through the full middleware chain.
func do(t *testing.T, s *Server, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

// decodeData unmarshals the "data" payload of a JSON envelope.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()

	var envelope struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dst))
}

func TestServer_HealthAndRoot(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestServer_StudentLifecycle(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"name":        "Alice Johnson",
		"age":         15,
		"grade":       9,
		"performance": "Excellent",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var created struct {
		ID    shared.ID `json:"id"`
		Class string    `json:"class"`
	}
	decodeData(t, rec, &created)
	assert.Equal(t, "A", created.Class)
	require.NotZero(t, created.ID)

	// Fresh student has full attendance.
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/v1/students/%d", created.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var rated struct {
		Name       string `json:"name"`
		Attendance int    `json:"attendance"`
	}
	decodeData(t, rec, &rated)
	assert.Equal(t, "Alice Johnson", rated.Name)
	assert.Equal(t, 100, rated.Attendance)

	rec = do(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/students/%d", created.ID), nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/v1/students/%d", created.ID), nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestServer_ValidationErrors(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"name":        "",
		"age":         15,
		"grade":       9,
		"performance": "Excellent",
	})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/students/not-a-number", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestServer_EnrollmentAndAttendanceFlow(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"name": "Bob Smith", "age": 16, "grade": 10, "performance": "Good",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var st struct {
		ID shared.ID `json:"id"`
	}
	decodeData(t, rec, &st)

	rec = do(t, s, http.MethodPost, "/api/v1/courses", map[string]interface{}{
		"title": "Algebra II", "department": "Mathematics", "credits": 4,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var c struct {
		ID shared.ID `json:"id"`
	}
	decodeData(t, rec, &c)

	// Enroll, then enroll again: second call reports the existing pair.
	rec = do(t, s, http.MethodPost, fmt.Sprintf("/api/v1/courses/%d/enrollments", c.ID),
		map[string]interface{}{"studentId": st.ID})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPost, fmt.Sprintf("/api/v1/courses/%d/enrollments", c.ID),
		map[string]interface{}{"studentId": st.ID})
	assert.Equal(t, http.StatusOK, rec.Code)

	// Mark late, then correct to present: the sheet shows the last mark.
	rec = do(t, s, http.MethodPut, fmt.Sprintf("/api/v1/courses/%d/attendance", c.ID),
		map[string]interface{}{"studentId": st.ID, "date": "2026-02-10", "status": "Late"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec = do(t, s, http.MethodPut, fmt.Sprintf("/api/v1/courses/%d/attendance", c.ID),
		map[string]interface{}{"studentId": st.ID, "date": "2026-02-10", "status": "Present"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet,
		fmt.Sprintf("/api/v1/courses/%d/attendance?date=2026-02-10", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var sheet struct {
		Entries []struct {
			Marked bool   `json:"marked"`
			Status string `json:"status"`
		} `json:"entries"`
	}
	decodeData(t, rec, &sheet)
	require.Len(t, sheet.Entries, 1)
	assert.True(t, sheet.Entries[0].Marked)
	assert.Equal(t, "Present", sheet.Entries[0].Status)

	// Roster shows the enrolled student.
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/v1/courses/%d/roster", c.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var roster struct {
		Enrolled  []json.RawMessage `json:"enrolled"`
		Available []json.RawMessage `json:"available"`
	}
	decodeData(t, rec, &roster)
	assert.Len(t, roster.Enrolled, 1)
	assert.Empty(t, roster.Available)
}

func TestServer_CourseViewResolvesDanglingTeacher(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/teachers", map[string]interface{}{
		"name": "Elena Petrova", "subject": "Physics", "experience": 12,
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var teacher struct {
		ID shared.ID `json:"id"`
	}
	decodeData(t, rec, &teacher)

	rec = do(t, s, http.MethodPost, "/api/v1/courses", map[string]interface{}{
		"title": "Mechanics", "teacherId": teacher.ID, "department": "Science", "credits": 3,
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodDelete, fmt.Sprintf("/api/v1/teachers/%d", teacher.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var result struct {
		Courses []struct {
			Title       string `json:"title"`
			TeacherName string `json:"teacherName"`
		} `json:"courses"`
	}
	decodeData(t, rec, &result)
	require.Len(t, result.Courses, 1)
	assert.Equal(t, "Mechanics", result.Courses[0].Title)
	assert.Equal(t, query.UnknownTeacherName, result.Courses[0].TeacherName)
}

func TestServer_ReportEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"name": "Carol White", "age": 14, "grade": 8, "performance": "Average",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	var st struct {
		ID shared.ID `json:"id"`
	}
	decodeData(t, rec, &st)

	// Before generation the tracker reports idle.
	rec = do(t, s, http.MethodGet, fmt.Sprintf("/api/v1/students/%d/report", st.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		State string `json:"state"`
		Text  string `json:"text"`
	}
	decodeData(t, rec, &report)
	assert.Equal(t, "idle", report.State)

	rec = do(t, s, http.MethodPost, fmt.Sprintf("/api/v1/students/%d/report", st.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decodeData(t, rec, &report)
	assert.Equal(t, "success", report.State)
	assert.Equal(t, "A fine student.", report.Text)
}

func TestServer_StatsEndpoint(t *testing.T) {
	s := newTestServer(t)

	rec := do(t, s, http.MethodPost, "/api/v1/students", map[string]interface{}{
		"name": "Dan Brown", "age": 15, "grade": 9, "performance": "Good",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = do(t, s, http.MethodGet, "/api/v1/stats", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var stats struct {
		TotalStudents     int `json:"totalStudents"`
		AverageAttendance int `json:"averageAttendance"`
	}
	decodeData(t, rec, &stats)
	assert.Equal(t, 1, stats.TotalStudents)
	assert.Equal(t, 100, stats.AverageAttendance)
}
