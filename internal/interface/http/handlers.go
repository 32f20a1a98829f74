// Package http implements the REST API for the Zenith Admin Hub.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/zenith-edu/zenith-admin-hub/internal/application/command"
	"github.com/zenith-edu/zenith-admin-hub/internal/application/query"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/pkg/logger"
	"github.com/zenith-edu/zenith-admin-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// HEALTH & STATUS HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleRoot serves the root endpoint with basic API information.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "Zenith Admin Hub API",
		"version":     "v1",
		"description": "REST API for the Zenith School Administration Dashboard",
		"endpoints": map[string]string{
			"health":   "/health",
			"students": "/api/v1/students",
			"teachers": "/api/v1/teachers",
			"courses":  "/api/v1/courses",
			"events":   "/api/v1/events",
			"stats":    "/api/v1/stats",
		},
	}

	writeJSON(w, http.StatusOK, info)
}

// handleHealth handles the health check endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Healthy {
			writeJSON(w, http.StatusServiceUnavailable, status)
			return
		}
		writeJSON(w, http.StatusOK, status)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":  "healthy",
		"uptime":  s.Uptime().String(),
		"version": "v1",
	})
}

// handleReady handles the readiness probe endpoint (for Kubernetes).
func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	if s.deps.HealthChecker != nil {
		status := s.deps.HealthChecker.Check(r.Context())
		if !status.Ready {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not_ready",
				"reason": status.Message,
			})
			return
		}
	}

	writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// handleLive handles the liveness probe endpoint (for Kubernetes).
func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// handleMetrics handles the metrics endpoint.
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	metrics := map[string]interface{}{
		"uptime_seconds": s.Uptime().Seconds(),
		"running":        s.IsRunning(),
	}

	if s.deps.BusMetrics != nil {
		metrics["event_bus"] = s.deps.BusMetrics.Snapshot()
	}

	writeJSON(w, http.StatusOK, metrics)
}

// ══════════════════════════════════════════════════════════════════════════════
// STUDENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// studentPayload is the request body for create/update student.
type studentPayload struct {
	Name                  string `json:"name"`
	Age                   int    `json:"age"`
	Grade                 int    `json:"grade"`
	Class                 string `json:"class"`
	Performance           string `json:"performance"`
	Avatar                string `json:"avatar"`
	Address               string `json:"address"`
	EmergencyContactName  string `json:"emergencyContactName"`
	EmergencyContactPhone string `json:"emergencyContactPhone"`
}

// handleListStudents handles GET /api/v1/students?sort=&grade=
func (s *Server) handleListStudents(w http.ResponseWriter, r *http.Request) {
	q := query.ListStudentsQuery{
		Grade:  getQueryParamInt(r, "grade", 0),
		SortBy: query.StudentSort(getQueryParam(r, "sort", "")),
	}

	result, err := s.deps.ListStudents.Handle(r.Context(), q)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleDistinctGrades handles GET /api/v1/students/grades
func (s *Server) handleDistinctGrades(w http.ResponseWriter, r *http.Request) {
	grades, err := s.deps.ListStudents.DistinctGrades(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"grades": grades})
}

// handleGetStudent handles GET /api/v1/students/{id}
func (s *Server) handleGetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	rated, err := s.deps.ListStudents.GetStudent(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, rated)
}

// handleCreateStudent handles POST /api/v1/students
func (s *Server) handleCreateStudent(w http.ResponseWriter, r *http.Request) {
	var p studentPayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	result, err := s.deps.CreateStudent.Handle(r.Context(), command.CreateStudentCommand{
		Name:                  p.Name,
		Age:                   p.Age,
		Grade:                 p.Grade,
		Class:                 p.Class,
		Performance:           student.Performance(p.Performance),
		Avatar:                p.Avatar,
		Address:               p.Address,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, result.Student)
}

// handleUpdateStudent handles PUT /api/v1/students/{id}
func (s *Server) handleUpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var p studentPayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	updated, err := s.deps.UpdateStudent.Handle(r.Context(), command.UpdateStudentCommand{
		ID:                    id,
		Name:                  p.Name,
		Age:                   p.Age,
		Grade:                 p.Grade,
		Class:                 p.Class,
		Performance:           student.Performance(p.Performance),
		Avatar:                p.Avatar,
		Address:               p.Address,
		EmergencyContactName:  p.EmergencyContactName,
		EmergencyContactPhone: p.EmergencyContactPhone,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteStudent handles DELETE /api/v1/students/{id}
func (s *Server) handleDeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.DeleteStudent.Handle(r.Context(), command.DeleteStudentCommand{ID: id})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleStudentCourses handles GET /api/v1/students/{id}/courses
func (s *Server) handleStudentCourses(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	courses, err := s.deps.ListCourses.CoursesFor(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"courses": courses})
}

// handleStudentAttendance handles GET /api/v1/students/{id}/attendance
func (s *Server) handleStudentAttendance(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	records, err := s.deps.GetAttendance.HistoryFor(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"records": records,
		"rate":    attendance.RateFor(records),
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// REPORT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGenerateReport handles POST /api/v1/students/{id}/report
//
// The call is synchronous: it returns once generation finishes. Concurrent
// requests for the same student coalesce into one upstream call.
func (s *Server) handleGenerateReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	report, err := s.deps.GenerateReport.Handle(r.Context(), command.GenerateReportCommand{StudentID: id})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleGetReport handles GET /api/v1/students/{id}/report
//
// Returns the last known report state without triggering generation.
// Unknown students get an idle report, matching the tracker semantics.
func (s *Server) handleGetReport(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, s.deps.GenerateReport.ReportFor(id))
}

// ══════════════════════════════════════════════════════════════════════════════
// TEACHER HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// teacherPayload is the request body for create/update teacher.
type teacherPayload struct {
	Name       string `json:"name"`
	Subject    string `json:"subject"`
	Experience int    `json:"experience"`
	Email      string `json:"email"`
	Avatar     string `json:"avatar"`
}

// handleListTeachers handles GET /api/v1/teachers
func (s *Server) handleListTeachers(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListTeachers.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleGetTeacher handles GET /api/v1/teachers/{id}
func (s *Server) handleGetTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	view, err := s.deps.ListTeachers.GetTeacher(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// handleCreateTeacher handles POST /api/v1/teachers
func (s *Server) handleCreateTeacher(w http.ResponseWriter, r *http.Request) {
	var p teacherPayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	created, err := s.deps.CreateTeacher.Handle(r.Context(), command.CreateTeacherCommand{
		Name:       p.Name,
		Subject:    p.Subject,
		Experience: p.Experience,
		Email:      p.Email,
		Avatar:     p.Avatar,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateTeacher handles PUT /api/v1/teachers/{id}
func (s *Server) handleUpdateTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var p teacherPayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	updated, err := s.deps.UpdateTeacher.Handle(r.Context(), command.UpdateTeacherCommand{
		ID:         id,
		Name:       p.Name,
		Subject:    p.Subject,
		Experience: p.Experience,
		Email:      p.Email,
		Avatar:     p.Avatar,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteTeacher handles DELETE /api/v1/teachers/{id}
//
// Deleting a teacher never touches their courses: dangling references are
// resolved to "N/A" on the read side.
func (s *Server) handleDeleteTeacher(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.deps.DeleteTeacher.Handle(r.Context(), command.DeleteTeacherCommand{ID: id}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

// ══════════════════════════════════════════════════════════════════════════════
// COURSE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// coursePayload is the request body for create/update course.
type coursePayload struct {
	Title      string    `json:"title"`
	TeacherID  shared.ID `json:"teacherId"`
	Department string    `json:"department"`
	Credits    int       `json:"credits"`
}

// handleListCourses handles GET /api/v1/courses
func (s *Server) handleListCourses(w http.ResponseWriter, r *http.Request) {
	result, err := s.deps.ListCourses.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// handleCreateCourse handles POST /api/v1/courses
func (s *Server) handleCreateCourse(w http.ResponseWriter, r *http.Request) {
	var p coursePayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	created, err := s.deps.CreateCourse.Handle(r.Context(), command.CreateCourseCommand{
		Title:      p.Title,
		TeacherID:  p.TeacherID,
		Department: p.Department,
		Credits:    p.Credits,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateCourse handles PUT /api/v1/courses/{id}
func (s *Server) handleUpdateCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var p coursePayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	updated, err := s.deps.UpdateCourse.Handle(r.Context(), command.UpdateCourseCommand{
		ID:         id,
		Title:      p.Title,
		TeacherID:  p.TeacherID,
		Department: p.Department,
		Credits:    p.Credits,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteCourse handles DELETE /api/v1/courses/{id}
func (s *Server) handleDeleteCourse(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	result, err := s.deps.DeleteCourse.Handle(r.Context(), command.DeleteCourseCommand{ID: id})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// ENROLLMENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetRoster handles GET /api/v1/courses/{id}/roster
func (s *Server) handleGetRoster(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	roster, err := s.deps.GetRoster.Handle(r.Context(), id)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, roster)
}

// handleEnrollStudent handles POST /api/v1/courses/{id}/enrollments
func (s *Server) handleEnrollStudent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var p struct {
		StudentID shared.ID `json:"studentId"`
	}
	if !s.decodeBody(w, r, &p) {
		return
	}

	result, err := s.deps.EnrollStudent.Handle(r.Context(), command.EnrollStudentCommand{
		StudentID: p.StudentID,
		CourseID:  courseID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	status := http.StatusCreated
	if result.AlreadyEnrolled {
		status = http.StatusOK
	}
	writeJSON(w, status, result)
}

// handleUnenrollStudent handles DELETE /api/v1/courses/{id}/enrollments/{studentId}
func (s *Server) handleUnenrollStudent(w http.ResponseWriter, r *http.Request) {
	courseID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}
	studentID, ok := s.pathID(w, r, "studentId")
	if !ok {
		return
	}

	err := s.deps.UnenrollStudent.Handle(r.Context(), command.UnenrollStudentCommand{
		StudentID: studentID,
		CourseID:  courseID,
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"studentId": studentID,
		"courseId":  courseID,
	})
}

// ══════════════════════════════════════════════════════════════════════════════
// ATTENDANCE HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleAttendanceSheet handles GET /api/v1/courses/{id}/attendance?date=YYYY-MM-DD
//
// Without a date parameter the sheet is for today.
func (s *Server) handleAttendanceSheet(w http.ResponseWriter, r *http.Request) {
	courseID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	date := shared.Date(getQueryParam(r, "date", timeutil.TodayString()))

	sheet, err := s.deps.GetAttendance.Sheet(r.Context(), courseID, date)
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, sheet)
}

// handleMarkAttendance handles PUT /api/v1/courses/{id}/attendance
//
// Marking is an upsert: re-marking the same student, course and date
// replaces the previous status.
func (s *Server) handleMarkAttendance(w http.ResponseWriter, r *http.Request) {
	courseID, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var p struct {
		StudentID shared.ID `json:"studentId"`
		Date      string    `json:"date"`
		Status    string    `json:"status"`
	}
	if !s.decodeBody(w, r, &p) {
		return
	}

	result, err := s.deps.MarkAttendance.Handle(r.Context(), command.MarkAttendanceCommand{
		StudentID: p.StudentID,
		CourseID:  courseID,
		Date:      shared.Date(p.Date),
		Status:    attendance.Status(p.Status),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// ══════════════════════════════════════════════════════════════════════════════
// CALENDAR EVENT HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// eventPayload is the request body for create/update calendar event.
type eventPayload struct {
	Title string `json:"title"`
	Date  string `json:"date"`
	Type  string `json:"type"`
}

// handleListEvents handles GET /api/v1/events
func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.deps.GetEvents.All(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// handleUpcomingEvents handles GET /api/v1/events/upcoming
func (s *Server) handleUpcomingEvents(w http.ResponseWriter, r *http.Request) {
	events, err := s.deps.GetEvents.Upcoming(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"events": events})
}

// handleCreateEvent handles POST /api/v1/events
func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var p eventPayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	created, err := s.deps.CreateEvent.Handle(r.Context(), command.CreateEventCommand{
		Title: p.Title,
		Date:  shared.Date(p.Date),
		Type:  event.Type(p.Type),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, created)
}

// handleUpdateEvent handles PUT /api/v1/events/{id}
func (s *Server) handleUpdateEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	var p eventPayload
	if !s.decodeBody(w, r, &p) {
		return
	}

	updated, err := s.deps.UpdateEvent.Handle(r.Context(), command.UpdateEventCommand{
		ID:    id,
		Title: p.Title,
		Date:  shared.Date(p.Date),
		Type:  event.Type(p.Type),
	})
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, updated)
}

// handleDeleteEvent handles DELETE /api/v1/events/{id}
func (s *Server) handleDeleteEvent(w http.ResponseWriter, r *http.Request) {
	id, ok := s.pathID(w, r, "id")
	if !ok {
		return
	}

	if err := s.deps.DeleteEvent.Handle(r.Context(), command.DeleteEventCommand{ID: id}); err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"deleted": id})
}

// ══════════════════════════════════════════════════════════════════════════════
// DASHBOARD HANDLERS
// ══════════════════════════════════════════════════════════════════════════════

// handleGetStats handles GET /api/v1/stats
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.deps.GetDashboardStats.Handle(r.Context())
	if err != nil {
		s.writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, stats)
}

// ══════════════════════════════════════════════════════════════════════════════
// REQUEST HELPERS
// ══════════════════════════════════════════════════════════════════════════════

// pathID extracts and parses an ID path parameter. On failure it writes
// a 400 response and returns false.
func (s *Server) pathID(w http.ResponseWriter, r *http.Request, name string) (shared.ID, bool) {
	id, err := shared.ParseID(r.PathValue(name))
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_id", "Invalid "+name+" path parameter")
		return 0, false
	}
	return id, true
}

// decodeBody decodes the request body into dst. On failure it writes
// a 400 response and returns false.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_body", "Request body is not valid JSON")
		return false
	}
	return true
}

// writeDomainError maps application and domain errors to HTTP status codes.
func (s *Server) writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, student.ErrStudentNotFound),
		errors.Is(err, faculty.ErrTeacherNotFound),
		errors.Is(err, course.ErrCourseNotFound),
		errors.Is(err, event.ErrEventNotFound),
		errors.Is(err, shared.ErrNotFound):
		writeJSONError(w, http.StatusNotFound, "not_found", err.Error())

	case errors.Is(err, student.ErrInvalidName),
		errors.Is(err, student.ErrInvalidAge),
		errors.Is(err, student.ErrInvalidGrade),
		errors.Is(err, student.ErrInvalidPerformance),
		errors.Is(err, faculty.ErrInvalidName),
		errors.Is(err, faculty.ErrInvalidExperience),
		errors.Is(err, course.ErrInvalidTitle),
		errors.Is(err, course.ErrInvalidCredits),
		errors.Is(err, event.ErrInvalidTitle),
		errors.Is(err, event.ErrInvalidDate),
		errors.Is(err, event.ErrInvalidType),
		errors.Is(err, attendance.ErrInvalidKey),
		errors.Is(err, attendance.ErrInvalidStatus),
		errors.Is(err, enrollment.ErrInvalidEnrollment),
		errors.Is(err, shared.ErrInvalidInput),
		errors.Is(err, shared.ErrInvalidFormat):
		writeJSONError(w, http.StatusBadRequest, "validation_failed", err.Error())

	case errors.Is(err, shared.ErrNotConfigured):
		writeJSONError(w, http.StatusServiceUnavailable, "not_configured", err.Error())

	case errors.Is(err, shared.ErrExternalService):
		writeJSONError(w, http.StatusBadGateway, "external_service_error", err.Error())

	default:
		s.logger.Error("unhandled error",
			logger.Err(err),
			logger.String("path", r.URL.Path),
			logger.String("request_id", getRequestID(r.Context())),
		)
		writeJSONError(w, http.StatusInternalServerError, "internal_error", "An unexpected error occurred")
	}
}
