package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
	"github.com/zenith-edu/zenith-admin-hub/pkg/logger"
)

// Stores groups the in-memory repositories the loader fills at boot.
type Stores struct {
	Students    student.Repository
	Teachers    faculty.Repository
	Courses     course.Repository
	Events      event.Repository
	Enrollments enrollment.Repository
	Attendance  attendance.Repository
}

// Serialize marshals the current contents of the collection named by key.
// The blob format is what LoadAll expects back at the next boot.
func (s Stores) Serialize(ctx context.Context, key string) ([]byte, error) {
	switch key {
	case KeyStudents:
		items, err := s.Students.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	case KeyTeachers:
		items, err := s.Teachers.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	case KeyCourses:
		items, err := s.Courses.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	case KeyEvents:
		items, err := s.Events.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	case KeyEnrollments:
		items, err := s.Enrollments.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	case KeyAttendance:
		items, err := s.Attendance.GetAll(ctx)
		if err != nil {
			return nil, err
		}
		return json.Marshal(items)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, key)
	}
}

// SeedData is the built-in dataset used when a blob is missing or corrupt.
// Enrollments and attendance have no seed: they fall back to empty.
type SeedData struct {
	Students []*student.Student
	Teachers []*faculty.Teacher
	Courses  []*course.Course
	Events   []*event.Event
}

// Loader restores all collections from the snapshot store into memory.
type Loader struct {
	store Store
	seed  SeedData
	log   *logger.Logger
}

// NewLoader creates a Loader.
func NewLoader(store Store, seed SeedData, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Default()
	}
	return &Loader{store: store, seed: seed, log: log}
}

// LoadAll fills every store. A missing or unreadable blob degrades to the
// seed dataset (entities) or an empty collection (links); it never fails the
// boot. Storage errors are logged at the boundary and swallowed.
func (l *Loader) LoadAll(ctx context.Context, stores Stores) error {
	students := l.seed.Students
	if blob, ok := l.load(ctx, KeyStudents); ok {
		var loaded []*student.Student
		if l.decode(KeyStudents, blob, &loaded) {
			students = loaded
		}
	}
	if err := stores.Students.ReplaceAll(ctx, students); err != nil {
		return fmt.Errorf("load students: %w", err)
	}

	teachers := l.seed.Teachers
	if blob, ok := l.load(ctx, KeyTeachers); ok {
		var loaded []*faculty.Teacher
		if l.decode(KeyTeachers, blob, &loaded) {
			teachers = loaded
		}
	}
	if err := stores.Teachers.ReplaceAll(ctx, teachers); err != nil {
		return fmt.Errorf("load teachers: %w", err)
	}

	courses := l.seed.Courses
	if blob, ok := l.load(ctx, KeyCourses); ok {
		var loaded []*course.Course
		if l.decode(KeyCourses, blob, &loaded) {
			courses = loaded
		}
	}
	if err := stores.Courses.ReplaceAll(ctx, courses); err != nil {
		return fmt.Errorf("load courses: %w", err)
	}

	events := l.seed.Events
	if blob, ok := l.load(ctx, KeyEvents); ok {
		var loaded []*event.Event
		if l.decode(KeyEvents, blob, &loaded) {
			events = loaded
		}
	}
	if err := stores.Events.ReplaceAll(ctx, events); err != nil {
		return fmt.Errorf("load events: %w", err)
	}

	enrollments := []enrollment.Enrollment{}
	if blob, ok := l.load(ctx, KeyEnrollments); ok {
		var loaded []enrollment.Enrollment
		if l.decode(KeyEnrollments, blob, &loaded) {
			enrollments = loaded
		}
	}
	if err := stores.Enrollments.ReplaceAll(ctx, enrollments); err != nil {
		return fmt.Errorf("load enrollments: %w", err)
	}

	records := []attendance.Record{}
	if blob, ok := l.load(ctx, KeyAttendance); ok {
		var loaded []attendance.Record
		if l.decode(KeyAttendance, blob, &loaded) {
			records = loaded
		}
	}
	if err := stores.Attendance.ReplaceAll(ctx, records); err != nil {
		return fmt.Errorf("load attendance: %w", err)
	}

	return nil
}

// load fetches a blob; false means "use the fallback".
func (l *Loader) load(ctx context.Context, key string) ([]byte, bool) {
	blob, err := l.store.Load(ctx, key)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			l.log.Warn("snapshot load failed, falling back",
				logger.String("collection", key), logger.Err(err))
		}
		return nil, false
	}
	return blob, true
}

// decode unmarshals a blob; a corrupt blob is logged and rejected so the
// caller keeps the fallback.
func (l *Loader) decode(key string, blob []byte, v any) bool {
	if err := json.Unmarshal(blob, v); err != nil {
		l.log.Warn("snapshot blob is corrupt, falling back",
			logger.String("collection", key), logger.Err(err))
		return false
	}
	return true
}
