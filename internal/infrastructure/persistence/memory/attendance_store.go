package memory

import (
	"context"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/attendance"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// AttendanceStore implements attendance.Repository in memory.
//
// The log is a map keyed by the composite (studentId, courseId, date) tuple:
// at most one record per key by construction. A repeated mark overwrites the
// status in place, it never appends.
type AttendanceStore struct {
	mu       sync.RWMutex
	byKey    map[attendance.Key]attendance.Record
	order    []attendance.Key
	onChange ChangeHook
}

var _ attendance.Repository = (*AttendanceStore)(nil)

// NewAttendanceStore creates an empty AttendanceStore.
func NewAttendanceStore() *AttendanceStore {
	return &AttendanceStore{byKey: make(map[attendance.Key]attendance.Record)}
}

// SetChangeHook installs the persistence hook.
func (s *AttendanceStore) SetChangeHook(hook ChangeHook) {
	s.onChange = hook
}

// Upsert overwrites the record status for an existing key or inserts a new
// record. Last write wins; no history is retained.
func (s *AttendanceStore) Upsert(_ context.Context, r attendance.Record) error {
	s.mu.Lock()
	if _, ok := s.byKey[r.Key()]; !ok {
		s.order = append(s.order, r.Key())
	}
	s.byKey[r.Key()] = r
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Get returns the record for the exact key. The boolean distinguishes
// "no record" from any stored status.
func (s *AttendanceStore) Get(_ context.Context, key attendance.Key) (attendance.Record, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.byKey[key]
	return r, ok, nil
}

// ByStudent returns every record of the student across all courses.
func (s *AttendanceStore) ByStudent(_ context.Context, studentID shared.ID) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, key := range s.order {
		if key.StudentID == studentID {
			out = append(out, s.byKey[key])
		}
	}
	return out, nil
}

// ByCourseDate returns the records of a course for one calendar day.
func (s *AttendanceStore) ByCourseDate(_ context.Context, courseID shared.ID, date shared.Date) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]attendance.Record, 0)
	for _, key := range s.order {
		if key.CourseID == courseID && key.Date == date {
			out = append(out, s.byKey[key])
		}
	}
	return out, nil
}

// RemoveByCourse deletes every record of the course.
func (s *AttendanceStore) RemoveByCourse(_ context.Context, courseID shared.ID) (int, error) {
	return s.removeWhere(func(key attendance.Key) bool { return key.CourseID == courseID })
}

// RemoveByStudent deletes every record of the student.
func (s *AttendanceStore) RemoveByStudent(_ context.Context, studentID shared.ID) (int, error) {
	return s.removeWhere(func(key attendance.Key) bool { return key.StudentID == studentID })
}

func (s *AttendanceStore) removeWhere(match func(attendance.Key) bool) (int, error) {
	s.mu.Lock()
	kept := s.order[:0]
	removed := 0
	for _, key := range s.order {
		if match(key) {
			delete(s.byKey, key)
			removed++
			continue
		}
		kept = append(kept, key)
	}
	s.order = kept
	s.mu.Unlock()

	if removed > 0 {
		fire(s.onChange)
	}
	return removed, nil
}

// GetAll returns the whole log in insertion order.
func (s *AttendanceStore) GetAll(_ context.Context) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]attendance.Record, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out, nil
}

// Count returns the size of the log.
func (s *AttendanceStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey), nil
}

// ReplaceAll swaps the whole log, collapsing duplicate keys so the last
// record wins. Does not fire the change hook.
func (s *AttendanceStore) ReplaceAll(_ context.Context, records []attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey = make(map[attendance.Key]attendance.Record, len(records))
	s.order = s.order[:0]
	for _, r := range records {
		if _, ok := s.byKey[r.Key()]; !ok {
			s.order = append(s.order, r.Key())
		}
		s.byKey[r.Key()] = r
	}
	return nil
}
