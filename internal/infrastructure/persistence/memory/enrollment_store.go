package memory

import (
	"context"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/enrollment"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// EnrollmentStore implements enrollment.Repository in memory.
//
// The collection is a map keyed by the composite (studentId, courseId) pair,
// so the at-most-one-row-per-pair invariant is structural, not
// convention-based. Insertion order is kept for listing.
type EnrollmentStore struct {
	mu       sync.RWMutex
	byKey    map[enrollment.Key]enrollment.Enrollment
	order    []enrollment.Key
	onChange ChangeHook
}

var _ enrollment.Repository = (*EnrollmentStore)(nil)

// NewEnrollmentStore creates an empty EnrollmentStore.
func NewEnrollmentStore() *EnrollmentStore {
	return &EnrollmentStore{byKey: make(map[enrollment.Key]enrollment.Enrollment)}
}

// SetChangeHook installs the persistence hook.
func (s *EnrollmentStore) SetChangeHook(hook ChangeHook) {
	s.onChange = hook
}

// Add inserts the pair; adding an existing pair is a no-op and does not
// fire the change hook.
func (s *EnrollmentStore) Add(_ context.Context, e enrollment.Enrollment) error {
	s.mu.Lock()
	if _, ok := s.byKey[e.Key()]; ok {
		s.mu.Unlock()
		return nil
	}
	s.byKey[e.Key()] = e
	s.order = append(s.order, e.Key())
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Remove deletes the exact pair; a missing pair is a no-op.
func (s *EnrollmentStore) Remove(_ context.Context, key enrollment.Key) error {
	s.mu.Lock()
	if _, ok := s.byKey[key]; !ok {
		s.mu.Unlock()
		return nil
	}
	delete(s.byKey, key)
	s.order = removeEnrollmentKey(s.order, key)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Exists reports whether the pair is present.
func (s *EnrollmentStore) Exists(_ context.Context, key enrollment.Key) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byKey[key]
	return ok, nil
}

// ByCourse returns all enrollments for a course in insertion order.
func (s *EnrollmentStore) ByCourse(_ context.Context, courseID shared.ID) ([]enrollment.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, key := range s.order {
		if key.CourseID == courseID {
			out = append(out, s.byKey[key])
		}
	}
	return out, nil
}

// ByStudent returns all enrollments for a student in insertion order.
func (s *EnrollmentStore) ByStudent(_ context.Context, studentID shared.ID) ([]enrollment.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0)
	for _, key := range s.order {
		if key.StudentID == studentID {
			out = append(out, s.byKey[key])
		}
	}
	return out, nil
}

// RemoveByCourse deletes every enrollment of the course.
func (s *EnrollmentStore) RemoveByCourse(_ context.Context, courseID shared.ID) (int, error) {
	return s.removeWhere(func(key enrollment.Key) bool { return key.CourseID == courseID })
}

// RemoveByStudent deletes every enrollment of the student.
func (s *EnrollmentStore) RemoveByStudent(_ context.Context, studentID shared.ID) (int, error) {
	return s.removeWhere(func(key enrollment.Key) bool { return key.StudentID == studentID })
}

func (s *EnrollmentStore) removeWhere(match func(enrollment.Key) bool) (int, error) {
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

// GetAll returns all enrollments in insertion order.
func (s *EnrollmentStore) GetAll(_ context.Context) ([]enrollment.Enrollment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]enrollment.Enrollment, 0, len(s.order))
	for _, key := range s.order {
		out = append(out, s.byKey[key])
	}
	return out, nil
}

// Count returns the number of enrollments.
func (s *EnrollmentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byKey), nil
}

// ReplaceAll swaps the whole collection, collapsing duplicate pairs.
// Does not fire the change hook.
func (s *EnrollmentStore) ReplaceAll(_ context.Context, enrollments []enrollment.Enrollment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byKey = make(map[enrollment.Key]enrollment.Enrollment, len(enrollments))
	s.order = s.order[:0]
	for _, e := range enrollments {
		if _, ok := s.byKey[e.Key()]; !ok {
			s.order = append(s.order, e.Key())
		}
		s.byKey[e.Key()] = e
	}
	return nil
}

func removeEnrollmentKey(order []enrollment.Key, key enrollment.Key) []enrollment.Key {
	for i, v := range order {
		if v == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
