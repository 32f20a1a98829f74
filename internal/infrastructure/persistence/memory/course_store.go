package memory

import (
	"context"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/course"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// CourseStore implements course.Repository in memory.
type CourseStore struct {
	mu       sync.RWMutex
	byID     map[shared.ID]*course.Course
	order    []shared.ID
	onChange ChangeHook
}

var _ course.Repository = (*CourseStore)(nil)

// NewCourseStore creates an empty CourseStore.
func NewCourseStore() *CourseStore {
	return &CourseStore{byID: make(map[shared.ID]*course.Course)}
}

// SetChangeHook installs the persistence hook.
func (s *CourseStore) SetChangeHook(hook ChangeHook) {
	s.onChange = hook
}

// Create creates a new course.
func (s *CourseStore) Create(_ context.Context, c *course.Course) error {
	s.mu.Lock()
	if _, ok := s.byID[c.ID]; ok {
		s.mu.Unlock()
		return course.ErrCourseAlreadyExists
	}
	s.byID[c.ID] = c.Clone()
	s.order = append(s.order, c.ID)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetByID returns a course by id.
func (s *CourseStore) GetByID(_ context.Context, id shared.ID) (*course.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.byID[id]
	if !ok {
		return nil, course.ErrCourseNotFound
	}
	return c.Clone(), nil
}

// Update replaces the stored course with the same id.
func (s *CourseStore) Update(_ context.Context, c *course.Course) error {
	s.mu.Lock()
	if _, ok := s.byID[c.ID]; !ok {
		s.mu.Unlock()
		return course.ErrCourseNotFound
	}
	s.byID[c.ID] = c.Clone()
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Delete removes a course. The cascade over enrollments and attendance
// records belongs to the delete command.
func (s *CourseStore) Delete(_ context.Context, id shared.ID) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return course.ErrCourseNotFound
	}
	delete(s.byID, id)
	s.order = removeID(s.order, id)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetAll returns all courses in insertion order.
func (s *CourseStore) GetAll(_ context.Context) ([]*course.Course, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*course.Course, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

// Count returns the number of courses.
func (s *CourseStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// ReplaceAll swaps the whole collection. Does not fire the change hook.
func (s *CourseStore) ReplaceAll(_ context.Context, courses []*course.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[shared.ID]*course.Course, len(courses))
	s.order = s.order[:0]
	for _, c := range courses {
		if _, ok := s.byID[c.ID]; !ok {
			s.order = append(s.order, c.ID)
		}
		s.byID[c.ID] = c.Clone()
	}
	return nil
}
