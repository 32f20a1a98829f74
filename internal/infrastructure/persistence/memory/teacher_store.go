package memory

import (
	"context"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/faculty"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// TeacherStore implements faculty.Repository in memory.
type TeacherStore struct {
	mu       sync.RWMutex
	byID     map[shared.ID]*faculty.Teacher
	order    []shared.ID
	onChange ChangeHook
}

var _ faculty.Repository = (*TeacherStore)(nil)

// NewTeacherStore creates an empty TeacherStore.
func NewTeacherStore() *TeacherStore {
	return &TeacherStore{byID: make(map[shared.ID]*faculty.Teacher)}
}

// SetChangeHook installs the persistence hook.
func (s *TeacherStore) SetChangeHook(hook ChangeHook) {
	s.onChange = hook
}

// Create creates a new teacher.
func (s *TeacherStore) Create(_ context.Context, t *faculty.Teacher) error {
	s.mu.Lock()
	if _, ok := s.byID[t.ID]; ok {
		s.mu.Unlock()
		return faculty.ErrTeacherAlreadyExists
	}
	s.byID[t.ID] = t.Clone()
	s.order = append(s.order, t.ID)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetByID returns a teacher by id.
func (s *TeacherStore) GetByID(_ context.Context, id shared.ID) (*faculty.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.byID[id]
	if !ok {
		return nil, faculty.ErrTeacherNotFound
	}
	return t.Clone(), nil
}

// Update replaces the stored teacher with the same id.
func (s *TeacherStore) Update(_ context.Context, t *faculty.Teacher) error {
	s.mu.Lock()
	if _, ok := s.byID[t.ID]; !ok {
		s.mu.Unlock()
		return faculty.ErrTeacherNotFound
	}
	s.byID[t.ID] = t.Clone()
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Delete removes a teacher. Courses keep their dangling TeacherID on purpose.
func (s *TeacherStore) Delete(_ context.Context, id shared.ID) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return faculty.ErrTeacherNotFound
	}
	delete(s.byID, id)
	s.order = removeID(s.order, id)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetAll returns all teachers in insertion order.
func (s *TeacherStore) GetAll(_ context.Context) ([]*faculty.Teacher, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*faculty.Teacher, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

// Count returns the number of teachers.
func (s *TeacherStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// ReplaceAll swaps the whole collection. Does not fire the change hook.
func (s *TeacherStore) ReplaceAll(_ context.Context, teachers []*faculty.Teacher) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[shared.ID]*faculty.Teacher, len(teachers))
	s.order = s.order[:0]
	for _, t := range teachers {
		if _, ok := s.byID[t.ID]; !ok {
			s.order = append(s.order, t.ID)
		}
		s.byID[t.ID] = t.Clone()
	}
	return nil
}
