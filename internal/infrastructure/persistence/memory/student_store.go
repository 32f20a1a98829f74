package memory

import (
	"context"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/student"
)

// StudentStore implements student.Repository in memory.
type StudentStore struct {
	mu       sync.RWMutex
	byID     map[shared.ID]*student.Student
	order    []shared.ID
	onChange ChangeHook
}

var _ student.Repository = (*StudentStore)(nil)

// NewStudentStore creates an empty StudentStore.
func NewStudentStore() *StudentStore {
	return &StudentStore{byID: make(map[shared.ID]*student.Student)}
}

// SetChangeHook installs the persistence hook. Must be called during wiring,
// before the store is shared between goroutines.
func (s *StudentStore) SetChangeHook(hook ChangeHook) {
	s.onChange = hook
}

// Create creates a new student.
func (s *StudentStore) Create(_ context.Context, st *student.Student) error {
	s.mu.Lock()
	if _, ok := s.byID[st.ID]; ok {
		s.mu.Unlock()
		return student.ErrStudentAlreadyExists
	}
	s.byID[st.ID] = st.Clone()
	s.order = append(s.order, st.ID)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetByID returns a student by id.
func (s *StudentStore) GetByID(_ context.Context, id shared.ID) (*student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.byID[id]
	if !ok {
		return nil, student.ErrStudentNotFound
	}
	return st.Clone(), nil
}

// Update replaces the stored student with the same id.
func (s *StudentStore) Update(_ context.Context, st *student.Student) error {
	s.mu.Lock()
	if _, ok := s.byID[st.ID]; !ok {
		s.mu.Unlock()
		return student.ErrStudentNotFound
	}
	s.byID[st.ID] = st.Clone()
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Delete removes a student. Dependent enrollment/attendance cleanup is the
// delete command's job, not the store's.
func (s *StudentStore) Delete(_ context.Context, id shared.ID) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return student.ErrStudentNotFound
	}
	delete(s.byID, id)
	s.order = removeID(s.order, id)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetAll returns all students in insertion order.
func (s *StudentStore) GetAll(_ context.Context) ([]*student.Student, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*student.Student, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

// Count returns the number of students.
func (s *StudentStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// ReplaceAll swaps the whole collection, e.g. when loading a snapshot.
// Does not fire the change hook.
func (s *StudentStore) ReplaceAll(_ context.Context, students []*student.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[shared.ID]*student.Student, len(students))
	s.order = s.order[:0]
	for _, st := range students {
		if _, ok := s.byID[st.ID]; !ok {
			s.order = append(s.order, st.ID)
		}
		s.byID[st.ID] = st.Clone()
	}
	return nil
}

func removeID(order []shared.ID, id shared.ID) []shared.ID {
	for i, v := range order {
		if v == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
