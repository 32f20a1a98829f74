package memory

import (
	"context"
	"sync"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// EventStore implements event.Repository in memory.
type EventStore struct {
	mu       sync.RWMutex
	byID     map[shared.ID]*event.Event
	order    []shared.ID
	onChange ChangeHook
}

var _ event.Repository = (*EventStore)(nil)

// NewEventStore creates an empty EventStore.
func NewEventStore() *EventStore {
	return &EventStore{byID: make(map[shared.ID]*event.Event)}
}

// SetChangeHook installs the persistence hook.
func (s *EventStore) SetChangeHook(hook ChangeHook) {
	s.onChange = hook
}

// Create creates a new calendar event.
func (s *EventStore) Create(_ context.Context, e *event.Event) error {
	s.mu.Lock()
	if _, ok := s.byID[e.ID]; ok {
		s.mu.Unlock()
		return event.ErrEventAlreadyExists
	}
	s.byID[e.ID] = e.Clone()
	s.order = append(s.order, e.ID)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetByID returns an event by id.
func (s *EventStore) GetByID(_ context.Context, id shared.ID) (*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.byID[id]
	if !ok {
		return nil, event.ErrEventNotFound
	}
	return e.Clone(), nil
}

// Update replaces the stored event with the same id.
func (s *EventStore) Update(_ context.Context, e *event.Event) error {
	s.mu.Lock()
	if _, ok := s.byID[e.ID]; !ok {
		s.mu.Unlock()
		return event.ErrEventNotFound
	}
	s.byID[e.ID] = e.Clone()
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// Delete removes an event.
func (s *EventStore) Delete(_ context.Context, id shared.ID) error {
	s.mu.Lock()
	if _, ok := s.byID[id]; !ok {
		s.mu.Unlock()
		return event.ErrEventNotFound
	}
	delete(s.byID, id)
	s.order = removeID(s.order, id)
	s.mu.Unlock()

	fire(s.onChange)
	return nil
}

// GetAll returns all events in insertion order.
func (s *EventStore) GetAll(_ context.Context) ([]*event.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*event.Event, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id].Clone())
	}
	return out, nil
}

// Count returns the number of events.
func (s *EventStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID), nil
}

// ReplaceAll swaps the whole collection. Does not fire the change hook.
func (s *EventStore) ReplaceAll(_ context.Context, events []*event.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.byID = make(map[shared.ID]*event.Event, len(events))
	s.order = s.order[:0]
	for _, e := range events {
		if _, ok := s.byID[e.ID]; !ok {
			s.order = append(s.order, e.ID)
		}
		s.byID[e.ID] = e.Clone()
	}
	return nil
}
