package shared

import (
	"context"
	"time"
)

// EventType represents the type of domain event.
type EventType string

// Domain event types. Events are the seam between a successful store
// mutation and its side effects (snapshot persistence, logging).
const (
	// Collection change events - one per persisted collection. The snapshot
	// writer subscribes to these and saves the matching blob.
	EventStudentsChanged    EventType = "collection.students_changed"
	EventTeachersChanged    EventType = "collection.teachers_changed"
	EventCoursesChanged     EventType = "collection.courses_changed"
	EventEventsChanged      EventType = "collection.events_changed"
	EventEnrollmentsChanged EventType = "collection.enrollments_changed"
	EventAttendanceChanged  EventType = "collection.attendance_changed"

	// Lifecycle events for logging and future integrations.
	EventCourseDeleted    EventType = "course.deleted"
	EventStudentDeleted   EventType = "student.deleted"
	EventAttendanceMarked EventType = "attendance.marked"
	EventReportRequested  EventType = "report.requested"
)

// Event is the base interface for all domain events.
type Event interface {
	// EventType returns the type of the event.
	EventType() EventType

	// OccurredAt returns when the event occurred.
	OccurredAt() time.Time

	// AggregateID returns the ID of the aggregate that produced this event.
	AggregateID() string
}

// EventHandler обрабатывает одно доменное событие. Ошибка обработчика
// логируется шиной и не откатывает мутацию, которая породила событие.
type EventHandler func(ctx context.Context, event Event) error

// BaseEvent provides common event functionality.
type BaseEvent struct {
	Type        EventType `json:"type"`
	Timestamp   time.Time `json:"timestamp"`
	AggregateId string    `json:"aggregate_id"`
}

// EventType implements Event interface.
func (e BaseEvent) EventType() EventType {
	return e.Type
}

// OccurredAt implements Event interface.
func (e BaseEvent) OccurredAt() time.Time {
	return e.Timestamp
}

// AggregateID implements Event interface.
func (e BaseEvent) AggregateID() string {
	return e.AggregateId
}

// NewBaseEvent creates a new base event.
func NewBaseEvent(eventType EventType, aggregateID string) BaseEvent {
	return BaseEvent{
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateId: aggregateID,
	}
}

// EventPublisher публикует доменные события. Узкий интерфейс для
// обработчиков команд, которым не нужна подписка.
type EventPublisher interface {
	// Publish sends an event to all subscribed handlers.
	Publish(ctx context.Context, event Event) error
}

// EventBus определяет контракт шины доменных событий.
type EventBus interface {
	EventPublisher

	// Subscribe registers a handler for a specific event type.
	Subscribe(eventType EventType, handler EventHandler) error

	// SubscribeAll registers a handler for all events.
	SubscribeAll(handler EventHandler) error

	// Close gracefully shuts down the event bus.
	Close() error
}

// CollectionChangedEvent сообщает, что коллекция изменилась и её снапшот
// нужно перезаписать. Collection - имя коллекции в хранилище снапшотов.
type CollectionChangedEvent struct {
	BaseEvent
	Collection string `json:"collection"`
}

// NewCollectionChangedEvent creates a change event for the named collection.
func NewCollectionChangedEvent(eventType EventType, collection string) CollectionChangedEvent {
	return CollectionChangedEvent{
		BaseEvent:  NewBaseEvent(eventType, collection),
		Collection: collection,
	}
}
