package event

import (
	"context"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Repository определяет операции CRUD для событий календаря.
// Реализация находится в infrastructure/persistence/memory.
type Repository interface {
	// Create создаёт новое событие.
	// Возвращает ErrEventAlreadyExists, если ID уже занят.
	Create(ctx context.Context, e *Event) error

	// GetByID возвращает событие по ID.
	// Возвращает ErrEventNotFound, если событие не найдено.
	GetByID(ctx context.Context, id shared.ID) (*Event, error)

	// Update обновляет данные события по ID.
	Update(ctx context.Context, e *Event) error

	// Delete удаляет событие. Зависимых записей у событий нет.
	Delete(ctx context.Context, id shared.ID) error

	// GetAll возвращает все события в порядке вставки.
	GetAll(ctx context.Context) ([]*Event, error)

	// Count возвращает количество событий.
	Count(ctx context.Context) (int, error)

	// ReplaceAll атомарно заменяет коллекцию (загрузка снапшота).
	ReplaceAll(ctx context.Context, events []*Event) error
}
