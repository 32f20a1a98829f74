package course

import (
	"context"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Repository определяет операции CRUD для курсов.
// Реализация находится в infrastructure/persistence/memory.
type Repository interface {
	// Create создаёт новый курс.
	// Возвращает ErrCourseAlreadyExists, если ID уже занят.
	Create(ctx context.Context, c *Course) error

	// GetByID возвращает курс по ID.
	// Возвращает ErrCourseNotFound, если курс не найден.
	GetByID(ctx context.Context, id shared.ID) (*Course, error)

	// Update обновляет данные курса по ID.
	Update(ctx context.Context, c *Course) error

	// Delete удаляет курс. Каскадная чистка записей о зачислении и
	// посещаемости - ответственность команды удаления.
	Delete(ctx context.Context, id shared.ID) error

	// GetAll возвращает все курсы в порядке вставки.
	GetAll(ctx context.Context) ([]*Course, error)

	// Count возвращает количество курсов.
	Count(ctx context.Context) (int, error)

	// ReplaceAll атомарно заменяет коллекцию (загрузка снапшота).
	ReplaceAll(ctx context.Context, courses []*Course) error
}
