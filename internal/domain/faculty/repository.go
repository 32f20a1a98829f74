package faculty

import (
	"context"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Repository определяет операции CRUD для преподавателей.
// Реализация находится в infrastructure/persistence/memory.
type Repository interface {
	// Create создаёт нового преподавателя.
	// Возвращает ErrTeacherAlreadyExists, если ID уже занят.
	Create(ctx context.Context, t *Teacher) error

	// GetByID возвращает преподавателя по ID.
	// Возвращает ErrTeacherNotFound, если преподаватель не найден.
	GetByID(ctx context.Context, id shared.ID) (*Teacher, error)

	// Update обновляет данные преподавателя по ID.
	Update(ctx context.Context, t *Teacher) error

	// Delete удаляет преподавателя. Курсы сохраняют висячий TeacherID.
	Delete(ctx context.Context, id shared.ID) error

	// GetAll возвращает всех преподавателей в порядке вставки.
	GetAll(ctx context.Context) ([]*Teacher, error)

	// Count возвращает количество преподавателей.
	Count(ctx context.Context) (int, error)

	// ReplaceAll атомарно заменяет коллекцию (загрузка снапшота).
	ReplaceAll(ctx context.Context, teachers []*Teacher) error
}
