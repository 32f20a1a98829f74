package student

import (
	"context"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// ══════════════════════════════════════════════════════════════════════════════
// REPOSITORY INTERFACE
// Контракт для работы с хранилищем учеников.
// Реализация находится в infrastructure/persistence/memory.
// ══════════════════════════════════════════════════════════════════════════════

// Repository определяет операции CRUD для учеников.
type Repository interface {
	// Create создаёт нового ученика.
	// Возвращает ErrStudentAlreadyExists, если ID уже занят.
	Create(ctx context.Context, s *Student) error

	// GetByID возвращает ученика по ID.
	// Возвращает ErrStudentNotFound, если ученик не найден.
	GetByID(ctx context.Context, id shared.ID) (*Student, error)

	// Update обновляет данные ученика по ID.
	// Возвращает ErrStudentNotFound, если ученик не найден.
	Update(ctx context.Context, s *Student) error

	// Delete удаляет ученика. Каскадная чистка зависимых записей -
	// ответственность команды удаления, не хранилища.
	// Возвращает ErrStudentNotFound, если ученик не найден.
	Delete(ctx context.Context, id shared.ID) error

	// GetAll возвращает всех учеников в порядке вставки.
	GetAll(ctx context.Context) ([]*Student, error)

	// Count возвращает количество учеников.
	Count(ctx context.Context) (int, error)

	// ReplaceAll атомарно заменяет коллекцию. Используется загрузчиком
	// снапшотов при старте процесса.
	ReplaceAll(ctx context.Context, students []*Student) error
}
