package enrollment

import (
	"context"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Repository определяет операции над множеством зачислений.
// Реализация находится в infrastructure/persistence/memory.
type Repository interface {
	// Add добавляет зачисление. Повторное добавление той же пары -
	// no-op: множественная семантика, идемпотентность гарантируется.
	Add(ctx context.Context, e Enrollment) error

	// Remove удаляет точную пару; no-op, если пары нет.
	Remove(ctx context.Context, key Key) error

	// Exists сообщает, существует ли пара.
	Exists(ctx context.Context, key Key) (bool, error)

	// ByCourse возвращает все зачисления на курс.
	ByCourse(ctx context.Context, courseID shared.ID) ([]Enrollment, error)

	// ByStudent возвращает все зачисления ученика.
	ByStudent(ctx context.Context, studentID shared.ID) ([]Enrollment, error)

	// RemoveByCourse удаляет все зачисления на курс (каскад удаления курса).
	// Возвращает число удалённых записей.
	RemoveByCourse(ctx context.Context, courseID shared.ID) (int, error)

	// RemoveByStudent удаляет все зачисления ученика (каскад удаления ученика).
	// Возвращает число удалённых записей.
	RemoveByStudent(ctx context.Context, studentID shared.ID) (int, error)

	// GetAll возвращает все зачисления в порядке вставки.
	GetAll(ctx context.Context) ([]Enrollment, error)

	// Count возвращает количество зачислений.
	Count(ctx context.Context) (int, error)

	// ReplaceAll атомарно заменяет коллекцию (загрузка снапшота).
	// Дубликаты пар на входе схлопываются в одну запись.
	ReplaceAll(ctx context.Context, enrollments []Enrollment) error
}
