package attendance

import (
	"context"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

// Repository определяет операции над журналом посещаемости.
// Реализация находится в infrastructure/persistence/memory.
type Repository interface {
	// Upsert находит запись по точному ключу и перезаписывает статус;
	// если записи нет - добавляет новую. Последняя запись побеждает.
	Upsert(ctx context.Context, r Record) error

	// Get возвращает запись по точному ключу.
	// Второе значение false означает "записи нет" - это состояние,
	// отличное от StatusAbsent.
	Get(ctx context.Context, key Key) (Record, bool, error)

	// ByStudent возвращает все записи ученика по всем курсам.
	ByStudent(ctx context.Context, studentID shared.ID) ([]Record, error)

	// ByCourseDate возвращает записи курса за календарный день.
	ByCourseDate(ctx context.Context, courseID shared.ID, date shared.Date) ([]Record, error)

	// RemoveByCourse удаляет все записи курса (каскад удаления курса).
	// Возвращает число удалённых записей.
	RemoveByCourse(ctx context.Context, courseID shared.ID) (int, error)

	// RemoveByStudent удаляет все записи ученика (каскад удаления ученика).
	// Возвращает число удалённых записей.
	RemoveByStudent(ctx context.Context, studentID shared.ID) (int, error)

	// GetAll возвращает весь журнал в порядке вставки.
	GetAll(ctx context.Context) ([]Record, error)

	// Count возвращает размер журнала.
	Count(ctx context.Context) (int, error)

	// ReplaceAll атомарно заменяет журнал (загрузка снапшота).
	// Дубликаты ключей на входе схлопываются: последняя запись побеждает.
	ReplaceAll(ctx context.Context, records []Record) error
}
