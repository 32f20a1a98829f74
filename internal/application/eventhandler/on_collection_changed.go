// Package eventhandler содержит обработчики доменных событий.
package eventhandler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/internal/infrastructure/persistence/snapshot"
)

// ═══════════════════════════════════════════════════════════════════════════
// ON COLLECTION CHANGED HANDLER
// Write-through персистентность: после каждой успешной мутации коллекции
// её полный снапшот сериализуется и перезаписывается в хранилище блобов.
//
// Ошибки записи логируются и НЕ откатывают мутацию: живое состояние в
// памяти - источник истины, снапшот - его лучшая доступная копия.
// ═══════════════════════════════════════════════════════════════════════════

// OnCollectionChangedHandler сохраняет снапшот изменившейся коллекции.
type OnCollectionChangedHandler struct {
	stores snapshot.Stores
	blobs  snapshot.Store
	logger *slog.Logger
}

// NewOnCollectionChangedHandler создаёт новый обработчик.
func NewOnCollectionChangedHandler(
	stores snapshot.Stores,
	blobs snapshot.Store,
	logger *slog.Logger,
) *OnCollectionChangedHandler {
	if logger == nil {
		logger = slog.Default()
	}

	return &OnCollectionChangedHandler{
		stores: stores,
		blobs:  blobs,
		logger: logger.With("handler", "on_collection_changed"),
	}
}

// Subscribe регистрирует обработчик на все события изменения коллекций.
func (h *OnCollectionChangedHandler) Subscribe(bus shared.EventBus) error {
	for _, eventType := range []shared.EventType{
		shared.EventStudentsChanged,
		shared.EventTeachersChanged,
		shared.EventCoursesChanged,
		shared.EventEventsChanged,
		shared.EventEnrollmentsChanged,
		shared.EventAttendanceChanged,
	} {
		if err := bus.Subscribe(eventType, h.Handle); err != nil {
			return fmt.Errorf("subscribe %s: %w", eventType, err)
		}
	}
	return nil
}

// Handle обрабатывает событие изменения коллекции.
// Реализует shared.EventHandler.
func (h *OnCollectionChangedHandler) Handle(ctx context.Context, event shared.Event) error {
	changed, ok := event.(shared.CollectionChangedEvent)
	if !ok {
		h.logger.Warn("received non-CollectionChangedEvent", "event_type", event.EventType())
		return nil
	}

	blob, err := h.stores.Serialize(ctx, changed.Collection)
	if err != nil {
		h.logger.Error("snapshot serialize failed", "collection", changed.Collection, "error", err)
		return nil
	}

	if err := h.blobs.Save(ctx, changed.Collection, blob); err != nil {
		h.logger.Error("snapshot save failed", "collection", changed.Collection, "error", err)
		return nil
	}

	h.logger.Debug("snapshot saved", "collection", changed.Collection, "bytes", len(blob))
	return nil
}

