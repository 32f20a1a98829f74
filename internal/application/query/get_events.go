package query

import (
	"context"
	"fmt"
	"sort"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/event"
	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
	"github.com/zenith-edu/zenith-admin-hub/pkg/timeutil"
)

// ══════════════════════════════════════════════════════════════════════════════
// GET EVENTS QUERY
// Календарь школы. "Предстоящие" считаются от начала сегодняшнего дня в
// часовом поясе школы: событие сегодняшней даты ещё предстоящее.
// ══════════════════════════════════════════════════════════════════════════════

// UpcomingEventsLimit - максимум событий в виджете "предстоящие".
const UpcomingEventsLimit = 5

// GetEventsHandler обрабатывает запросы календаря.
type GetEventsHandler struct {
	eventRepo event.Repository
}

// NewGetEventsHandler создаёт новый обработчик.
func NewGetEventsHandler(eventRepo event.Repository) *GetEventsHandler {
	return &GetEventsHandler{eventRepo: eventRepo}
}

// All возвращает все события, отсортированные по дате по возрастанию.
// Сортировка стабильна: события одного дня сохраняют порядок вставки.
func (h *GetEventsHandler) All(ctx context.Context) ([]*event.Event, error) {
	events, err := h.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_events: %w", err)
	}

	sortByDate(events)
	return events, nil
}

// Upcoming возвращает не более UpcomingEventsLimit ближайших событий с датой
// не раньше сегодняшней, по возрастанию даты.
func (h *GetEventsHandler) Upcoming(ctx context.Context) ([]*event.Event, error) {
	events, err := h.eventRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("get_events: %w", err)
	}

	today := shared.Date(timeutil.TodayString())
	upcoming := make([]*event.Event, 0, len(events))
	for _, e := range events {
		if e.Date.OnOrAfter(today) {
			upcoming = append(upcoming, e)
		}
	}

	sortByDate(upcoming)
	if len(upcoming) > UpcomingEventsLimit {
		upcoming = upcoming[:UpcomingEventsLimit]
	}
	return upcoming, nil
}

// sortByDate сортирует события по дате по возрастанию, стабильно.
// Даты формата YYYY-MM-DD сравниваются лексикографически.
func sortByDate(events []*event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].Date < events[j].Date
	})
}
