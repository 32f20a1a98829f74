package messaging

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zenith-edu/zenith-admin-hub/internal/domain/shared"
)

func newSyncBus() *InMemoryEventBus {
	cfg := DefaultInMemoryEventBusConfig()
	cfg.EnableMetrics = true
	return NewInMemoryEventBus(cfg)
}

func TestInMemoryEventBus_PublishInOrder(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var got []string
	err := bus.Subscribe(shared.EventStudentsChanged, func(_ context.Context, e shared.Event) error {
		got = append(got, e.AggregateID())
		return nil
	})
	require.NoError(t, err)

	for _, id := range []string{"a", "b", "c"} {
		evt := shared.NewBaseEvent(shared.EventStudentsChanged, id)
		require.NoError(t, bus.Publish(context.Background(), evt))
	}

	// Синхронный режим: обработчики вызываются в порядке публикации.
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestInMemoryEventBus_SubscribeByType(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var students, courses, all int
	require.NoError(t, bus.Subscribe(shared.EventStudentsChanged, func(context.Context, shared.Event) error {
		students++
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventCoursesChanged, func(context.Context, shared.Event) error {
		courses++
		return nil
	}))
	require.NoError(t, bus.SubscribeAll(func(context.Context, shared.Event) error {
		all++
		return nil
	}))

	ctx := context.Background()
	require.NoError(t, bus.Publish(ctx, shared.NewBaseEvent(shared.EventStudentsChanged, "1")))
	require.NoError(t, bus.Publish(ctx, shared.NewBaseEvent(shared.EventStudentsChanged, "2")))
	require.NoError(t, bus.Publish(ctx, shared.NewBaseEvent(shared.EventCoursesChanged, "3")))

	assert.Equal(t, 2, students)
	assert.Equal(t, 1, courses)
	assert.Equal(t, 3, all)
}

func TestInMemoryEventBus_HandlerErrorDoesNotStopDispatch(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var second bool
	require.NoError(t, bus.Subscribe(shared.EventAttendanceChanged, func(context.Context, shared.Event) error {
		return errors.New("handler failed")
	}))
	require.NoError(t, bus.Subscribe(shared.EventAttendanceChanged, func(context.Context, shared.Event) error {
		second = true
		return nil
	}))

	// Ошибка обработчика логируется, но не возвращается: мутация уже
	// применена к хранилищу.
	err := bus.Publish(context.Background(), shared.NewBaseEvent(shared.EventAttendanceChanged, "1"))
	require.NoError(t, err)
	assert.True(t, second)
}

func TestInMemoryEventBus_Closed(t *testing.T) {
	bus := newSyncBus()
	require.NoError(t, bus.Close())

	err := bus.Publish(context.Background(), shared.NewBaseEvent(shared.EventStudentsChanged, "1"))
	assert.ErrorIs(t, err, ErrEventBusClosed)

	err = bus.Subscribe(shared.EventStudentsChanged, func(context.Context, shared.Event) error { return nil })
	assert.ErrorIs(t, err, ErrEventBusClosed)

	// Повторный Close безопасен.
	assert.NoError(t, bus.Close())
}

func TestInMemoryEventBus_Metrics(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	require.NoError(t, bus.Subscribe(shared.EventEventsChanged, func(context.Context, shared.Event) error {
		return nil
	}))
	require.NoError(t, bus.Subscribe(shared.EventEventsChanged, func(context.Context, shared.Event) error {
		return errors.New("boom")
	}))

	require.NoError(t, bus.Publish(context.Background(), shared.NewBaseEvent(shared.EventEventsChanged, "1")))

	snap := bus.Metrics().Snapshot()
	assert.Equal(t, int64(1), snap.TotalPublished)
	assert.Equal(t, int64(2), snap.TotalHandlerExecs)
	assert.InDelta(t, 0.5, snap.HandlerSuccessRate, 0.001)
}

func TestPublishChange(t *testing.T) {
	bus := newSyncBus()
	defer bus.Close()

	var gotCollection string
	require.NoError(t, bus.Subscribe(shared.EventEnrollmentsChanged, func(_ context.Context, e shared.Event) error {
		changed, ok := e.(shared.CollectionChangedEvent)
		require.True(t, ok)
		gotCollection = changed.Collection
		return nil
	}))

	PublishChange(bus, nil, shared.EventEnrollmentsChanged, "zenith-enrollments")
	assert.Equal(t, "zenith-enrollments", gotCollection)
}
