package events

import (
	"context"
	"errors"
	"sync"
	"testing"

	"spots_backend/platform/logger"
)

type testEvent struct {
	BaseEvent
	name string
}

func (e testEvent) EventName() string { return e.name }

func TestPublishSyncRunsAllHandlers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var calls []string
	bus.Subscribe("spot.imported", HandlerFunc(func(ctx context.Context, ev Event) error {
		calls = append(calls, "first")
		return errors.New("first failed")
	}))
	bus.Subscribe("spot.imported", HandlerFunc(func(ctx context.Context, ev Event) error {
		calls = append(calls, "second")
		return nil
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "spot.imported"})
	if err == nil {
		t.Fatal("expected joined error from failing handler")
	}
	if len(calls) != 2 {
		t.Fatalf("expected both handlers to run, got %v", calls)
	}
}

func TestPublishSyncRecoversPanic(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	bus.Subscribe("spot.imported", HandlerFunc(func(ctx context.Context, ev Event) error {
		panic("boom")
	}))

	err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "spot.imported"})
	if err == nil {
		t.Fatal("expected error from panicking handler")
	}
}

func TestPublishIsAsynchronous(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	var wg sync.WaitGroup
	wg.Add(1)
	bus.Subscribe("spot.imported", HandlerFunc(func(ctx context.Context, ev Event) error {
		defer wg.Done()
		return nil
	}))

	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "spot.imported"})
	wg.Wait()
}

func TestPublishNoSubscribers(t *testing.T) {
	bus := NewInMemoryBus(logger.New("development"))

	// must not block or panic
	bus.Publish(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "spot.unknown"})
	if err := bus.PublishSync(context.Background(), testEvent{BaseEvent: NewBaseEvent(), name: "spot.unknown"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
