package eventbus

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPublishReachesSubscriber(t *testing.T) {
	t.Parallel()

	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventQueryCompleted, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(QueryCompletedEvent{Operation: "ListThings", RequestID: "r1"})

	select {
	case e := <-received:
		completed, ok := e.(QueryCompletedEvent)
		require.True(t, ok)
		assert.Equal(t, "ListThings", completed.Operation)
	case <-time.After(time.Second):
		t.Fatal("event not delivered")
	}
}

func TestSubscribersOnlySeeTheirEventType(t *testing.T) {
	t.Parallel()

	bus := New()
	defer bus.Close()

	failed := make(chan DomainEvent, 1)
	bus.Subscribe(EventQueryFailed, func(e DomainEvent) {
		failed <- e
	})

	bus.Publish(QueryCompletedEvent{Operation: "ListThings"})

	select {
	case <-failed:
		t.Fatal("handler got an event of the wrong type")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestUnsubscribeStopsDelivery(t *testing.T) {
	t.Parallel()

	bus := New()
	defer bus.Close()

	received := make(chan DomainEvent, 4)
	unsubscribe := bus.Subscribe(EventPageFetched, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(PageFetchedEvent{Operation: "ListThings"})
	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("first event not delivered")
	}

	unsubscribe()
	bus.Publish(PageFetchedEvent{Operation: "ListThings"})

	select {
	case <-received:
		t.Fatal("event delivered after unsubscribe")
	case <-time.After(50 * time.Millisecond):
	}
}

func TestPanickingHandlerDoesNotKillDispatch(t *testing.T) {
	t.Parallel()

	bus := New()
	defer bus.Close()

	bus.Subscribe(EventItemSelected, func(e DomainEvent) {
		panic("handler bug")
	})
	received := make(chan DomainEvent, 1)
	bus.Subscribe(EventItemSelected, func(e DomainEvent) {
		received <- e
	})

	bus.Publish(ItemSelectedEvent{Key: "1", Label: "one"})

	select {
	case <-received:
	case <-time.After(time.Second):
		t.Fatal("dispatch died after a handler panic")
	}
}
