package events

import (
	"sync"
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	var mu sync.Mutex
	var got []ContentEventData

	handler := func(data ContentEventData) {
		mu.Lock()
		got = append(got, data)
		mu.Unlock()
	}
	if err := Subscribe(EventPostSaved, handler); err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	defer Unsubscribe(EventPostSaved, handler)

	Publish(EventPostSaved, ContentEventData{Kind: "post", ID: 7, Slug: "seven"})

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 1 || got[0].ID != 7 || got[0].Slug != "seven" {
		t.Fatalf("unexpected deliveries: %+v", got)
	}
}

func TestPublishAsyncDelivers(t *testing.T) {
	bus := NewAsyncBus(2)
	bus.Start()
	defer bus.Stop()

	delivered := make(chan AuthEventData, 1)
	if err := bus.Subscribe(EventLoginFailed, func(data AuthEventData) {
		delivered <- data
	}); err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	bus.PublishAsync(EventLoginFailed, AuthEventData{
		Username: "admin",
		Reason:   "invalid_credentials",
		At:       time.Now(),
	})

	select {
	case data := <-delivered:
		if data.Username != "admin" || data.Reason != "invalid_credentials" {
			t.Fatalf("unexpected payload: %+v", data)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("async event never delivered")
	}
}

// A subscriber that panics must not kill the worker pool.
func TestAsyncBusSurvivesPanickingSubscriber(t *testing.T) {
	bus := NewAsyncBus(1)
	bus.Start()
	defer bus.Stop()

	if err := bus.Subscribe("test:boom", func(data ContentEventData) {
		panic("subscriber bug")
	}); err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}
	delivered := make(chan struct{}, 1)
	if err := bus.Subscribe("test:after", func(data ContentEventData) {
		delivered <- struct{}{}
	}); err != nil {
		t.Fatalf("Subscribe error: %v", err)
	}

	bus.PublishAsync("test:boom", ContentEventData{})
	bus.PublishAsync("test:after", ContentEventData{})

	select {
	case <-delivered:
	case <-time.After(2 * time.Second):
		t.Fatal("worker died after subscriber panic")
	}
}
