package events

import (
	"sync"
	"time"

	evbus "github.com/asaskevich/EventBus"
)

// AsyncBus fans published events out to a fixed pool of workers so
// publishers never block on subscriber latency.
type AsyncBus struct {
	bus       evbus.Bus
	workerNum int
	workChan  chan asyncEvent
	stopChan  chan struct{}
	wg        sync.WaitGroup
}

type asyncEvent struct {
	topic string
	args  []interface{}
}

func NewAsyncBus(workerNum int) *AsyncBus {
	if workerNum <= 0 {
		workerNum = 4
	}

	return &AsyncBus{
		bus:       evbus.New(),
		workerNum: workerNum,
		workChan:  make(chan asyncEvent, 256),
		stopChan:  make(chan struct{}),
	}
}

func (ab *AsyncBus) Start() {
	for i := 0; i < ab.workerNum; i++ {
		ab.wg.Add(1)
		go ab.worker()
	}
}

// Stop waits for in-flight deliveries to finish. Queued events that no
// worker picked up before the stop signal are dropped.
func (ab *AsyncBus) Stop() {
	close(ab.stopChan)
	ab.wg.Wait()
}

func (ab *AsyncBus) worker() {
	defer ab.wg.Done()

	for {
		select {
		case <-ab.stopChan:
			return
		case event := <-ab.workChan:
			func() {
				defer func() {
					// A panicking subscriber must not take the worker down.
					_ = recover()
				}()
				ab.bus.Publish(event.topic, event.args...)
			}()
		}
	}
}

// PublishAsync queues an event. When the queue is full the event is
// dropped; audit and cache-invalidation consumers tolerate gaps.
func (ab *AsyncBus) PublishAsync(topic string, args ...interface{}) {
	select {
	case ab.workChan <- asyncEvent{topic: topic, args: args}:
	default:
	}
}

func (ab *AsyncBus) Subscribe(topic string, fn interface{}) error {
	return ab.bus.Subscribe(topic, fn)
}

func (ab *AsyncBus) Unsubscribe(topic string, fn interface{}) error {
	return ab.bus.Unsubscribe(topic, fn)
}

func (ab *AsyncBus) HasCallback(topic string) bool {
	return ab.bus.HasCallback(topic)
}

// WaitAsync gives queued deliveries a moment to complete (tests only).
func (ab *AsyncBus) WaitAsync() {
	time.Sleep(100 * time.Millisecond)
}
