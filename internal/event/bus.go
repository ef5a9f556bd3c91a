// Package event provides a pub/sub event system for run lifecycle events using watermill.
package event

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"github.com/BartSte/bartste-prompts/internal/logging"
)

// EventType represents the type of event.
type EventType string

const (
	RunStarted          EventType = "run.started"
	PromptAssembled     EventType = "prompt.assembled"
	ProcessStarted      EventType = "process.started"
	ProcessExited       EventType = "process.exited"
	InstructionsChanged EventType = "instructions.changed"
)

// Topic is the watermill topic every event is mirrored to.
const Topic = "prompts.events"

// Event represents an event to be published.
type Event struct {
	Type  EventType `json:"type"`
	RunID string    `json:"runID,omitempty"`
	Time  time.Time `json:"time"`
	Data  any       `json:"data"`
}

// Message is an event as carried on the watermill topic, with its data
// still encoded.
type Message struct {
	Type  EventType       `json:"type"`
	RunID string          `json:"runID,omitempty"`
	Time  time.Time       `json:"time"`
	Data  json.RawMessage `json:"data"`
}

// Subscriber is a function that receives events.
type Subscriber func(event Event)

type subscriberEntry struct {
	id uint64
	fn Subscriber
}

// Bus delivers events to direct subscribers and mirrors them as JSON
// messages on a watermill GoChannel. Publishing waits until every watermill
// subscriber has acked the message.
type Bus struct {
	mu sync.RWMutex

	pubsub *gochannel.GoChannel
	runID  string

	subscribers map[EventType][]subscriberEntry
	global      []subscriberEntry

	nextID uint64
	closed bool
}

// NewBus creates a bus whose events are stamped with runID.
func NewBus(runID string) *Bus {
	return &Bus{
		pubsub: gochannel.NewGoChannel(
			gochannel.Config{
				OutputChannelBuffer:            100,
				Persistent:                     false,
				BlockPublishUntilSubscriberAck: true,
			},
			watermill.NopLogger{},
		),
		runID:       runID,
		subscribers: make(map[EventType][]subscriberEntry),
	}
}

// RunID returns the run identifier stamped on events.
func (b *Bus) RunID() string {
	return b.runID
}

func (b *Bus) newID() uint64 {
	return atomic.AddUint64(&b.nextID, 1)
}

// Subscribe registers a subscriber for a specific event type.
// Returns an unsubscribe function.
func (b *Bus) Subscribe(eventType EventType, fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.newID()
	b.subscribers[eventType] = append(b.subscribers[eventType], subscriberEntry{id: id, fn: fn})

	return func() {
		b.unsubscribe(eventType, id)
	}
}

// SubscribeAll registers a subscriber for all events.
// Returns an unsubscribe function.
func (b *Bus) SubscribeAll(fn Subscriber) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return func() {}
	}

	id := b.newID()
	b.global = append(b.global, subscriberEntry{id: id, fn: fn})

	return func() {
		b.unsubscribeGlobal(id)
	}
}

func (b *Bus) unsubscribe(eventType EventType, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subscribers[eventType]
	for i, entry := range subs {
		if entry.id == id {
			b.subscribers[eventType] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

func (b *Bus) unsubscribeGlobal(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for i, entry := range b.global {
		if entry.id == id {
			b.global = append(b.global[:i], b.global[i+1:]...)
			break
		}
	}
}

// Messages subscribes to the watermill topic. The channel closes when ctx
// is done or the bus is closed. Consumers must Ack each message.
func (b *Bus) Messages(ctx context.Context) (<-chan *message.Message, error) {
	return b.pubsub.Subscribe(ctx, Topic)
}

// Consume calls fn for every message on the watermill topic until ctx is
// done or the bus is closed, acking each one after fn returns. fn must not
// publish on the same bus. The returned channel is closed once consumption
// has stopped.
func (b *Bus) Consume(ctx context.Context, fn func(Message)) (<-chan struct{}, error) {
	messages, err := b.Messages(ctx)
	if err != nil {
		return nil, err
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range messages {
			var m Message
			if err := json.Unmarshal(msg.Payload, &m); err != nil {
				logging.Debug().Err(err).Str("uuid", msg.UUID).Msg("Dropping undecodable event message")
			} else {
				fn(m)
			}
			msg.Ack()
		}
	}()
	return done, nil
}

// Publish sends an event to all subscribers asynchronously.
// Publishing on a nil Bus is a no-op.
func (b *Bus) Publish(event Event) {
	subs, ok := b.prepare(&event)
	if !ok {
		return
	}
	for _, sub := range subs {
		go sub(event)
	}
}

// PublishSync sends an event to all subscribers before returning.
func (b *Bus) PublishSync(event Event) {
	subs, ok := b.prepare(&event)
	if !ok {
		return
	}
	for _, sub := range subs {
		sub(event)
	}
}

// prepare stamps the event, mirrors it to watermill and collects subscribers.
func (b *Bus) prepare(event *Event) ([]Subscriber, bool) {
	if b == nil {
		return nil, false
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return nil, false
	}

	if event.RunID == "" {
		event.RunID = b.runID
	}
	if event.Time.IsZero() {
		event.Time = time.Now()
	}

	payload, err := json.Marshal(event)
	if err != nil {
		logging.Debug().Err(err).Str("event", string(event.Type)).Msg("Failed to encode event")
	} else {
		msg := message.NewMessage(watermill.NewUUID(), payload)
		msg.Metadata.Set("type", string(event.Type))
		if err := b.pubsub.Publish(Topic, msg); err != nil {
			logging.Debug().Err(err).Str("event", string(event.Type)).Msg("Failed to publish event message")
		}
	}

	subs := make([]Subscriber, 0, len(b.subscribers[event.Type])+len(b.global))
	for _, entry := range b.subscribers[event.Type] {
		subs = append(subs, entry.fn)
	}
	for _, entry := range b.global {
		subs = append(subs, entry.fn)
	}
	return subs, true
}

// Close closes the bus and all its subscribers.
func (b *Bus) Close() error {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return nil
	}
	b.closed = true
	b.subscribers = make(map[EventType][]subscriberEntry)
	b.global = nil
	b.mu.Unlock()

	return b.pubsub.Close()
}
