package events

import (
	"context"
	"sync"

	log "github.com/sirupsen/logrus"

	"roulette/models"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeWagerPlaced  EventType = "wager_placed"
	EventTypeRoundSettled EventType = "round_settled"
	EventTypeRoomCreated  EventType = "room_created"
	EventTypePoolMovement EventType = "pool_movement"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// WagerPlacedEvent fires when a wager passes admission and is recorded.
type WagerPlacedEvent struct {
	RoomID       int64
	RoundID      int64
	Player       string
	TotalAmount  int64
	LegCount     int
	ReserveFloor int64
}

func (e WagerPlacedEvent) Type() EventType {
	return EventTypeWagerPlaced
}

// RoundSettledEvent fires once per successful round close.
type RoundSettledEvent struct {
	RoundID       int64
	Winner        uint32
	RoomsSettled  int
	TransferCount int
}

func (e RoundSettledEvent) Type() EventType {
	return EventTypeRoundSettled
}

// RoomCreatedEvent fires when the admin adds a room.
type RoomCreatedEvent struct {
	RoomID int64
	Name   string
	Asset  models.Asset
}

func (e RoomCreatedEvent) Type() EventType {
	return EventTypeRoomCreated
}

// PoolMovementEvent fires for owner deposits and withdrawals.
type PoolMovementEvent struct {
	RoomID int64
	Holder string
	Kind   models.TransferKind
	Amount int64
}

func (e PoolMovementEvent) Type() EventType {
	return EventTypePoolMovement
}

// Handler is a function that handles events
type Handler func(ctx context.Context, event Event)

// Bus manages event subscriptions and dispatching
type Bus struct {
	mu       sync.RWMutex
	handlers map[EventType][]Handler
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[EventType][]Handler),
	}
}

// Subscribe adds a handler for a specific event type
func (b *Bus) Subscribe(eventType EventType, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	// Call handlers asynchronously to avoid blocking the invocation that
	// produced the event.
	for i, handler := range handlers {
		go func(h Handler, handlerIndex int) {
			defer func() {
				if r := recover(); r != nil {
					log.WithFields(log.Fields{
						"eventType":    event.Type(),
						"handlerIndex": handlerIndex,
						"panic":        r,
					}).Error("Event handler panicked")
				}
			}()
			h(ctx, event)
		}(handler, i)
	}
}

// TransactionalBus stashes events raised during a unit of work and flushes
// them to the real bus only after the database commit succeeds. Nothing
// observable leaks from an aborted invocation.
type TransactionalBus struct {
	real    *Bus
	pending []Event
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// Flush is called after a successful commit.
func (b *TransactionalBus) Flush(ctx context.Context) error {
	// Events outlive the transaction context.
	eventCtx := context.Background()
	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// Discard is called after rollback.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
