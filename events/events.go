package events

import (
	"context"
	"sync"

	"gridiron/models"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// EventType represents different types of events in the system
type EventType string

const (
	EventTypeCreditsChange EventType = "credits_change"
	EventTypeUserCreated   EventType = "user_created"
	EventTypePrizeAwarded  EventType = "prize_awarded"
	EventTypeMatchSettled  EventType = "match_settled"
)

// Event is the base interface for all events
type Event interface {
	Type() EventType
}

// CreditsChangeEvent represents a credits ledger change that occurred
type CreditsChangeEvent struct {
	UserID          int64
	OldCredits      int64
	NewCredits      int64
	TransactionType models.TransactionType
	ChangeAmount    int64
}

func (e CreditsChangeEvent) Type() EventType {
	return EventTypeCreditsChange
}

// UserCreatedEvent represents a new user creation
type UserCreatedEvent struct {
	UserID         int64
	Username       string
	InitialCredits int64
}

func (e UserCreatedEvent) Type() EventType {
	return EventTypeUserCreated
}

// PrizeAwardedEvent represents a league prize credited to a user
type PrizeAwardedEvent struct {
	LeagueID int64
	UserID   int64
	Rank     int
	Amount   int64
}

func (e PrizeAwardedEvent) Type() EventType {
	return EventTypePrizeAwarded
}

// MatchSettledEvent represents a completed settlement pass for a match
type MatchSettledEvent struct {
	MatchID        int64
	SettlementID   uuid.UUID
	UsersUpdated   int
	LeaguesSettled int
}

func (e MatchSettledEvent) Type() EventType {
	return EventTypeMatchSettled
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

	if b.handlers[eventType] == nil {
		b.handlers[eventType] = make([]Handler, 0)
	}
	b.handlers[eventType] = append(b.handlers[eventType], handler)

	log.WithFields(log.Fields{
		"eventType":    eventType,
		"handlerCount": len(b.handlers[eventType]),
	}).Debug("Subscribed handler to event type on main event bus")
}

// Emit publishes an event to all registered handlers
func (b *Bus) Emit(ctx context.Context, event Event) {
	b.mu.RLock()
	handlers := make([]Handler, len(b.handlers[event.Type()]))
	copy(handlers, b.handlers[event.Type()])
	b.mu.RUnlock()

	log.WithFields(log.Fields{
		"eventType":    event.Type(),
		"handlerCount": len(handlers),
	}).Debug("Emitting event to handlers on main event bus")

	// Call handlers asynchronously to avoid blocking
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

// A transactional event bus for holding pending events coupled to the Unit of Work.
// Flushes to the underlying event bus.
type TransactionalBus struct {
	real    *Bus
	pending []Event // stashed until Flush
}

func NewTransactionalBus(real *Bus) *TransactionalBus {
	return &TransactionalBus{real: real}
}

func (b *TransactionalBus) Publish(e Event) {
	b.pending = append(b.pending, e)
}

// called after successful DB commit
func (b *TransactionalBus) Flush(ctx context.Context) error {
	log.WithFields(log.Fields{
		"pendingEventCount": len(b.pending),
	}).Debug("Flushing pending events from transactional bus to main event bus")

	// Use background context for event emission so handlers outlive the
	// transaction context.
	eventCtx := context.Background()

	for _, ev := range b.pending {
		b.real.Emit(eventCtx, ev)
	}
	b.pending = nil
	return nil
}

// called after db rollback or to clear state.
func (b *TransactionalBus) Discard() {
	b.pending = nil
}
