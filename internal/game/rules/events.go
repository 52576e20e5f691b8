package rules

import (
	"sync"
	"time"
)

// EventType indicates the category of a match event.
type EventType string

const (
	EventMatchStarted   EventType = "MATCH_STARTED"
	EventMatchEnded     EventType = "MATCH_ENDED"
	EventRoundStarted   EventType = "ROUND_STARTED"
	EventTurnEnded      EventType = "TURN_ENDED"
	EventManaGranted    EventType = "MANA_GRANTED"
	EventCardDrawn      EventType = "CARD_DRAWN"
	EventCardPlaced     EventType = "CARD_PLACED"
	EventCardDamaged    EventType = "CARD_DAMAGED"
	EventCardDestroyed  EventType = "CARD_DESTROYED"
	EventCardFrozen     EventType = "CARD_FROZEN"
	EventCardStolen     EventType = "CARD_STOLEN"
	EventAbilityUsed    EventType = "ABILITY_USED"
	EventHeroAbility    EventType = "HERO_ABILITY_USED"
	EventEnvironmentUse EventType = "ENVIRONMENT_USED"
	EventHeroDamaged    EventType = "HERO_DAMAGED"
	EventHeroKilled     EventType = "HERO_KILLED"
	EventActionRejected EventType = "ACTION_REJECTED"
)

// Event represents a state change other subsystems (logging, replays) may react to.
type Event struct {
	Type        EventType
	MatchID     string
	Player      Side      // player on whose behalf the change happened
	CardName    string    // card the event is about, if any
	Row         int       // board row, -1 when not applicable
	Amount      int       // damage, mana, round number...
	Round       int       // round in which the event happened
	Description string    // human-readable summary
	Timestamp   time.Time // wall clock, never part of checksums
}

// Listener defines a callback that reacts to incoming events.
type Listener func(Event)

// subscription is a listener plus the event type it is limited to; an empty
// type matches every event.
type subscription struct {
	eventType EventType
	listener  Listener
}

// EventBus is a synchronous publish/subscribe bus. Listeners run in the order
// they subscribed.
type EventBus struct {
	mu            sync.RWMutex
	subscriptions []subscription
}

// NewEventBus constructs a fresh event bus instance.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a listener for all events.
func (bus *EventBus) Subscribe(listener Listener) {
	bus.add(subscription{listener: listener})
}

// SubscribeTyped registers a listener for a single event type.
func (bus *EventBus) SubscribeTyped(eventType EventType, listener Listener) {
	bus.add(subscription{eventType: eventType, listener: listener})
}

func (bus *EventBus) add(sub subscription) {
	if sub.listener == nil {
		return
	}
	bus.mu.Lock()
	defer bus.mu.Unlock()
	bus.subscriptions = append(bus.subscriptions, sub)
}

// Publish delivers the event to the matching listeners. Listeners are called
// without the lock held and may subscribe further listeners, which see the
// next event.
func (bus *EventBus) Publish(event Event) {
	if bus == nil {
		return
	}
	bus.mu.RLock()
	subs := make([]subscription, len(bus.subscriptions))
	copy(subs, bus.subscriptions)
	bus.mu.RUnlock()

	for _, sub := range subs {
		if sub.eventType == "" || sub.eventType == event.Type {
			sub.listener(event)
		}
	}
}

// NewEvent creates a new event with common fields populated.
func NewEvent(eventType EventType, player Side, cardName string) Event {
	return Event{
		Type:      eventType,
		Player:    player,
		CardName:  cardName,
		Row:       -1,
		Timestamp: time.Now(),
	}
}

// NewRowEvent creates an event tied to a board row.
func NewRowEvent(eventType EventType, player Side, cardName string, row int) Event {
	evt := NewEvent(eventType, player, cardName)
	evt.Row = row
	return evt
}

// NewEventWithAmount creates a new event with an amount value.
func NewEventWithAmount(eventType EventType, player Side, cardName string, amount int) Event {
	evt := NewEvent(eventType, player, cardName)
	evt.Amount = amount
	return evt
}
