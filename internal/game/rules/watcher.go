package rules

import (
	"sync"
)

// WatcherScope defines how long a watcher's tracking lasts.
type WatcherScope int

const (
	// WatcherScopeMatch tracks events for the entire match.
	WatcherScopeMatch WatcherScope = iota
	// WatcherScopeRound tracks events until the next round starts.
	WatcherScopeRound
)

// String returns the string representation of the watcher scope.
func (ws WatcherScope) String() string {
	switch ws {
	case WatcherScopeMatch:
		return "MATCH"
	case WatcherScopeRound:
		return "ROUND"
	default:
		return "UNKNOWN"
	}
}

// Watcher observes match events and accumulates what it is interested in.
type Watcher interface {
	// Watch is called for every event published while the watcher is registered.
	Watch(event Event)

	// Reset clears the tracked state.
	Reset()

	// ConditionMet reports whether the watcher saw anything since its last reset.
	ConditionMet() bool

	// Scope returns the scope of this watcher.
	Scope() WatcherScope

	// Key returns the unique key for this watcher instance.
	Key() string
}

// BaseWatcher provides the bookkeeping shared by watchers.
type BaseWatcher struct {
	scope     WatcherScope
	key       string
	condition bool
}

// NewBaseWatcher creates a base watcher with the given scope and key.
func NewBaseWatcher(scope WatcherScope, key string) *BaseWatcher {
	return &BaseWatcher{
		scope: scope,
		key:   key,
	}
}

func (bw *BaseWatcher) Scope() WatcherScope {
	return bw.scope
}

func (bw *BaseWatcher) Key() string {
	return bw.key
}

func (bw *BaseWatcher) ConditionMet() bool {
	return bw.condition
}

// SetCondition sets the condition flag.
func (bw *BaseWatcher) SetCondition(condition bool) {
	bw.condition = condition
}

// Reset clears the condition.
func (bw *BaseWatcher) Reset() {
	bw.condition = false
}

// WatcherRegistry manages the watchers of one match. Round-scoped watchers
// are reset when a round starts, before they see the round start event.
type WatcherRegistry struct {
	mu       sync.RWMutex
	watchers map[string]Watcher
	order    []string
}

// NewWatcherRegistry creates a new watcher registry.
func NewWatcherRegistry() *WatcherRegistry {
	return &WatcherRegistry{
		watchers: make(map[string]Watcher),
	}
}

// AddWatcher registers watcher, replacing any watcher with the same key.
func (wr *WatcherRegistry) AddWatcher(watcher Watcher) {
	if watcher == nil {
		return
	}

	wr.mu.Lock()
	defer wr.mu.Unlock()

	key := watcher.Key()
	if _, exists := wr.watchers[key]; !exists {
		wr.order = append(wr.order, key)
	}
	wr.watchers[key] = watcher
}

// GetWatcher retrieves a watcher by key.
func (wr *WatcherRegistry) GetWatcher(key string) Watcher {
	wr.mu.RLock()
	defer wr.mu.RUnlock()
	return wr.watchers[key]
}

// NotifyWatchers delivers event to every watcher.
func (wr *WatcherRegistry) NotifyWatchers(event Event) {
	wr.mu.RLock()
	defer wr.mu.RUnlock()

	if event.Type == EventRoundStarted {
		for _, key := range wr.order {
			if w := wr.watchers[key]; w.Scope() == WatcherScopeRound {
				w.Reset()
			}
		}
	}
	for _, key := range wr.order {
		wr.watchers[key].Watch(event)
	}
}

// Attach subscribes the registry to every event published on bus.
func (wr *WatcherRegistry) Attach(bus *EventBus) {
	bus.Subscribe(wr.NotifyWatchers)
}
