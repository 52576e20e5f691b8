// Package watchers holds the standard match watchers the runner attaches to
// every match.
package watchers

import (
	"github.com/magefree/arena-go/internal/game/rules"
)

// Keys of the standard watchers.
const (
	KeyCardsDestroyed  = "CardsDestroyedWatcher"
	KeyHeroDamage      = "HeroDamageWatcher"
	KeyRejectedActions = "RejectedActionsWatcher"
	KeyCardsPlaced     = "CardsPlacedWatcher"
)

// sideCounter keeps one counter per player.
type sideCounter [2]int

func (c *sideCounter) add(side rules.Side, n int) bool {
	if !side.Valid() {
		return false
	}
	c[side.Index()] += n
	return true
}

func (c sideCounter) get(side rules.Side) int {
	if !side.Valid() {
		return 0
	}
	return c[side.Index()]
}

// CardsDestroyedWatcher counts the cards each player lost from the board.
type CardsDestroyedWatcher struct {
	*rules.BaseWatcher
	lost sideCounter
}

// NewCardsDestroyedWatcher creates a new cards destroyed watcher.
func NewCardsDestroyedWatcher() *CardsDestroyedWatcher {
	return &CardsDestroyedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeMatch, KeyCardsDestroyed),
	}
}

// Watch implements the Watcher interface.
func (w *CardsDestroyedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardDestroyed {
		return
	}
	if w.lost.add(event.Player, 1) {
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *CardsDestroyedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.lost = sideCounter{}
}

// Lost returns the number of side's cards destroyed.
func (w *CardsDestroyedWatcher) Lost(side rules.Side) int {
	return w.lost.get(side)
}

// HeroDamageWatcher sums the damage each hero took.
type HeroDamageWatcher struct {
	*rules.BaseWatcher
	taken sideCounter
}

// NewHeroDamageWatcher creates a new hero damage watcher.
func NewHeroDamageWatcher() *HeroDamageWatcher {
	return &HeroDamageWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeMatch, KeyHeroDamage),
	}
}

// Watch implements the Watcher interface.
func (w *HeroDamageWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventHeroDamaged {
		return
	}
	if w.taken.add(event.Player, event.Amount) {
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *HeroDamageWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.taken = sideCounter{}
}

// Taken returns the damage dealt to side's hero.
func (w *HeroDamageWatcher) Taken(side rules.Side) int {
	return w.taken.get(side)
}

// RejectedActionsWatcher counts the actions of each player the rules refused.
type RejectedActionsWatcher struct {
	*rules.BaseWatcher
	rejected sideCounter
	reasons  map[string]int
}

// NewRejectedActionsWatcher creates a new rejected actions watcher.
func NewRejectedActionsWatcher() *RejectedActionsWatcher {
	return &RejectedActionsWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeMatch, KeyRejectedActions),
		reasons:     make(map[string]int),
	}
}

// Watch implements the Watcher interface.
func (w *RejectedActionsWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventActionRejected {
		return
	}
	if w.rejected.add(event.Player, 1) {
		w.reasons[event.Description]++
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *RejectedActionsWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.rejected = sideCounter{}
	w.reasons = make(map[string]int)
}

// Rejected returns how many of side's actions were refused.
func (w *RejectedActionsWatcher) Rejected(side rules.Side) int {
	return w.rejected.get(side)
}

// Reasons returns a copy of the refusal messages and how often each occurred.
func (w *RejectedActionsWatcher) Reasons() map[string]int {
	out := make(map[string]int, len(w.reasons))
	for k, v := range w.reasons {
		out[k] = v
	}
	return out
}

// CardsPlacedWatcher counts the cards each player placed in the current round.
type CardsPlacedWatcher struct {
	*rules.BaseWatcher
	placed sideCounter
}

// NewCardsPlacedWatcher creates a new cards placed watcher.
func NewCardsPlacedWatcher() *CardsPlacedWatcher {
	return &CardsPlacedWatcher{
		BaseWatcher: rules.NewBaseWatcher(rules.WatcherScopeRound, KeyCardsPlaced),
	}
}

// Watch implements the Watcher interface.
func (w *CardsPlacedWatcher) Watch(event rules.Event) {
	if event.Type != rules.EventCardPlaced {
		return
	}
	if w.placed.add(event.Player, 1) {
		w.SetCondition(true)
	}
}

// Reset clears the watcher's state.
func (w *CardsPlacedWatcher) Reset() {
	w.BaseWatcher.Reset()
	w.placed = sideCounter{}
}

// Placed returns the cards side placed this round.
func (w *CardsPlacedWatcher) Placed(side rules.Side) int {
	return w.placed.get(side)
}

// Standard returns a registry holding one of each standard watcher.
func Standard() *rules.WatcherRegistry {
	registry := rules.NewWatcherRegistry()
	registry.AddWatcher(NewCardsDestroyedWatcher())
	registry.AddWatcher(NewHeroDamageWatcher())
	registry.AddWatcher(NewRejectedActionsWatcher())
	registry.AddWatcher(NewCardsPlacedWatcher())
	return registry
}
