package game

import (
	"errors"
	"testing"

	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"go.uber.org/zap/zaptest"
)

// matchHarness builds a started match with empty decks and lets tests lay
// out hands and rows directly.
type matchHarness struct {
	t      *testing.T
	match  *Match
	events []rules.Event
	stats  Stats
}

type harnessConfig struct {
	heroOne  string
	heroTwo  string
	starting rules.Side
	deckOne  []*cards.Card
	deckTwo  []*cards.Card
}

type harnessOption func(*harnessConfig)

func withHeroes(one, two string) harnessOption {
	return func(c *harnessConfig) {
		c.heroOne, c.heroTwo = one, two
	}
}

func withStartingPlayer(side rules.Side) harnessOption {
	return func(c *harnessConfig) {
		c.starting = side
	}
}

func withDecks(one, two []*cards.Card) harnessOption {
	return func(c *harnessConfig) {
		c.deckOne, c.deckTwo = one, two
	}
}

func newMatchHarness(t *testing.T, opts ...harnessOption) *matchHarness {
	t.Helper()

	cfg := harnessConfig{
		heroOne:  "Lord Royce",
		heroTwo:  "King Mudface",
		starting: rules.PlayerOne,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	h := &matchHarness{t: t}
	bus := rules.NewEventBus()
	bus.Subscribe(func(evt rules.Event) {
		h.events = append(h.events, evt)
	})

	setup := MatchSetup{
		PlayerOneHero:  cards.Definition{Name: cfg.heroOne, Mana: 2, Description: "hero one", Colors: []string{"Red"}},
		PlayerTwoHero:  cards.Definition{Name: cfg.heroTwo, Mana: 2, Description: "hero two", Colors: []string{"Blue"}},
		StartingPlayer: cfg.starting,
	}
	h.match = NewMatch(zaptest.NewLogger(t), setup, cfg.deckOne, cfg.deckTwo, WithEventBus(bus))
	h.match.id = "test-match"
	if err := h.match.Start(); err != nil {
		t.Fatalf("failed to start match: %v", err)
	}
	return h
}

func card(name string, mana, attack, health int) *cards.Card {
	return cards.New(cards.Definition{
		Name:         name,
		Mana:         mana,
		AttackDamage: attack,
		Health:       health,
		Description:  name + " card",
		Colors:       []string{"Green"},
	})
}

func (h *matchHarness) player(side rules.Side) *Player {
	return h.match.Player(side)
}

// giveHand appends cards to side's hand.
func (h *matchHarness) giveHand(side rules.Side, list ...*cards.Card) {
	p := h.player(side)
	p.hand = append(p.hand, list...)
}

// setMana replaces side's mana.
func (h *matchHarness) setMana(side rules.Side, amount int) {
	p := h.player(side)
	p.mana.Spend(p.mana.Amount())
	p.mana.Add(amount)
}

// put places c on row directly, bypassing placement rules.
func (h *matchHarness) put(row board.Row, c *cards.Card) *cards.Card {
	h.t.Helper()
	if err := h.match.board.Place(row, c); err != nil {
		h.t.Fatalf("failed to place %s on %s: %v", c.Name, row, err)
	}
	return c
}

func (h *matchHarness) do(action Action) *Result {
	return Dispatch(h.match, h.stats, action)
}

func (h *matchHarness) endTurn() {
	h.do(Action{Command: CommandEndPlayerTurn})
}

// expectViolation fails unless res carries a violation matching want with
// the given message.
func (h *matchHarness) expectViolation(res *Result, want error, message string) {
	h.t.Helper()
	if res == nil {
		h.t.Fatalf("expected violation %v, got no record", want)
	}
	if !errors.Is(res.Err, want) {
		h.t.Fatalf("expected violation %v, got %v", want, res.Err)
	}
	if res.Error != message {
		h.t.Fatalf("expected message %q, got %q", message, res.Error)
	}
}

func (h *matchHarness) countEvents(eventType rules.EventType) int {
	n := 0
	for _, evt := range h.events {
		if evt.Type == eventType {
			n++
		}
	}
	return n
}

func pos(x, y int) board.Position {
	return board.Position{X: x, Y: y}
}
