package game

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"go.uber.org/zap"
)

// Match owns the state of a single game: the board, both players with their
// heroes, and the turn manager. It is not safe for concurrent use.
type Match struct {
	id      string
	logger  *zap.Logger
	events  *rules.EventBus
	board   *board.Board
	players [2]*Player
	turns   *rules.TurnManager

	started bool
	over    bool
	winner  rules.Side
}

// MatchOption customizes a match.
type MatchOption func(*Match)

// WithEventBus publishes match events on bus.
func WithEventBus(bus *rules.EventBus) MatchOption {
	return func(m *Match) {
		m.events = bus
	}
}

// NewMatch creates a match from setup and the two already-shuffled decks.
// Start must be called before any action is applied.
func NewMatch(logger *zap.Logger, setup MatchSetup, deckOne, deckTwo []*cards.Card, opts ...MatchOption) *Match {
	if logger == nil {
		logger = zap.NewNop()
	}
	m := &Match{
		id:     uuid.NewString(),
		logger: logger,
		board:  board.New(),
		turns:  rules.NewTurnManager(setup.StartingPlayer),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.players[0] = newPlayer(rules.PlayerOne, deckOne, cards.New(setup.PlayerOneHero), m.board, m.publish)
	m.players[1] = newPlayer(rules.PlayerTwo, deckTwo, cards.New(setup.PlayerTwoHero), m.board, m.publish)
	return m
}

// Start grants the first round's mana and deals each player one card.
func (m *Match) Start() error {
	if m.started {
		return fmt.Errorf("match %s already started", m.id)
	}
	m.started = true

	m.publish(rules.NewEvent(rules.EventMatchStarted, m.turns.ActivePlayer(), ""))
	m.beginRound(m.turns.Round())

	m.logger.Debug("match started",
		zap.String("match_id", m.id),
		zap.String("starting_player", m.turns.ActivePlayer().String()),
		zap.String("player_one_hero", m.players[0].hero.Name),
		zap.String("player_two_hero", m.players[1].hero.Name),
	)
	return nil
}

// beginRound grants round mana and draws for both players.
func (m *Match) beginRound(round int) {
	m.publish(rules.NewEventWithAmount(rules.EventRoundStarted, rules.SideNone, "", round))
	for _, p := range m.players {
		p.mana.Add(round)
		m.publish(rules.NewEventWithAmount(rules.EventManaGranted, p.side, "", round))
		p.Draw()
	}
}

// EndTurn ends the active player's turn. The ending player's cards thaw;
// the opponent's frozen cards stay frozen through their own next turn. When
// both players have ended their turn a new round starts.
func (m *Match) EndTurn() rules.TurnChange {
	change := m.turns.EndTurn()
	m.board.Unfreeze(change.Ended)
	m.publish(rules.NewEvent(rules.EventTurnEnded, change.Ended, ""))

	if change.RoundCompleted {
		m.beginRound(change.Round)
		for _, p := range m.players {
			p.hero.ResetActions()
		}
	}
	m.board.ResetActions()
	return change
}

// ID returns the match identifier.
func (m *Match) ID() string {
	return m.id
}

func (m *Match) Board() *board.Board {
	return m.board
}

// Round returns the current round number.
func (m *Match) Round() int {
	return m.turns.Round()
}

// ActivePlayer returns the side whose turn it is.
func (m *Match) ActivePlayer() rules.Side {
	return m.turns.ActivePlayer()
}

// Player returns the player for side, or nil for an invalid side.
func (m *Match) Player(side rules.Side) *Player {
	if !side.Valid() {
		return nil
	}
	return m.players[side.Index()]
}

// Current returns the active player.
func (m *Match) Current() *Player {
	return m.Player(m.turns.ActivePlayer())
}

// Over reports whether a hero died.
func (m *Match) Over() bool {
	return m.over
}

// Winner returns the side that killed the enemy hero, or SideNone.
func (m *Match) Winner() rules.Side {
	return m.winner
}

// finish ends the match in favour of winner.
func (m *Match) finish(winner rules.Side) {
	m.over = true
	m.winner = winner
	m.publish(rules.NewEvent(rules.EventMatchEnded, winner, ""))
}

func (m *Match) publish(evt rules.Event) {
	evt.MatchID = m.id
	evt.Round = m.turns.Round()
	m.events.Publish(evt)
}
