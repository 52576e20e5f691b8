package game

import (
	"time"

	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
)

// CardState is the full battle state of a card, including flags that are
// not part of the serialized card view.
type CardState struct {
	Name         string
	Mana         int
	AttackDamage int
	Health       int
	Frozen       bool
	HasAttacked  bool
	UsedAbility  bool
}

func newCardState(c *cards.Card) CardState {
	return CardState{
		Name:         c.Name,
		Mana:         c.Mana,
		AttackDamage: c.AttackDamage,
		Health:       c.Health,
		Frozen:       c.Frozen,
		HasAttacked:  c.HasAttacked,
		UsedAbility:  c.UsedAbility,
	}
}

func newCardStates(list []*cards.Card) []CardState {
	states := make([]CardState, 0, len(list))
	for _, c := range list {
		states = append(states, newCardState(c))
	}
	return states
}

// PlayerState captures one side of the match.
type PlayerState struct {
	Mana     int
	Hero     CardState
	Hand     []CardState
	DeckSize int
}

// MatchSnapshot is a point-in-time copy of a match, taken after an action.
type MatchSnapshot struct {
	MatchID      string
	Sequence     int
	Command      Command
	Round        int
	ActivePlayer rules.Side
	Rows         [board.Rows][]CardState
	Players      [2]PlayerState
	Over         bool
	Winner       rules.Side
	Timestamp    time.Time
}

// Snapshot copies the current match state. sequence and command identify the
// action the snapshot follows.
func (m *Match) Snapshot(sequence int, command Command) *MatchSnapshot {
	snap := &MatchSnapshot{
		MatchID:      m.id,
		Sequence:     sequence,
		Command:      command,
		Round:        m.turns.Round(),
		ActivePlayer: m.turns.ActivePlayer(),
		Over:         m.over,
		Winner:       m.winner,
		Timestamp:    time.Now(),
	}
	for r := board.PlayerTwoBack; r <= board.PlayerOneBack; r++ {
		snap.Rows[r] = newCardStates(m.board.Row(r))
	}
	for i, p := range m.players {
		snap.Players[i] = PlayerState{
			Mana:     p.Mana(),
			Hero:     newCardState(p.hero),
			Hand:     newCardStates(p.hand),
			DeckSize: len(p.deck),
		}
	}
	return snap
}
