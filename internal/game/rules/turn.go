package rules

import "fmt"

// Side identifies one of the two players in a match.
type Side int

const (
	SideNone  Side = 0
	PlayerOne Side = 1
	PlayerTwo Side = 2
)

var sideNames = map[Side]string{
	SideNone:  "NONE",
	PlayerOne: "PLAYER_ONE",
	PlayerTwo: "PLAYER_TWO",
}

func (s Side) String() string {
	if name, ok := sideNames[s]; ok {
		return name
	}
	return fmt.Sprintf("SIDE_%d", int(s))
}

// Valid reports whether s names one of the two players.
func (s Side) Valid() bool {
	return s == PlayerOne || s == PlayerTwo
}

// Opponent returns the other player.
func (s Side) Opponent() Side {
	if s == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

// Index maps the side onto a zero-based array slot.
func (s Side) Index() int {
	return int(s) - 1
}

const (
	// FirstRound is the round a match starts in.
	FirstRound = 1
	// MaxRound caps the round counter used for mana accrual.
	MaxRound = 10
)

// TurnChange describes what happened when a player ended their turn.
type TurnChange struct {
	Ended          Side
	Next           Side
	RoundCompleted bool
	Round          int
}

// TurnManager tracks the active player, the end-turn flags and the round counter.
// A round completes only once both players have ended their turn.
type TurnManager struct {
	round  int
	active Side
	ended  [2]bool
}

// NewTurnManager creates a turn manager at round 1 with starting as the active player.
func NewTurnManager(starting Side) *TurnManager {
	if !starting.Valid() {
		starting = PlayerOne
	}
	return &TurnManager{
		round:  FirstRound,
		active: starting,
	}
}

// Round returns the current round number (1-based, capped at MaxRound).
func (tm *TurnManager) Round() int {
	return tm.round
}

// ActivePlayer returns the player whose turn it is.
func (tm *TurnManager) ActivePlayer() Side {
	return tm.active
}

// hasEndedTurn reports whether side has ended its turn in the current round.
func (tm *TurnManager) hasEndedTurn(side Side) bool {
	if !side.Valid() {
		return false
	}
	return tm.ended[side.Index()]
}

// EndTurn ends the active player's turn and passes control to the opponent.
// When both players have ended their turn the flags are cleared and the round
// counter advances, never beyond MaxRound.
func (tm *TurnManager) EndTurn() TurnChange {
	ended := tm.active
	tm.ended[ended.Index()] = true
	tm.active = ended.Opponent()

	change := TurnChange{
		Ended: ended,
		Next:  tm.active,
		Round: tm.round,
	}

	if tm.hasEndedTurn(PlayerOne) && tm.hasEndedTurn(PlayerTwo) {
		tm.ended = [2]bool{}
		if tm.round < MaxRound {
			tm.round++
		}
		change.RoundCompleted = true
		change.Round = tm.round
	}

	return change
}
