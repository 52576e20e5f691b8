package game

import (
	"encoding/json"

	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
)

// NoCardAtPosition is the getCardAtPosition output for an empty slot.
const NoCardAtPosition = "No card available at that position."

// Result is the record produced by one action. Field order is the order the
// fields appear in serialized output, except for placeCard records.
type Result struct {
	Command      Command         `json:"command,omitempty"`
	PlayerIdx    int             `json:"playerIdx,omitempty"`
	HandIdx      *int            `json:"handIdx,omitempty"`
	CardAttacker *board.Position `json:"cardAttacker,omitempty"`
	CardAttacked *board.Position `json:"cardAttacked,omitempty"`
	AffectedRow  *int            `json:"affectedRow,omitempty"`
	X            *int            `json:"x,omitempty"`
	Y            *int            `json:"y,omitempty"`
	Output       any             `json:"output,omitempty"`
	Error        string          `json:"error,omitempty"`
	GameEnded    string          `json:"gameEnded,omitempty"`

	// Err is the rule violation behind Error.
	Err error `json:"-"`
}

// resultRecord has Result's fields without its MarshalJSON.
type resultRecord Result

// placeCardRecord lays out a placeCard record with error ahead of handIdx.
type placeCardRecord struct {
	Command   Command `json:"command,omitempty"`
	PlayerIdx int     `json:"playerIdx,omitempty"`
	Output    any     `json:"output,omitempty"`
	Error     string  `json:"error,omitempty"`
	HandIdx   *int    `json:"handIdx,omitempty"`
	GameEnded string  `json:"gameEnded,omitempty"`
}

// MarshalJSON implements json.Marshaler.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.Command != CommandPlaceCard {
		return json.Marshal(resultRecord(r))
	}
	return json.Marshal(placeCardRecord{
		Command:   r.Command,
		PlayerIdx: r.PlayerIdx,
		Output:    r.Output,
		Error:     r.Error,
		HandIdx:   r.HandIdx,
		GameEnded: r.GameEnded,
	})
}

// Failed reports whether the record carries a rule violation.
func (r *Result) Failed() bool {
	return r != nil && r.Err != nil
}

// CardView is the serialized form of a card. Heroes omit attack damage and
// environment cards omit both attack damage and health.
type CardView struct {
	Mana         int      `json:"mana"`
	AttackDamage *int     `json:"attackDamage,omitempty"`
	Health       *int     `json:"health,omitempty"`
	Description  string   `json:"description"`
	Colors       []string `json:"colors"`
	Name         string   `json:"name"`
}

// NewCardView snapshots c.
func NewCardView(c *cards.Card) CardView {
	colors := make([]string, len(c.Colors))
	copy(colors, c.Colors)

	view := CardView{
		Mana:        c.Mana,
		Description: c.Description,
		Colors:      colors,
		Name:        c.Name,
	}
	if !c.IsHero() && !c.IsEnvironment() {
		attack := c.AttackDamage
		view.AttackDamage = &attack
	}
	if !c.IsEnvironment() {
		health := c.Health
		view.Health = &health
	}
	return view
}

// NewCardViews snapshots a list of cards. The result is never nil.
func NewCardViews(list []*cards.Card) []CardView {
	views := make([]CardView, 0, len(list))
	for _, c := range list {
		views = append(views, NewCardView(c))
	}
	return views
}

func intPtr(v int) *int {
	return &v
}

func positionPtr(p board.Position) *board.Position {
	return &p
}
