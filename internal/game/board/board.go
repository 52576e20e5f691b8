// Package board models the 4x5 table both players place minions on.
package board

import (
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
)

// Board holds the cards on each row in placement order.
type Board struct {
	rows [Rows][]*cards.Card
}

// New creates an empty board.
func New() *Board {
	b := &Board{}
	for i := range b.rows {
		b.rows[i] = make([]*cards.Card, 0, MaxCardsPerRow)
	}
	return b
}

// Place appends card to row.
func (b *Board) Place(row Row, card *cards.Card) error {
	if !row.Valid() {
		return rules.ErrOutOfRange
	}
	if b.IsFull(row) {
		return rules.ErrRowFull
	}
	b.rows[row] = append(b.rows[row], card)
	return nil
}

// Remove takes the card at index out of row, shifting later cards left.
func (b *Board) Remove(row Row, index int) (*cards.Card, error) {
	if !b.inRange(row, index) {
		return nil, rules.ErrOutOfRange
	}
	card := b.rows[row][index]
	b.rows[row] = append(b.rows[row][:index], b.rows[row][index+1:]...)
	return card, nil
}

// RemoveCard removes card from row if present.
func (b *Board) RemoveCard(row Row, card *cards.Card) bool {
	if !row.Valid() {
		return false
	}
	for i, c := range b.rows[row] {
		if c == card {
			b.rows[row] = append(b.rows[row][:i], b.rows[row][i+1:]...)
			return true
		}
	}
	return false
}

// CardAt returns the card at pos.
func (b *Board) CardAt(pos Position) (*cards.Card, error) {
	row := pos.Row()
	if !b.inRange(row, pos.Y) {
		return nil, rules.ErrOutOfRange
	}
	return b.rows[row][pos.Y], nil
}

// Row returns the cards on row. The slice is shared with the board and must
// not be modified by callers.
func (b *Board) Row(row Row) []*cards.Card {
	if !row.Valid() {
		return nil
	}
	return b.rows[row]
}

// Len returns the number of cards on row.
func (b *Board) Len(row Row) int {
	return len(b.Row(row))
}

// IsFull reports whether row is at capacity.
func (b *Board) IsFull(row Row) bool {
	return b.Len(row) >= MaxCardsPerRow
}

// RemoveDead drops every card on row whose health reached zero and returns them.
func (b *Board) RemoveDead(row Row) []*cards.Card {
	if !row.Valid() {
		return nil
	}
	var dead []*cards.Card
	alive := b.rows[row][:0]
	for _, c := range b.rows[row] {
		if c.IsDead() {
			dead = append(dead, c)
			continue
		}
		alive = append(alive, c)
	}
	for i := len(alive); i < len(b.rows[row]); i++ {
		b.rows[row][i] = nil
	}
	b.rows[row] = alive
	return dead
}

// HasTank reports whether any card on side's rows is a tank.
func (b *Board) HasTank(side rules.Side) bool {
	for _, row := range RowsOf(side) {
		for _, c := range b.rows[row] {
			if c.IsTank() {
				return true
			}
		}
	}
	return false
}

// Frozen returns all frozen cards, row by row.
func (b *Board) Frozen() []*cards.Card {
	var frozen []*cards.Card
	for _, row := range b.rows {
		for _, c := range row {
			if c.Frozen {
				frozen = append(frozen, c)
			}
		}
	}
	return frozen
}

// ForEach calls fn for every card on the board in row order.
func (b *Board) ForEach(fn func(row Row, col int, card *cards.Card)) {
	for r, row := range b.rows {
		for col, c := range row {
			fn(Row(r), col, c)
		}
	}
}

// Unfreeze clears the frozen status of every card on side's rows.
func (b *Board) Unfreeze(side rules.Side) {
	for _, row := range RowsOf(side) {
		for _, c := range b.rows[row] {
			c.Frozen = false
		}
	}
}

// ResetActions clears attack and ability flags on every card.
func (b *Board) ResetActions() {
	b.ForEach(func(_ Row, _ int, c *cards.Card) {
		c.ResetActions()
	})
}

// Strongest returns the index of the card with the highest attack on row,
// first occurrence winning ties, or -1 for an empty row.
func (b *Board) Strongest(row Row) int {
	return b.maxBy(row, func(c *cards.Card) int { return c.AttackDamage })
}

// Healthiest returns the index of the card with the highest health on row,
// first occurrence winning ties, or -1 for an empty row.
func (b *Board) Healthiest(row Row) int {
	return b.maxBy(row, func(c *cards.Card) int { return c.Health })
}

func (b *Board) maxBy(row Row, stat func(*cards.Card) int) int {
	best := -1
	for i, c := range b.Row(row) {
		if best == -1 || stat(c) > stat(b.rows[row][best]) {
			best = i
		}
	}
	return best
}

func (b *Board) inRange(row Row, index int) bool {
	return row.Valid() && index >= 0 && index < len(b.rows[row])
}
