package board

import (
	"fmt"

	"github.com/magefree/arena-go/internal/game/rules"
)

// Row is one of the four board lanes. The numbering matches the coordinates
// used by action descriptors: player two's rows come first.
type Row int

const (
	PlayerTwoBack  Row = 0
	PlayerTwoFront Row = 1
	PlayerOneFront Row = 2
	PlayerOneBack  Row = 3
)

const (
	// Rows is the number of board rows.
	Rows = 4
	// MaxCardsPerRow caps row occupancy.
	MaxCardsPerRow = 5
)

var rowNames = map[Row]string{
	PlayerTwoBack:  "PLAYER_TWO_BACK",
	PlayerTwoFront: "PLAYER_TWO_FRONT",
	PlayerOneFront: "PLAYER_ONE_FRONT",
	PlayerOneBack:  "PLAYER_ONE_BACK",
}

func (r Row) String() string {
	if name, ok := rowNames[r]; ok {
		return name
	}
	return fmt.Sprintf("ROW_%d", int(r))
}

// Valid reports whether r addresses an existing row.
func (r Row) Valid() bool {
	return r >= PlayerTwoBack && r <= PlayerOneBack
}

// Owner returns the player the row belongs to.
func (r Row) Owner() rules.Side {
	switch r {
	case PlayerOneFront, PlayerOneBack:
		return rules.PlayerOne
	case PlayerTwoFront, PlayerTwoBack:
		return rules.PlayerTwo
	default:
		return rules.SideNone
	}
}

// Mirror returns the row at the same depth on the opposite side.
func (r Row) Mirror() Row {
	switch r {
	case PlayerTwoBack:
		return PlayerOneBack
	case PlayerTwoFront:
		return PlayerOneFront
	case PlayerOneFront:
		return PlayerTwoFront
	case PlayerOneBack:
		return PlayerTwoBack
	default:
		return r
	}
}

// BelongsTo reports whether the row is on side's half of the board.
func (r Row) BelongsTo(side rules.Side) bool {
	return r.Owner() == side
}

// FrontRow returns side's front row.
func FrontRow(side rules.Side) Row {
	if side == rules.PlayerTwo {
		return PlayerTwoFront
	}
	return PlayerOneFront
}

// BackRow returns side's back row.
func BackRow(side rules.Side) Row {
	if side == rules.PlayerTwo {
		return PlayerTwoBack
	}
	return PlayerOneBack
}

// RowsOf returns side's rows, front first.
func RowsOf(side rules.Side) [2]Row {
	return [2]Row{FrontRow(side), BackRow(side)}
}

// Position addresses a board slot: X is the row, Y the column.
type Position struct {
	X int `json:"x" yaml:"x"`
	Y int `json:"y" yaml:"y"`
}

// Row returns the row the position addresses.
func (p Position) Row() Row {
	return Row(p.X)
}
