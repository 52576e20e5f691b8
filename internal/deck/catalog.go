// Package deck turns catalog definitions into shuffled, playable decks.
package deck

import (
	"fmt"

	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
)

// Catalog holds every deck available to each player.
type Catalog struct {
	PlayerOne [][]cards.Definition
	PlayerTwo [][]cards.Definition
}

// Decks returns the deck set of side.
func (c *Catalog) Decks(side rules.Side) ([][]cards.Definition, error) {
	switch side {
	case rules.PlayerOne:
		return c.PlayerOne, nil
	case rules.PlayerTwo:
		return c.PlayerTwo, nil
	default:
		return nil, fmt.Errorf("invalid side %d", side)
	}
}

// Build creates fresh cards for deck index of side, shuffled with seed.
// Each call yields independent card instances, so matches never share state.
func (c *Catalog) Build(side rules.Side, index int, seed int64) ([]*cards.Card, error) {
	decks, err := c.Decks(side)
	if err != nil {
		return nil, err
	}
	if index < 0 || index >= len(decks) {
		return nil, fmt.Errorf("%s deck %d out of range (have %d)", side, index, len(decks))
	}

	built := make([]*cards.Card, 0, len(decks[index]))
	for _, def := range decks[index] {
		built = append(built, cards.New(def))
	}

	Shuffle(built, NewRandom(seed))
	return built, nil
}

// Size returns the number of cards in the largest deck of either player.
func (c *Catalog) Size() int {
	size := 0
	for _, set := range [][][]cards.Definition{c.PlayerOne, c.PlayerTwo} {
		for _, d := range set {
			if len(d) > size {
				size = len(d)
			}
		}
	}
	return size
}
