package targeting

import (
	"github.com/magefree/arena-go/internal/game/cards"
)

// Requirement describes which side an effect must address and the violation
// reported for each kind of miss.
type Requirement struct {
	Side cards.Targeting
	// Taunt makes enemy tanks mandatory targets.
	Taunt bool
	// NotEnemy is reported when an enemy-only effect addresses an ally row.
	NotEnemy error
	// NotAlly is reported when an ally-only effect addresses an enemy row.
	NotAlly error
}
