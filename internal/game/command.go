package game

import (
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
)

// Command names an action in a match script.
type Command string

const (
	CommandGetPlayerDeck             Command = "getPlayerDeck"
	CommandGetCardsInHand            Command = "getCardsInHand"
	CommandGetCardsOnTable           Command = "getCardsOnTable"
	CommandGetPlayerTurn             Command = "getPlayerTurn"
	CommandGetPlayerHero             Command = "getPlayerHero"
	CommandGetCardAtPosition         Command = "getCardAtPosition"
	CommandGetPlayerMana             Command = "getPlayerMana"
	CommandGetEnvironmentCardsInHand Command = "getEnvironmentCardsInHand"
	CommandGetFrozenCardsOnTable     Command = "getFrozenCardsOnTable"
	CommandGetTotalGamesPlayed       Command = "getTotalGamesPlayed"
	CommandGetPlayerOneWins          Command = "getPlayerOneWins"
	CommandGetPlayerTwoWins          Command = "getPlayerTwoWins"

	CommandPlaceCard          Command = "placeCard"
	CommandUseEnvironmentCard Command = "useEnvironmentCard"
	CommandCardUsesAttack     Command = "cardUsesAttack"
	CommandCardUsesAbility    Command = "cardUsesAbility"
	CommandUseAttackHero      Command = "useAttackHero"
	CommandUseHeroAbility     Command = "useHeroAbility"
	CommandEndPlayerTurn      Command = "endPlayerTurn"
)

var queryCommands = map[Command]bool{
	CommandGetPlayerDeck:             true,
	CommandGetCardsInHand:            true,
	CommandGetCardsOnTable:           true,
	CommandGetPlayerTurn:             true,
	CommandGetPlayerHero:             true,
	CommandGetCardAtPosition:         true,
	CommandGetPlayerMana:             true,
	CommandGetEnvironmentCardsInHand: true,
	CommandGetFrozenCardsOnTable:     true,
	CommandGetTotalGamesPlayed:       true,
	CommandGetPlayerOneWins:          true,
	CommandGetPlayerTwoWins:          true,
}

// IsQuery reports whether the command only reads match state.
func (c Command) IsQuery() bool {
	return queryCommands[c]
}

// Action is one already-parsed entry of a match script. Only the operands
// relevant to Command are meaningful.
type Action struct {
	Command      Command
	HandIdx      int
	CardAttacker board.Position
	CardAttacked board.Position
	AffectedRow  int
	PlayerIdx    int
	X            int
	Y            int
}

// MatchSetup configures a single match.
type MatchSetup struct {
	PlayerOneDeckIdx int
	PlayerTwoDeckIdx int
	ShuffleSeed      int64
	PlayerOneHero    cards.Definition
	PlayerTwoHero    cards.Definition
	StartingPlayer   rules.Side
}

// Game is a match setup together with its script.
type Game struct {
	Setup   MatchSetup
	Actions []Action
}
