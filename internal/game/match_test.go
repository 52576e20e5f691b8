package game

import (
	"testing"

	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deckOf(names ...string) []*cards.Card {
	deck := make([]*cards.Card, 0, len(names))
	for _, name := range names {
		deck = append(deck, card(name, 1, 1, 1))
	}
	return deck
}

func TestStartGrantsManaAndDealsOneCard(t *testing.T) {
	h := newMatchHarness(t,
		withDecks(deckOf("Sentinel", "Goliath", "Miraj"), deckOf("Warden", "Berserker")),
		withStartingPlayer(rules.PlayerTwo),
	)

	one, two := h.player(rules.PlayerOne), h.player(rules.PlayerTwo)
	assert.Equal(t, 1, one.Mana())
	assert.Equal(t, 1, two.Mana())
	require.Len(t, one.Hand(), 1)
	assert.Equal(t, "Sentinel", one.Hand()[0].Name)
	assert.Len(t, one.Deck(), 2)
	assert.Equal(t, "Warden", two.Hand()[0].Name)
	assert.Equal(t, rules.PlayerTwo, h.match.ActivePlayer())
	assert.Equal(t, 1, h.match.Round())
	assert.Equal(t, cards.HeroInitialHealth, one.Hero().Health)

	assert.Error(t, h.match.Start())
}

func TestRoundAdvancesOnlyWhenBothPlayersEnd(t *testing.T) {
	h := newMatchHarness(t, withDecks(deckOf("Sentinel", "Goliath"), deckOf("Warden")))

	h.endTurn()
	assert.Equal(t, 1, h.match.Round())
	assert.Equal(t, rules.PlayerTwo, h.match.ActivePlayer())
	assert.Equal(t, 1, h.player(rules.PlayerOne).Mana())

	h.endTurn()
	assert.Equal(t, 2, h.match.Round())
	assert.Equal(t, rules.PlayerOne, h.match.ActivePlayer())
	assert.Equal(t, 3, h.player(rules.PlayerOne).Mana())
	assert.Equal(t, 3, h.player(rules.PlayerTwo).Mana())
	assert.Len(t, h.player(rules.PlayerOne).Hand(), 2)
	// Player two's deck is exhausted; nothing is drawn.
	assert.Len(t, h.player(rules.PlayerTwo).Hand(), 1)
}

func TestRoundManaIsCapped(t *testing.T) {
	h := newMatchHarness(t)

	expected := 1
	for round := 2; round <= 15; round++ {
		h.endTurn()
		h.endTurn()
		expected += min(round, rules.MaxRound)
		assert.LessOrEqual(t, h.match.Round(), rules.MaxRound)
	}

	assert.Equal(t, rules.MaxRound, h.match.Round())
	assert.Equal(t, expected, h.player(rules.PlayerOne).Mana())
	assert.Equal(t, expected, h.player(rules.PlayerTwo).Mana())
}

func TestFreezeClearsOnlyForTheSideEndingItsTurn(t *testing.T) {
	h := newMatchHarness(t)
	h.setMana(rules.PlayerOne, 5)
	mine := h.put(board.PlayerOneFront, card("Miraj", 1, 2, 5))
	theirs := h.put(board.PlayerTwoFront, card("The Ripper", 1, 3, 5))

	// Player one freezes player two's strongest card during its own turn.
	require.Nil(t, h.do(Action{Command: CommandUseHeroAbility, AffectedRow: 1}))
	require.True(t, theirs.Frozen)
	mine.Frozen = true

	h.endTurn()
	assert.False(t, mine.Frozen, "the ending side thaws")
	assert.True(t, theirs.Frozen, "the opponent stays frozen into its own turn")

	res := h.do(Action{Command: CommandCardUsesAttack, CardAttacker: pos(1, 0), CardAttacked: pos(2, 0)})
	h.expectViolation(res, rules.ErrFrozen, "Attacker card is frozen.")

	h.endTurn()
	assert.False(t, theirs.Frozen)
	assert.Empty(t, h.match.Board().Frozen())
}

func TestEndTurnResetsCardActionsEveryTurn(t *testing.T) {
	h := newMatchHarness(t)
	attacker := h.put(board.PlayerOneFront, card("Miraj", 1, 2, 5))
	h.put(board.PlayerTwoFront, card("Goliath", 1, 1, 9))

	require.Nil(t, h.do(Action{Command: CommandCardUsesAttack, CardAttacker: pos(2, 0), CardAttacked: pos(1, 0)}))
	require.True(t, attacker.HasAttacked)

	h.endTurn()
	assert.False(t, attacker.HasAttacked)
}

func TestHeroActionsResetPerRoundNotPerTurn(t *testing.T) {
	h := newMatchHarness(t)
	h.setMana(rules.PlayerOne, 10)
	hero := h.player(rules.PlayerOne).Hero()

	require.Nil(t, h.do(Action{Command: CommandUseHeroAbility, AffectedRow: 0}))

	h.endTurn()
	assert.True(t, hero.UsedAbility, "ending a turn keeps the hero spent")

	h.endTurn()
	assert.False(t, hero.UsedAbility, "a new round refreshes the hero")
	assert.Nil(t, h.do(Action{Command: CommandUseHeroAbility, AffectedRow: 0}))
}

func TestDeadCardsNeverReappear(t *testing.T) {
	h := newMatchHarness(t)
	h.put(board.PlayerOneFront, card("Miraj", 1, 4, 5))
	victim := h.put(board.PlayerTwoFront, card("Goliath", 1, 1, 3))

	require.Nil(t, h.do(Action{Command: CommandCardUsesAttack, CardAttacker: pos(2, 0), CardAttacked: pos(1, 0)}))

	for i := 0; i < 4; i++ {
		h.endTurn()
		table := h.do(Action{Command: CommandGetCardsOnTable})
		require.NotNil(t, table)
		for _, row := range table.Output.([][]CardView) {
			for _, view := range row {
				assert.NotEqual(t, victim.Name, view.Name)
			}
		}
	}
}

func TestMatchEventsCarryMatchIDAndRound(t *testing.T) {
	h := newMatchHarness(t, withDecks(deckOf("Sentinel"), deckOf("Warden")))

	require.NotEmpty(t, h.events)
	assert.Equal(t, rules.EventMatchStarted, h.events[0].Type)
	for _, evt := range h.events {
		assert.Equal(t, "test-match", evt.MatchID)
		assert.Equal(t, 1, evt.Round)
	}
	assert.Equal(t, 2, h.countEvents(rules.EventCardDrawn))
	assert.Equal(t, 2, h.countEvents(rules.EventManaGranted))
}
