package targeting

import (
	"errors"
	"testing"

	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCard(name string) *cards.Card {
	return cards.New(cards.Definition{Name: name, Health: 3, AttackDamage: 2, Mana: 1})
}

func TestValidateRowOwnership(t *testing.T) {
	v := NewValidator(board.New())

	err := v.ValidateRow(rules.PlayerOne, board.PlayerOneFront, Attack)
	assert.True(t, errors.Is(err, rules.ErrWrongTarget))
	assert.NoError(t, v.ValidateRow(rules.PlayerOne, board.PlayerTwoBack, Attack))

	heal := ForAbility(cards.ProfileOf(cards.ArchetypeDisciple))
	err = v.ValidateRow(rules.PlayerTwo, board.PlayerOneBack, heal)
	assert.Equal(t, rules.ErrTargetNotAlly, err)
	assert.NoError(t, v.ValidateRow(rules.PlayerTwo, board.PlayerTwoBack, heal))
}

func TestValidateRowHeroPowers(t *testing.T) {
	v := NewValidator(board.New())

	freeze := ForHeroPower(cards.ProfileOf(cards.ArchetypeLordRoyce))
	assert.Equal(t, rules.ErrHeroRowNotEnemy, v.ValidateRow(rules.PlayerOne, board.PlayerOneBack, freeze))

	buff := ForHeroPower(cards.ProfileOf(cards.ArchetypeGeneralKocioraw))
	assert.Equal(t, rules.ErrHeroRowNotAlly, v.ValidateRow(rules.PlayerOne, board.PlayerTwoFront, buff))
	assert.NoError(t, v.ValidateRow(rules.PlayerOne, board.PlayerOneFront, buff))
}

func TestValidateTargetEnforcesTaunt(t *testing.T) {
	b := board.New()
	tank := newCard("Warden")
	other := newCard("Sentinel")
	require.NoError(t, b.Place(board.PlayerTwoFront, tank))
	require.NoError(t, b.Place(board.PlayerTwoBack, other))
	v := NewValidator(b)

	err := v.ValidateTarget(rules.PlayerOne, board.PlayerTwoBack, other, Attack)
	assert.True(t, errors.Is(err, rules.ErrMustTargetTank))
	assert.NoError(t, v.ValidateTarget(rules.PlayerOne, board.PlayerTwoFront, tank, Attack))

	// Player two attacking player one is unaffected by its own tank.
	assert.NoError(t, v.ValidateHeroAttack(rules.PlayerTwo))
	assert.True(t, errors.Is(v.ValidateHeroAttack(rules.PlayerOne), rules.ErrMustTargetTank))
}

func TestValidateTargetAllyIgnoresTaunt(t *testing.T) {
	b := board.New()
	require.NoError(t, b.Place(board.PlayerTwoFront, newCard("Goliath")))
	ally := newCard("Sentinel")
	require.NoError(t, b.Place(board.PlayerOneBack, ally))
	v := NewValidator(b)

	heal := ForAbility(cards.ProfileOf(cards.ArchetypeDisciple))
	assert.NoError(t, v.ValidateTarget(rules.PlayerOne, board.PlayerOneBack, ally, heal))
}

func TestValidateAttackerOrdering(t *testing.T) {
	c := newCard("Miraj")
	assert.NoError(t, ValidateAttacker(c, true))

	c.Frozen = true
	c.HasAttacked = true
	assert.True(t, errors.Is(ValidateAttacker(c, true), rules.ErrFrozen))
	assert.True(t, errors.Is(ValidateAttacker(c, false), rules.ErrAlreadyActed))

	c.HasAttacked = false
	assert.True(t, errors.Is(ValidateAttacker(c, false), rules.ErrFrozen))
}
