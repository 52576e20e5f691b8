package targeting

import (
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/rules"
)

// Validator checks row ownership and taunt constraints against the live board.
type Validator struct {
	board *board.Board
}

// NewValidator creates a validator over b.
func NewValidator(b *board.Board) *Validator {
	return &Validator{board: b}
}

// ValidateRow checks that row lies on the side req demands, seen from caster.
func (v *Validator) ValidateRow(caster rules.Side, row board.Row, req Requirement) error {
	switch req.Side {
	case cards.TargetEnemy:
		if row.BelongsTo(caster) {
			return req.NotEnemy
		}
	case cards.TargetAlly:
		if row.BelongsTo(caster.Opponent()) {
			return req.NotAlly
		}
	}
	return nil
}

// ValidateTarget checks ownership of the targeted row and, when req asks for
// it, the taunt rule for the targeted card.
func (v *Validator) ValidateTarget(caster rules.Side, row board.Row, target *cards.Card, req Requirement) error {
	if err := v.ValidateRow(caster, row, req); err != nil {
		return err
	}
	if req.Taunt && req.Side == cards.TargetEnemy {
		return v.ValidateTaunt(caster, target)
	}
	return nil
}

// ValidateTaunt rejects target when the opponent has a tank and target is not one.
func (v *Validator) ValidateTaunt(caster rules.Side, target *cards.Card) error {
	if v.board.HasTank(caster.Opponent()) && (target == nil || !target.IsTank()) {
		return rules.ErrMustTargetTank
	}
	return nil
}

// ValidateHeroAttack rejects attacks on the enemy hero while an enemy tank stands.
func (v *Validator) ValidateHeroAttack(caster rules.Side) error {
	if v.board.HasTank(caster.Opponent()) {
		return rules.ErrMustTargetTank
	}
	return nil
}

// ValidateAttacker checks that a card may still act this turn. frozenFirst
// selects which check is reported first when both fail.
func ValidateAttacker(c *cards.Card, frozenFirst bool) error {
	if frozenFirst && c.Frozen {
		return rules.ErrFrozen
	}
	if c.HasActed() {
		return rules.ErrAlreadyActed
	}
	if c.Frozen {
		return rules.ErrFrozen
	}
	return nil
}

// Attack is the requirement for plain attacks.
var Attack = Requirement{
	Side:     cards.TargetEnemy,
	Taunt:    true,
	NotEnemy: rules.ErrTargetNotEnemy,
}

// ForAbility derives the requirement of a minion ability from its profile.
func ForAbility(p cards.Profile) Requirement {
	return Requirement{
		Side:     p.Targeting,
		Taunt:    p.Targeting == cards.TargetEnemy,
		NotEnemy: rules.ErrTargetNotEnemy,
		NotAlly:  rules.ErrTargetNotAlly,
	}
}

// ForHeroPower derives the requirement of a hero power from its profile.
func ForHeroPower(p cards.Profile) Requirement {
	return Requirement{
		Side:     p.Targeting,
		NotEnemy: rules.ErrHeroRowNotEnemy,
		NotAlly:  rules.ErrHeroRowNotAlly,
	}
}

// Environment is the requirement for environment cards.
var Environment = Requirement{
	Side:     cards.TargetEnemy,
	NotEnemy: rules.ErrEnvironmentRowNotEnemy,
}
