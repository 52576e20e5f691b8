package rules

// Code classifies a rule violation independently of the message shown to players.
type Code string

const (
	CodeNotPlaceable     Code = "NOT_PLACEABLE"
	CodeInsufficientMana Code = "INSUFFICIENT_MANA"
	CodeRowFull          Code = "ROW_FULL"
	CodeWrongTarget      Code = "WRONG_TARGET"
	CodeWrongRow         Code = "WRONG_ROW"
	CodeAlreadyActed     Code = "ALREADY_ACTED"
	CodeFrozen           Code = "FROZEN"
	CodeMustTargetTank   Code = "MUST_TARGET_TANK"
	CodeNotEnvironment   Code = "NOT_ENVIRONMENT"
	CodeDestinationFull  Code = "DESTINATION_FULL"
	CodeOutOfRange       Code = "OUT_OF_RANGE"
	CodeUnknownCommand   Code = "UNKNOWN_COMMAND"
)

// Violation is a recoverable rule error scoped to a single action.
// Two violations are equal under errors.Is when their codes match, so callers
// can test against the per-code sentinels regardless of the message variant.
type Violation struct {
	Code    Code
	Message string
}

func (v *Violation) Error() string {
	return v.Message
}

// Is reports whether target is a violation with the same code.
func (v *Violation) Is(target error) bool {
	t, ok := target.(*Violation)
	if !ok {
		return false
	}
	return t.Code == v.Code
}

func newViolation(code Code, message string) *Violation {
	return &Violation{Code: code, Message: message}
}

// Per-code sentinels for errors.Is checks.
var (
	ErrNotPlaceable     = newViolation(CodeNotPlaceable, "Cannot place environment card on table.")
	ErrInsufficientMana = newViolation(CodeInsufficientMana, "Not enough mana.")
	ErrRowFull          = newViolation(CodeRowFull, "Cannot place card on table since row is full.")
	ErrWrongTarget      = newViolation(CodeWrongTarget, "Attacked card does not belong to the enemy.")
	ErrWrongRow         = newViolation(CodeWrongRow, "Selected row does not belong to the enemy.")
	ErrAlreadyActed     = newViolation(CodeAlreadyActed, "Attacker card has already attacked this turn.")
	ErrFrozen           = newViolation(CodeFrozen, "Attacker card is frozen.")
	ErrMustTargetTank   = newViolation(CodeMustTargetTank, "Attacked card is not of type 'Tank'.")
	ErrNotEnvironment   = newViolation(CodeNotEnvironment, "Chosen card is not of type environment.")
	ErrDestinationFull  = newViolation(CodeDestinationFull, "Cannot steal enemy card since the player's row is full.")
	ErrOutOfRange       = newViolation(CodeOutOfRange, "No card available at that position.")
	ErrUnknownCommand   = newViolation(CodeUnknownCommand, "Unknown command.")
)

// Message variants reported to players for specific operations.
var (
	ErrPlaceInsufficientMana       = newViolation(CodeInsufficientMana, "Not enough mana to place card on table.")
	ErrEnvironmentInsufficientMana = newViolation(CodeInsufficientMana, "Not enough mana to use environment card.")
	ErrHeroInsufficientMana        = newViolation(CodeInsufficientMana, "Not enough mana to use hero's ability.")

	ErrTargetNotEnemy = ErrWrongTarget
	ErrTargetNotAlly  = newViolation(CodeWrongTarget, "Attacked card does not belong to the current player.")

	ErrHeroAlreadyActed = newViolation(CodeAlreadyActed, "Hero has already attacked this turn.")

	ErrHeroRowNotEnemy        = ErrWrongRow
	ErrHeroRowNotAlly         = newViolation(CodeWrongRow, "Selected row does not belong to the current player.")
	ErrEnvironmentRowNotEnemy = newViolation(CodeWrongRow, "Chosen row does not belong to the enemy.")

	ErrEmptyHandSlot = newViolation(CodeOutOfRange, "No card available at that hand index.")
)
