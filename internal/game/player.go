package game

import (
	"github.com/magefree/arena-go/internal/game/board"
	"github.com/magefree/arena-go/internal/game/cards"
	"github.com/magefree/arena-go/internal/game/mana"
	"github.com/magefree/arena-go/internal/game/rules"
	"github.com/magefree/arena-go/internal/game/targeting"
)

const (
	healAmount   = 2
	weakenAmount = 2
)

// Player owns a hand, a deck and a mana pool, and applies rule operations to
// the shared board on its own behalf. Every operation either fails without
// mutating anything or applies completely.
type Player struct {
	side      rules.Side
	hand      []*cards.Card
	deck      []*cards.Card
	mana      *mana.Pool
	hero      *cards.Card
	board     *board.Board
	validator *targeting.Validator
	emit      func(rules.Event)
}

func newPlayer(side rules.Side, deck []*cards.Card, hero *cards.Card, b *board.Board, emit func(rules.Event)) *Player {
	if emit == nil {
		emit = func(rules.Event) {}
	}
	return &Player{
		side:      side,
		deck:      deck,
		mana:      mana.NewPool(),
		hero:      hero,
		board:     b,
		validator: targeting.NewValidator(b),
		emit:      emit,
	}
}

// Side returns which player this is.
func (p *Player) Side() rules.Side {
	return p.side
}

// Hand returns the cards in hand. The slice must not be modified.
func (p *Player) Hand() []*cards.Card {
	return p.hand
}

// Deck returns the cards left to draw, top first.
func (p *Player) Deck() []*cards.Card {
	return p.deck
}

func (p *Player) Hero() *cards.Card {
	return p.hero
}

func (p *Player) Mana() int {
	return p.mana.Amount()
}

// EnvironmentCardsInHand returns the environment cards in hand order.
func (p *Player) EnvironmentCardsInHand() []*cards.Card {
	var envs []*cards.Card
	for _, c := range p.hand {
		if c.IsEnvironment() {
			envs = append(envs, c)
		}
	}
	return envs
}

// Draw moves the top card of the deck into the hand. It returns nil when the
// deck is exhausted.
func (p *Player) Draw() *cards.Card {
	if len(p.deck) == 0 {
		return nil
	}
	card := p.deck[0]
	p.deck = p.deck[1:]
	p.hand = append(p.hand, card)
	p.emit(rules.NewEvent(rules.EventCardDrawn, p.side, card.Name))
	return card
}

func (p *Player) handCard(index int) (*cards.Card, error) {
	if index < 0 || index >= len(p.hand) {
		return nil, rules.ErrEmptyHandSlot
	}
	return p.hand[index], nil
}

func (p *Player) removeFromHand(index int) {
	p.hand = append(p.hand[:index], p.hand[index+1:]...)
}

// placementRow resolves the row a minion enters: its affinity on the owner's
// side, or the owner's front row when it has none.
func (p *Player) placementRow(c *cards.Card) board.Row {
	if c.Profile().Placement == cards.PlacementBack {
		return board.BackRow(p.side)
	}
	return board.FrontRow(p.side)
}

// PlaceCard moves the card at handIdx onto the board.
func (p *Player) PlaceCard(handIdx int) error {
	card, err := p.handCard(handIdx)
	if err != nil {
		return err
	}
	if card.IsEnvironment() {
		return rules.ErrNotPlaceable
	}
	if !p.mana.CanAfford(card.Mana) {
		return rules.ErrPlaceInsufficientMana
	}

	row := p.placementRow(card)
	if p.board.IsFull(row) {
		return rules.ErrRowFull
	}
	if !p.mana.Spend(card.Mana) {
		return rules.ErrPlaceInsufficientMana
	}
	if err := p.board.Place(row, card); err != nil {
		return err
	}
	p.removeFromHand(handIdx)

	evt := rules.NewRowEvent(rules.EventCardPlaced, p.side, card.Name, int(row))
	evt.Amount = card.Mana
	p.emit(evt)
	return nil
}

// CardAttack makes the card at attacker strike the card at attacked.
func (p *Player) CardAttack(attacker, attacked board.Position) error {
	striker, err := p.board.CardAt(attacker)
	if err != nil {
		return err
	}
	if err := p.validator.ValidateRow(p.side, attacked.Row(), targeting.Attack); err != nil {
		return err
	}
	if err := targeting.ValidateAttacker(striker, false); err != nil {
		return err
	}
	target, err := p.board.CardAt(attacked)
	if err != nil {
		return err
	}
	if err := p.validator.ValidateTaunt(p.side, target); err != nil {
		return err
	}

	target.Health -= striker.AttackDamage
	striker.HasAttacked = true
	p.damaged(attacked.Row(), target, striker.AttackDamage)
	return nil
}

// CardUsesAbility applies the special ability of the card at attacker to the
// card at attacked. Cards without an ability still spend their action.
func (p *Player) CardUsesAbility(attacker, attacked board.Position) error {
	caster, err := p.board.CardAt(attacker)
	if err != nil {
		return err
	}
	if err := targeting.ValidateAttacker(caster, true); err != nil {
		return err
	}
	target, err := p.board.CardAt(attacked)
	if err != nil {
		return err
	}
	profile := caster.Profile()
	if err := p.validator.ValidateTarget(p.side, attacked.Row(), target, targeting.ForAbility(profile)); err != nil {
		return err
	}

	switch profile.Ability {
	case cards.AbilityHealAlly:
		target.Health += healAmount
	case cards.AbilityWeaken:
		target.AttackDamage = max(target.AttackDamage-weakenAmount, 0)
	case cards.AbilitySwapHealth:
		target.Health, caster.Health = caster.Health, target.Health
	case cards.AbilitySwapStats:
		target.Health, target.AttackDamage = target.AttackDamage, target.Health
		if target.Health == 0 {
			p.destroy(attacked.Row(), target)
		}
	}

	caster.UsedAbility = true
	evt := rules.NewRowEvent(rules.EventAbilityUsed, p.side, caster.Name, int(attacked.Row()))
	evt.Description = target.Name
	p.emit(evt)
	return nil
}

// AttackHero makes the card at attacker strike the enemy hero and reports
// whether the hero died.
func (p *Player) AttackHero(attacker board.Position, hero *cards.Card) (bool, error) {
	striker, err := p.board.CardAt(attacker)
	if err != nil {
		return false, err
	}
	if err := targeting.ValidateAttacker(striker, true); err != nil {
		return false, err
	}
	if err := p.validator.ValidateHeroAttack(p.side); err != nil {
		return false, err
	}

	hero.Health -= striker.AttackDamage
	striker.HasAttacked = true
	p.emit(rules.NewEventWithAmount(rules.EventHeroDamaged, p.side.Opponent(), hero.Name, striker.AttackDamage))

	if hero.IsDead() {
		p.emit(rules.NewEvent(rules.EventHeroKilled, p.side.Opponent(), hero.Name))
		return true, nil
	}
	return false, nil
}

// UseHeroAbility applies the player's hero power to row.
func (p *Player) UseHeroAbility(row board.Row) error {
	hero := p.hero
	if !p.mana.CanAfford(hero.Mana) {
		return rules.ErrHeroInsufficientMana
	}
	if hero.HasActed() {
		return rules.ErrHeroAlreadyActed
	}
	if !row.Valid() {
		return rules.ErrOutOfRange
	}
	profile := hero.Profile()
	if err := p.validator.ValidateRow(p.side, row, targeting.ForHeroPower(profile)); err != nil {
		return err
	}
	if !p.mana.Spend(hero.Mana) {
		return rules.ErrHeroInsufficientMana
	}

	switch profile.HeroPower {
	case cards.HeroPowerFreezeStrongest:
		if idx := p.board.Strongest(row); idx >= 0 {
			frozen := p.board.Row(row)[idx]
			frozen.Frozen = true
			p.emit(rules.NewRowEvent(rules.EventCardFrozen, row.Owner(), frozen.Name, int(row)))
		}
	case cards.HeroPowerRemoveHealthiest:
		if idx := p.board.Healthiest(row); idx >= 0 {
			removed, _ := p.board.Remove(row, idx)
			p.emit(rules.NewRowEvent(rules.EventCardDestroyed, row.Owner(), removed.Name, int(row)))
		}
	case cards.HeroPowerBuffRowAttack:
		for _, c := range p.board.Row(row) {
			c.AttackDamage++
		}
	case cards.HeroPowerBuffRowHealth:
		for _, c := range p.board.Row(row) {
			c.Health++
		}
	}

	hero.UsedAbility = true
	p.emit(rules.NewRowEvent(rules.EventHeroAbility, p.side, hero.Name, int(row)))
	return nil
}

// UseEnvironmentCard plays the environment card at handIdx against row.
func (p *Player) UseEnvironmentCard(handIdx int, row board.Row) error {
	card, err := p.handCard(handIdx)
	if err != nil {
		return err
	}
	if !card.IsEnvironment() {
		return rules.ErrNotEnvironment
	}
	if !p.mana.CanAfford(card.Mana) {
		return rules.ErrEnvironmentInsufficientMana
	}
	if !row.Valid() {
		return rules.ErrOutOfRange
	}
	if err := p.validator.ValidateRow(p.side, row, targeting.Environment); err != nil {
		return err
	}
	effect := card.Profile().Environment
	if effect == cards.EnvironmentStealStrongest && p.board.IsFull(row.Mirror()) {
		return rules.ErrDestinationFull
	}
	if !p.mana.Spend(card.Mana) {
		return rules.ErrEnvironmentInsufficientMana
	}

	switch effect {
	case cards.EnvironmentDamageRow:
		for _, c := range p.board.Row(row) {
			c.Health--
		}
		for _, dead := range p.board.RemoveDead(row) {
			p.emit(rules.NewRowEvent(rules.EventCardDestroyed, row.Owner(), dead.Name, int(row)))
		}
	case cards.EnvironmentFreezeRow:
		for _, c := range p.board.Row(row) {
			c.Frozen = true
			p.emit(rules.NewRowEvent(rules.EventCardFrozen, row.Owner(), c.Name, int(row)))
		}
	case cards.EnvironmentStealStrongest:
		dest := row.Mirror()
		if idx := p.board.Healthiest(row); idx >= 0 {
			stolen, _ := p.board.Remove(row, idx)
			if err := p.board.Place(dest, stolen); err != nil {
				return err
			}
			p.emit(rules.NewRowEvent(rules.EventCardStolen, p.side, stolen.Name, int(dest)))
		}
	}

	p.removeFromHand(handIdx)
	p.emit(rules.NewRowEvent(rules.EventEnvironmentUse, p.side, card.Name, int(row)))
	return nil
}

func (p *Player) damaged(row board.Row, target *cards.Card, amount int) {
	p.emit(rules.NewEventWithAmount(rules.EventCardDamaged, row.Owner(), target.Name, amount))
	if target.IsDead() {
		p.destroy(row, target)
	}
}

func (p *Player) destroy(row board.Row, target *cards.Card) {
	if p.board.RemoveCard(row, target) {
		p.emit(rules.NewRowEvent(rules.EventCardDestroyed, row.Owner(), target.Name, int(row)))
	}
}
