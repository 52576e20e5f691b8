// Package cards holds card definitions, battle state and the archetype table
// that decides how each named card behaves.
package cards

// HeroInitialHealth is the health every hero starts a match with.
const HeroInitialHealth = 30

// Definition is the catalog data a card is created from.
type Definition struct {
	Mana         int      `json:"mana" yaml:"mana"`
	AttackDamage int      `json:"attackDamage" yaml:"attackDamage"`
	Health       int      `json:"health" yaml:"health"`
	Description  string   `json:"description" yaml:"description"`
	Colors       []string `json:"colors" yaml:"colors"`
	Name         string   `json:"name" yaml:"name"`
}

// Card is a card instance with mutable battle state.
type Card struct {
	Mana         int
	AttackDamage int
	Health       int
	Description  string
	Colors       []string
	Name         string

	Archetype   Archetype
	Frozen      bool
	HasAttacked bool
	UsedAbility bool
}

// New creates a card from catalog data and applies its archetype setup.
func New(def Definition) *Card {
	colors := make([]string, len(def.Colors))
	copy(colors, def.Colors)

	c := &Card{
		Mana:         def.Mana,
		AttackDamage: def.AttackDamage,
		Health:       def.Health,
		Description:  def.Description,
		Colors:       colors,
		Name:         def.Name,
		Archetype:    ArchetypeOf(def.Name),
	}

	profile := c.Profile()
	switch profile.Category {
	case CategoryHero:
		c.Health = HeroInitialHealth
		c.AttackDamage = 0
	case CategoryEnvironment:
		c.Health = 0
		c.AttackDamage = 0
	}
	if profile.ZeroAttack {
		c.AttackDamage = 0
	}

	return c
}

// Profile returns the archetype table entry for this card.
func (c *Card) Profile() Profile {
	return ProfileOf(c.Archetype)
}

func (c *Card) IsHero() bool {
	return c.Profile().Category == CategoryHero
}

func (c *Card) IsEnvironment() bool {
	return c.Profile().Category == CategoryEnvironment
}

func (c *Card) IsTank() bool {
	return c.Profile().Tank
}

// HasActed reports whether the card attacked or used its ability this turn.
func (c *Card) HasActed() bool {
	return c.HasAttacked || c.UsedAbility
}

// ResetActions clears the per-turn (per-round for heroes) action flags.
func (c *Card) ResetActions() {
	c.HasAttacked = false
	c.UsedAbility = false
}

// IsDead reports whether the card should leave the board.
func (c *Card) IsDead() bool {
	return c.Health <= 0
}

// Definition returns the card's current stats as catalog data.
func (c *Card) Definition() Definition {
	colors := make([]string, len(c.Colors))
	copy(colors, c.Colors)
	return Definition{
		Mana:         c.Mana,
		AttackDamage: c.AttackDamage,
		Health:       c.Health,
		Description:  c.Description,
		Colors:       colors,
		Name:         c.Name,
	}
}
