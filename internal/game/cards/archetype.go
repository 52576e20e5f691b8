package cards

import "fmt"

// Archetype tags every card name with special behaviour. Names missing from
// the table are ArchetypePlain and behave as vanilla minions.
type Archetype int

const (
	ArchetypePlain Archetype = iota
	ArchetypeSentinel
	ArchetypeBerserker
	ArchetypeGoliath
	ArchetypeWarden
	ArchetypeTheRipper
	ArchetypeMiraj
	ArchetypeTheCursedOne
	ArchetypeDisciple
	ArchetypeLordRoyce
	ArchetypeEmpressThorina
	ArchetypeKingMudface
	ArchetypeGeneralKocioraw
	ArchetypeFirestorm
	ArchetypeWinterfell
	ArchetypeHeartHound
)

var archetypeByName = map[string]Archetype{
	"Sentinel":         ArchetypeSentinel,
	"Berserker":        ArchetypeBerserker,
	"Goliath":          ArchetypeGoliath,
	"Warden":           ArchetypeWarden,
	"The Ripper":       ArchetypeTheRipper,
	"Miraj":            ArchetypeMiraj,
	"The Cursed One":   ArchetypeTheCursedOne,
	"Disciple":         ArchetypeDisciple,
	"Lord Royce":       ArchetypeLordRoyce,
	"Empress Thorina":  ArchetypeEmpressThorina,
	"King Mudface":     ArchetypeKingMudface,
	"General Kocioraw": ArchetypeGeneralKocioraw,
	"Firestorm":        ArchetypeFirestorm,
	"Winterfell":       ArchetypeWinterfell,
	"Heart Hound":      ArchetypeHeartHound,
}

// ArchetypeOf resolves a catalog name to its archetype.
func ArchetypeOf(name string) Archetype {
	if a, ok := archetypeByName[name]; ok {
		return a
	}
	return ArchetypePlain
}

func (a Archetype) String() string {
	for name, archetype := range archetypeByName {
		if archetype == a {
			return name
		}
	}
	if a == ArchetypePlain {
		return "Plain"
	}
	return fmt.Sprintf("ARCHETYPE_%d", int(a))
}

// Category separates board minions from heroes and environment spells.
type Category int

const (
	CategoryMinion Category = iota
	CategoryHero
	CategoryEnvironment
)

// Placement is the row affinity of a minion.
type Placement int

const (
	PlacementAny Placement = iota
	PlacementFront
	PlacementBack
)

// Targeting states which side of the board an effect must address.
type Targeting int

const (
	TargetNone Targeting = iota
	TargetEnemy
	TargetAlly
)

// Ability is the effect a minion applies with cardUsesAbility.
type Ability int

const (
	AbilityNone Ability = iota
	AbilityHealAlly
	AbilityWeaken
	AbilitySwapHealth
	AbilitySwapStats
)

// HeroPower is the once-per-round row effect of a hero.
type HeroPower int

const (
	HeroPowerNone HeroPower = iota
	HeroPowerFreezeStrongest
	HeroPowerRemoveHealthiest
	HeroPowerBuffRowAttack
	HeroPowerBuffRowHealth
)

// EnvironmentEffect is the row effect of an environment card.
type EnvironmentEffect int

const (
	EnvironmentNone EnvironmentEffect = iota
	EnvironmentDamageRow
	EnvironmentFreezeRow
	EnvironmentStealStrongest
)

// Profile is one row of the effect table.
type Profile struct {
	Category    Category
	Placement   Placement
	Tank        bool
	ZeroAttack  bool
	Ability     Ability
	HeroPower   HeroPower
	Environment EnvironmentEffect
	// Targeting applies to Ability and HeroPower.
	Targeting Targeting
}

var profiles = map[Archetype]Profile{
	ArchetypePlain:     {Category: CategoryMinion},
	ArchetypeSentinel:  {Category: CategoryMinion, Placement: PlacementBack},
	ArchetypeBerserker: {Category: CategoryMinion, Placement: PlacementBack},
	ArchetypeGoliath:   {Category: CategoryMinion, Placement: PlacementFront, Tank: true},
	ArchetypeWarden:    {Category: CategoryMinion, Placement: PlacementFront, Tank: true},
	ArchetypeTheRipper: {
		Category: CategoryMinion, Placement: PlacementFront,
		Ability: AbilityWeaken, Targeting: TargetEnemy,
	},
	ArchetypeMiraj: {
		Category: CategoryMinion, Placement: PlacementFront,
		Ability: AbilitySwapHealth, Targeting: TargetEnemy,
	},
	ArchetypeTheCursedOne: {
		Category: CategoryMinion, Placement: PlacementBack, ZeroAttack: true,
		Ability: AbilitySwapStats, Targeting: TargetEnemy,
	},
	ArchetypeDisciple: {
		Category: CategoryMinion, Placement: PlacementBack, ZeroAttack: true,
		Ability: AbilityHealAlly, Targeting: TargetAlly,
	},
	ArchetypeLordRoyce: {
		Category: CategoryHero, ZeroAttack: true,
		HeroPower: HeroPowerFreezeStrongest, Targeting: TargetEnemy,
	},
	ArchetypeEmpressThorina: {
		Category: CategoryHero, ZeroAttack: true,
		HeroPower: HeroPowerRemoveHealthiest, Targeting: TargetEnemy,
	},
	ArchetypeKingMudface: {
		Category: CategoryHero, ZeroAttack: true,
		HeroPower: HeroPowerBuffRowHealth, Targeting: TargetAlly,
	},
	ArchetypeGeneralKocioraw: {
		Category: CategoryHero, ZeroAttack: true,
		HeroPower: HeroPowerBuffRowAttack, Targeting: TargetAlly,
	},
	ArchetypeFirestorm:  {Category: CategoryEnvironment, Environment: EnvironmentDamageRow},
	ArchetypeWinterfell: {Category: CategoryEnvironment, Environment: EnvironmentFreezeRow},
	ArchetypeHeartHound: {Category: CategoryEnvironment, Environment: EnvironmentStealStrongest},
}

// ProfileOf returns the effect-table entry for an archetype.
func ProfileOf(a Archetype) Profile {
	if p, ok := profiles[a]; ok {
		return p
	}
	return profiles[ArchetypePlain]
}
