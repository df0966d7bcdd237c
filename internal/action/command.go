package action

import (
	"sneaky/internal/ecs"
	"sneaky/internal/geo"
	"sneaky/internal/spell"
)

// Command is the closed set of things an action can do. The unexported
// method keeps other packages from adding variants.
type Command interface {
	Name() string
	command()
}

type (
	Win           struct{}
	DescendStairs struct{}
	WalkDirection struct{ Dir geo.Point }
	AttackEntity  struct{ BonusStrength, BonusDefense int }
	OpenDoor      struct{ Door ecs.EntityID }
	TakeDamage    struct{ Damage int }
	UseItem       struct{ Item ecs.EntityID }
	EquipItem     struct{ Item ecs.EntityID }
	UnequipItem   struct{ Item ecs.EntityID }
	DestroyItem   struct{ Item ecs.EntityID }
	DropItem      struct{ Item ecs.EntityID }
	PickUpItem    struct{ Item ecs.EntityID }
	CastSpell     struct{ Spell spell.Spell }
	WriteRune     struct{ Spell spell.Kind }
	Heal          struct{ Amount int }
	SpawnFog      struct{ Pos geo.Point }
	KillEntity    struct{}
	// LightningStrike is the visible bolt; it expands into TakeDamage.
	LightningStrike struct{ Damage int }
	Confuse         struct{}
	Slow            struct{}
	Stun            struct{}
	GainPoint       struct{}
	LevelUp         struct{ Choice Attribute }
	Wait            struct{}
	Abort           struct{}
)

// Attribute is a stat a level-up point can be spent on.
type Attribute string

const (
	Strength Attribute = "strength"
	Defense  Attribute = "defense"
)

func (Win) command()             {}
func (DescendStairs) command()   {}
func (WalkDirection) command()   {}
func (AttackEntity) command()    {}
func (OpenDoor) command()        {}
func (TakeDamage) command()      {}
func (UseItem) command()         {}
func (EquipItem) command()       {}
func (UnequipItem) command()     {}
func (DestroyItem) command()     {}
func (DropItem) command()        {}
func (PickUpItem) command()      {}
func (CastSpell) command()       {}
func (WriteRune) command()       {}
func (Heal) command()            {}
func (SpawnFog) command()        {}
func (KillEntity) command()      {}
func (LightningStrike) command() {}
func (Confuse) command()         {}
func (Slow) command()            {}
func (Stun) command()            {}
func (GainPoint) command()       {}
func (LevelUp) command()         {}
func (Wait) command()            {}
func (Abort) command()           {}

func (Win) Name() string             { return "win" }
func (DescendStairs) Name() string   { return "descend_stairs" }
func (WalkDirection) Name() string   { return "walk" }
func (AttackEntity) Name() string    { return "attack" }
func (OpenDoor) Name() string        { return "open_door" }
func (TakeDamage) Name() string      { return "take_damage" }
func (UseItem) Name() string         { return "use_item" }
func (EquipItem) Name() string       { return "equip_item" }
func (UnequipItem) Name() string     { return "unequip_item" }
func (DestroyItem) Name() string     { return "destroy_item" }
func (DropItem) Name() string        { return "drop_item" }
func (PickUpItem) Name() string      { return "pick_up_item" }
func (CastSpell) Name() string       { return "cast_spell" }
func (WriteRune) Name() string       { return "write_rune" }
func (Heal) Name() string            { return "heal" }
func (SpawnFog) Name() string        { return "spawn_fog" }
func (KillEntity) Name() string      { return "kill" }
func (LightningStrike) Name() string { return "lightning_strike" }
func (Confuse) Name() string         { return "confuse" }
func (Slow) Name() string            { return "slow" }
func (Stun) Name() string            { return "stun" }
func (GainPoint) Name() string       { return "gain_point" }
func (LevelUp) Name() string         { return "level_up" }
func (Wait) Name() string            { return "wait" }
func (Abort) Name() string           { return "abort" }

// BaseTime is the time cost of a committed command. Reactions cost nothing
// so a turn is charged only for what the actor chose to do.
func BaseTime(c Command) int {
	switch c.(type) {
	case Wait, WalkDirection, AttackEntity, OpenDoor, PickUpItem, CastSpell,
		WriteRune, DescendStairs, Win:
		return 100
	case EquipItem:
		return 50
	}
	return 0
}
