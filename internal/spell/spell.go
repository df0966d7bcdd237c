package spell

import (
	"fmt"
	"slices"
)

// Kind selects the effect a spell produces.
type Kind string

const (
	MagicMissile    Kind = "magic_missile"
	LightningStrike Kind = "lightning_strike"
	Confusion       Kind = "confusion"
	Heal            Kind = "heal"
	Fog             Kind = "fog"
	Frost           Kind = "frost"
	Stun            Kind = "stun"
)

// TargetType says what a spell needs to be aimed at.
type TargetType string

const (
	TargetEntity     TargetType = "entity"
	TargetClosest    TargetType = "closest"
	TargetSpot       TargetType = "spot"
	TargetRay        TargetType = "ray"
	TargetProjectile TargetType = "projectile"
)

// Targeting says who picks the target.
type Targeting string

const (
	Select  Targeting = "select"
	Closest Targeting = "closest"
	Caster  Targeting = "caster"
)

// Spell is an immutable spell definition carried by CastSpell commands.
type Spell struct {
	Kind      Kind       `json:"kind" yaml:"kind"`
	Name      string     `json:"name" yaml:"name"`
	Power     int        `json:"power" yaml:"power"`
	Range     int        `json:"range" yaml:"range"`
	Radius    int        `json:"radius,omitempty" yaml:"radius"`
	Target    TargetType `json:"target" yaml:"target"`
	Targeting Targeting  `json:"targeting" yaml:"targeting"`
}

// Validate reports definitions the pipeline cannot resolve.
func (s Spell) Validate() error {
	switch s.Kind {
	case MagicMissile, LightningStrike, Confusion, Heal, Fog, Frost, Stun:
	default:
		return fmt.Errorf("spell %q: unknown kind %q", s.Name, s.Kind)
	}
	switch s.Target {
	case TargetEntity, TargetClosest, TargetSpot, TargetRay, TargetProjectile:
	default:
		return fmt.Errorf("spell %q: unknown target %q", s.Name, s.Target)
	}
	switch s.Targeting {
	case Select, Closest, Caster:
	default:
		return fmt.Errorf("spell %q: unknown targeting %q", s.Name, s.Targeting)
	}
	if s.Range < 0 || s.Power < 0 {
		return fmt.Errorf("spell %q: negative range or power", s.Name)
	}
	return nil
}

// Catalog maps spell kinds to their definitions.
type Catalog map[Kind]Spell

// Get returns the definition for k.
func (c Catalog) Get(k Kind) (Spell, bool) {
	s, ok := c[k]
	return s, ok
}

// MustGet panics when k is not defined.
func (c Catalog) MustGet(k Kind) Spell {
	s, ok := c[k]
	if !ok {
		panic(fmt.Sprintf("spell %q not in catalog", k))
	}
	return s
}

// Kinds returns the defined kinds in sorted order.
func (c Catalog) Kinds() []Kind {
	out := make([]Kind, 0, len(c))
	for k := range c {
		out = append(out, k)
	}
	slices.Sort(out)
	return out
}

// Defaults is the built-in spell table used when no content file overrides it.
func Defaults() Catalog {
	return Catalog{
		MagicMissile:    {Kind: MagicMissile, Name: "magic missile", Power: 2, Range: 5, Target: TargetProjectile, Targeting: Select},
		LightningStrike: {Kind: LightningStrike, Name: "lightning strike", Power: 10, Range: 4, Target: TargetEntity, Targeting: Select},
		Confusion:       {Kind: Confusion, Name: "confusion", Range: 5, Target: TargetClosest, Targeting: Closest},
		Heal:            {Kind: Heal, Name: "heal", Power: 5, Range: 3, Target: TargetEntity, Targeting: Caster},
		Fog:             {Kind: Fog, Name: "fog", Range: 6, Radius: 1, Target: TargetSpot, Targeting: Select},
		Frost:           {Kind: Frost, Name: "frost", Range: 6, Target: TargetRay, Targeting: Select},
		Stun:            {Kind: Stun, Name: "stun", Range: 4, Target: TargetEntity, Targeting: Select},
	}
}
