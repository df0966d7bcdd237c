package world

import (
	"math/rand/v2"

	"sneaky/internal/action"
	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
	"sneaky/internal/message"
	"sneaky/internal/schedule"
	"sneaky/internal/spatial"
	"sneaky/internal/spell"
)

// Settings are the tunable constants of the simulation.
type Settings struct {
	// FallbackDelay reschedules a non-player actor whose turn committed nothing.
	FallbackDelay  int
	SlowMultiplier int
	EffectDuration int
	// EffectTick is how often durations and status effects are expired.
	EffectTick  int
	FogDuration int
	SightRadius int
}

// DefaultSettings returns the stock tuning.
func DefaultSettings() Settings {
	return Settings{
		FallbackDelay:  500,
		SlowMultiplier: 2,
		EffectDuration: 500,
		EffectTick:     100,
		FogDuration:    1000,
		SightRadius:    8,
	}
}

// LevelBuilder replaces the current level with a freshly generated one,
// keeping the player entity. It runs with s.Level already incremented.
type LevelBuilder func(s *State)

// State is everything the simulation mutates. It is passed by pointer to
// rules, systems and AI; nothing else holds a reference to it.
type State struct {
	Registry  *component.Registry
	Map       *gamemap.GameMap
	Spatial   *spatial.Table
	Scheduler *schedule.Scheduler
	Log       *message.Log
	Spells    spell.Catalog
	Melee     MeleeFormula
	Settings  Settings
	NextLevel LevelBuilder

	Player ecs.EntityID
	Level  int
	Won    bool
	// ExpiredAt is the clock reading of the last duration and effect sweep.
	ExpiredAt int

	src *rand.PCG
	rng *rand.Rand
}

// New creates a state for the given map with an empty registry and an idle
// scheduler.
func New(m *gamemap.GameMap, seed uint64) *State {
	src := rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)
	return &State{
		Registry:  component.NewRegistry(),
		Map:       m,
		Spatial:   spatial.New(m.Width, m.Height),
		Scheduler: schedule.New(),
		Log:       message.New(message.DefaultCapacity),
		Spells:    spell.Defaults(),
		Melee:     DefaultMelee{},
		Settings:  DefaultSettings(),
		Level:     1,
		src:       src,
		rng:       rand.New(src),
	}
}

// Rand is the simulation's deterministic random source.
func (s *State) Rand() *rand.Rand { return s.rng }

// RandState returns the encoded random source state for saving.
func (s *State) RandState() ([]byte, error) { return s.src.MarshalBinary() }

// SetRandState restores a random source saved by RandState.
func (s *State) SetRandState(b []byte) error { return s.src.UnmarshalBinary(b) }

// Now is the scheduler's clock.
func (s *State) Now() int { return s.Scheduler.Time() }

// CanWalk reports whether a creature could step onto p.
func (s *State) CanWalk(p geo.Point) bool {
	return s.Map.IsFloor(p) && !s.Spatial.IsSolid(p)
}

// IsOpaque reports whether p blocks line of sight.
func (s *State) IsOpaque(p geo.Point) bool {
	return !s.Map.IsTransparent(p) || s.Spatial.IsOpaque(p)
}

// LineOfSight reports whether nothing opaque lies strictly between a and b.
func (s *State) LineOfSight(a, b geo.Point) bool {
	line := geo.Line(a, b)
	if len(line) <= 2 {
		return true
	}
	for _, p := range line[1 : len(line)-1] {
		if s.IsOpaque(p) {
			return false
		}
	}
	return true
}

// TargetPoint resolves a target to a grid position.
func (s *State) TargetPoint(t *action.Target) (geo.Point, bool) {
	switch {
	case t == nil:
		return geo.NoPosition, false
	case t.Kind == action.TargetEntity:
		return s.Registry.PositionOf(t.Entity)
	}
	return t.Pos, s.Map.InBounds(t.Pos)
}

// ReplaceMap swaps in a new level grid and a matching empty spatial index.
func (s *State) ReplaceMap(m *gamemap.GameMap) {
	s.Map = m
	s.Spatial = spatial.New(m.Width, m.Height)
}
