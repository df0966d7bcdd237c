package generate

import (
	"sneaky/internal/component"
	"sneaky/internal/data"
	"sneaky/internal/ecs"
	"sneaky/internal/factory"
	"sneaky/internal/gamemap"
	"sneaky/internal/geo"
	"sneaky/internal/message"
	"sneaky/internal/world"
)

// Options are the level parameters that stay fixed for a whole game.
type Options struct {
	Width, Height int
	MaxLevel      int
	SightRadius   int
}

// DefaultOptions matches the default configuration file.
func DefaultOptions() Options {
	return Options{Width: 80, Height: 40, MaxLevel: 5, SightRadius: 8}
}

// HealthPerLevel is the max health the player gains on each new level.
const HealthPerLevel = 5

// Builder returns a world.LevelBuilder that replaces the current level with
// a generated one. Everything on the old level except the player and what
// it carries is destroyed.
func Builder(content *data.Content, opts Options) world.LevelBuilder {
	return func(s *world.State) {
		clearLevel(s)
		cfg := ForLevel(s.Level, opts.MaxLevel, opts.Width, opts.Height, s.Rand())
		layout := Generate(cfg)
		s.ReplaceMap(layout.Map)
		placePlayer(s, layout.Start, opts.SightRadius)
		spawn(s, layout, Populate(layout, cfg, content), opts)
		if s.Level > 1 {
			if st, ok := s.Registry.Stats.Get(s.Player); ok {
				st.MaxHealth += HealthPerLevel
				st.Health = st.MaxHealth
				s.Log.Add(message.Important, "your wounds heal and your body grows stronger")
			}
		}
		s.Spatial.Reset(s.Registry)
	}
}

// NewGame creates a state with a fresh player on level 1.
func NewGame(content *data.Content, opts Options, seed uint64) *world.State {
	s := world.New(gamemap.New(opts.Width, opts.Height), seed)
	s.Spells = content.Spells
	s.Settings.SightRadius = opts.SightRadius
	s.Player = factory.NewPlayer(s.Registry, geo.NoPosition, opts.Width, opts.Height, opts.SightRadius)
	s.Scheduler.Schedule(s.Player, 0, s.Registry.Controller)
	s.NextLevel = Builder(content, opts)
	s.NextLevel(s)
	s.Log.Add(message.Important, "welcome, find the portal at the bottom of the dungeon")
	return s
}

func clearLevel(s *world.State) {
	var doomed []ecs.EntityID
	for id := range s.Registry.Position.All() {
		if id != s.Player {
			doomed = append(doomed, id)
		}
	}
	for id := range s.Registry.Duration.All() {
		doomed = append(doomed, id)
	}
	for _, id := range doomed {
		s.Registry.Destroy(id)
	}
	s.Registry.Sweep()
}

func placePlayer(s *world.State, start geo.Point, sight int) {
	s.Registry.Position.Set(s.Player, component.Position{Coord: start})
	s.Registry.MapMemory.Set(s.Player, component.NewMapMemory(s.Map.Width, s.Map.Height, sight))
	if mem, ok := s.Registry.AIMemory.Get(s.Player); ok {
		mem.Forget()
	}
}

func spawn(s *world.State, l Layout, pop Population, opts Options) {
	r := s.Registry
	if l.Exit != geo.NoPosition {
		if s.Level >= opts.MaxLevel {
			factory.NewPortal(r, l.Exit)
		} else {
			factory.NewStairs(r, l.Exit)
		}
	}
	for _, d := range l.Doors {
		factory.NewDoor(r, d)
	}
	for _, c := range pop.Creatures {
		id := factory.NewCreature(r, c.Def, c.Pos, s.Map.Width, s.Map.Height, opts.SightRadius)
		s.Scheduler.Schedule(id, 0, r.Controller)
	}
	for _, it := range pop.Items {
		factory.NewItem(r, it.Def, it.Pos)
	}
}
