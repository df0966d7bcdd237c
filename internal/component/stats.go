package component

import "maps"

type Faction string

const (
	FactionPlayer Faction = "player"
	FactionEnemy  Faction = "enemy"
)

// Effect is a timed status condition.
type Effect string

const (
	EffectSlow    Effect = "slow"    // turn cost doubled
	EffectConfuse Effect = "confuse" // moves at random
	EffectStun    Effect = "stun"    // can only wait
)

// Stats holds the combat numbers of a creature. Effects maps each active
// status to the game time at which it expires.
type Stats struct {
	Faction   Faction        `json:"faction"`
	Level     int            `json:"level"`
	MaxHealth int            `json:"max_health"`
	Health    int            `json:"health"`
	Strength  int            `json:"strength"`
	Defense   int            `json:"defense"`
	Points    int            `json:"points"`
	Effects   map[Effect]int `json:"effects,omitempty"`
}

// HasEffect reports whether e is active.
func (s *Stats) HasEffect(e Effect) bool {
	_, ok := s.Effects[e]
	return ok
}

// SetEffect activates e until the given time, extending an existing effect
// but never shortening it.
func (s *Stats) SetEffect(e Effect, until int) {
	if s.Effects == nil {
		s.Effects = make(map[Effect]int)
	}
	if cur, ok := s.Effects[e]; ok && cur >= until {
		return
	}
	s.Effects[e] = until
}

// ExpireEffects removes every effect whose expiry is before now.
func (s *Stats) ExpireEffects(now int) []Effect {
	var gone []Effect
	for e, until := range s.Effects {
		if until < now {
			gone = append(gone, e)
		}
	}
	for _, e := range gone {
		delete(s.Effects, e)
	}
	if len(s.Effects) == 0 {
		s.Effects = nil
	}
	return gone
}

func (s Stats) clone() Stats {
	s.Effects = maps.Clone(s.Effects)
	return s
}
