package component

import "sneaky/internal/spell"

// Flags describe how an entity affects its cell in the spatial index.
type Flags struct {
	Solid      bool `json:"solid,omitempty"`
	BlockSight bool `json:"block_sight,omitempty"`
}

// Door marks a door entity.
type Door struct {
	Opened bool `json:"opened"`
}

// Information names an entity for messages.
type Information struct {
	Name string `json:"name"`
}

// Stairs marks a staircase leading to the next level.
type Stairs struct{}

// Portal marks the exit that wins the game.
type Portal struct{}

// TriggerKind says what sets a trigger off.
type TriggerKind string

const TriggerStep TriggerKind = "step"

// Trigger casts Spell on whatever sets it off. Runes are triggers.
type Trigger struct {
	Kind  TriggerKind `json:"kind"`
	Spell spell.Kind  `json:"spell"`
}

// Duration gives an entity a limited lifetime.
type Duration struct {
	SpawnTime  int `json:"spawn_time"`
	Duration   int `json:"duration"`
	ExpireTime int `json:"expire_time"`
}

// NewDuration starts a lifetime of d time units at now.
func NewDuration(now, d int) Duration {
	return Duration{SpawnTime: now, Duration: d, ExpireTime: now + d}
}
