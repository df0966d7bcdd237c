package action

import (
	"fmt"

	"sneaky/internal/ecs"
	"sneaky/internal/geo"
)

// TargetKind discriminates Target.
type TargetKind uint8

const (
	TargetEntity TargetKind = iota + 1
	TargetPosition
)

// Target is what an action is aimed at: an entity or a grid position.
type Target struct {
	Kind   TargetKind
	Entity ecs.EntityID
	Pos    geo.Point
}

// AtEntity targets id.
func AtEntity(id ecs.EntityID) *Target {
	return &Target{Kind: TargetEntity, Entity: id}
}

// AtPosition targets p.
func AtPosition(p geo.Point) *Target {
	return &Target{Kind: TargetPosition, Pos: p}
}

func (t *Target) String() string {
	if t == nil {
		return "none"
	}
	if t.Kind == TargetEntity {
		return fmt.Sprintf("entity %d", t.Entity)
	}
	return t.Pos.String()
}

// Action is a request to change the world. Actor is ecs.NilEntity for
// environmental actions such as a rune firing.
type Action struct {
	Actor        ecs.EntityID
	Target       *Target
	Command      Command
	TimeOverride *int
}

// New builds an action without a target.
func New(actor ecs.EntityID, cmd Command) Action {
	return Action{Actor: actor, Command: cmd}
}

// WithTarget returns a copy of a aimed at t.
func (a Action) WithTarget(t *Target) Action {
	a.Target = t
	return a
}

// WithTime returns a copy of a that costs exactly t time units.
func (a Action) WithTime(t int) Action {
	a.TimeOverride = &t
	return a
}

// Time is the number of time units the action costs when committed.
func (a Action) Time() int {
	if a.TimeOverride != nil {
		return *a.TimeOverride
	}
	return BaseTime(a.Command)
}

// TargetEntity returns the targeted entity, if the target is one.
func (a Action) TargetEntity() (ecs.EntityID, bool) {
	if a.Target == nil || a.Target.Kind != TargetEntity {
		return ecs.NilEntity, false
	}
	return a.Target.Entity, true
}

func (a Action) String() string {
	return fmt.Sprintf("%s by %d at %s", a.Command.Name(), a.Actor, a.Target)
}
