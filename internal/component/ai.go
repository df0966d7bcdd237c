package component

import "sneaky/internal/geo"

// AIKind selects who decides an entity's actions each turn.
type AIKind string

const (
	AIPlayer      AIKind = "player"       // actions come from input
	AIBasic       AIKind = "basic"        // chase and melee
	AISpellCaster AIKind = "spell_caster" // cast when the player is in sight, else chase
)

// Controller marks an entity as schedulable.
type Controller struct {
	AI AIKind `json:"ai"`
}

// AIMemory caches the last path an AI computed.
type AIMemory struct {
	PreviousPosition *geo.Point `json:"previous_position,omitempty"`
	PathGoal         *geo.Point `json:"path_goal,omitempty"`
	// Path is ordered goal first; the next step is the last element.
	Path []geo.Point `json:"path,omitempty"`
}

// RememberPathTo stores path as the route to goal.
func (m *AIMemory) RememberPathTo(goal geo.Point, path []geo.Point) {
	g := goal
	m.PathGoal = &g
	m.Path = path
}

// Forget drops the cached route.
func (m *AIMemory) Forget() {
	m.PathGoal = nil
	m.Path = nil
}

// NextStep pops the next point of the cached route.
func (m *AIMemory) NextStep() (geo.Point, bool) {
	if len(m.Path) == 0 {
		return geo.NoPosition, false
	}
	p := m.Path[len(m.Path)-1]
	m.Path = m.Path[:len(m.Path)-1]
	return p, true
}

func (m AIMemory) clone() AIMemory {
	out := AIMemory{Path: append([]geo.Point(nil), m.Path...)}
	if m.PreviousPosition != nil {
		p := *m.PreviousPosition
		out.PreviousPosition = &p
	}
	if m.PathGoal != nil {
		g := *m.PathGoal
		out.PathGoal = &g
	}
	if len(out.Path) == 0 {
		out.Path = nil
	}
	return out
}
