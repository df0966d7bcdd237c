// Package rules decides whether an action may happen and what follows from it.
//
// Each rule looks at one action and either lets it through, possibly queuing
// reactions that happen afterwards, or rejects it, possibly offering
// substitutes to try instead. Rules run in a fixed order and the first
// rejection stops the chain.
package rules

import (
	"sneaky/internal/action"
	"sneaky/internal/world"
)

// Status is a rule's verdict.
type Status uint8

const (
	Accept Status = iota
	Reject
)

func (s Status) String() string {
	if s == Reject {
		return "reject"
	}
	return "accept"
}

// Result collects what the chain produced for one action.
type Result struct {
	// Reactions follow the action once it commits. Each is pushed onto the
	// front of the queue, so the last one produced runs first.
	Reactions []action.Action
	// Substitutes replace the pending queue when the action is rejected.
	Substitutes []action.Action
}

func (r *Result) react(a action.Action)      { r.Reactions = append(r.Reactions, a) }
func (r *Result) substitute(a action.Action) { r.Substitutes = append(r.Substitutes, a) }

// Rule inspects a, which it may rewrite, and records follow-up actions in out.
type Rule func(s *world.State, a *action.Action, out *Result) Status

// Chain is the rule order. Later rules may rely on earlier ones having
// validated the action.
var Chain = []Rule{
	abort,
	itemUsability,
	equipmentBonus,
	collision,
	openDoor,
	validateSpell,
	castSpell,
	lightningStrike,
	attack,
	takeDamage,
	statusTarget,
	levelUp,
	trigger,
	exits,
}

// Apply runs the chain over a. Reactions are only meaningful when the status
// is Accept, substitutes only when it is Reject.
func Apply(s *world.State, a *action.Action) (Status, Result) {
	var out Result
	for _, rule := range Chain {
		if rule(s, a, &out) == Reject {
			out.Reactions = nil
			return Reject, out
		}
	}
	out.Substitutes = nil
	return Accept, out
}

func abort(_ *world.State, a *action.Action, _ *Result) Status {
	if _, ok := a.Command.(action.Abort); ok {
		return Reject
	}
	return Accept
}
