package world

// MeleeInput carries the numbers a melee damage formula works from.
type MeleeInput struct {
	Strength      int
	Defense       int
	BonusStrength int
	BonusDefense  int
}

// MeleeFormula computes damage for one melee hit.
type MeleeFormula interface {
	MeleeDamage(in MeleeInput) int
}

// DefaultMelee deals attack minus defense, never less than 1.
type DefaultMelee struct{}

func (DefaultMelee) MeleeDamage(in MeleeInput) int {
	return max(1, in.Strength+in.BonusStrength-(in.Defense+in.BonusDefense))
}
