package data

import (
	"fmt"

	"sneaky/internal/component"
	"sneaky/internal/spell"
)

// CreatureDef describes a monster that can be spawned.
type CreatureDef struct {
	ID        string           `yaml:"id"`
	Name      string           `yaml:"name"`
	Glyph     string           `yaml:"glyph"`
	Color     string           `yaml:"color"`
	AI        component.AIKind `yaml:"ai"`
	MaxHealth int              `yaml:"max_health"`
	Strength  int              `yaml:"strength"`
	Defense   int              `yaml:"defense"`
	Spells    []spell.Kind     `yaml:"spells"`
	MinLevel  int              `yaml:"min_level"`
	Weight    int              `yaml:"weight"`
}

func (d CreatureDef) validate() error {
	if d.ID == "" || d.Glyph == "" {
		return fmt.Errorf("creature %q: id and glyph are required", d.Name)
	}
	switch d.AI {
	case component.AIBasic, component.AISpellCaster:
	default:
		return fmt.Errorf("creature %s: unknown ai %q", d.ID, d.AI)
	}
	if d.MaxHealth <= 0 {
		return fmt.Errorf("creature %s: max_health must be positive", d.ID)
	}
	if d.AI == component.AISpellCaster && len(d.Spells) == 0 {
		return fmt.Errorf("creature %s: spell casters need spells", d.ID)
	}
	return nil
}

// ItemDef describes an item that can be spawned.
type ItemDef struct {
	ID       string                    `yaml:"id"`
	Name     string                    `yaml:"name"`
	Glyph    string                    `yaml:"glyph"`
	Color    string                    `yaml:"color"`
	Kind     component.ItemKind        `yaml:"kind"`
	Slot     component.Slot            `yaml:"slot"`
	Bonus    component.StatisticsBonus `yaml:"bonus"`
	OnUse    spell.Kind                `yaml:"on_use"`
	MinLevel int                       `yaml:"min_level"`
	Weight   int                       `yaml:"weight"`
}

func (d ItemDef) validate(spells spell.Catalog) error {
	if d.ID == "" || d.Glyph == "" {
		return fmt.Errorf("item %q: id and glyph are required", d.Name)
	}
	switch d.Kind {
	case component.ItemEquipment:
		if d.Slot == "" {
			return fmt.Errorf("item %s: equipment needs a slot", d.ID)
		}
	case component.ItemScroll, component.ItemPotion:
		if _, ok := spells.Get(d.OnUse); !ok {
			return fmt.Errorf("item %s: unknown on_use spell %q", d.ID, d.OnUse)
		}
	default:
		return fmt.Errorf("item %s: unknown kind %q", d.ID, d.Kind)
	}
	return nil
}

// Content is every table the game reads at startup.
type Content struct {
	Creatures []CreatureDef
	Items     []ItemDef
	Spells    spell.Catalog
}

// Creature returns the creature definition with the given id.
func (c *Content) Creature(id string) (CreatureDef, bool) {
	for _, d := range c.Creatures {
		if d.ID == id {
			return d, true
		}
	}
	return CreatureDef{}, false
}

// Item returns the item definition with the given id.
func (c *Content) Item(id string) (ItemDef, bool) {
	for _, d := range c.Items {
		if d.ID == id {
			return d, true
		}
	}
	return ItemDef{}, false
}
