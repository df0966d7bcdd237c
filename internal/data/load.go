package data

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"sneaky/internal/spell"
)

// File names looked up by LoadAll.
const (
	CreaturesFile = "creatures.yaml"
	ItemsFile     = "items.yaml"
	SpellsFile    = "spells.yaml"
)

type creatureFile struct {
	Creatures []CreatureDef `yaml:"creatures"`
}

type itemFile struct {
	Items []ItemDef `yaml:"items"`
}

type spellFile struct {
	Spells []spell.Spell `yaml:"spells"`
}

func readYAML(fsys fs.FS, name string, out any) error {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

// LoadCreatures reads and validates the creature table.
func LoadCreatures(fsys fs.FS, name string) ([]CreatureDef, error) {
	var f creatureFile
	if err := readYAML(fsys, name, &f); err != nil {
		return nil, err
	}
	seen := make(map[string]bool, len(f.Creatures))
	for i := range f.Creatures {
		d := &f.Creatures[i]
		if d.Weight == 0 {
			d.Weight = 1
		}
		if err := d.validate(); err != nil {
			return nil, err
		}
		if seen[d.ID] {
			return nil, fmt.Errorf("creature %s defined twice", d.ID)
		}
		seen[d.ID] = true
	}
	return f.Creatures, nil
}

// LoadItems reads the item table. Validation needs the spell catalog and
// happens in LoadAll.
func LoadItems(fsys fs.FS, name string) ([]ItemDef, error) {
	var f itemFile
	if err := readYAML(fsys, name, &f); err != nil {
		return nil, err
	}
	for i := range f.Items {
		if f.Items[i].Weight == 0 {
			f.Items[i].Weight = 1
		}
	}
	return f.Items, nil
}

// LoadSpells reads the spell table on top of the built-in defaults.
func LoadSpells(fsys fs.FS, name string) (spell.Catalog, error) {
	var f spellFile
	if err := readYAML(fsys, name, &f); err != nil {
		return nil, err
	}
	cat := spell.Defaults()
	for _, s := range f.Spells {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		cat[s.Kind] = s
	}
	return cat, nil
}

// LoadAll reads every content table from fsys concurrently. A missing spell
// table falls back to the built-in spells; the other tables are required.
func LoadAll(ctx context.Context, fsys fs.FS) (*Content, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var c Content
	var g errgroup.Group
	g.Go(func() error {
		defs, err := LoadCreatures(fsys, CreaturesFile)
		c.Creatures = defs
		return err
	})
	g.Go(func() error {
		defs, err := LoadItems(fsys, ItemsFile)
		c.Items = defs
		return err
	})
	g.Go(func() error {
		cat, err := LoadSpells(fsys, SpellsFile)
		if errors.Is(err, fs.ErrNotExist) {
			cat, err = spell.Defaults(), nil
		}
		c.Spells = cat
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, d := range c.Items {
		if err := d.validate(c.Spells); err != nil {
			return nil, err
		}
	}
	for _, d := range c.Creatures {
		for _, k := range d.Spells {
			if _, ok := c.Spells.Get(k); !ok {
				return nil, fmt.Errorf("creature %s: unknown spell %q", d.ID, k)
			}
		}
	}
	return &c, nil
}
