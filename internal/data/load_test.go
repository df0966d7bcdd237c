package data

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sneaky/assets"
	"sneaky/internal/component"
	"sneaky/internal/spell"
)

func TestLoadAllBuiltInContent(t *testing.T) {
	c, err := LoadAll(context.Background(), assets.Content())
	require.NoError(t, err)

	assert.NotEmpty(t, c.Creatures)
	assert.NotEmpty(t, c.Items)
	shaman, ok := c.Creature("goblin_shaman")
	require.True(t, ok)
	assert.Equal(t, component.AISpellCaster, shaman.AI)

	potion, ok := c.Item("healing_potion")
	require.True(t, ok)
	assert.Equal(t, spell.Heal, potion.OnUse)
	assert.Equal(t, component.ItemPotion, potion.Kind)

	// spells.yaml omits some kinds; defaults fill them in
	_, ok = c.Spells.Get(spell.Fog)
	assert.True(t, ok)
}

func TestLoadAllWithoutSpellFile(t *testing.T) {
	fsys := fstest.MapFS{
		CreaturesFile: {Data: []byte("creatures:\n  - {id: rat, name: rat, glyph: r, ai: basic, max_health: 2}\n")},
		ItemsFile:     {Data: []byte("items:\n  - {id: p, name: potion, glyph: '!', kind: potion, on_use: heal}\n")},
	}
	c, err := LoadAll(context.Background(), fsys)
	require.NoError(t, err)
	assert.Equal(t, spell.Defaults(), c.Spells)
	assert.Equal(t, 1, c.Creatures[0].Weight, "weight defaults to 1")
}

func TestLoadAllRejectsBadContent(t *testing.T) {
	cases := []struct {
		name      string
		creatures string
		items     string
	}{
		{
			name:      "unknown ai",
			creatures: "creatures:\n  - {id: rat, glyph: r, ai: sleepy, max_health: 2}\n",
			items:     "items: []\n",
		},
		{
			name:      "duplicate creature",
			creatures: "creatures:\n  - {id: rat, glyph: r, ai: basic, max_health: 2}\n  - {id: rat, glyph: r, ai: basic, max_health: 2}\n",
			items:     "items: []\n",
		},
		{
			name:      "scroll with unknown spell",
			creatures: "creatures: []\n",
			items:     "items:\n  - {id: s, glyph: '?', kind: scroll, on_use: teleport}\n",
		},
		{
			name:      "caster spell missing",
			creatures: "creatures:\n  - {id: m, glyph: m, ai: spell_caster, max_health: 2, spells: [teleport]}\n",
			items:     "items: []\n",
		},
		{
			name:      "malformed yaml",
			creatures: "creatures: [",
			items:     "items: []\n",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				CreaturesFile: {Data: []byte(tc.creatures)},
				ItemsFile:     {Data: []byte(tc.items)},
			}
			_, err := LoadAll(context.Background(), fsys)
			assert.Error(t, err)
		})
	}
}

func TestLoadAllMissingRequiredFile(t *testing.T) {
	_, err := LoadAll(context.Background(), fstest.MapFS{})
	assert.Error(t, err)
}

func TestLoadAllHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LoadAll(ctx, assets.Content())
	assert.ErrorIs(t, err, context.Canceled)
}
