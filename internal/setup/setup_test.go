package setup

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sneaky/internal/config"
	"sneaky/internal/message"
	"sneaky/internal/save"
	"sneaky/internal/world"
)

func load(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	return cfg
}

func TestNewGameIsConfigured(t *testing.T) {
	cfg := load(t)
	cfg.Log.Capacity = 3
	cfg.Turn.FallbackDelay = 700
	content, err := Content(context.Background(), cfg)
	require.NoError(t, err)
	melee, err := Melee(cfg, nil)
	require.NoError(t, err)
	defer melee.Close()

	s := NewGame(cfg, content, melee, 3)

	assert.Equal(t, content.Spells, s.Spells)
	assert.Same(t, melee, s.Melee)
	assert.Equal(t, 700, s.Settings.FallbackDelay)
	assert.NotNil(t, s.NextLevel)
	assert.Positive(t, s.Log.Len(), "the welcome message survives")
	for range 5 {
		s.Log.Add(message.Info, "filler")
	}
	assert.Equal(t, 3, s.Log.Len())
}

func TestLoadRestoresAndConfigures(t *testing.T) {
	cfg := load(t)
	content, err := Content(context.Background(), cfg)
	require.NoError(t, err)
	s := NewGame(cfg, content, nil, 8)
	path := filepath.Join(t.TempDir(), "save.json")
	id := uuid.New()
	require.NoError(t, save.Write(path, s, id))

	loaded, gotID, err := Load(path, cfg, content, nil)
	require.NoError(t, err)

	assert.Equal(t, id, gotID)
	assert.Equal(t, s.Player, loaded.Player)
	assert.NotNil(t, loaded.NextLevel)
	assert.Equal(t, world.DefaultMelee{}, loaded.Melee)
	want, err := save.Digest(s)
	require.NoError(t, err)
	got, err := save.Digest(loaded)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadRejectsOtherMapSize(t *testing.T) {
	cfg := load(t)
	content, err := Content(context.Background(), cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "save.json")
	require.NoError(t, save.Write(path, NewGame(cfg, content, nil, 1), uuid.New()))

	cfg.Game.Width = 30
	_, _, err = Load(path, cfg, content, nil)
	assert.ErrorContains(t, err, "80x40")
}

func TestCustomContentAndScript(t *testing.T) {
	cfg := load(t)
	cfg.Content.Dir = t.TempDir()
	_, err := Content(context.Background(), cfg)
	assert.Error(t, err, "an empty directory has no tables")

	script := filepath.Join(t.TempDir(), "double.lua")
	require.NoError(t, os.WriteFile(script, []byte(`function melee_damage(hit) return hit.strength * 2 end`), 0o644))
	cfg.Content.Script = script
	melee, err := Melee(cfg, nil)
	require.NoError(t, err)
	defer melee.Close()
	assert.Equal(t, 6, melee.MeleeDamage(world.MeleeInput{Strength: 3}))
}
