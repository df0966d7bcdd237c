// Package setup wires configuration, content and scripts into a playable
// world, for both the terminal game and the headless simulator.
package setup

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"sneaky/assets"
	"sneaky/internal/config"
	"sneaky/internal/data"
	"sneaky/internal/generate"
	"sneaky/internal/message"
	"sneaky/internal/save"
	"sneaky/internal/scripting"
	"sneaky/internal/world"
)

// Content loads the content tables from cfg.Content.Dir, or the built-in
// tables when no directory is configured.
func Content(ctx context.Context, cfg *config.Config) (*data.Content, error) {
	fsys := assets.Content()
	if cfg.Content.Dir != "" {
		fsys = os.DirFS(cfg.Content.Dir)
	}
	c, err := data.LoadAll(ctx, fsys)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return c, nil
}

// Melee loads the melee formula script, the built-in one when none is configured.
func Melee(cfg *config.Config, log *zap.Logger) (*scripting.Melee, error) {
	if cfg.Content.Script == "" {
		return scripting.LoadMelee(assets.Scripts(), "melee.lua", log)
	}
	p := cfg.Content.Script
	return scripting.LoadMelee(os.DirFS(filepath.Dir(p)), filepath.Base(p), log)
}

// Configure attaches everything that is not part of a save to s.
func Configure(s *world.State, cfg *config.Config, content *data.Content, melee world.MeleeFormula) {
	s.Spells = content.Spells
	s.Settings = cfg.Settings()
	s.NextLevel = generate.Builder(content, cfg.Options())
	if melee != nil {
		s.Melee = melee
	}
	log := message.New(cfg.Log.Capacity)
	log.Restore(s.Log.Entries())
	s.Log = log
}

// NewGame builds the first level of a fresh game.
func NewGame(cfg *config.Config, content *data.Content, melee world.MeleeFormula, seed uint64) *world.State {
	s := generate.NewGame(content, cfg.Options(), seed)
	Configure(s, cfg, content, melee)
	return s
}

// Load restores the game saved at path.
func Load(path string, cfg *config.Config, content *data.Content, melee world.MeleeFormula) (*world.State, uuid.UUID, error) {
	f, err := save.Read(path)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if f.Map.Width != cfg.Game.Width || f.Map.Height != cfg.Game.Height {
		return nil, uuid.Nil, fmt.Errorf("save %s is for a %dx%d map, config says %dx%d",
			path, f.Map.Width, f.Map.Height, cfg.Game.Width, cfg.Game.Height)
	}
	s, err := f.State()
	if err != nil {
		return nil, uuid.Nil, err
	}
	Configure(s, cfg, content, melee)
	return s, f.GameID, nil
}
