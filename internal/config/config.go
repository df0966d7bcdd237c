// Package config loads sneaky's settings from a TOML file and SNEAKY_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"sneaky/internal/generate"
	"sneaky/internal/message"
	"sneaky/internal/world"
)

type Config struct {
	Game    GameConfig    `toml:"game" envPrefix:"GAME_"`
	Turn    TurnConfig    `toml:"turn" envPrefix:"TURN_"`
	Content ContentConfig `toml:"content" envPrefix:"CONTENT_"`
	Logging LoggingConfig `toml:"logging" envPrefix:"LOGGING_"`
	Save    SaveConfig    `toml:"save" envPrefix:"SAVE_"`
	Log     LogConfig     `toml:"log" envPrefix:"LOG_"`
}

type GameConfig struct {
	Width       int    `toml:"width" env:"WIDTH"`
	Height      int    `toml:"height" env:"HEIGHT"`
	Seed        uint64 `toml:"seed" env:"SEED"` // 0 picks one at random
	MaxLevel    int    `toml:"max_level" env:"MAX_LEVEL"`
	SightRadius int    `toml:"sight_radius" env:"SIGHT_RADIUS"`
}

// TurnConfig holds the time costs of the turn loop, in time units.
type TurnConfig struct {
	FallbackDelay  int `toml:"fallback_delay" env:"FALLBACK_DELAY"`
	SlowMultiplier int `toml:"slow_multiplier" env:"SLOW_MULTIPLIER"`
	EffectDuration int `toml:"effect_duration" env:"EFFECT_DURATION"`
	EffectTick     int `toml:"effect_tick" env:"EFFECT_TICK"`
	FogDuration    int `toml:"fog_duration" env:"FOG_DURATION"`
}

type ContentConfig struct {
	Dir    string `toml:"dir" env:"DIR"`       // empty uses the built-in tables
	Script string `toml:"script" env:"SCRIPT"` // Lua melee formula, empty for the default
}

type LoggingConfig struct {
	Level  string `toml:"level" env:"LEVEL"`
	Format string `toml:"format" env:"FORMAT"` // "json" or "console"
	File   string `toml:"file" env:"FILE"`     // empty discards logs while playing
}

type SaveConfig struct {
	Path string `toml:"path" env:"PATH"` // empty uses the XDG data directory
}

type LogConfig struct {
	Capacity int `toml:"capacity" env:"CAPACITY"`
}

// Load reads path, if it exists, over the defaults and then applies
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := toml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: "SNEAKY_"}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	s := world.DefaultSettings()
	o := generate.DefaultOptions()
	return &Config{
		Game: GameConfig{
			Width:       o.Width,
			Height:      o.Height,
			MaxLevel:    o.MaxLevel,
			SightRadius: o.SightRadius,
		},
		Turn: TurnConfig{
			FallbackDelay:  s.FallbackDelay,
			SlowMultiplier: s.SlowMultiplier,
			EffectDuration: s.EffectDuration,
			EffectTick:     s.EffectTick,
			FogDuration:    s.FogDuration,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Log: LogConfig{
			Capacity: message.DefaultCapacity,
		},
	}
}

func (c *Config) validate() error {
	switch {
	case c.Game.Width < 20 || c.Game.Height < 20:
		return fmt.Errorf("config: map must be at least 20x20, got %dx%d", c.Game.Width, c.Game.Height)
	case c.Game.MaxLevel < 1:
		return fmt.Errorf("config: max_level must be at least 1")
	case c.Game.SightRadius < 1:
		return fmt.Errorf("config: sight_radius must be positive")
	case c.Turn.FallbackDelay <= 0 || c.Turn.EffectTick <= 0:
		return fmt.Errorf("config: fallback_delay and effect_tick must be positive")
	case c.Turn.SlowMultiplier < 1:
		return fmt.Errorf("config: slow_multiplier must be at least 1")
	case c.Log.Capacity < 1:
		return fmt.Errorf("config: log capacity must be positive")
	}
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("config: unknown logging format %q", c.Logging.Format)
	}
	return nil
}

// Settings are the turn loop numbers for world.State.
func (c *Config) Settings() world.Settings {
	return world.Settings{
		FallbackDelay:  c.Turn.FallbackDelay,
		SlowMultiplier: c.Turn.SlowMultiplier,
		EffectDuration: c.Turn.EffectDuration,
		EffectTick:     c.Turn.EffectTick,
		FogDuration:    c.Turn.FogDuration,
		SightRadius:    c.Game.SightRadius,
	}
}

// Options are the level generator parameters.
func (c *Config) Options() generate.Options {
	return generate.Options{
		Width:       c.Game.Width,
		Height:      c.Game.Height,
		MaxLevel:    c.Game.MaxLevel,
		SightRadius: c.Game.SightRadius,
	}
}
