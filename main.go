package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"math/rand/v2"
	"os"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"sneaky/internal/config"
	"sneaky/internal/game"
	"sneaky/internal/play"
	"sneaky/internal/save"
	"sneaky/internal/setup"
	"sneaky/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "sneaky.toml", "path to the TOML config file")
	fresh := flag.Bool("new", false, "start a new game even if a save exists")
	seed := flag.Uint64("seed", 0, "dungeon seed for a new game (0 uses the config or a random one)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging, "")
	if err != nil {
		return fmt.Errorf("create logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck

	content, err := setup.Content(context.Background(), cfg)
	if err != nil {
		return err
	}
	melee, err := setup.Melee(cfg, log)
	if err != nil {
		return err
	}
	defer melee.Close()

	savePath := cfg.Save.Path
	if savePath == "" {
		if savePath, err = save.DefaultPath(); err != nil {
			return err
		}
	}
	journal, err := save.Dir()
	if err != nil {
		log.Warn("no data directory, runs will not be recorded", zap.Error(err))
		journal = ""
	}

	opts := play.Options{SavePath: savePath, JournalDir: journal}
	var s *world.State
	if !*fresh {
		s, opts.GameID, err = setup.Load(savePath, cfg, content, melee)
		switch {
		case err == nil:
			log.Info("game loaded", zap.String("path", savePath), zap.Int("level", s.Level), zap.Int("time", s.Now()))
		case errors.Is(err, fs.ErrNotExist):
			s = nil
		default:
			return fmt.Errorf("%w (run with -new to start over)", err)
		}
	}
	if s == nil {
		opts.Seed = *seed
		if opts.Seed == 0 {
			opts.Seed = cfg.Game.Seed
		}
		if opts.Seed == 0 {
			opts.Seed = rand.Uint64()
		}
		opts.GameID = uuid.New()
		s = setup.NewGame(cfg, content, melee, opts.Seed)
		log.Info("new game", zap.Uint64("seed", opts.Seed), zap.String("game_id", opts.GameID.String()))
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	g := game.New(s, game.WithLogger(log))
	return play.New(screen, g, log, opts).Run()
}
