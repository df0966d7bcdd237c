// Command simulate plays a game without a terminal and prints a digest of
// the final world, for checking that runs are reproducible.
package main

import (
	"context"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"go.uber.org/zap"

	"sneaky/internal/action"
	"sneaky/internal/config"
	"sneaky/internal/game"
	"sneaky/internal/geo"
	"sneaky/internal/path"
	"sneaky/internal/save"
	"sneaky/internal/setup"
	"sneaky/internal/world"
)

func main() {
	configPath := flag.String("config", "", "path to the TOML config file")
	seed := flag.Uint64("seed", 1, "dungeon seed")
	turns := flag.Int("turns", 200, "number of player turns to play")
	flag.Parse()

	if err := run(*configPath, *seed, *turns); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, seed uint64, turns int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Logging, "stderr")
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

	s := setup.NewGame(cfg, content, melee, seed)
	r := simulate(game.New(s, game.WithLogger(log)), seed, turns)

	digest, err := save.Digest(s)
	if err != nil {
		return err
	}
	log.Info("simulation finished", zap.Stringer("status", r.Status), zap.Int("level", s.Level), zap.Int("time", s.Now()))
	fmt.Printf("seed=%d status=%s level=%d time=%d digest=%016x\n", seed, r.Status, s.Level, s.Now(), digest)
	return nil
}

var directions = []geo.Point{
	geo.Pt(0, -1), geo.Pt(0, 1), geo.Pt(1, 0), geo.Pt(-1, 0),
	geo.Pt(1, -1), geo.Pt(-1, -1), geo.Pt(1, 1), geo.Pt(-1, 1),
}

// simulate plays a player that heads for the exit, descending whenever it
// stands on one and wandering when the way is blocked. Its choices come from
// their own seeded source so the world's random stream is the same as in an
// interactive game.
func simulate(g *game.Game, seed uint64, turns int) game.Result {
	s := g.State
	pick := rand.New(rand.NewPCG(seed, 0))
	r := g.Run()
	for range turns {
		switch r.Status {
		case game.PlayerDead, game.Won:
			return r
		case game.NeedTarget:
			r = g.Run(action.New(s.Player, action.Abort{}))
			continue
		}
		r = g.Run(action.New(s.Player, nextMove(s, pick)))
	}
	return r
}

func nextMove(s *world.State, pick *rand.Rand) action.Command {
	r := s.Registry
	pos, ok := r.PositionOf(s.Player)
	if !ok {
		return action.Wait{}
	}
	exit, ok := exitOf(s)
	if ok && exit == pos {
		return action.DescendStairs{}
	}
	if ok {
		if route := path.Find(pos, exit, open{}, s.Map); len(route) > 0 {
			return action.WalkDirection{Dir: route[len(route)-1].Sub(pos)}
		}
	}
	return action.WalkDirection{Dir: directions[pick.IntN(len(directions))]}
}

// open ignores everything standing on the map: bumping into a door opens
// it and bumping into a monster attacks it.
type open struct{}

func (open) IsSolid(geo.Point) bool { return false }

// exitOf is where the level's stairs or portal stand.
func exitOf(s *world.State) (geo.Point, bool) {
	r := s.Registry
	for id := range r.Portal.All() {
		if p, ok := r.PositionOf(id); ok {
			return p, true
		}
	}
	for id := range r.Stairs.All() {
		if p, ok := r.PositionOf(id); ok {
			return p, true
		}
	}
	return geo.NoPosition, false
}
