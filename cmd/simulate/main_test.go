package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sneaky/internal/config"
	"sneaky/internal/game"
	"sneaky/internal/save"
	"sneaky/internal/setup"
)

func digestOf(t *testing.T, seed uint64, turns int) (uint64, game.Result, int) {
	t.Helper()
	cfg, err := config.Load("")
	require.NoError(t, err)
	content, err := setup.Content(context.Background(), cfg)
	require.NoError(t, err)
	s := setup.NewGame(cfg, content, nil, seed)

	r := simulate(game.New(s), seed, turns)

	d, err := save.Digest(s)
	require.NoError(t, err)
	return d, r, s.Now()
}

func TestSimulationIsReproducible(t *testing.T) {
	a, ra, ta := digestOf(t, 42, 60)
	b, rb, tb := digestOf(t, 42, 60)

	assert.Equal(t, a, b)
	assert.Equal(t, ra.Status, rb.Status)
	assert.Equal(t, ta, tb)
	assert.Positive(t, ta, "time moved on")
}

func TestSimulationSeedsDiffer(t *testing.T) {
	a, _, _ := digestOf(t, 1, 20)
	b, _, _ := digestOf(t, 2, 20)
	assert.NotEqual(t, a, b)
}
