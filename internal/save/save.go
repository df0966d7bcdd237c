// Package save writes and reads games in progress.
//
// A save file is a JSON envelope holding the payload and its xxhash
// checksum, so a truncated or hand-edited file is refused instead of
// producing a broken world.
package save

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"

	"sneaky/internal/component"
	"sneaky/internal/ecs"
	"sneaky/internal/gamemap"
	"sneaky/internal/message"
	"sneaky/internal/schedule"
	"sneaky/internal/spatial"
	"sneaky/internal/world"
)

// Version is bumped whenever the payload layout changes.
const Version = 1

var (
	ErrChecksum = errors.New("save: checksum mismatch")
	ErrVersion  = errors.New("save: unsupported version")
)

// File is everything needed to resume a game. Content tables, settings and
// the level builder come from the running program, not the file.
type File struct {
	Version   int                `json:"version"`
	GameID    uuid.UUID          `json:"game_id"`
	Level     int                `json:"level"`
	Player    ecs.EntityID       `json:"player"`
	Won       bool               `json:"won"`
	ExpiredAt int                `json:"expired_at"`
	Registry  component.Snapshot `json:"registry"`
	Scheduler schedule.Snapshot  `json:"scheduler"`
	Spatial   *spatial.Table     `json:"spatial"`
	Map       *gamemap.GameMap   `json:"map"`
	RNG       []byte             `json:"rng"`
	Messages  []message.Entry    `json:"messages"`
}

type envelope struct {
	Checksum string          `json:"checksum"`
	Payload  json.RawMessage `json:"payload"`
}

// Capture copies s into a File.
func Capture(s *world.State, id uuid.UUID) (*File, error) {
	rng, err := s.RandState()
	if err != nil {
		return nil, fmt.Errorf("save: encode rng: %w", err)
	}
	return &File{
		Version:   Version,
		GameID:    id,
		Level:     s.Level,
		Player:    s.Player,
		Won:       s.Won,
		ExpiredAt: s.ExpiredAt,
		Registry:  s.Registry.Snapshot(),
		Scheduler: s.Scheduler.Snapshot(),
		Spatial:   s.Spatial,
		Map:       s.Map,
		RNG:       rng,
		Messages:  s.Log.Entries(),
	}, nil
}

// State rebuilds a world from f. The caller fills in Spells, Melee,
// Settings and NextLevel.
func (f *File) State() (*world.State, error) {
	if f.Map == nil {
		return nil, errors.New("save: missing map")
	}
	s := world.New(f.Map, 0)
	if err := s.SetRandState(f.RNG); err != nil {
		return nil, fmt.Errorf("save: decode rng: %w", err)
	}
	s.Registry.Restore(f.Registry)
	s.Scheduler = schedule.Restore(f.Scheduler)
	if t := f.Spatial; t != nil && t.Width == f.Map.Width && t.Height == f.Map.Height && len(t.Cells) == t.Width*t.Height {
		s.Spatial = t
	} else {
		s.Spatial.Reset(s.Registry)
	}
	s.Player = f.Player
	s.Level = f.Level
	s.Won = f.Won
	s.ExpiredAt = f.ExpiredAt
	s.Log.Restore(f.Messages)
	return s, nil
}

// Encode writes f to w.
func Encode(w io.Writer, f *File) error {
	payload, err := json.Marshal(f)
	if err != nil {
		return fmt.Errorf("save: encode: %w", err)
	}
	env := envelope{Checksum: checksum(payload), Payload: payload}
	if err := json.NewEncoder(w).Encode(env); err != nil {
		return fmt.Errorf("save: write: %w", err)
	}
	return nil
}

// Decode reads a File written by Encode.
func Decode(r io.Reader) (*File, error) {
	var env envelope
	if err := json.NewDecoder(r).Decode(&env); err != nil {
		return nil, fmt.Errorf("save: read: %w", err)
	}
	if checksum(env.Payload) != env.Checksum {
		return nil, ErrChecksum
	}
	var probe struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(env.Payload, &probe); err != nil {
		return nil, fmt.Errorf("save: decode: %w", err)
	}
	if probe.Version != Version {
		return nil, fmt.Errorf("%w: %d", ErrVersion, probe.Version)
	}
	var f File
	if err := json.Unmarshal(env.Payload, &f); err != nil {
		return nil, fmt.Errorf("save: decode: %w", err)
	}
	return &f, nil
}

// Write saves s to path, replacing any previous save only once the new one
// is fully written.
func Write(path string, s *world.State, id uuid.UUID) error {
	f, err := Capture(s, id)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, f); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Read loads the save at path.
func Read(path string) (*File, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("save: %w", err)
	}
	defer fh.Close()
	return Decode(fh)
}

// Digest fingerprints the simulation state of s. Two states with the same
// digest will play out identically given the same input.
func Digest(s *world.State) (uint64, error) {
	f, err := Capture(s, uuid.Nil)
	if err != nil {
		return 0, err
	}
	f.Messages = nil
	d := xxhash.New()
	if err := json.NewEncoder(d).Encode(f); err != nil {
		return 0, fmt.Errorf("save: digest: %w", err)
	}
	return d.Sum64(), nil
}

func checksum(b []byte) string {
	return strconv.FormatUint(xxhash.Sum64(b), 16)
}
