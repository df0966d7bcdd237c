package save

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// AppName names the data directory.
const AppName = "sneaky"

// Dir returns where saves and the run journal live, following the XDG Base
// Directory layout: $XDG_DATA_HOME/sneaky, defaulting to ~/.local/share/sneaky.
func Dir() (string, error) {
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, AppName), nil
}

// DefaultPath is the save file used when none is configured.
func DefaultPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "save.json"), nil
}

// Run summarises a finished game for the journal.
type Run struct {
	GameID  uuid.UUID `json:"game_id"`
	Won     bool      `json:"won"`
	Level   int       `json:"level"`
	Time    int       `json:"time"`
	Kills   int       `json:"kills"`
	Seed    uint64    `json:"seed"`
	EndedAt time.Time `json:"ended_at"`
}

// AppendRun adds r as one JSON line to runs.jsonl in dir.
func AppendRun(dir string, r Run) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	f, err := os.OpenFile(filepath.Join(dir, "runs.jsonl"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	defer f.Close()
	data, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	if _, err := f.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("journal: %w", err)
	}
	return nil
}
