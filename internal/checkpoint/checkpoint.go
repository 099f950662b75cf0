package checkpoint

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hyunseok-yang/kbo-boxscores/internal/game"
)

// Store caches extracted records per calendar date so a resumed run can
// skip re-crawling dates it already finished.
type Store struct {
	dir string
}

// New creates the checkpoint directory if needed. A leading ~/ expands to
// the user's home directory.
func New(dir string) (*Store, error) {
	if strings.HasPrefix(dir, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("getting home directory: %w", err)
		}
		dir = filepath.Join(home, dir[2:])
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating checkpoint directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

func (s *Store) path(day time.Time) string {
	return filepath.Join(s.dir, day.Format(game.CompactFormat)+".csv")
}

// Load returns the records checkpointed for day. ok is false when no
// checkpoint exists for that date.
func (s *Store) Load(day time.Time) (records []game.Record, ok bool, err error) {
	data, err := os.ReadFile(s.path(day))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("reading checkpoint: %w", err)
	}
	records, _, err = game.ReadCSV(bytes.NewReader(data))
	if err != nil {
		return nil, false, fmt.Errorf("parsing checkpoint: %w", err)
	}
	return records, true, nil
}

// Save overwrites the checkpoint for day wholesale.
func (s *Store) Save(day time.Time, records []game.Record) error {
	var buf bytes.Buffer
	if err := game.WriteCSV(&buf, records); err != nil {
		return fmt.Errorf("encoding checkpoint: %w", err)
	}
	if err := os.WriteFile(s.path(day), buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("writing checkpoint: %w", err)
	}
	return nil
}
