package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
)

// File keeps the whole roster as one JSON document on disk.
type File struct {
	path string
}

// NewFile returns a file store at the given path. Nothing is touched until
// the first Load or Save.
func NewFile(path string) *File {
	return &File{path: path}
}

// Load reads the roster. A missing file is an empty roster, not an error;
// records that fail to decode are dropped with a warning.
func (f *File) Load(ctx context.Context) ([]*league.Competitor, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []*league.Competitor{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, f.path, err)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrUnavailable, f.path, err)
	}

	roster := make([]*league.Competitor, 0, len(raws))
	for i, raw := range raws {
		c, err := decodeCompetitor(raw)
		if err != nil {
			log.Printf("[WARN] dropping record %d from %s: %v", i, f.path, err)
			continue
		}
		roster = append(roster, c)
	}
	return roster, nil
}

// Save writes the roster atomically: the full document lands in a temp file
// first and replaces the old one only after a complete write.
func (f *File) Save(ctx context.Context, roster []*league.Competitor) error {
	payload, err := json.MarshalIndent(roster, "", "  ")
	if err != nil {
		return fmt.Errorf("encode roster: %w", err)
	}

	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("%w: create %s: %v", ErrUnavailable, dir, err)
		}
	}

	tmp := f.path + ".tmp"
	if err := os.WriteFile(tmp, payload, 0o600); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, tmp, err)
	}
	if err := os.Rename(tmp, f.path); err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrUnavailable, f.path, err)
	}
	return nil
}

// Close is a no-op for the file backend.
func (f *File) Close() error { return nil }
