package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/sim"
)

// ErrCorruptRecord marks a persisted competitor that cannot be decoded or
// fails validation. Load drops such records and keeps the rest.
var ErrCorruptRecord = errors.New("corrupt competitor record")

// ErrUnavailable wraps I/O failures of the underlying backend.
var ErrUnavailable = errors.New("store unavailable")

// Store loads and saves a roster as one unit. Load returns the roster in
// stored order and never fails on individual records; Save replaces the
// stored roster wholesale, all or nothing.
type Store interface {
	Load(ctx context.Context) ([]*league.Competitor, error)
	Save(ctx context.Context, roster []*league.Competitor) error
	Close() error
}

// Archiver is implemented by backends that keep finished match records.
// Callers type-assert and skip archiving when the backend doesn't.
type Archiver interface {
	ArchiveMatches(ctx context.Context, records []sim.MatchRecord) error
}

// Drivers recognised by Open.
const (
	DriverFile   = "file"
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Open builds a store for the given driver. The location is a file path for
// every driver; an empty driver means the file backend.
func Open(driver, loc string) (Store, error) {
	switch strings.ToLower(driver) {
	case DriverFile, "":
		return NewFile(loc), nil
	case DriverSQLite:
		return NewSQLite(loc)
	case DriverBolt:
		return NewBolt(loc)
	}
	return nil, fmt.Errorf("unknown store driver %q", driver)
}

// decodeCompetitor fills a competitor from raw JSON, applying defaults for
// absent fields and validating the result. The tier is recomputed from the
// rating rather than trusted from disk.
func decodeCompetitor(raw []byte) (*league.Competitor, error) {
	c := &league.Competitor{
		Rating:     league.DefaultRating,
		LastActive: time.Now(),
	}
	if err := json.Unmarshal(raw, c); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptRecord, err)
	}

	c.Normalize()
	return c, nil
}
