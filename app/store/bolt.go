package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"log"

	"github.com/boltdb/bolt"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
)

var rosterBucket = []byte("roster")

// Bolt keeps each competitor as a JSON record in a single bucket, keyed by
// big-endian id so scans come back in id order.
type Bolt struct {
	db *bolt.DB
}

// NewBolt opens the bolt database at path, creating it if needed.
func NewBolt(path string) (*Bolt, error) {
	db, err := bolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	return &Bolt{db: db}, nil
}

// Load reads the roster. An absent bucket is an empty roster; records that
// fail to decode are dropped with a warning.
func (b *Bolt) Load(ctx context.Context) ([]*league.Competitor, error) {
	roster := make([]*league.Competitor, 0)

	err := b.db.View(func(tx *bolt.Tx) error {
		bkt := tx.Bucket(rosterBucket)
		if bkt == nil {
			return nil
		}
		return bkt.ForEach(func(k, v []byte) error {
			c, err := decodeCompetitor(v)
			if err != nil {
				log.Printf("[WARN] dropping record %x: %v", k, err)
				return nil
			}
			roster = append(roster, c)
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("%w: scan roster: %v", ErrUnavailable, err)
	}
	return roster, nil
}

// Save replaces the stored roster wholesale in one transaction.
func (b *Bolt) Save(ctx context.Context, roster []*league.Competitor) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		if tx.Bucket(rosterBucket) != nil {
			if err := tx.DeleteBucket(rosterBucket); err != nil {
				return fmt.Errorf("reset bucket: %w", err)
			}
		}

		bkt, err := tx.CreateBucket(rosterBucket)
		if err != nil {
			return fmt.Errorf("create bucket: %w", err)
		}

		for _, c := range roster {
			data, err := json.Marshal(c)
			if err != nil {
				return fmt.Errorf("encode competitor %d: %w", c.ID, err)
			}
			// bolt keeps key and value slices until commit, so each record
			// needs its own key buffer
			key := make([]byte, 8)
			binary.BigEndian.PutUint64(key, uint64(c.ID))
			if err := bkt.Put(key, data); err != nil {
				return fmt.Errorf("put competitor %d: %w", c.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: save roster: %v", ErrUnavailable, err)
	}
	return nil
}

// Close releases the database file.
func (b *Bolt) Close() error {
	return b.db.Close()
}
