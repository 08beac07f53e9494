package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rank"
)

func TestOpen(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		driver string
		want   any
	}{
		{driver: "file", want: &File{}},
		{driver: "", want: &File{}},
		{driver: "FILE", want: &File{}},
		{driver: "sqlite", want: &SQLite{}},
		{driver: "bolt", want: &Bolt{}},
	}

	for _, tt := range tests {
		t.Run("driver "+tt.driver, func(t *testing.T) {
			s, err := Open(tt.driver, filepath.Join(dir, "roster-"+tt.driver+".db"))
			require.NoError(t, err)
			defer s.Close()
			assert.IsType(t, tt.want, s)
		})
	}

	_, err := Open("redis", "wherever")
	assert.Error(t, err)
}

func TestDecodeCompetitor(t *testing.T) {
	t.Run("defaults for absent fields", func(t *testing.T) {
		c, err := decodeCompetitor([]byte(`{"id": 9}`))
		require.NoError(t, err)

		assert.Equal(t, int64(9), c.ID)
		assert.Equal(t, "Player_9", c.Name)
		assert.Equal(t, league.DefaultRating, c.Rating)
		assert.Equal(t, rank.ForRating(league.DefaultRating), c.Tier)
		assert.False(t, c.LastActive.IsZero())
		assert.NotNil(t, c.History)
		assert.False(t, c.Placed)
		assert.Zero(t, c.LP)
	})

	t.Run("tier is recomputed not trusted", func(t *testing.T) {
		raw := []byte(`{"id": 1, "rating": 1995, "tier": {"tier": "Iron", "division": "IV", "color": "#000000"}}`)
		c, err := decodeCompetitor(raw)
		require.NoError(t, err)
		assert.Equal(t, rank.Descriptor{Tier: "Challenger", Division: "I", Color: rank.Color("Challenger")}, c.Tier)
	})

	t.Run("malformed json is corrupt", func(t *testing.T) {
		_, err := decodeCompetitor([]byte(`"just a string"`))
		assert.ErrorIs(t, err, ErrCorruptRecord)
	})

	t.Run("invariant violations are corrupt", func(t *testing.T) {
		_, err := decodeCompetitor([]byte(`{"id": 2, "rating": 50}`))
		assert.ErrorIs(t, err, ErrCorruptRecord)
	})
}
