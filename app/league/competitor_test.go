package league

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rank"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rating"
)

func TestNewCompetitor(t *testing.T) {
	c := NewCompetitor(7, "Player_7")

	assert.Equal(t, int64(7), c.ID)
	assert.Equal(t, DefaultRating, c.Rating)
	assert.Equal(t, rank.ForRating(DefaultRating), c.Tier)
	assert.False(t, c.Placed)
	assert.False(t, c.InPromo)
	assert.Zero(t, c.LP)
	require.NoError(t, c.Validate())
}

func TestRecordMatch(t *testing.T) {
	t.Run("appends exactly one history entry per call", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.RecordMatch(2, rating.Win, 16, 0, false)
		c.RecordMatch(3, rating.Loss, -16, 0, false)
		c.RecordMatch(4, rating.Draw, 0, 0, false)

		require.Len(t, c.History, 3)
		assert.Equal(t, int64(2), c.History[0].Opponent)
		assert.Equal(t, rating.Win, c.History[0].Result)
		assert.InDelta(t, 16, c.History[0].Delta, 1e-9)
	})

	t.Run("streak grows on wins and resets on anything else", func(t *testing.T) {
		c := NewCompetitor(1, "a")

		c.RecordMatch(2, rating.Win, 10, 0, false)
		c.RecordMatch(2, rating.Win, 10, 0, false)
		assert.Equal(t, 2, c.WinStreak)
		assert.Equal(t, 2, c.Wins)

		c.RecordMatch(2, rating.Draw, 0, 0, false)
		assert.Zero(t, c.WinStreak, "draw must reset the streak")
		assert.Equal(t, 2, c.Wins, "draw must not count as a win")
		assert.Zero(t, c.Losses, "draw must not count as a loss")

		c.RecordMatch(2, rating.Win, 10, 0, false)
		c.RecordMatch(2, rating.Loss, -10, 0, false)
		assert.Zero(t, c.WinStreak)
		assert.Equal(t, 1, c.Losses)
	})

	t.Run("rating never drops below the floor", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.Rating = 105

		c.RecordMatch(2, rating.Loss, -50, 0, false)
		assert.Equal(t, MinRating, c.Rating)
		assert.Equal(t, rank.ForRating(MinRating), c.Tier)
	})

	t.Run("touches last active", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.LastActive = time.Now().Add(-time.Hour)

		before := time.Now()
		c.RecordMatch(2, rating.Win, 1, 0, false)
		assert.False(t, c.LastActive.Before(before))
	})
}

func TestRecordMatchPlacement(t *testing.T) {
	t.Run("counts games until the requirement is met", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.PlacementGamesRequired = 3

		c.RecordMatch(2, rating.Win, 5, 0, true)
		c.RecordMatch(2, rating.Draw, 0, 0, true)
		assert.False(t, c.Placed)
		assert.Equal(t, 2, c.PlacementGamesPlayed)
		assert.Equal(t, 1, c.PlacementWins, "draws must not count as placement wins")

		c.RecordMatch(2, rating.Win, 5, 0, true)
		assert.True(t, c.Placed)
		assert.Equal(t, 3, c.PlacementGamesPlayed)
		assert.Equal(t, 2, c.PlacementWins)
		require.NoError(t, c.Validate())
	})

	t.Run("placed competitors stop counting", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.PlacementGamesRequired = 1

		c.RecordMatch(2, rating.Win, 5, 0, true)
		c.RecordMatch(2, rating.Win, 5, 0, true)
		assert.True(t, c.Placed)
		assert.Equal(t, 1, c.PlacementGamesPlayed)
	})

	t.Run("zero required places immediately without counting", func(t *testing.T) {
		c := NewCompetitor(1, "a")

		c.RecordMatch(2, rating.Loss, -5, 0, true)
		assert.True(t, c.Placed)
		assert.Zero(t, c.PlacementGamesPlayed)
		assert.Zero(t, c.PlacementWins)
		require.NoError(t, c.Validate())
	})
}

func TestApplyLP(t *testing.T) {
	t.Run("accumulates and floors at zero", func(t *testing.T) {
		c := NewCompetitor(1, "a")

		c.ApplyLP(40)
		assert.Equal(t, 40, c.LP)

		c.ApplyLP(-90)
		assert.Zero(t, c.LP)
		assert.False(t, c.InPromo)
	})

	t.Run("overflow starts a best of three and carries the excess", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.LP = 90

		c.ApplyLP(15)
		assert.True(t, c.InPromo)
		assert.Equal(t, 3, c.PromoGamesLeft)
		assert.Equal(t, 2, c.PromoNeeded)
		assert.Zero(t, c.PromoWins)
		assert.Equal(t, 5, c.LP, "excess over 100 must carry into the series")
	})

	t.Run("exact 100 carries nothing", func(t *testing.T) {
		c := NewCompetitor(1, "a")
		c.LP = 95

		c.ApplyLP(5)
		assert.True(t, c.InPromo)
		assert.Zero(t, c.LP)
	})
}

func TestPromoSeries(t *testing.T) {
	// enterSeries drives a competitor at the given rating into a fresh
	// promotion series through the public LP path.
	enterSeries := func(t *testing.T, ratingValue float64) *Competitor {
		t.Helper()
		c := NewCompetitor(1, "a")
		c.Rating = ratingValue
		c.Tier = rank.ForRating(ratingValue)
		c.LP = 99

		c.ApplyLP(1)
		require.True(t, c.InPromo)
		require.Zero(t, c.LP)
		return c
	}

	t.Run("two wins resolve the series early and promote", func(t *testing.T) {
		c := enterSeries(t, 1105) // Bronze IV

		c.ApplyLP(1)
		assert.True(t, c.InPromo, "series is still open after one win")

		c.ApplyLP(1)
		assert.False(t, c.InPromo)
		assert.Zero(t, c.PromoGamesLeft)
		assert.Zero(t, c.PromoNeeded)
		assert.Zero(t, c.LP)
		assert.InDelta(t, 1135, c.Rating, 1e-9)
		assert.Equal(t, rank.Descriptor{Tier: "Bronze", Division: "III", Color: rank.Color("Bronze")}, c.Tier)
		require.NoError(t, c.Validate())
	})

	t.Run("two losses resolve the series early and penalise", func(t *testing.T) {
		c := enterSeries(t, 1105)

		c.ApplyLP(0)
		assert.True(t, c.InPromo, "series is still open after one loss")

		c.ApplyLP(0)
		assert.False(t, c.InPromo)
		assert.Zero(t, c.LP, "failure penalty floors LP at zero")
		assert.InDelta(t, 1095, c.Rating, 1e-9)
		assert.Equal(t, rank.ForRating(1095), c.Tier)
	})

	t.Run("a split series runs to the last game", func(t *testing.T) {
		c := enterSeries(t, 1105)

		c.ApplyLP(1)
		c.ApplyLP(0)
		assert.True(t, c.InPromo, "one win and one loss leave the series open")

		c.ApplyLP(0)
		assert.False(t, c.InPromo)
		assert.InDelta(t, 1095, c.Rating, 1e-9)
	})

	t.Run("failure penalty respects the rating floor", func(t *testing.T) {
		c := enterSeries(t, 105)

		c.ApplyLP(0)
		c.ApplyLP(0)
		assert.Equal(t, MinRating, c.Rating)
	})

	t.Run("winning from the top division crosses tiers", func(t *testing.T) {
		c := enterSeries(t, 1095) // Iron I

		c.ApplyLP(1)
		c.ApplyLP(1)
		assert.InDelta(t, 1110, c.Rating, 1e-9)
		assert.Equal(t, rank.Descriptor{Tier: "Bronze", Division: "IV", Color: rank.Color("Bronze")}, c.Tier)
	})

	t.Run("winning at the very top only grows the rating", func(t *testing.T) {
		c := enterSeries(t, 1995) // Challenger I

		c.ApplyLP(1)
		c.ApplyLP(1)
		assert.InDelta(t, 2025, c.Rating, 1e-9)
		assert.Equal(t, rank.Descriptor{Tier: "Challenger", Division: "I", Color: rank.Color("Challenger")}, c.Tier)
	})
}

func TestApplyDecay(t *testing.T) {
	tests := []struct {
		name   string
		start  float64
		amount float64
		want   float64
	}{
		{name: "zero amount is a no-op", start: 1500, amount: 0, want: 1500},
		{name: "negative amount is a no-op", start: 1500, amount: -5, want: 1500},
		{name: "positive amount lowers the rating", start: 1500, amount: 25, want: 1475},
		{name: "decay respects the floor", start: 110, amount: 50, want: MinRating},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompetitor(1, "a")
			c.Rating = tt.start
			c.Tier = rank.ForRating(tt.start)

			c.ApplyDecay(tt.amount)
			assert.InDelta(t, tt.want, c.Rating, 1e-9)
			assert.Equal(t, rank.ForRating(tt.want), c.Tier)
		})
	}
}

func TestWinRate(t *testing.T) {
	c := NewCompetitor(1, "a")
	assert.Zero(t, c.WinRate())

	c.Wins, c.Losses = 3, 1
	assert.InDelta(t, 0.75, c.WinRate(), 1e-9)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mut   func(*Competitor)
		valid bool
	}{
		{name: "fresh competitor", mut: func(*Competitor) {}, valid: true},
		{name: "rating below floor", mut: func(c *Competitor) { c.Rating = 50 }},
		{name: "lp out of range", mut: func(c *Competitor) { c.LP = 120 }},
		{name: "lp allowed to roam during promo", mut: func(c *Competitor) {
			c.LP = 120
			c.InPromo = true
			c.PromoNeeded = 2
			c.PromoGamesLeft = 3
		}, valid: true},
		{name: "promo without series length", mut: func(c *Competitor) { c.InPromo = true }},
		{name: "placement wins above games", mut: func(c *Competitor) {
			c.PlacementGamesRequired = 5
			c.PlacementGamesPlayed = 1
			c.PlacementWins = 2
		}},
		{name: "placement games above required", mut: func(c *Competitor) { c.PlacementGamesPlayed = 1 }},
		{name: "negative counters", mut: func(c *Competitor) { c.Losses = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewCompetitor(1, "a")
			tt.mut(c)

			err := c.Validate()
			if tt.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvariant)
		})
	}
}

func TestNormalize(t *testing.T) {
	c := &Competitor{ID: 4, Rating: 1250}
	c.Normalize()

	assert.Equal(t, "Player_4", c.Name)
	assert.Equal(t, rank.ForRating(1250), c.Tier)
	assert.NotNil(t, c.History)
}
