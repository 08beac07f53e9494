package rank

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForRating(t *testing.T) {
	tests := []struct {
		name     string
		rating   float64
		tier     string
		division string
	}{
		{name: "clamps below the table", rating: 250, tier: "Iron", division: "IV"},
		{name: "bottom of the lowest tier", rating: 1000, tier: "Iron", division: "IV"},
		{name: "top quarter of a tier", rating: 1095, tier: "Iron", division: "I"},
		{name: "first rating of the next tier", rating: 1100, tier: "Bronze", division: "IV"},
		{name: "middle of gold", rating: 1350, tier: "Gold", division: "II"},
		{name: "diamond has a wider span", rating: 1597.5, tier: "Diamond", division: "III"},
		{name: "top tier keeps divisions", rating: 1995, tier: "Challenger", division: "I"},
		{name: "clamps above the synthetic span", rating: 5000, tier: "Challenger", division: "I"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := ForRating(tt.rating)
			assert.Equal(t, tt.tier, d.Tier)
			assert.Equal(t, tt.division, d.Division)
			assert.Equal(t, Color(tt.tier), d.Color)
		})
	}
}

func TestForRatingMonotonic(t *testing.T) {
	prevTier, prevDiv := -1, -1
	for r := 100.0; r <= 2400; r += 0.5 {
		d := ForRating(r)
		ti, di := TierIndex(d.Tier), DivisionIndex(d.Division)
		forward := ti > prevTier || (ti == prevTier && di >= prevDiv)
		require.True(t, forward, "rank went backwards at rating %v: %+v", r, d)
		prevTier, prevDiv = ti, di
	}
}

func TestSpanAt(t *testing.T) {
	assert.Equal(t, 100.0, SpanAt(0))
	assert.Equal(t, 150.0, SpanAt(TierIndex("Diamond")))
	assert.Equal(t, topTierSpan, SpanAt(len(Table)-1))
}

func TestColor(t *testing.T) {
	assert.Equal(t, "#ffd700", Color("Gold"))
	assert.Equal(t, defaultColor, Color("Obsidian"))
}

func TestIndexFallbacks(t *testing.T) {
	assert.Equal(t, 0, TierIndex("Obsidian"))
	assert.Equal(t, 3, DivisionIndex("I"))
	assert.Equal(t, 0, DivisionIndex("V"))
}
