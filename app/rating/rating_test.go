package rating

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpectedScore(t *testing.T) {
	tests := []struct {
		name string
		a, b float64
		want float64
	}{
		{name: "equal ratings", a: 1500, b: 1500, want: 0.5},
		{name: "400 points ahead", a: 1900, b: 1500, want: 10.0 / 11.0},
		{name: "400 points behind", a: 1500, b: 1900, want: 1.0 / 11.0},
		{name: "heavy favourite", a: 2400, b: 1200, want: 0.999001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExpectedScore(tt.a, tt.b), 1e-6)
		})
	}
}

func TestExpectedScoreComplement(t *testing.T) {
	pairs := [][2]float64{
		{1500, 1500},
		{1000, 2000},
		{100, 3000},
		{1234.5, 1821.25},
	}

	for _, p := range pairs {
		sum := ExpectedScore(p[0], p[1]) + ExpectedScore(p[1], p[0])
		assert.InDelta(t, 1.0, sum, 1e-9, "complement broken for %v", p)
	}
}

func TestDelta(t *testing.T) {
	tests := []struct {
		name        string
		a, b        float64
		result      float64
		streakBonus float64
		want        float64
	}{
		{name: "even win", a: 1500, b: 1500, result: Win, want: 16},
		{name: "even loss", a: 1500, b: 1500, result: Loss, want: -16},
		{name: "even draw", a: 1500, b: 1500, result: Draw, want: 0},
		{name: "bonus scales a win", a: 1500, b: 1500, result: Win, streakBonus: 0.5, want: 24},
		{name: "bonus leaves a loss alone", a: 1500, b: 1500, result: Loss, streakBonus: 0.5, want: -16},
		{name: "upset win pays more", a: 1500, b: 1900, result: Win, want: 32 * (1 - 1.0/11.0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Delta(tt.a, tt.b, tt.result, DefaultK, tt.streakBonus)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestPairedDeltaZeroSum(t *testing.T) {
	for _, result := range []float64{Win, Draw, Loss} {
		deltaA, deltaB := PairedDelta(1620, 1480, result, DefaultK, 0.3, 0.7)
		assert.InDelta(t, 0, deltaA+deltaB, 1e-9, "deltas must cancel out for result %v", result)
	}
}
