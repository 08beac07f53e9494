package sim

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rating"
)

// ErrInvalidOptions flags configuration that cannot drive a batch.
var ErrInvalidOptions = errors.New("invalid simulation options")

// Options tunes a batch run.
type Options struct {
	K              float64
	ArcadeMode     bool
	StreakBonusPct float64
	DecayPerDay    float64
}

// Validate checks the options before a batch starts.
func (o Options) Validate() error {
	switch {
	case o.K <= 0:
		return fmt.Errorf("%w: k-factor must be positive, got %v", ErrInvalidOptions, o.K)
	case o.StreakBonusPct < 0:
		return fmt.Errorf("%w: streak bonus must not be negative, got %v", ErrInvalidOptions, o.StreakBonusPct)
	case o.DecayPerDay < 0:
		return fmt.Errorf("%w: decay must not be negative, got %v", ErrInvalidOptions, o.DecayPerDay)
	}
	return nil
}

// MatchRecord is the outcome of one simulated match. Ratings are taken after
// both sides were updated.
type MatchRecord struct {
	Time    time.Time `json:"time"`
	PlayerA int64     `json:"player_a"`
	PlayerB int64     `json:"player_b"`
	ResultA float64   `json:"result_a"`
	DeltaA  float64   `json:"delta_a"`
	RatingA float64   `json:"rating_a"`
	RatingB float64   `json:"rating_b"`
}

// Engine runs synthetic matches over a roster. It owns its randomness: the
// process-global source is never touched, so seeded runs stay reproducible.
type Engine struct {
	roster []*league.Competitor
	opts   Options
	rng    *rand.Rand
}

// New builds an engine over the given roster.
func New(roster []*league.Competitor, opts Options) (*Engine, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	return &Engine{
		roster: roster,
		opts:   opts,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}, nil
}

// PickPair selects two distinct competitors uniformly at random. ok is false
// when the roster holds fewer than two.
func (e *Engine) PickPair() (a, b *league.Competitor, ok bool) {
	if len(e.roster) < 2 {
		return nil, nil, false
	}

	i := e.rng.Intn(len(e.roster))
	j := e.rng.Intn(len(e.roster) - 1)
	if j >= i {
		j++
	}
	return e.roster[i], e.roster[j], true
}

// Simulate plays one match between a and b: the winner is sampled from the
// expected score, both sides are updated in place, and the record carries
// the ratings after the update. The synthetic ladder generates no draws and
// moves no LP or placement progress.
func (e *Engine) Simulate(a, b *league.Competitor) MatchRecord {
	p := rating.ExpectedScore(a.Rating, b.Rating)

	resultA, resultB := rating.Loss, rating.Win
	if e.rng.Float64() < p {
		resultA, resultB = rating.Win, rating.Loss
	}

	var bonusA, bonusB float64
	if e.opts.ArcadeMode {
		bonusA = e.opts.StreakBonusPct * float64(a.WinStreak)
		bonusB = e.opts.StreakBonusPct * float64(b.WinStreak)
	}

	deltaA, deltaB := rating.PairedDelta(a.Rating, b.Rating, resultA, e.opts.K, bonusA, bonusB)

	a.RecordMatch(b.ID, resultA, deltaA, 0, false)
	b.RecordMatch(a.ID, resultB, deltaB, 0, false)

	return MatchRecord{
		Time:    time.Now(),
		PlayerA: a.ID,
		PlayerB: b.ID,
		ResultA: resultA,
		DeltaA:  deltaA,
		RatingA: a.Rating,
		RatingB: b.Rating,
	}
}

// RunBatch simulates up to n random matches and returns their records in
// order. A non-nil seed makes the whole batch reproducible. The batch stops
// short only when the roster cannot produce a pair.
func (e *Engine) RunBatch(n int, seed *int64) []MatchRecord {
	if seed != nil {
		e.rng = rand.New(rand.NewSource(*seed))
	}

	records := make([]MatchRecord, 0, max(n, 0))
	for range n {
		a, b, ok := e.PickPair()
		if !ok {
			break
		}
		records = append(records, e.Simulate(a, b))
	}
	return records
}

// ApplyDecayPass decays every competitor inactive for longer than the given
// window, proportionally to the days elapsed. A zero decay rate makes the
// pass a no-op.
func (e *Engine) ApplyDecayPass(inactiveFor time.Duration) {
	if e.opts.DecayPerDay <= 0 {
		return
	}

	now := time.Now()
	for _, c := range e.roster {
		idle := now.Sub(c.LastActive)
		if idle > inactiveFor {
			days := idle.Hours() / 24
			c.ApplyDecay(e.opts.DecayPerDay * days)
		}
	}
}
