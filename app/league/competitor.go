package league

import (
	"errors"
	"fmt"
	"time"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rank"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/rating"
)

const (
	// MinRating is the hard floor: no mutation may push a competitor below it.
	MinRating = 100.0
	// DefaultRating is the starting rating for fresh competitors.
	DefaultRating = 1500.0
)

// promoBestOf is the series length started when LP rolls over 100.
const promoBestOf = 3

// Promotion failure penalties.
const (
	promoFailLPPenalty     = 50
	promoFailRatingPenalty = 10.0
)

// ErrInvariant reports competitor state that violates the ladder rules.
var ErrInvariant = errors.New("competitor state invariant violated")

// HistoryEntry is one line of a competitor's match log.
type HistoryEntry struct {
	Time     time.Time `json:"time"`
	Opponent int64     `json:"opponent"`
	Result   float64   `json:"result"`
	Delta    float64   `json:"delta"`
}

// Competitor is a single ladder participant. All mutations go through
// RecordMatch, ApplyLP and ApplyDecay; the tier descriptor always follows
// the rating and is never authoritative on its own.
type Competitor struct {
	ID         int64           `json:"id"`
	Name       string          `json:"name"`
	Rating     float64         `json:"rating"`
	WinStreak  int             `json:"win_streak"`
	LastActive time.Time       `json:"last_active"`
	History    []HistoryEntry  `json:"history"`
	Tier       rank.Descriptor `json:"tier"`

	Placed                 bool `json:"placed"`
	PlacementGamesPlayed   int  `json:"placement_games_played"`
	PlacementGamesRequired int  `json:"placement_games_required"`
	PlacementWins          int  `json:"placement_wins"`

	LP             int  `json:"lp"`
	InPromo        bool `json:"in_promo"`
	PromoGamesLeft int  `json:"promo_games_left"`
	PromoWins      int  `json:"promo_wins"`
	PromoNeeded    int  `json:"promo_needed"`

	Wins   int `json:"wins"`
	Losses int `json:"losses"`
}

// NewCompetitor returns a fresh competitor with the default rating and the
// tier derived from it.
func NewCompetitor(id int64, name string) *Competitor {
	return &Competitor{
		ID:         id,
		Name:       name,
		Rating:     DefaultRating,
		LastActive: time.Now(),
		Tier:       rank.ForRating(DefaultRating),
	}
}

// RecordMatch applies the outcome of one match: streak and win/loss
// counters, the rating delta floored at MinRating, optional LP movement,
// optional placement progress and exactly one history entry. A draw resets
// the streak and moves neither counter.
func (c *Competitor) RecordMatch(opponentID int64, result, delta float64, lpChange int, placement bool) {
	c.LastActive = time.Now()

	switch result {
	case rating.Win:
		c.WinStreak++
		c.Wins++
	case rating.Loss:
		c.WinStreak = 0
		c.Losses++
	default:
		c.WinStreak = 0
	}

	c.Rating = max(MinRating, c.Rating+delta)

	if lpChange != 0 {
		c.ApplyLP(lpChange)
	}

	if placement && !c.Placed {
		c.recordPlacement(result)
	}

	c.Tier = rank.ForRating(c.Rating)

	c.History = append(c.History, HistoryEntry{
		Time:     c.LastActive,
		Opponent: opponentID,
		Result:   result,
		Delta:    delta,
	})
}

// recordPlacement advances the calibration counters. A competitor whose
// requirement is zero is placed outright so the counters never overrun it.
func (c *Competitor) recordPlacement(result float64) {
	if c.PlacementGamesRequired <= 0 {
		c.Placed = true
		return
	}

	c.PlacementGamesPlayed++
	if result == rating.Win {
		c.PlacementWins++
	}
	if c.PlacementGamesPlayed >= c.PlacementGamesRequired {
		c.Placed = true
	}
}

// ApplyLP moves the league-point counter. Outside a promotion series points
// accumulate toward 100; crossing it starts a best-of-three with the excess
// carried over. Inside a series only strictly positive amounts count as
// series wins, and the series resolves as soon as its outcome is decided.
func (c *Competitor) ApplyLP(amount int) {
	if c.InPromo {
		if amount > 0 {
			c.PromoWins++
		}
		if c.PromoGamesLeft > 0 {
			c.PromoGamesLeft--
		}
		if c.PromoWins >= c.PromoNeeded || c.PromoWins+c.PromoGamesLeft < c.PromoNeeded {
			c.resolvePromo()
		}
		return
	}

	c.LP += amount
	if c.LP < 0 {
		c.LP = 0
	}

	if c.LP >= 100 {
		extra := c.LP - 100
		c.enterPromo(promoBestOf)
		c.LP = extra
	}
}

// enterPromo begins a promotion series of the given length.
func (c *Competitor) enterPromo(bestOf int) {
	c.InPromo = true
	c.PromoGamesLeft = bestOf
	c.PromoWins = 0
	c.PromoNeeded = bestOf/2 + 1
}

// resolvePromo closes the running series. Success promotes and zeroes LP;
// failure costs LP and rating points, both floored.
func (c *Competitor) resolvePromo() {
	success := c.PromoWins >= c.PromoNeeded

	c.InPromo = false
	c.PromoGamesLeft = 0
	c.PromoWins = 0
	c.PromoNeeded = 0

	if success {
		c.promoteToNextDivision()
		c.LP = 0
	} else {
		c.LP -= promoFailLPPenalty
		if c.LP < 0 {
			c.LP = 0
		}
		c.Rating = max(MinRating, c.Rating-promoFailRatingPenalty)
	}

	c.Tier = rank.ForRating(c.Rating)
}

// promoteToNextDivision lifts the competitor one division up, crossing into
// the next tier when the current one is exhausted. The rating is reseeded
// just above the new division's floor; at the very top it simply grows.
func (c *Competitor) promoteToNextDivision() {
	tierIdx := rank.TierIndex(c.Tier.Tier)
	divIdx := rank.DivisionIndex(c.Tier.Division)

	switch {
	case divIdx < len(rank.Divisions)-1:
		part := rank.SpanAt(tierIdx) / 4.0
		c.Rating = rank.Table[tierIdx].Min + part*float64(divIdx+1) + 10
		c.Tier.Division = rank.Divisions[divIdx+1]
	case tierIdx+1 < len(rank.Table):
		next := rank.Table[tierIdx+1]
		c.Rating = next.Min + 10
		c.Tier = rank.Descriptor{Tier: next.Name, Division: rank.Divisions[0], Color: rank.Color(next.Name)}
	default:
		c.Rating += 30
	}
}

// ApplyDecay lowers the rating by the given amount, floored at MinRating.
// Zero or negative amounts do nothing.
func (c *Competitor) ApplyDecay(amount float64) {
	if amount <= 0 {
		return
	}
	c.Rating = max(MinRating, c.Rating-amount)
	c.Tier = rank.ForRating(c.Rating)
}

// WinRate returns the fraction of wins among decided matches.
func (c *Competitor) WinRate() float64 {
	total := c.Wins + c.Losses
	if total == 0 {
		return 0
	}
	return float64(c.Wins) / float64(total)
}

// Validate checks the cross-field rules every stored or constructed
// competitor must satisfy.
func (c *Competitor) Validate() error {
	switch {
	case c.Rating < MinRating:
		return fmt.Errorf("%w: rating %.2f below minimum", ErrInvariant, c.Rating)
	case c.WinStreak < 0:
		return fmt.Errorf("%w: negative win streak %d", ErrInvariant, c.WinStreak)
	case !c.InPromo && (c.LP < 0 || c.LP >= 100):
		return fmt.Errorf("%w: lp %d out of range", ErrInvariant, c.LP)
	case c.InPromo && (c.PromoNeeded <= 0 || c.PromoGamesLeft < 0 || c.PromoWins < 0):
		return fmt.Errorf("%w: malformed promotion series", ErrInvariant)
	case c.PlacementWins > c.PlacementGamesPlayed:
		return fmt.Errorf("%w: placement wins exceed games played", ErrInvariant)
	case c.PlacementGamesPlayed > c.PlacementGamesRequired:
		return fmt.Errorf("%w: placement games exceed required", ErrInvariant)
	case c.Wins < 0 || c.Losses < 0:
		return fmt.Errorf("%w: negative match counters", ErrInvariant)
	}
	return nil
}

// Normalize recomputes derived state after loading: the tier always follows
// the stored rating, an empty name falls back to a generated one, and the
// history is never nil.
func (c *Competitor) Normalize() {
	c.Tier = rank.ForRating(c.Rating)
	if c.Name == "" {
		c.Name = fmt.Sprintf("Player_%d", c.ID)
	}
	if c.History == nil {
		c.History = []HistoryEntry{}
	}
}
