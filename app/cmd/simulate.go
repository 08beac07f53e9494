package cmd

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/sim"
	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/store"
)

// Simulate is a command to run a batch of synthetic matches.
type Simulate struct {
	StoreOpts

	Matches      int     `short:"m" long:"matches" env:"MATCHES" default:"1000" description:"number of matches to simulate"`
	K            float64 `long:"k" env:"K_FACTOR" default:"32" description:"elo k-factor"`
	Arcade       bool    `long:"arcade" env:"ARCADE" description:"arcade scoring, winners get a streak bonus"`
	StreakBonus  float64 `long:"streak-bonus" env:"STREAK_BONUS" default:"0" description:"bonus fraction per game of the current win streak"`
	DecayPerDay  float64 `long:"decay-per-day" env:"DECAY_PER_DAY" default:"0" description:"rating points lost per inactive day"`
	InactiveDays int     `long:"inactive-days" env:"INACTIVE_DAYS" default:"30" description:"days of inactivity before decay kicks in"`
	Seed         *int64  `long:"seed" env:"SEED" description:"fixed seed for reproducible batches"`
	Top          int     `short:"n" long:"top" default:"10" description:"leaderboard size to print after the batch"`

	CommonOpts
}

// Execute runs the command.
func (s Simulate) Execute([]string) error {
	st, err := s.StoreOpts.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	ctx := context.Background()
	roster, err := st.Load(ctx)
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if len(roster) == 0 {
		log.Printf("[WARN] no competitors loaded, run the init command first")
		return nil
	}

	engine, err := sim.New(roster, sim.Options{
		K:              s.K,
		ArcadeMode:     s.Arcade,
		StreakBonusPct: s.StreakBonus,
		DecayPerDay:    s.DecayPerDay,
	})
	if err != nil {
		return err
	}

	records := engine.RunBatch(s.Matches, s.Seed)
	engine.ApplyDecayPass(time.Duration(s.InactiveDays) * 24 * time.Hour)

	if err := st.Save(ctx, roster); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}
	if arch, ok := st.(store.Archiver); ok {
		if err := arch.ArchiveMatches(ctx, records); err != nil {
			return fmt.Errorf("archive matches: %w", err)
		}
	}

	log.Printf("[INFO] simulated %d matches across %d competitors", len(records), len(roster))
	fmt.Println(renderTop(roster, s.Top))
	return nil
}
