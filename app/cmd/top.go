package cmd

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"github.com/syohex/go-texttable"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
)

// Top is a command to print the current leaderboard.
type Top struct {
	StoreOpts

	Count int `short:"n" long:"count" default:"10" description:"number of competitors to show"`

	CommonOpts
}

// Execute runs the command.
func (t Top) Execute([]string) error {
	st, err := t.StoreOpts.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Printf("[WARN] failed to close store: %v", err)
		}
	}()

	roster, err := st.Load(context.Background())
	if err != nil {
		return fmt.Errorf("load roster: %w", err)
	}
	if len(roster) == 0 {
		log.Printf("[WARN] no competitors loaded, run the init command first")
		return nil
	}

	fmt.Println(renderTop(roster, t.Count))
	return nil
}

// renderTop draws the leaderboard as a text table, best rating first.
func renderTop(roster []*league.Competitor, n int) string {
	tbl := &texttable.TextTable{}
	_ = tbl.SetHeader("#", "Name", "Rating", "Rank", "LP", "Streak", "Wins", "Losses", "WinRate")

	for idx, c := range league.TopByRating(roster, n) {
		_ = tbl.AddRow(
			strconv.Itoa(idx+1),
			c.Name,
			fmt.Sprintf("%.1f", c.Rating),
			fmt.Sprintf("%s %s", c.Tier.Tier, c.Tier.Division),
			strconv.Itoa(c.LP),
			strconv.Itoa(c.WinStreak),
			strconv.Itoa(c.Wins),
			strconv.Itoa(c.Losses),
			fmt.Sprintf("%.2f%%", c.WinRate()*100),
		)
	}

	return tbl.Draw()
}
