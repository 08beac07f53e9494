package cmd

import (
	"context"
	"fmt"
	"log"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/league"
)

// Init is a command to seed the store with a sample roster.
type Init struct {
	StoreOpts

	Size int `long:"size" default:"8" description:"number of sample competitors"`

	CommonOpts
}

// Execute runs the command. Idempotent: an already populated store is left
// alone.
func (i Init) Execute([]string) error {
	st, err := i.StoreOpts.Open()
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
	if len(roster) > 0 {
		log.Printf("[INFO] store already holds %d competitors, nothing to do", len(roster))
		return nil
	}

	if err := st.Save(ctx, league.SampleRoster(i.Size)); err != nil {
		return fmt.Errorf("save roster: %w", err)
	}

	log.Printf("[INFO] created %d sample competitors", i.Size)
	return nil
}
