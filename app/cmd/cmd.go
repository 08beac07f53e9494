package cmd

import (
	"fmt"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/store"
)

// CommonOpts contains information that is common for all commands.
type CommonOpts struct {
	Version string
}

// Set sets the common options.
func (c *CommonOpts) Set(cc CommonOpts) {
	c.Version = cc.Version
}

// StoreOpts is the persistence configuration shared by all commands.
type StoreOpts struct {
	Driver   string `long:"driver" env:"DRIVER" default:"file" choice:"file" choice:"sqlite" choice:"bolt" description:"storage backend"`
	Location string `long:"loc" env:"LOCATION" default:"data/players.json" description:"store location, a file path or DSN"`
}

// Open opens the configured store.
func (o StoreOpts) Open() (store.Store, error) {
	s, err := store.Open(o.Driver, o.Location)
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}
	return s, nil
}
