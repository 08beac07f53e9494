package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/KenyanWarriorTea/Rank-ELO-Simulator/app/web"
)

// Serve is a command to run the JSON API server.
type Serve struct {
	StoreOpts

	Addr string `long:"addr" env:"ADDR" default:":8080" description:"listen address"`

	CommonOpts
}

// Execute runs the command.
func (s Serve) Execute([]string) error {
	st, err := s.StoreOpts.Open()
	if err != nil {
		return err
	}

	srv := &web.Server{Addr: s.Addr, Store: st}

	ctx, cancel := context.WithCancelCause(context.Background())
	go func() { // catch signal and invoke graceful termination
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		sig := <-stop
		log.Printf("[WARN] caught signal: %s", sig)
		cancel(fmt.Errorf("caught signal: %s", sig))
	}()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		log.Printf("[INFO] starting api server, version %s", s.Version)
		return srv.Run(ctx)
	})
	ewg.Go(func() error {
		<-ctx.Done()
		log.Printf("[INFO] closing store")
		return st.Close()
	})

	if err := ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	return nil
}
