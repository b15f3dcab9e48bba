// Command mapmaker edits the maps played by serpens.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"serpens/config"
	"serpens/editor"
	"serpens/internal/launch"
	"serpens/mapfile"
	"serpens/session"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "mapmaker:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	log, logFile, err := cfg.Logger("mapmaker")
	if err != nil {
		return err
	}
	defer logFile.Close()

	store := mapfile.NewStore(cfg.MapsDir, log)
	ed := editor.New(store, log)
	if names, err := store.List(); err == nil {
		log.Info().Strs("maps", names).Msg("maps available")
	}

	backend, err := launch.Backend(cfg, "Serpens map maker", log)
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return session.NewEditor(backend, ed, log).Run(ctx)
}
