// Command serpens is the snake game.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"golang.org/x/exp/rand"

	"serpens/config"
	"serpens/internal/launch"
	"serpens/mapfile"
	"serpens/session"
	"serpens/stats"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "serpens:", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Parse(flag.CommandLine, os.Args[1:])
	if err != nil {
		return err
	}
	log, logFile, err := cfg.Logger("serpens")
	if err != nil {
		return err
	}
	defer logFile.Close()

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	log.Debug().Uint64("seed", seed).Msg("random source")

	store := mapfile.NewStore(cfg.MapsDir, log)
	if created, err := store.EnsureStarter(cfg.DefaultMap); err != nil {
		log.Warn().Err(err).Msg("no starter map")
	} else if created {
		log.Info().Str("map", cfg.DefaultMap).Msg("created starter map")
	}

	st, err := stats.Load(filepath.Join(cfg.DataDir, "stats.json"))
	if err != nil {
		log.Warn().Err(err).Msg("stats unreadable, starting a new history")
	}

	backend, err := launch.Backend(cfg, "Serpens", log)
	if err != nil {
		return err
	}
	defer backend.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return session.NewGame(backend, session.GameOptions{
		Store:    store,
		Stats:    st,
		Settings: cfg.Settings(),
		MapName:  cfg.DefaultMap,
		Rand:     rand.New(rand.NewSource(seed)),
		Log:      log,
	}).Run(ctx)
}
