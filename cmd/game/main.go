package main

import (
	"bufio"
	"fmt"
	"os"

	"golang.org/x/term"

	"github.com/tomz197/invaders/internal/config"
	"github.com/tomz197/invaders/internal/highscore"
	"github.com/tomz197/invaders/internal/logging"
	"github.com/tomz197/invaders/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(config.GetEnv("INVADERS_CONFIG", ""))
	if err != nil {
		return err
	}

	// The terminal belongs to the game, so logs only go to a file.
	logger := logging.Discard()
	if cfg.Log.File != "" {
		f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("failed to open log file: %w", err)
		}
		defer f.Close()
		logger = logging.New(f, cfg.Log.Level)
	}

	store, err := highscore.New(cfg.HighScore)
	if err != nil {
		return fmt.Errorf("failed to open high score store: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("failed to close high score store", "err", err)
		}
	}()

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	reader := bufio.NewReader(os.Stdin)
	return loop.Run(reader, os.Stdout, loop.RunOptions{
		Store:  store,
		Logger: logger,
		Seed:   cfg.Game.Seed,
		FPS:    cfg.Game.FPS,
	})
}
