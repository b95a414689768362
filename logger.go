package main

import (
	"log/slog"
	"os"

	"github.com/soocke/sshot-go/config"
)

// NewLogger returns a structured slog.Logger with the given level.
func NewLogger(level slog.Leveler) *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: level})
	return slog.New(h)
}

func levelFor(cfg *config.Config) slog.Level {
	if cfg != nil && cfg.Debug {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}
