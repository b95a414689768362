package main

import (
	"log/slog"
	"time"

	"github.com/soocke/sshot-go/app"
	"github.com/soocke/sshot-go/config"
	"github.com/soocke/sshot-go/debug"
)

func main() {
	boot := NewLogger(slog.LevelInfo)

	cfgPath, err := config.DefaultPath()
	if err != nil {
		boot.Warn("config dir unavailable, using working directory", "error", err)
		cfgPath = "sshot-go.json"
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		boot.Warn("config load failed, using defaults", "path", cfgPath, "error", err)
	}

	logger := NewLogger(levelFor(cfg))
	if cfg.Debug {
		debug.StartGoroutineLogger(10*time.Second, logger)
		debug.StartMemLogger(10*time.Second, logger)
	}

	application := app.NewApp("sshot-go", 560, 640, cfg, cfgPath, logger)
	application.Start()
}
