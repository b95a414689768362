//go:build !windows && !unix

package debug

import (
	"log/slog"
	"time"
)

// StartMemLogger logs Go heap stats only; RSS is not available here.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		defer recoverLog(logger, "mem logger")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			logMem(logger, 0)
		}
	}()
}
