//go:build unix

package debug

import (
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sys/unix"
)

// StartMemLogger launches a goroutine that logs memory stats every interval.
// RSS is the peak resident set reported by getrusage.
func StartMemLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = 2 * time.Second
	}
	go func() {
		defer recoverLog(logger, "mem logger")
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		var rssErrLogged bool
		for range ticker.C {
			var ru unix.Rusage
			rss := uint64(0)
			if err := unix.Getrusage(unix.RUSAGE_SELF, &ru); err == nil {
				rss = maxRSSBytes(int64(ru.Maxrss))
			} else if !rssErrLogged {
				logger.Warn("memlog: getrusage failed", slog.String("err", err.Error()))
				rssErrLogged = true
			}
			logMem(logger, rss)
		}
	}()
}

// maxRSSBytes converts ru_maxrss to bytes: Darwin reports bytes, the other
// unixes kilobytes.
func maxRSSBytes(v int64) uint64 {
	if v < 0 {
		return 0
	}
	if runtime.GOOS == "darwin" || runtime.GOOS == "ios" {
		return uint64(v)
	}
	return uint64(v) * 1024
}
