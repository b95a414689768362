package debug

// Debug goroutine metrics logger. Started only when config.Debug is true.
// Emits goroutine count and stack usage at a fixed interval.

import (
	"log/slog"
	"runtime"
	"runtime/metrics"
	"time"

	"github.com/dustin/go-humanize"
)

// StartGoroutineLogger launches a ticker that logs goroutine count and stack
// memory.
func StartGoroutineLogger(interval time.Duration, logger *slog.Logger) {
	if interval <= 0 {
		interval = time.Second
	}

	go func() {
		defer recoverLog(logger, "goroutine logger")
		t := time.NewTicker(interval)
		defer t.Stop()
		samples := []metrics.Sample{{Name: "/sched/goroutines:goroutines"}}
		for range t.C {
			metrics.Read(samples)
			goroutines := samples[0].Value.Uint64()
			var ms runtime.MemStats
			runtime.ReadMemStats(&ms)
			logger.Info("goroutine-stacks",
				slog.Uint64("goroutines", goroutines),
				slog.String("stack_inuse", humanize.Bytes(ms.StackInuse)),
				slog.String("stack_sys", humanize.Bytes(ms.StackSys)),
				slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
			)
		}
	}()
}

func recoverLog(logger *slog.Logger, what string) {
	if r := recover(); r != nil {
		logger.Error("debug logger stopped", "logger", what, "panic", r)
	}
}

// logMem emits one memstats record. rss is zero when the platform query
// failed.
func logMem(logger *slog.Logger, rss uint64) {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)
	logger.Info("memstats",
		slog.Int("goroutines", runtime.NumGoroutine()),
		slog.String("heap_alloc", humanize.Bytes(ms.HeapAlloc)),
		slog.String("heap_inuse", humanize.Bytes(ms.HeapInuse)),
		slog.String("heap_idle", humanize.Bytes(ms.HeapIdle)),
		slog.String("heap_sys", humanize.Bytes(ms.HeapSys)),
		slog.String("next_gc", humanize.Bytes(ms.NextGC)),
		slog.String("rss", humanize.Bytes(rss)),
		slog.Uint64("num_gc", uint64(ms.NumGC)),
	)
}
