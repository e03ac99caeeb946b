/*
perf.go - Process performance report

PURPOSE:
  Reports uptime, memory usage, and goroutine count. The boot instant is
  application-lifetime state captured once in main and injected into the
  Handler, never read from a package-level global.

FORMATS:
  time    "HH:mm:ss.SSS"  uptime, milliseconds, no date prefix
  memory  "XX.XX"         allocated heap in MB, no unit suffix
  threads                 goroutine count (the Go unit of concurrency)
*/
package api

import (
	"fmt"
	"net/http"
	"runtime"
	"time"
)

// Performance returns the process report.
func (h *Handler) Performance(w http.ResponseWriter, r *http.Request) {
	uptime := time.Since(h.StartTime)

	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	writeJSON(w, http.StatusOK, PerformanceResponse{
		Time:    formatUptime(uptime),
		Memory:  fmt.Sprintf("%.2f", float64(m.Alloc)/(1024*1024)),
		Threads: runtime.NumGoroutine(),
	})
}

func formatUptime(d time.Duration) string {
	total := int64(d / time.Second)
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	millis := int64(d/time.Millisecond) % 1000
	return fmt.Sprintf("%02d:%02d:%02d.%03d", hours, minutes, seconds, millis)
}
