// cmd/truthlens/health.go
package main

import (
	"net/http"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
)

// Metrics holds process and host memory figures
type Metrics struct {
	Timestamp          time.Time `json:"timestamp"`
	HeapAllocMB        float64   `json:"heap_alloc_mb"`
	GoroutineCount     int       `json:"goroutine_count"`
	SystemMemoryPct    float64   `json:"system_memory_percent"`
	SystemMemoryUsedMB float64   `json:"system_memory_used_mb"`
}

// collectMetrics gathers runtime and host memory metrics
func collectMetrics() Metrics {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	m := Metrics{
		Timestamp:      time.Now(),
		HeapAllocMB:    float64(ms.HeapAlloc) / 1024 / 1024,
		GoroutineCount: runtime.NumGoroutine(),
	}

	if vm, err := mem.VirtualMemory(); err == nil {
		m.SystemMemoryPct = vm.UsedPercent
		m.SystemMemoryUsedMB = float64(vm.Used) / 1024 / 1024
	} else {
		Logger().Debug("Failed to read system memory: %v", err)
	}

	return m
}

// statusString summarizes server health
func (s *Server) statusString() string {
	if s.cfg.LLM.APIKey == "" {
		return "degraded"
	}
	if s.errors.Count() > 0 {
		return "warning"
	}
	return "healthy"
}

// healthReport builds the healthcheck payload
func (s *Server) healthReport() map[string]interface{} {
	return map[string]interface{}{
		"status":           s.statusString(),
		"version":          s.cfg.Version,
		"uptime":           FormatDuration(time.Since(s.startTime)),
		"model":            s.cfg.LLM.Model,
		"apiKeyConfigured": s.cfg.LLM.APIKey != "",
		"errorCount":       s.errors.Count(),
		"recentErrors":     s.errors.GetRecentErrors(5),
		"metrics":          collectMetrics(),
		"logger":           Logger().GetStats(),
	}
}

// handleHealthCheck reports server status as JSON
func (s *Server) handleHealthCheck(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, s.healthReport())
}
