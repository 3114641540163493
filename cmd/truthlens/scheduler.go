// cmd/truthlens/scheduler.go
package main

import (
	"github.com/robfig/cron/v3"
)

// Scheduler runs housekeeping jobs
type Scheduler struct {
	cron   *cron.Cron
	server *Server
}

// NewScheduler creates a scheduler with the log cleanup and health
// snapshot jobs registered
func NewScheduler(server *Server) (*Scheduler, error) {
	s := &Scheduler{
		cron:   cron.New(),
		server: server,
	}

	if _, err := s.cron.AddFunc("@daily", s.cleanupLogs); err != nil {
		return nil, err
	}
	if _, err := s.cron.AddFunc("@every 5m", s.logHealthSnapshot); err != nil {
		return nil, err
	}
	return s, nil
}

// Start begins running jobs in the background
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop waits for running jobs to finish
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
}

func (s *Scheduler) cleanupLogs() {
	defer RecoverFromPanic("log-cleanup")

	removed, err := Logger().CleanOldLogs()
	if err != nil {
		Logger().Warning("Log cleanup failed: %v", err)
		return
	}
	if removed > 0 {
		Logger().Info("Log cleanup removed %d file(s)", removed)
	}
}

func (s *Scheduler) logHealthSnapshot() {
	defer RecoverFromPanic("health-snapshot")

	m := collectMetrics()
	Logger().Info("Health: status=%s errors=%d heap=%.1fMB goroutines=%d",
		s.server.statusString(), s.server.errors.Count(), m.HeapAllocMB, m.GoroutineCount)
}
