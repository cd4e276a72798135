package scheduler

import (
	"fmt"
	"sync"
	"time"

	"weather-lookup/internal/services"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

type Scheduler struct {
	sessions  *services.SessionStore
	logger    *zap.Logger
	spec      string
	cron      *cron.Cron
	entryID   cron.EntryID
	running   bool
	mu        sync.Mutex
	lastRun   time.Time
	lastSwept int
}

func NewScheduler(sessions *services.SessionStore, spec string, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		sessions: sessions,
		logger:   logger,
		spec:     spec,
		cron:     cron.New(),
	}
}

func (s *Scheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return nil
	}

	id, err := s.cron.AddFunc(s.spec, s.runSweep)
	if err != nil {
		return fmt.Errorf("invalid sweep schedule %q: %w", s.spec, err)
	}
	s.entryID = id
	s.cron.Start()
	s.running = true

	s.logger.Info("Scheduler started",
		zap.String("spec", s.spec),
		zap.Time("next_run", s.cron.Entry(id).Next))

	return nil
}

func (s *Scheduler) runSweep() {
	startTime := time.Now()
	swept := s.sessions.Sweep()

	s.mu.Lock()
	s.lastRun = startTime
	s.lastSwept = swept
	s.mu.Unlock()

	s.logger.Debug("Session sweep completed",
		zap.Int("swept", swept),
		zap.Int("remaining", s.sessions.Len()),
		zap.Duration("duration", time.Since(startTime)))
}

func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	s.mu.Unlock()

	s.logger.Info("Stopping scheduler")
	<-s.cron.Stop().Done()
}

// ForceRun sweeps immediately, outside the schedule.
func (s *Scheduler) ForceRun() {
	s.logger.Info("Manually triggering session sweep")
	s.runSweep()
}

func (s *Scheduler) GetStatus() map[string]interface{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	status := map[string]interface{}{
		"running":    s.running,
		"spec":       s.spec,
		"last_run":   s.lastRun,
		"last_swept": s.lastSwept,
	}
	if s.running {
		status["next_run"] = s.cron.Entry(s.entryID).Next
	}
	return status
}
