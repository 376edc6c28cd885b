// Package scheduler drives watch mode: it re-runs the analysis pipeline on
// a cron schedule so reports stay current as new bars arrive.
package scheduler

import (
	"fmt"

	"github.com/robfig/cron/v3"

	"DCSentinel/internal/logging"
)

// RunFunc is the analysis pipeline to execute on each tick.
type RunFunc func() error

// Scheduler manages the watch-mode cron task.
type Scheduler struct {
	Cron *cron.Cron
	Run  RunFunc
	Log  logging.Logger
}

// NewScheduler creates a new Scheduler around the given pipeline.
func NewScheduler(run RunFunc, log logging.Logger) *Scheduler {
	if log == nil {
		log = logging.Nop{}
	}
	return &Scheduler{
		Cron: cron.New(cron.WithSeconds()),
		Run:  run,
		Log:  log,
	}
}

// Register adds the pipeline under the given 6-field cron spec.
func (s *Scheduler) Register(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.tick); err != nil {
		return fmt.Errorf("register analysis task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Scheduler) Start() {
	s.Cron.Start()
	s.Log.Infof("scheduler started")
}

// Stop stops the cron scheduler gracefully.
func (s *Scheduler) Stop() {
	s.Cron.Stop()
	s.Log.Infof("scheduler stopped")
}

// RunNow executes the pipeline immediately (for manual trigger / run-on-start).
func (s *Scheduler) RunNow() {
	s.tick()
}

func (s *Scheduler) tick() {
	s.Log.Infof("running scheduled analysis")
	if err := s.Run(); err != nil {
		s.Log.Warnf("scheduled analysis failed: %v", err)
	}
}
