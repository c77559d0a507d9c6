package alerts

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Scheduler runs alert rule evaluation on a cron schedule.
type Scheduler struct {
	cron   *cron.Cron
	logger *zap.Logger
}

// NewScheduler creates a scheduler that evaluates all rules per spec.
func NewScheduler(spec string, engine *Engine, logger *zap.Logger) (*Scheduler, error) {
	c := cron.New()
	_, err := c.AddFunc(spec, func() {
		engine.EvaluateAll(context.Background())
	})
	if err != nil {
		return nil, fmt.Errorf("invalid alert schedule %q: %w", spec, err)
	}
	return &Scheduler{cron: c, logger: logger}, nil
}

// Start begins scheduled evaluation.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Alert scheduler started")
}

// Stop halts the scheduler and waits for a running evaluation to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("Alert scheduler stopped")
}
