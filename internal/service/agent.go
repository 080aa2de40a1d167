package service

import (
	"context"
	"time"

	"istqb-quiz/internal/domain"

	"go.uber.org/zap"
)

const defaultAgentInterval = 10 * time.Minute

// passRunner is the part of the pipeline the agent drives.
type passRunner interface {
	RunPass(ctx context.Context) domain.PassReport
}

// Agent runs pipeline passes on a fixed interval.
type Agent struct {
	pipeline passRunner
	interval time.Duration
	logger   *zap.Logger
	sleep    func(ctx context.Context, d time.Duration) error
}

func NewAgent(pipeline passRunner, interval time.Duration, logger *zap.Logger) *Agent {
	if interval <= 0 {
		interval = defaultAgentInterval
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Agent{pipeline: pipeline, interval: interval, logger: logger, sleep: sleepContext}
}

// RunOnce executes a single pass.
func (a *Agent) RunOnce(ctx context.Context) domain.PassReport {
	return a.pipeline.RunPass(ctx)
}

// Run alternates passes and sleeps until ctx is cancelled. It returns the number of
// passes completed.
func (a *Agent) Run(ctx context.Context) int {
	a.logger.Info("Agent started", zap.Duration("interval", a.interval))
	passes := 0
	for ctx.Err() == nil {
		a.RunOnce(ctx)
		passes++
		if err := a.sleep(ctx, a.interval); err != nil {
			break
		}
	}
	a.logger.Info("Agent stopped", zap.Int("passes", passes))
	return passes
}
