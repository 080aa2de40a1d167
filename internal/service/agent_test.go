package service

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"istqb-quiz/internal/domain"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type countingRunner struct {
	passes atomic.Int32
}

func (r *countingRunner) RunPass(context.Context) domain.PassReport {
	r.passes.Add(1)
	return domain.PassReport{Listed: 1, Processed: 1}
}

func TestNewAgent_DefaultInterval(t *testing.T) {
	a := NewAgent(&countingRunner{}, 0, nil)
	assert.Equal(t, 10*time.Minute, a.interval)
}

func TestAgent_RunOnce(t *testing.T) {
	runner := &countingRunner{}
	a := NewAgent(runner, time.Minute, zap.NewNop())

	report := a.RunOnce(context.Background())

	assert.Equal(t, 1, report.Processed)
	assert.EqualValues(t, 1, runner.passes.Load())
}

func TestAgent_Run_StopsOnCancel(t *testing.T) {
	runner := &countingRunner{}
	a := NewAgent(runner, time.Minute, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	var sleeps []time.Duration
	a.sleep = func(ctx context.Context, d time.Duration) error {
		sleeps = append(sleeps, d)
		if len(sleeps) == 3 {
			cancel()
		}
		return ctx.Err()
	}

	passes := a.Run(ctx)

	assert.Equal(t, 3, passes)
	assert.EqualValues(t, 3, runner.passes.Load())
	assert.Equal(t, []time.Duration{time.Minute, time.Minute, time.Minute}, sleeps)
}

func TestAgent_Run_CancelledBeforeStart(t *testing.T) {
	runner := &countingRunner{}
	a := NewAgent(runner, time.Minute, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Zero(t, a.Run(ctx))
	assert.Zero(t, runner.passes.Load())
}

func TestSleepContext(t *testing.T) {
	assert.NoError(t, sleepContext(context.Background(), 0))
	assert.NoError(t, sleepContext(context.Background(), time.Millisecond))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sleepContext(ctx, time.Hour), context.Canceled)
}
