// Package poller tracks a pipeline execution until it reaches a terminal
// status. Automatic polling is a cooperative loop: one describe, a fixed
// delay, repeat. It stops on a terminal status or on the first transport
// failure, after which only manual checks can resolve the true remote state.
package poller

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"smartfill/internal/domain"
	"smartfill/internal/fault"
	"smartfill/internal/integrations/pipeline"
)

// DefaultInterval is the delay between automatic status checks.
const DefaultInterval = 2 * time.Second

// Poller re-fetches execution status from the orchestration service.
type Poller struct {
	pipe     pipeline.Describer
	interval time.Duration

	// wait is swapped out in tests to count scheduled re-polls.
	wait func(ctx context.Context, d time.Duration) error
}

// New creates a Poller. A non-positive interval falls back to
// DefaultInterval.
func New(pipe pipeline.Describer, interval time.Duration) (*Poller, error) {
	if pipe == nil {
		return nil, errors.New("poller: pipeline must not be nil")
	}
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{pipe: pipe, interval: interval, wait: sleep}, nil
}

// Interval returns the configured delay between automatic checks.
func (p *Poller) Interval() time.Duration {
	return p.interval
}

// Check performs one status fetch. It has no side effects of its own, so
// repeated checks of an already-terminal execution are idempotent.
func (p *Poller) Check(ctx context.Context, handle domain.ExecutionHandle) (domain.Execution, error) {
	exec, err := p.pipe.Describe(ctx, handle.ARN)
	if err != nil {
		return domain.Execution{ARN: handle.ARN, Status: handle.Status},
			fault.New(fault.KindTransport, "describe_execution", err)
	}
	return exec, nil
}

// Watch polls until the execution reaches a terminal status, reporting every
// fetched state through onUpdate. A transport failure ends the watch with the
// last known state and a transport fault; the remote execution keeps running
// server-side either way.
func (p *Poller) Watch(ctx context.Context, handle domain.ExecutionHandle, onUpdate func(domain.Execution)) (domain.Execution, error) {
	for {
		exec, err := p.Check(ctx, handle)
		if err != nil {
			slog.Warn("status check failed, disabling automatic polling", "arn", handle.ARN, "err", err)
			return exec, err
		}

		handle = exec.Handle()
		if onUpdate != nil {
			onUpdate(exec)
		}
		if exec.Status.Terminal() {
			return exec, nil
		}

		if err := p.wait(ctx, p.interval); err != nil {
			return exec, fault.New(fault.KindTransport, "watch_cancelled", err)
		}
	}
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
