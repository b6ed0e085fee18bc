// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package job implements component F: the task/worker layer that dispatches
// each sub-instance from a Decomposition to the right solver, bounds it by
// wall-clock and free RAM, throttles concurrency by core tokens, and
// aggregates the results back into a single consensus.
package job

import (
	"context"
	"time"

	"github.com/shirou/gopsutil/v3/mem"

	"github.com/luxfi/kemeny/internal/logging"
	"github.com/luxfi/kemeny/internal/metrics"
)

// RamOut is the cancellation cause a Limiter attaches when it kills a task
// for dropping below the configured free-RAM floor, distinguishing it from
// an ordinary wall-clock timeout when a caller inspects context.Cause.
type RamOut struct{}

func (RamOut) Error() string { return "job: free RAM fell below the configured floor" }

// Limiter bounds a task's context by wall-clock duration and by a minimum
// free-RAM percentage, sampled once a second for the task's lifetime.
type Limiter struct {
	WallClock         time.Duration // 0 disables the wall-clock bound
	MinFreeRAMPercent float64       // 0 disables the RAM bound
	SamplePeriod      time.Duration // 0 means 1 second
	Logger            logging.Logger
	Metrics           *metrics.Metrics

	// sample is swapped out in tests to avoid depending on the host's real
	// memory state.
	sample func() (freePercent float64, err error)
}

// NewLimiter returns a Limiter wired to the given logger and metrics
// bundle. Either may be nil.
func NewLimiter(wallClock time.Duration, minFreeRAMPercent float64, log logging.Logger, m *metrics.Metrics) *Limiter {
	if log == nil {
		log = logging.NoOp()
	}
	return &Limiter{
		WallClock:         wallClock,
		MinFreeRAMPercent: minFreeRAMPercent,
		Logger:            log,
		Metrics:           m,
		sample:            sampleFreeRAM,
	}
}

func sampleFreeRAM() (float64, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return 0, err
	}
	return 100 * float64(v.Available) / float64(v.Total), nil
}

// Bound derives a child context from parent that is cancelled on whichever
// comes first: the parent being cancelled, the wall-clock elapsing, or free
// RAM dropping below the floor. The returned stop func must be called once
// the task finishes, to release the RAM-sampling goroutine.
func (l *Limiter) Bound(parent context.Context) (ctx context.Context, stop func()) {
	ctx = parent
	var cancel context.CancelCauseFunc
	ctx, cancel = context.WithCancelCause(ctx)

	var timer *time.Timer
	if l.WallClock > 0 {
		timer = time.AfterFunc(l.WallClock, func() {
			cancel(context.DeadlineExceeded)
		})
	}

	done := make(chan struct{})
	if l.MinFreeRAMPercent > 0 {
		go l.watchRAM(ctx, cancel, done)
	} else {
		close(done)
	}

	stop = func() {
		if timer != nil {
			timer.Stop()
		}
		cancel(nil)
		<-done
	}
	return ctx, stop
}

func (l *Limiter) watchRAM(ctx context.Context, cancel context.CancelCauseFunc, done chan struct{}) {
	defer close(done)
	period := l.SamplePeriod
	if period <= 0 {
		period = time.Second
	}
	ticker := time.NewTicker(period)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			free, err := l.sample()
			if err != nil {
				continue
			}
			if l.Metrics != nil {
				l.Metrics.FreeRAMPercent.Set(free)
			}
			if free < l.MinFreeRAMPercent {
				l.Logger.Warn("free RAM below floor, cancelling task")
				cancel(RamOut{})
				return
			}
		}
	}
}
