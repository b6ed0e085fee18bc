// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package job

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLimiterCancelsOnLowRAM(t *testing.T) {
	l := NewLimiter(0, 10, nil, nil)
	l.SamplePeriod = time.Millisecond
	l.sample = func() (float64, error) { return 1, nil }

	ctx, stop := l.Bound(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		require.IsType(t, RamOut{}, context.Cause(ctx))
	case <-time.After(time.Second):
		t.Fatal("limiter did not cancel on low free RAM")
	}
}

func TestLimiterNoLimitsNeverCancels(t *testing.T) {
	l := NewLimiter(0, 0, nil, nil)
	ctx, stop := l.Bound(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		t.Fatal("limiter cancelled with no configured bounds")
	case <-time.After(20 * time.Millisecond):
	}
}

func TestLimiterWallClockCancels(t *testing.T) {
	l := NewLimiter(10*time.Millisecond, 0, nil, nil)
	ctx, stop := l.Bound(context.Background())
	defer stop()

	select {
	case <-ctx.Done():
		require.Equal(t, context.DeadlineExceeded, context.Cause(ctx))
	case <-time.After(time.Second):
		t.Fatal("limiter did not cancel on wall-clock timeout")
	}
}
