// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package job

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/internal/logging"
	"github.com/luxfi/kemeny/internal/metrics"
	"github.com/luxfi/kemeny/job/backend"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/reduce"
	"github.com/luxfi/kemeny/solver"
)

// DefaultCoreTokens is the default concurrency cap on simultaneous solves,
// matching the original tool's default worker-pool size.
const DefaultCoreTokens = 4

// Task is one sub-instance solve request: an election, the candidate subset
// to solve over, and the modus controlling which solver handles it.
type Task struct {
	ID         string
	Candidates model.CandidateSet
	Modus      int
}

// NewTask returns a Task with a freshly generated ID.
func NewTask(candidates model.CandidateSet, modus int) Task {
	return Task{ID: uuid.NewString(), Candidates: candidates, Modus: modus}
}

// Runner dispatches Tasks to the right Solver, under the core-token
// semaphore and the wall-clock/RAM Limiter, streaming progress and
// updating Metrics as it goes.
type Runner struct {
	Limiter   *Limiter
	Semaphore *semaphore.Weighted
	Streamer  *StatusStreamer
	Metrics   *metrics.Metrics
	Logger    logging.Logger
	Backend   backend.Backend // used only when a task's modus is negative
}

// NewRunner returns a Runner with coreTokens simultaneous solve slots.
// coreTokens <= 0 means DefaultCoreTokens. Any of the other dependencies
// may be nil.
func NewRunner(coreTokens int, limiter *Limiter, streamer *StatusStreamer, m *metrics.Metrics, log logging.Logger, be backend.Backend) *Runner {
	if coreTokens <= 0 {
		coreTokens = DefaultCoreTokens
	}
	if log == nil {
		log = logging.NoOp()
	}
	return &Runner{
		Limiter:   limiter,
		Semaphore: semaphore.NewWeighted(int64(coreTokens)),
		Streamer:  streamer,
		Metrics:   m,
		Logger:    log,
		Backend:   be,
	}
}

// Run solves a single Task, acquiring a core token, applying the limiter's
// bound, and returning the solver's Result.
func (r *Runner) Run(ctx context.Context, e *election.Election, t Task) solver.Result {
	if err := r.Semaphore.Acquire(ctx, 1); err != nil {
		return solver.Result{Score: solver.CancelledScore}
	}
	defer r.Semaphore.Release(1)

	taskCtx := ctx
	stop := func() {}
	if r.Limiter != nil {
		taskCtx, stop = r.Limiter.Bound(ctx)
	}
	defer stop()

	log := r.Logger.With(zap.String("task", t.ID), zap.Int("candidates", t.Candidates.Len()), zap.Int("modus", t.Modus))
	if r.Streamer != nil {
		r.Streamer.Started(t.ID, t.Candidates, t.Modus)
	}
	if r.Metrics != nil {
		r.Metrics.TasksStarted.Inc()
	}

	start := time.Now()
	result := r.solve(taskCtx, e, t)
	elapsed := time.Since(start)

	if r.Metrics != nil {
		r.Metrics.SolveDuration.Observe(elapsed.Seconds())
		if result.Cancelled() {
			r.Metrics.TasksCancelled.Inc()
		} else {
			r.Metrics.TasksCompleted.Inc()
		}
	}
	if r.Streamer != nil {
		r.Streamer.Finished(t.ID, elapsed, result.Score, result.Cancelled())
	}
	if result.Cancelled() {
		log.Warn("task cancelled")
	} else {
		log.Info("task finished", zap.Int("score", result.Score))
	}
	return result
}

func (r *Runner) solve(ctx context.Context, e *election.Election, t Task) solver.Result {
	if t.Modus < 0 {
		if r.Backend == nil {
			return solver.Result{Score: solver.CancelledScore}
		}
		matrix := e.Matrix()
		res, err := r.Backend.Solve(ctx, matrix, t.Candidates.Slice())
		if err != nil {
			r.Logger.Error("backend solve failed", zap.Error(err))
			return solver.Result{Score: solver.CancelledScore}
		}
		return res
	}
	return pickSolver(t.Modus, t.Candidates.Len()).Solve(ctx, e, t.Candidates)
}

// RunDecomposition solves every sub-instance of a Decomposition in order
// and aggregates the results per §3/§8 property 5: concatenated
// consensuses in decomposition order, scores summed, plus the fixed cross
// contribution. If any sub-instance is cancelled, the whole aggregate is
// cancelled (score -1, nil consensus) rather than returning a partial
// answer silently mislabeled as optimal.
func (r *Runner) RunDecomposition(ctx context.Context, e *election.Election, d *reduce.Decomposition, modus int) solver.Result {
	total := d.CrossContribution
	consensus := make([]model.Candidate, 0, e.NumCandidates)
	for _, sub := range d.SubInstances {
		if r.Metrics != nil {
			r.Metrics.SubInstancesSize.Observe(float64(sub.Candidates.Len()))
		}
		t := NewTask(sub.Candidates, effectiveModus(modus, sub.Candidates.Len()))
		res := r.Run(ctx, e, t)
		if res.Cancelled() {
			return solver.Result{Score: solver.CancelledScore}
		}
		total += res.Score
		consensus = append(consensus, res.Consensus...)
	}
	return solver.Result{Score: total, Consensus: consensus}
}

// effectiveModus forces DP for any sub-instance the dispatch rule says is
// too small to benefit from search-tree branching, matching pickSolver's
// own rule so Metrics/Streamer labels agree with what actually ran.
func effectiveModus(modus, size int) int {
	if size == 1 || (modus > 1 && size < modus) {
		return 1
	}
	return modus
}
