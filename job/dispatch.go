// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package job

import (
	"context"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/solver"
	"github.com/luxfi/kemeny/solver/dp"
	"github.com/luxfi/kemeny/solver/searchtree"
)

// denseCeiling mirrors dp.Dense's practical size limit; above it the
// dispatcher reaches for the hashed Sparse variant instead.
const denseCeiling = 20

// pickSolver implements the modus dispatch table of §4.F:
//
//	modus < 0         external MIP backend (handled by the caller before
//	                  reaching here, since it needs the Backend, not a
//	                  Solver)
//	size == 1         trivial, always DP (a single candidate has no work)
//	size < modus      too small to benefit from search-tree branching;
//	                  forced to DP regardless of modus
//	modus == 0        the fast non-exact pick-a-ballot heuristic
//	modus == 1        exact DP (dense or sparse, by size)
//	modus >= 2        exact search tree with dirty-set cap = modus
func pickSolver(modus, size int) solver.Solver {
	switch {
	case size == 1:
		return dp.Dense{}
	case modus > 0 && size < modus:
		return pickDP(size)
	case modus <= 0:
		return randomBallotHeuristic{}
	case modus == 1:
		return pickDP(size)
	default:
		return searchtree.Tree{MaxDirtySetSize: modus}
	}
}

func pickDP(size int) solver.Solver {
	if size <= denseCeiling {
		return dp.Dense{}
	}
	return dp.Sparse{}
}

// randomBallotHeuristic is modus 0: rather than solving exactly, it
// projects every input ballot onto the candidate subset and returns
// whichever projection scores lowest. Despite the name (kept from the
// original tool's terminology), the choice is deterministic, not sampled:
// a single pass over the ballots is cheap and never worse than an
// actual uniform-random pick.
type randomBallotHeuristic struct{}

var _ solver.Solver = randomBallotHeuristic{}

func (randomBallotHeuristic) Solve(ctx context.Context, e *election.Election, candidates model.CandidateSet) solver.Result {
	members := candidates.Len()
	if members == 0 {
		return solver.Result{}
	}
	want := candidates
	var best solver.Result
	haveBest := false
	for _, b := range e.Ballots {
		if ctx.Err() != nil {
			return solver.Result{Score: solver.CancelledScore}
		}
		proj := make([]model.Candidate, 0, members)
		for _, c := range b.Order {
			if want.Contains(c) {
				proj = append(proj, c)
			}
		}
		if len(proj) != members {
			continue // ballot doesn't rank the full subset; skip it
		}
		score := e.ScoreOf(proj)
		if !haveBest || score < best.Score {
			best = solver.Result{Score: score, Consensus: proj}
			haveBest = true
		}
	}
	if !haveBest {
		// No ballot ranks every candidate in the subset (can happen on a
		// sub-instance carved out by the reducer): fall back to the
		// subset's natural ID order, which is always a valid total order.
		best = solver.Result{Score: e.ScoreOf(candidates.Slice()), Consensus: candidates.Slice()}
	}
	return best
}
