// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package solver defines the single Solver interface shared by every exact
// algorithm (the DP and search-tree packages), collapsing the original's
// inheritance tree of solver classes per the redesign note in spec.md §9.
package solver

import (
	"context"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// CancelledScore is the sentinel score a Solver returns when its context is
// cancelled before or during the search: (CancelledScore, nil consensus).
const CancelledScore = -1

// Result is what a Solver returns for one sub-instance.
type Result struct {
	Score     int
	Consensus []model.Candidate
}

// Cancelled reports whether this result represents a cancelled solve.
func (r Result) Cancelled() bool { return r.Score == CancelledScore }

// Solver solves a single sub-instance: find a permutation of candidates
// minimizing the Kemeny score, restricted to the given candidate subset. No
// solver implementation keeps state between calls; each Solve call owns its
// own transient tables and releases them on return, per the design note
// that solvers carry no shared state.
type Solver interface {
	Solve(ctx context.Context, e *election.Election, candidates model.CandidateSet) Result
}
