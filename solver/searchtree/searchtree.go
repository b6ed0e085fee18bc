// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package searchtree implements the exact fixed-parameter solver
// (component E): candidates are split into a fixed relation, induced by
// unanimous (non-dirty) pairs, and a handful of small dirty sets; the tree
// branches only on each dirty set's internal permutation, trying
// cheapest-first and pruning with the relations map and a remaining-cost
// lower bound, per §3 and §4.E.
package searchtree

import (
	"context"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/solver"
)

// DefaultMaxDirtySetSize caps the size of any single dirty set's
// permutation enumeration; a connected dirty-pair component larger than
// this is chunked (see solver.BuildDirtySets). 7! = 5040 permutations is
// the practical ceiling the original tooling used.
const DefaultMaxDirtySetSize = 7

// Tree is the fixed-parameter search-tree solver.
type Tree struct {
	// MaxDirtySetSize bounds per-dirty-set permutation enumeration. Zero
	// means DefaultMaxDirtySetSize.
	MaxDirtySetSize int
}

var _ solver.Solver = Tree{}

// Solve finds the optimal consensus ranking of candidates by branching on
// the permutation of each dirty set in turn, left to right, pruning any
// branch whose accumulated cost plus the cheapest possible cost of every
// remaining dirty set already reaches or exceeds the best complete score
// found so far.
func (t Tree) Solve(ctx context.Context, e *election.Election, candidates model.CandidateSet) solver.Result {
	members := candidates.Slice()
	if len(members) <= 1 {
		return solver.Result{Score: 0, Consensus: members}
	}

	maxSize := t.MaxDirtySetSize
	if maxSize <= 0 {
		maxSize = DefaultMaxDirtySetSize
	}

	rel := solver.NewRelations(e.NumCandidates)
	fixed := seedCleanPairs(e, members, rel)

	sets := solver.BuildDirtySets(e, candidates, maxSize)

	st := &search{ctx: ctx, e: e, members: members, sets: sets}
	st.run(0, rel, 0)

	if st.cancelled {
		return solver.Result{Score: solver.CancelledScore}
	}
	if st.bestRel == nil {
		// No dirty sets at all: the clean seeding alone already totally
		// orders every member.
		return solver.Result{Score: fixed, Consensus: rel.ToConsensus(members)}
	}
	return solver.Result{Score: fixed + st.bestScore, Consensus: st.bestRel.ToConsensus(members)}
}

// seedCleanPairs records the forced direction of every non-dirty pair among
// members into rel, and returns the fixed cost contributed by those pairs:
// it never changes no matter how the dirty sets are ultimately ordered.
func seedCleanPairs(e *election.Election, members []model.Candidate, rel *solver.Relations) int {
	p := e.Matrix()
	fixed := 0
	for i, a := range members {
		for _, b := range members[i+1:] {
			if e.IsDirty(a, b) {
				continue
			}
			ab, ba := p[a][b], p[b][a]
			if ab >= ba {
				rel.Add(b, a) // a preferred over b: b sits lower.
				fixed += ba
			} else {
				rel.Add(a, b)
				fixed += ab
			}
		}
	}
	return fixed
}

// search carries the mutable best-so-far state through the recursive
// descent over dirty sets.
type search struct {
	ctx       context.Context
	e         *election.Election
	members   []model.Candidate
	sets      []*solver.DirtySet
	bestScore int
	bestRel   *solver.Relations
	haveBest  bool
	cancelled bool
}

// run tries every permutation of sets[idx] consistent with rel, cheapest
// internal subscore first, recursing into the remaining sets and pruning
// once the accumulated cost plus the cheapest possible remainder cannot
// beat the best complete assignment found so far.
func (s *search) run(idx int, rel *solver.Relations, accumulated int) {
	if s.cancelled {
		return
	}
	if s.ctx.Err() != nil {
		s.cancelled = true
		return
	}
	if idx == len(s.sets) {
		if !s.haveBest || accumulated < s.bestScore {
			s.bestScore = accumulated
			s.bestRel = rel
			s.haveBest = true
		}
		return
	}

	ds := s.sets[idx]
	remainderMin := ds.ScoreFromSuccessorsMin
	for _, perm := range ds.Permutations {
		if s.haveBest && accumulated+perm.SubScore+remainderMin >= s.bestScore {
			// Permutations are sorted ascending by subscore: nothing
			// cheaper remains in this set either.
			break
		}
		next := rel.Clone()
		if !extend(next, perm.Permutation) {
			continue
		}
		s.run(idx+1, next, accumulated+perm.SubScore)
		if s.cancelled {
			return
		}
	}
}

// extend records the internal chain order of perm (top-first, so each
// perm[i] sits below perm[i-1]) into rel, failing if any link contradicts
// what rel already knows (a clean pair spanning two different dirty sets
// can force an order a dirty set's own permutation must respect).
func extend(rel *solver.Relations, perm []model.Candidate) bool {
	for i := 1; i < len(perm); i++ {
		if !rel.Conforms(perm[i], perm[i-1]) {
			return false
		}
		rel.Add(perm[i], perm[i-1])
	}
	return true
}
