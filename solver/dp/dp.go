// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dp implements the exact dynamic-programming solver (component D):
// Held-Karp over subsets of the candidate universe. Two variants share the
// same recursion — Dense indexes the subset table by a raw uint32 bitmask
// (fast, but limited to maxDenseCandidates) and Sparse memoizes by a string
// subset key so larger sub-instances can still be solved, at the cost of
// map overhead per state.
package dp

import (
	"context"
	"strconv"
	"strings"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/solver"
)

// maxDenseCandidates is the largest sub-instance Dense solves itself: a
// uint32 mask needs one bit per candidate, and the backing table needs one
// entry per mask, so this is also a hard memory ceiling independent of the
// job layer's free-RAM limiter. Larger sub-instances are handed to Sparse.
const maxDenseCandidates = 20

// Dense is the bitmask-indexed Held-Karp solver, for sub-instances small
// enough that 2^m table entries fit in memory (m <= 20 in this
// implementation; a larger candidate set is passed on to Sparse).
type Dense struct{}

// Sparse is the hashed-subset-key Held-Karp solver: functionally identical
// to Dense but addressed by a map instead of a dense array, so it has no
// hard ceiling on m at the cost of slower state lookups.
type Sparse struct{}

var (
	_ solver.Solver = Dense{}
	_ solver.Solver = Sparse{}
)

// Solve runs exact Held-Karp over candidates and returns the optimal
// ranking and its Kemeny score. Relabels candidates to local indices
// [0, m) first so the recursion never deals with the global candidate ID
// space directly.
func (Dense) Solve(ctx context.Context, e *election.Election, candidates model.CandidateSet) solver.Result {
	members := candidates.Slice()
	m := len(members)
	if m == 0 {
		return solver.Result{Score: 0, Consensus: nil}
	}
	if m == 1 {
		return solver.Result{Score: 0, Consensus: members}
	}
	if m > maxDenseCandidates {
		return Sparse{}.Solve(ctx, e, candidates)
	}

	cost := localCostMatrix(e, members)
	full := uint32(1)<<uint(m) - 1

	dp := make([]int, 1<<uint(m))
	back := make([]int8, 1<<uint(m))
	for mask := range dp {
		dp[mask] = -1
	}
	dp[0] = 0

	for mask := uint32(1); mask <= full; mask++ {
		if ctx.Err() != nil {
			return solver.Result{Score: solver.CancelledScore}
		}
		best := -1
		bestLast := int8(-1)
		for last := 0; last < m; last++ {
			bit := uint32(1) << uint(last)
			if mask&bit == 0 {
				continue
			}
			prevMask := mask &^ bit
			if dp[prevMask] < 0 {
				continue
			}
			charge := 0
			rest := prevMask
			for rest != 0 {
				x := rest & (-rest)
				xi := bits32TrailingZeros(x)
				charge += cost[last][xi]
				rest &^= x
			}
			candidate := dp[prevMask] + charge
			if best < 0 || candidate < best {
				best = candidate
				bestLast = int8(last)
			}
		}
		dp[mask] = best
		back[mask] = bestLast
	}

	if ctx.Err() != nil {
		return solver.Result{Score: solver.CancelledScore}
	}

	localOrder := make([]int, m)
	mask := full
	for i := m - 1; i >= 0; i-- {
		last := back[mask]
		localOrder[i] = int(last)
		mask &^= uint32(1) << uint(last)
	}

	consensus := make([]model.Candidate, m)
	for i, local := range localOrder {
		consensus[i] = members[local]
	}
	return solver.Result{Score: dp[full], Consensus: consensus}
}

func bits32TrailingZeros(x uint32) int {
	n := 0
	for x&1 == 0 {
		x >>= 1
		n++
	}
	return n
}

// localCostMatrix returns cost[i][j] = P[members[i]][members[j]], the
// subscore charged for placing members[j] ahead of members[i].
func localCostMatrix(e *election.Election, members []model.Candidate) [][]int {
	p := e.Matrix()
	cost := make([][]int, len(members))
	for i, a := range members {
		cost[i] = make([]int, len(members))
		for j, b := range members {
			cost[i][j] = p[a][b]
		}
	}
	return cost
}

// dpState is one memoized Held-Karp table entry for the Sparse solver.
type dpState struct {
	score int
	last  model.Candidate
	found bool
}

// Solve runs Held-Karp via top-down memoization keyed by a string encoding
// of the subset, rather than Dense's flat bitmask array. It reads the
// election's pairwise matrix directly and recurses on CandidateSet subsets, so
// it has no ceiling on the sub-instance size beyond available memory and
// wall-clock (both enforced by the job layer's Limiter, not here).
func (Sparse) Solve(ctx context.Context, e *election.Election, candidates model.CandidateSet) solver.Result {
	members := candidates.Slice()
	m := len(members)
	if m == 0 {
		return solver.Result{Score: 0, Consensus: nil}
	}
	if m == 1 {
		return solver.Result{Score: 0, Consensus: members}
	}

	p := e.Matrix()
	memo := make(map[string]dpState)

	var solve func(set model.CandidateSet) dpState
	solve = func(set model.CandidateSet) dpState {
		if set.IsEmpty() {
			return dpState{score: 0, found: true}
		}
		key := subsetKey(set)
		if st, ok := memo[key]; ok {
			return st
		}
		best := dpState{}
		for _, last := range set.Slice() {
			if ctx.Err() != nil {
				return dpState{}
			}
			prev := set.Clone()
			prev.Remove(last)
			sub := solve(prev)
			if !sub.found {
				continue
			}
			charge := 0
			for _, x := range prev.Slice() {
				charge += p[last][x]
			}
			total := sub.score + charge
			if !best.found || total < best.score {
				best = dpState{score: total, last: last, found: true}
			}
		}
		memo[key] = best
		return best
	}

	final := solve(candidates)
	if ctx.Err() != nil || !final.found {
		return solver.Result{Score: solver.CancelledScore}
	}

	consensus := make([]model.Candidate, 0, m)
	remaining := candidates.Clone()
	for remaining.Len() > 0 {
		st := solve(remaining)
		consensus = append([]model.Candidate{st.last}, consensus...)
		remaining.Remove(st.last)
	}
	return solver.Result{Score: final.score, Consensus: consensus}
}

// subsetKey renders a CandidateSet as a stable string for map memoization.
// Slice() already yields members in ascending order, so no sorting is
// needed here: equal sets always produce equal keys.
func subsetKey(set model.CandidateSet) string {
	members := set.Slice()
	ids := make([]string, len(members))
	for i, c := range members {
		ids[i] = strconv.Itoa(int(c))
	}
	return strings.Join(ids, ",")
}
