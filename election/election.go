// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package election implements component B: the election model that stores
// ballots, computes and caches the pairwise-preference matrix, and answers
// every bound/dirty/majority query the reduction engine and solvers need.
package election

import (
	"sync"

	"github.com/luxfi/kemeny/model"
)

// Election is an ordered sequence of ballots over a common candidate
// universe C = {0, ..., NumCandidates-1}. The pairwise matrix is computed
// once, lazily, on first access and cached for the lifetime of the value.
type Election struct {
	Ballots       []model.Ballot
	NumCandidates int

	once   sync.Once
	matrix [][]int // P[a][b] = ballots ranking a above b

	dirtyOnce     sync.Once
	dirtyPairs    [][2]model.Candidate
	dirtyCandSet  model.CandidateSet
	lowerBound    int
	upperBound    int
}

// New builds an Election over the given canonical ballots. numCandidates
// must equal the common universe size produced by ballot.RestrictAndReindex.
func New(ballots []model.Ballot, numCandidates int) *Election {
	return &Election{Ballots: ballots, NumCandidates: numCandidates}
}

// NumBallots returns the number of votes cast.
func (e *Election) NumBallots() int { return len(e.Ballots) }

// Matrix returns the pairwise-preference matrix P, computing it on first
// call. P[a][b] is the number of ballots ranking a strictly above b; this
// is also the subscore s(a, b), the cost of placing b above a.
func (e *Election) Matrix() [][]int {
	e.once.Do(func() {
		m := make([][]int, e.NumCandidates)
		for i := range m {
			m[i] = make([]int, e.NumCandidates)
		}
		for _, b := range e.Ballots {
			// Order[i] beats every candidate placed after it.
			for i, hi := range b.Order {
				for _, lo := range b.Order[i+1:] {
					m[hi][lo]++
				}
			}
		}
		e.matrix = m
	})
	return e.matrix
}

// Subscore returns s(a, b) = P[a][b]: the cost of placing b above a in a
// consensus.
func (e *Election) Subscore(a, b model.Candidate) int {
	return e.Matrix()[a][b]
}

// Margin returns m(a, b) = P[a][b] - P[b][a].
func (e *Election) Margin(a, b model.Candidate) int {
	p := e.Matrix()
	return p[a][b] - p[b][a]
}

// KScore computes the Kemeny score of a consensus ranking: the sum, over
// every pair of positions i < j, of P[pi[j]][pi[i]] — the cost charged for
// every pair the ranking places "backwards" relative to the votes. Panics
// if pi is not a permutation of the full candidate universe (programmer
// error per the component's contract).
func (e *Election) KScore(pi []model.Candidate) int {
	if len(pi) != e.NumCandidates {
		panic("election: KScore called with a ranking of the wrong length")
	}
	p := e.Matrix()
	total := 0
	for j := 1; j < len(pi); j++ {
		for i := 0; i < j; i++ {
			total += p[pi[j]][pi[i]]
		}
	}
	return total
}

// ScoreOf computes the Kemeny cost of arranging an arbitrary subset of
// candidates in the given order: the sum, over every pair of positions
// i < j, of P[pi[j]][pi[i]]. Unlike KScore it does not require pi to cover
// the full candidate universe, so solvers can score sub-instance
// permutations directly.
func (e *Election) ScoreOf(pi []model.Candidate) int {
	p := e.Matrix()
	total := 0
	for j := 1; j < len(pi); j++ {
		for i := 0; i < j; i++ {
			total += p[pi[j]][pi[i]]
		}
	}
	return total
}

// KTDistance returns the Kendall-tau distance between two ballots: the
// number of candidate pairs on which they disagree about relative order.
func KTDistance(a, b model.Ballot) int {
	dist := 0
	for c1 := range a.Rank {
		for c2 := range a.Rank {
			if c1 >= c2 {
				continue
			}
			if a.Prefers(c1, c2) != b.Prefers(c1, c2) {
				dist++
			}
		}
	}
	return dist
}
