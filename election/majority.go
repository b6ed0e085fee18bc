// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package election

import (
	"gonum.org/v1/gonum/graph"
	"gonum.org/v1/gonum/graph/simple"

	"github.com/luxfi/kemeny/model"
)

// classify computes the dirty-pair set, the dirty-candidate set, and the
// score lower/upper bounds in one pass over the upper triangle of P. It is
// memoized: later calls to DirtyPairs, DirtyCandidates, Bounds all share
// this single pass.
func (e *Election) classify() {
	e.dirtyOnce.Do(func() {
		p := e.Matrix()
		dirty := model.NewCandidateSet(e.NumCandidates)
		var pairs [][2]model.Candidate
		lower, upper := 0, 0
		for a := 0; a < e.NumCandidates; a++ {
			for b := a + 1; b < e.NumCandidates; b++ {
				ab, ba := p[a][b], p[b][a]
				if ab > 0 && ba > 0 {
					lower += min(ab, ba)
					upper += max(ab, ba)
					pairs = append(pairs, [2]model.Candidate{model.Candidate(a), model.Candidate(b)})
					dirty.Insert(model.Candidate(a))
					dirty.Insert(model.Candidate(b))
				}
			}
		}
		e.dirtyPairs = pairs
		e.dirtyCandSet = dirty
		e.lowerBound = lower
		e.upperBound = upper
	})
}

// DirtyPairs returns every unordered pair {a, b} on which ballots disagree
// (P[a][b] > 0 and P[b][a] > 0).
func (e *Election) DirtyPairs() [][2]model.Candidate {
	e.classify()
	return e.dirtyPairs
}

// DirtyCandidates returns the set of candidates appearing in at least one
// dirty pair.
func (e *Election) DirtyCandidates() model.CandidateSet {
	e.classify()
	return e.dirtyCandSet
}

// IsDirty reports whether {a, b} is a dirty pair.
func (e *Election) IsDirty(a, b model.Candidate) bool {
	p := e.Matrix()
	return p[a][b] > 0 && p[b][a] > 0
}

// Bounds returns the lower and upper bound on the optimal Kemeny score:
// LB = sum over dirty pairs of min(P[a][b], P[b][a]),
// UB = sum over dirty pairs of max(P[a][b], P[b][a]).
// Clean pairs add nothing to either: every ballot already orders them the
// unanimous way, so taking any ballot as the ranking costs at most UB.
// Both sandwich the true optimum (§8, property 4).
func (e *Election) Bounds() (lower, upper int) {
	e.classify()
	return e.lowerBound, e.upperBound
}

// MajorityPair reports whether (a, b) is an r-majority: P[a][b] >= r * n.
func (e *Election) MajorityPair(a, b model.Candidate, r float64) bool {
	n := len(e.Ballots)
	return float64(e.Matrix()[a][b]) >= r*float64(n)
}

// MajorityGraph returns the r-majority relation restricted to the given
// candidate subset as a directed graph: an edge a->b means a beats b by an
// r-majority. For r > 0.5 a pair cannot be an r-majority in both
// directions, so there are no 2-cycles, but longer cycles can still occur
// (three cyclic ballots at r = 0.6 give a->b->c->a); the graph is not
// guaranteed to be a DAG.
func (e *Election) MajorityGraph(subset model.CandidateSet, r float64) graph.Directed {
	g := simple.NewDirectedGraph()
	members := subset.Slice()
	for _, c := range members {
		g.AddNode(simple.Node(c))
	}
	for _, a := range members {
		for _, b := range members {
			if a == b {
				continue
			}
			if e.MajorityPair(a, b, r) {
				g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
			}
		}
	}
	return g
}
