// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"sort"

	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// topoComponents builds the strict pairwise-preference graph over block
// (edge a->b iff a beats b, per strictBetter) and returns its strongly
// connected components in topological order: components[0] precedes
// components[1] precedes ... in every Kemeny consensus restricted to
// block (the R5 "folklore" property of spec.md §4.C).
//
// Uses gonum's iterative Tarjan/topological-sort implementation rather
// than a hand-rolled recursive DFS, per the redesign note in spec.md §9
// that flags recursive cycle detection as a stack-usage risk at large m.
func topoComponents(e *election.Election, block model.CandidateSet, strictBetter bool) []model.CandidateSet {
	g := simple.NewDirectedGraph()
	members := block.Slice()
	for _, c := range members {
		g.AddNode(simple.Node(c))
	}
	p := e.Matrix()
	for _, a := range members {
		for _, b := range members {
			if a == b {
				continue
			}
			if beats(p, a, b, strictBetter) {
				g.SetEdge(g.NewEdge(simple.Node(a), simple.Node(b)))
			}
		}
	}

	sccs := topo.TarjanSCC(g)
	// TarjanSCC returns components in reverse topological order (sinks
	// first); reverse to get a source-first emission order matching the
	// "precedes" semantics the reducer needs.
	out := make([]model.CandidateSet, len(sccs))
	for i, scc := range sccs {
		ids := make([]model.Candidate, len(scc))
		for j, n := range scc {
			ids[j] = model.Candidate(n.ID())
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out[len(sccs)-1-i] = model.CandidateSetOf(ids...)
	}
	return out
}

// beats reports whether a beats b under the pairwise matrix p: strictly
// (P[a][b] > P[b][a]) or weakly (P[a][b] >= P[b][a]).
func beats(p [][]int, a, b model.Candidate, strictBetter bool) bool {
	if strictBetter {
		return p[a][b] > p[b][a]
	}
	return p[a][b] >= p[b][a]
}

// majorityTopoComponents is the R4 analogue of topoComponents: it builds
// the r-majority graph instead of the strict pairwise-beats graph. Unlike
// the strict beats relation (a complete tournament on any odd-sized
// electorate), the r-majority relation can leave pairs with no edge at all
// when neither direction reaches the ratio; the reversed TarjanSCC order is
// still a valid topological order of whatever edges exist.
func majorityTopoComponents(e *election.Election, block model.CandidateSet, r float64) []model.CandidateSet {
	g := e.MajorityGraph(block, r)
	simpleG, ok := g.(*simple.DirectedGraph)
	if !ok {
		return nil
	}
	sccs := topo.TarjanSCC(simpleG)
	out := make([]model.CandidateSet, len(sccs))
	for i, scc := range sccs {
		ids := make([]model.Candidate, len(scc))
		for j, n := range scc {
			ids[j] = model.Candidate(n.ID())
		}
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
		out[len(sccs)-1-i] = model.CandidateSetOf(ids...)
	}
	return out
}
