// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// SubInstance is one block of an ordered decomposition: a candidate-subset
// view plus the fixed score owed to it by every block emitted after it. It
// is the typed sidecar called out by spec.md §9 in place of the original's
// ".scoreToSuccessors" file: the reducer computes it once and colocates it
// with the descriptor instead of round-tripping through the filesystem.
type SubInstance struct {
	Candidates        model.CandidateSet
	ScoreToSuccessors int
}

// Decomposition is the ordered list of sub-instances produced by Engine.Decompose.
// Concatenating an optimal consensus for each Candidates set, in order, and
// adding CrossContribution, yields a global optimum (§3, §8 property 5).
type Decomposition struct {
	SubInstances      []SubInstance
	CrossContribution int
}

// buildDecomposition computes ScoreToSuccessors for every block and the
// total cross contribution X = sum_{i<j} sum_{a in S_i, b in S_j} P[b][a]:
// the cost every optimal consensus restricted to the decomposition pays for
// placing S_i entirely before S_j, which is fixed regardless of the
// internal order chosen within each block.
func buildDecomposition(e *election.Election, blocks []model.CandidateSet) *Decomposition {
	p := e.Matrix()
	subs := make([]SubInstance, len(blocks))
	total := 0
	for i := range blocks {
		score := 0
		for j := i + 1; j < len(blocks); j++ {
			for _, a := range blocks[i].Slice() {
				for _, b := range blocks[j].Slice() {
					score += p[b][a]
				}
			}
		}
		subs[i] = SubInstance{Candidates: blocks[i], ScoreToSuccessors: score}
		total += score
	}
	return &Decomposition{SubInstances: subs, CrossContribution: total}
}
