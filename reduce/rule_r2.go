// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"math"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// ruleCondorcetSet implements R2: find a front set T (every candidate in T
// beats every candidate in block\T) or a back set (symmetric), capped at
// maxSetSize, and emit <T, block\T> or <block\T, T>.
//
// T is built from prefixes/suffixes of the block's strict-beats SCC
// topological order (the same machinery R5 uses): a prefix of the first k
// components beats the remainder exactly when no candidate pair straddling
// the prefix/remainder boundary is tied (P[a][b] == P[b][a]), since the
// topological order already guarantees no reverse edge exists.
func ruleCondorcetSet(e *election.Election, block model.CandidateSet, cfg Config) ([]model.CandidateSet, bool) {
	if block.Len() <= 2 {
		return nil, false
	}
	comps := topoComponents(e, block, cfg.StrictBetter)
	if len(comps) <= 1 {
		return nil, false
	}
	maxSize := cfg.maxSetSize(block.Len())
	p := e.Matrix()

	type candidate struct {
		set    model.CandidateSet
		front  bool
	}
	var choices []candidate

	prefix := model.NewCandidateSet(block.Len())
	for k := 0; k < len(comps)-1; k++ {
		prefix = prefix.Union(comps[k])
		rest := block.Difference(prefix)
		if prefix.Len() > maxSize {
			break
		}
		if noTiesBetween(p, prefix, rest) {
			choices = append(choices, candidate{set: prefix.Clone(), front: true})
		}
	}
	suffix := model.NewCandidateSet(block.Len())
	for k := len(comps) - 1; k > 0; k-- {
		suffix = suffix.Union(comps[k])
		rest := block.Difference(suffix)
		if suffix.Len() > maxSize {
			break
		}
		if noTiesBetween(p, rest, suffix) {
			choices = append(choices, candidate{set: suffix.Clone(), front: false})
		}
	}
	if len(choices) == 0 {
		return nil, false
	}

	best := choices[0]
	bestDev := deviation(cfg.SetChoice, best.set.Len(), block.Len())
	for _, c := range choices[1:] {
		dev := deviation(cfg.SetChoice, c.set.Len(), block.Len())
		if dev < bestDev {
			best, bestDev = c, dev
		}
	}

	rest := block.Difference(best.set)
	if best.front {
		return []model.CandidateSet{best.set, rest}, true
	}
	return []model.CandidateSet{rest, best.set}, true
}

// noTiesBetween reports that no pair (a in lo, b in hi) has an exact
// pairwise tie, so the topological order's "no reverse edge" guarantee
// implies lo fully beats hi.
func noTiesBetween(p [][]int, lo, hi model.CandidateSet) bool {
	for _, a := range lo.Slice() {
		for _, b := range hi.Slice() {
			if p[a][b] == p[b][a] {
				return false
			}
		}
	}
	return true
}

// deviation scores a candidate set size against the --set-choice-method
// target: the smallest absolute deviation wins.
func deviation(choice SetChoice, size, total int) float64 {
	if choice == BiggestInstance {
		return -float64(size) // larger is "smaller" deviation
	}
	target := float64(total) / choice.denom()
	if choice == SmallestInstance {
		target = 0
	}
	return math.Abs(float64(size) - target)
}
