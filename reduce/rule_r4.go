// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// ruleNonDirtySet implements R4: take a set N that is a prefix or suffix of
// the r-majority SCC order (whole components, so N may contain majority
// cycles internally) and whose every member beats (or loses to) every
// candidate outside N by r-majority,
// up to maxSetSize; slot N as a contiguous block between the surrounding
// fixed-position candidates. Built from the r-majority SCC/topological
// order the same way R2 builds Condorcet sets from the strict-beats order.
func ruleNonDirtySet(e *election.Election, block model.CandidateSet, cfg Config, r float64) ([]model.CandidateSet, bool) {
	if block.Len() <= 2 {
		return nil, false
	}
	comps := majorityTopoComponents(e, block, r)
	if len(comps) <= 1 {
		return nil, false
	}
	maxSize := cfg.maxSetSize(block.Len())

	type candidate struct {
		set   model.CandidateSet
		front bool
	}
	var choices []candidate

	prefix := model.NewCandidateSet(block.Len())
	for k := 0; k < len(comps)-1; k++ {
		prefix = prefix.Union(comps[k])
		rest := block.Difference(prefix)
		if prefix.Len() > maxSize {
			break
		}
		if allMajority(e, prefix, rest, r) {
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
		if allMajority(e, rest, suffix, r) {
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

// allMajority reports that every candidate in lo beats every candidate in
// hi by an r-majority.
func allMajority(e *election.Election, lo, hi model.CandidateSet, r float64) bool {
	for _, a := range lo.Slice() {
		for _, b := range hi.Slice() {
			if !e.MajorityPair(a, b, r) {
				return false
			}
		}
	}
	return true
}
