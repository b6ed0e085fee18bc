// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// ruleCondorcetCandidate implements R1: if some a in block beats every
// other candidate in block, it must occupy the first position of any
// Kemeny consensus restricted to block, so emit <{a}, block\{a}>.
// Symmetrically for a candidate beaten by everyone (the extreme last
// position): emit <block\{a}, {a}>.
func ruleCondorcetCandidate(e *election.Election, block model.CandidateSet, cfg Config) ([]model.CandidateSet, bool) {
	if block.Len() <= 1 {
		return nil, false
	}
	members := block.Slice()
	p := e.Matrix()

	for _, a := range members {
		winsAll, losesAll := true, true
		for _, b := range members {
			if a == b {
				continue
			}
			if !beats(p, a, b, cfg.StrictBetter) {
				winsAll = false
			}
			if !beats(p, b, a, cfg.StrictBetter) {
				losesAll = false
			}
			if !winsAll && !losesAll {
				break
			}
		}
		if winsAll {
			rest := block.Difference(model.CandidateSetOf(a))
			return []model.CandidateSet{model.CandidateSetOf(a), rest}, true
		}
		if losesAll {
			rest := block.Difference(model.CandidateSetOf(a))
			return []model.CandidateSet{rest, model.CandidateSetOf(a)}, true
		}
	}
	return nil, false
}
