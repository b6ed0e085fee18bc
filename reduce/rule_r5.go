// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// ruleCondorcetComponent implements R5: build the directed graph of strict
// pairwise wins over block, take its strongly connected components, and
// emit them in topological order. Every Kemeny consensus respects this
// order (§4.C, R5 property; §8, property 7).
func ruleCondorcetComponent(e *election.Election, block model.CandidateSet, cfg Config) ([]model.CandidateSet, bool) {
	if block.Len() <= 1 {
		return nil, false
	}
	comps := topoComponents(e, block, true)
	if len(comps) <= 1 {
		return nil, false
	}
	return comps, true
}
