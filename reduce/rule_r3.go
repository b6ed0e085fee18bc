// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"sort"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// ruleNonDirtyCandidate implements R3: a candidate c is an "anchor" when,
// for every other candidate d in block, (c,d) or (d,c) is an r-majority —
// c's relative position versus everyone else is effectively forced. Anchors
// are chained into a total order by their mutual majority relation; every
// non-anchor candidate is then slotted into the gap bounded by the anchors
// it beats by r-majority, and each gap becomes its own block.
func ruleNonDirtyCandidate(e *election.Election, block model.CandidateSet, r float64) ([]model.CandidateSet, bool) {
	if block.Len() <= 1 {
		return nil, false
	}
	members := block.Slice()

	var anchors []model.Candidate
	anchorSet := model.NewCandidateSet(block.Len())
	for _, c := range members {
		isAnchor := true
		for _, d := range members {
			if c == d {
				continue
			}
			if !e.MajorityPair(c, d, r) && !e.MajorityPair(d, c, r) {
				isAnchor = false
				break
			}
		}
		if isAnchor {
			anchors = append(anchors, c)
			anchorSet.Insert(c)
		}
	}
	if len(anchors) == 0 {
		return nil, false
	}

	// Chain anchors by mutual majority relation: a precedes b iff a beats b.
	sort.Slice(anchors, func(i, j int) bool {
		return e.MajorityPair(anchors[i], anchors[j], r)
	})

	gaps := make([]model.CandidateSet, len(anchors)+1)
	for i := range gaps {
		gaps[i] = model.NewCandidateSet(block.Len())
	}
	for _, x := range members {
		if anchorSet.Contains(x) {
			continue
		}
		idx := 0
		for _, a := range anchors {
			if e.MajorityPair(a, x, r) {
				idx++
			}
		}
		gaps[idx].Insert(x)
	}

	var parts []model.CandidateSet
	for i, a := range anchors {
		if gaps[i].Len() > 0 {
			parts = append(parts, gaps[i])
		}
		parts = append(parts, model.CandidateSetOf(a))
	}
	if gaps[len(anchors)].Len() > 0 {
		parts = append(parts, gaps[len(anchors)])
	}
	if len(parts) <= 1 {
		return nil, false
	}
	return parts, true
}
