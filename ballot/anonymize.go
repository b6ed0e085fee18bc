// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package ballot

import (
	"github.com/luxfi/kemeny/model"
)

// IntersectUniverse returns the set of candidate names present on every
// ballot. Candidates missing from even one ballot are dropped by the
// caller's subsequent RestrictAndReindex call, per the common-universe
// invariant of the data model (§3: "every ballot ranks exactly C").
func IntersectUniverse(ballots []RawBallot) map[string]struct{} {
	if len(ballots) == 0 {
		return map[string]struct{}{}
	}
	counts := make(map[string]int, len(ballots[0]))
	for _, b := range ballots {
		seen := make(map[string]struct{}, len(b))
		for _, name := range b {
			if _, dup := seen[name]; dup {
				continue
			}
			seen[name] = struct{}{}
			counts[name]++
		}
	}
	common := make(map[string]struct{}, len(counts))
	for name, c := range counts {
		if c == len(ballots) {
			common[name] = struct{}{}
		}
	}
	return common
}

// RestrictAndReindex drops every candidate not in common from each raw
// ballot (preserving relative order), then interns the surviving names into
// dense 0-based IDs in order of first appearance across the ballot stream.
// The returned Dictionary round-trips: Name(Intern(name)) == name.
func RestrictAndReindex(ballots []RawBallot, common map[string]struct{}) ([]model.Ballot, *model.Dictionary, error) {
	dict := model.NewDictionary()
	out := make([]model.Ballot, 0, len(ballots))
	for _, raw := range ballots {
		order := make([]model.Candidate, 0, len(raw))
		for _, name := range raw {
			if _, ok := common[name]; !ok {
				continue
			}
			order = append(order, dict.Intern(name))
		}
		b, err := model.NewBallot(order)
		if err != nil {
			return nil, nil, err
		}
		out = append(out, b)
	}
	return out, dict, nil
}
