// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package solver

import "github.com/luxfi/kemeny/model"

// Relations is the search-tree's "relations map L" (§3): for each
// candidate, the set of candidates forced below it (Lowers) and above it
// (Uppers). Both sides are kept transitively closed as entries are added,
// so a consistency check only ever needs to look at direct membership.
type Relations struct {
	lowers map[model.Candidate]model.CandidateSet
	uppers map[model.Candidate]model.CandidateSet
	size   int
}

// NewRelations returns an empty relations map sized for candidates in
// [0, size).
func NewRelations(size int) *Relations {
	return &Relations{
		lowers: make(map[model.Candidate]model.CandidateSet, size),
		uppers: make(map[model.Candidate]model.CandidateSet, size),
		size:   size,
	}
}

func (l *Relations) ensure(c model.Candidate) {
	if _, ok := l.lowers[c]; !ok {
		l.lowers[c] = model.NewCandidateSet(l.size)
	}
	if _, ok := l.uppers[c]; !ok {
		l.uppers[c] = model.NewCandidateSet(l.size)
	}
}

// Lowers returns the candidates forced below c.
func (l *Relations) Lowers(c model.Candidate) model.CandidateSet {
	l.ensure(c)
	return l.lowers[c]
}

// Uppers returns the candidates forced above c.
func (l *Relations) Uppers(c model.Candidate) model.CandidateSet {
	l.ensure(c)
	return l.uppers[c]
}

// Conforms reports whether placing lower below upper is consistent with the
// relations recorded so far: upper must not already be forced below lower.
func (l *Relations) Conforms(lower, upper model.Candidate) bool {
	l.ensure(lower)
	l.ensure(upper)
	return !l.lowers[lower].Contains(upper) && !l.uppers[upper].Contains(lower)
}

// Add records that lower sits below upper in the consensus, and
// transitively closes the relation: every candidate already below lower
// goes below upper too, and vice versa.
func (l *Relations) Add(lower, upper model.Candidate) {
	l.ensure(lower)
	l.ensure(upper)

	belowLower := l.lowers[lower].Clone()
	belowLower.Insert(lower)
	aboveUpper := l.uppers[upper].Clone()
	aboveUpper.Insert(upper)

	for _, b := range belowLower.Slice() {
		l.ensure(b)
		l.uppers[b] = l.uppers[b].Union(aboveUpper)
	}
	for _, a := range aboveUpper.Slice() {
		l.ensure(a)
		l.lowers[a] = l.lowers[a].Union(belowLower)
	}
}

// Clone returns an independent deep copy of l, for the search tree to branch
// on without mutating the parent call's relations map.
func (l *Relations) Clone() *Relations {
	out := &Relations{
		lowers: make(map[model.Candidate]model.CandidateSet, len(l.lowers)),
		uppers: make(map[model.Candidate]model.CandidateSet, len(l.uppers)),
		size:   l.size,
	}
	for c, s := range l.lowers {
		out.lowers[c] = s.Clone()
	}
	for c, s := range l.uppers {
		out.uppers[c] = s.Clone()
	}
	return out
}

// Consistent reports that L has no contradiction: no candidate is recorded
// as both above and below the same other candidate.
func (l *Relations) Consistent() bool {
	for c, lowers := range l.lowers {
		if lowers.Intersection(l.uppers[c]).Len() > 0 {
			return false
		}
	}
	return true
}

// Rank returns the candidate's position in the total order implied by L:
// the number of candidates forced below it. Only meaningful once L is total
// (every pair of candidates related).
func (l *Relations) Rank(c model.Candidate) int {
	l.ensure(c)
	return l.lowers[c].Len()
}

// ToConsensus materializes the full ranking from L by sorting the given
// candidates by descending Rank, so the candidate with the most candidates
// below it comes first. Requires L to be total over candidates.
func (l *Relations) ToConsensus(candidates []model.Candidate) []model.Candidate {
	out := make([]model.Candidate, len(candidates))
	copy(out, candidates)
	ranks := make(map[model.Candidate]int, len(out))
	for _, c := range out {
		ranks[c] = l.Rank(c)
	}
	// Simple insertion sort is fine: dirty-set instances are small by
	// construction (the reducer caps sub-instance size well below 30).
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && ranks[out[j-1]] < ranks[out[j]]; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}
