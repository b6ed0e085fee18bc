// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package solver

import (
	"sort"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

// PermutationScored is one ordering of a DirtySet's members together with
// its internal subscore: the Kemeny cost counting only pairs within the
// set itself.
type PermutationScored struct {
	Permutation []model.Candidate
	SubScore    int
}

// DirtySet is one block of the search tree's dirty-set partition (§3): a
// small connected group of candidates still in dispute after the clean
// pairs have been resolved by unanimity, plus every permutation of its
// members, pre-scored and sorted ascending by internal subscore so the
// search tree can try cheapest-first.
type DirtySet struct {
	Candidates             model.CandidateSet
	Permutations           []PermutationScored
	ScoreFromSuccessorsMin int
}

// BuildDirtySets partitions the dirty pairs of candidates into connected
// components (by shared endpoint), subdividing any component larger than
// maxSize into chunks of at most maxSize candidates ordered by ID — the cap
// referenced in spec.md's dirty-set-partition definition. Components are
// returned sorted by descending size, ties broken by ascending lowest
// candidate index, per §4.E.
func BuildDirtySets(e *election.Election, candidates model.CandidateSet, maxSize int) []*DirtySet {
	if maxSize <= 0 {
		maxSize = candidates.Len()
	}
	components := connectedDirtyComponents(e, candidates)

	var groups []model.CandidateSet
	for _, comp := range components {
		groups = append(groups, chunk(comp, maxSize)...)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Len() != groups[j].Len() {
			return groups[i].Len() > groups[j].Len()
		}
		return lowestMember(groups[i]) < lowestMember(groups[j])
	})

	p := e.Matrix()
	sets := make([]*DirtySet, len(groups))
	for i, g := range groups {
		members := g.Slice()
		if shortcut, ok := uniqueVoteMajority(e, members, p); ok {
			sets[i] = &DirtySet{Candidates: g, Permutations: []PermutationScored{shortcut}}
			continue
		}
		sets[i] = &DirtySet{
			Candidates:   g,
			Permutations: scoredPermutations(p, members),
		}
	}

	// scoreFromSuccessorsMin(i) = sum of the cheapest permutation subscore
	// over every dirty set at a later depth.
	suffix := 0
	for i := len(sets) - 1; i >= 0; i-- {
		sets[i].ScoreFromSuccessorsMin = suffix
		if len(sets[i].Permutations) > 0 {
			suffix += sets[i].Permutations[0].SubScore
		}
	}
	return sets
}

func lowestMember(s model.CandidateSet) model.Candidate {
	members := s.Slice()
	min := members[0]
	for _, m := range members[1:] {
		if m < min {
			min = m
		}
	}
	return min
}

// connectedDirtyComponents unions candidates sharing a dirty pair via
// union-find, restricted to the given candidate subset. A candidate with no
// dirty pair at all forms its own singleton component.
func connectedDirtyComponents(e *election.Election, candidates model.CandidateSet) []model.CandidateSet {
	members := candidates.Slice()
	parent := make(map[model.Candidate]model.Candidate, len(members))
	for _, c := range members {
		parent[c] = c
	}
	var find func(model.Candidate) model.Candidate
	find = func(c model.Candidate) model.Candidate {
		if parent[c] != c {
			parent[c] = find(parent[c])
		}
		return parent[c]
	}
	union := func(a, b model.Candidate) {
		ra, rb := find(a), find(b)
		if ra != rb {
			parent[ra] = rb
		}
	}

	for _, pair := range e.DirtyPairs() {
		a, b := pair[0], pair[1]
		if candidates.Contains(a) && candidates.Contains(b) {
			union(a, b)
		}
	}

	groups := make(map[model.Candidate]model.CandidateSet)
	for _, c := range members {
		root := find(c)
		g, ok := groups[root]
		if !ok {
			g = model.NewCandidateSet(candidates.Len())
		}
		g.Insert(c)
		groups[root] = g
	}
	out := make([]model.CandidateSet, 0, len(groups))
	for _, g := range groups {
		out = append(out, g)
	}
	return out
}

// chunk subdivides comp into groups of at most maxSize candidates, ordered
// by ascending ID. A component exceeding the cap is a size the reduction
// engine failed to shrink enough; splitting it this way keeps the search
// tree tractable at the cost of seeding the relations map with a heuristic
// order across the chunk boundary (documented in DESIGN.md).
func chunk(comp model.CandidateSet, maxSize int) []model.CandidateSet {
	members := comp.Slice()
	if len(members) <= maxSize {
		return []model.CandidateSet{comp}
	}
	var out []model.CandidateSet
	for i := 0; i < len(members); i += maxSize {
		end := i + maxSize
		if end > len(members) {
			end = len(members)
		}
		out = append(out, model.CandidateSetOf(members[i:end]...))
	}
	return out
}

func scoredPermutations(p [][]int, members []model.Candidate) []PermutationScored {
	var perms []PermutationScored
	buf := make([]model.Candidate, len(members))
	used := make([]bool, len(members))
	var rec func(depth int)
	rec = func(depth int) {
		if depth == len(members) {
			perm := make([]model.Candidate, len(buf))
			copy(perm, buf)
			perms = append(perms, PermutationScored{Permutation: perm, SubScore: internalSubscore(p, perm)})
			return
		}
		for i, m := range members {
			if used[i] {
				continue
			}
			used[i] = true
			buf[depth] = m
			rec(depth + 1)
			used[i] = false
		}
	}
	rec(0)

	sort.Slice(perms, func(i, j int) bool {
		if perms[i].SubScore != perms[j].SubScore {
			return perms[i].SubScore < perms[j].SubScore
		}
		return lexLess(perms[i].Permutation, perms[j].Permutation)
	})
	return perms
}

// uniqueVoteMajority implements the §4.E auxiliary rule applied before the
// tree: project every ballot onto members (preserving relative order) and
// count occurrences of each resulting permutation, as a multiset. If the
// most frequent projection occurs at least as many times as its own internal
// Kemeny subscore, it is provably optimal for this dirty set and the full
// permutation enumeration can be skipped outright. Grounded on
// utils/bag.go's Bag[T] multiset, generalized from counting ids.ID to
// counting canonical ballot permutations via model.Ballot.Key.
func uniqueVoteMajority(e *election.Election, members []model.Candidate, p [][]int) (PermutationScored, bool) {
	if len(members) < 2 {
		return PermutationScored{}, false
	}
	set := model.CandidateSetOf(members...)
	counts := make(map[string]int)
	perms := make(map[string][]model.Candidate)
	for _, b := range e.Ballots {
		projected := make([]model.Candidate, 0, len(members))
		for _, c := range b.Order {
			if set.Contains(c) {
				projected = append(projected, c)
			}
		}
		proj, err := model.NewBallot(projected)
		if err != nil {
			continue
		}
		key := proj.Key()
		counts[key]++
		if _, ok := perms[key]; !ok {
			perms[key] = projected
		}
	}

	bestKey := ""
	best := -1
	for key, count := range counts {
		if count > best || (count == best && lexLess(perms[key], perms[bestKey])) {
			best = count
			bestKey = key
		}
	}
	if bestKey == "" {
		return PermutationScored{}, false
	}

	perm := perms[bestKey]
	score := internalSubscore(p, perm)
	if score > best {
		return PermutationScored{}, false
	}
	return PermutationScored{Permutation: perm, SubScore: score}, true
}

func internalSubscore(p [][]int, perm []model.Candidate) int {
	total := 0
	for j := 1; j < len(perm); j++ {
		for i := 0; i < j; i++ {
			total += p[perm[j]][perm[i]]
		}
	}
	return total
}

func lexLess(a, b []model.Candidate) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}
