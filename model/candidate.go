// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package model holds the data types shared by every layer of the Kemeny
// consensus engine: the dense candidate ID space, ballots, and the small
// bitset-backed candidate-set value type used by both solvers and the
// reduction engine.
package model

import (
	"fmt"
	"sort"

	"github.com/bits-and-blooms/bitset"
)

// Candidate is a dense, 0-based integer identity assigned by the ballot
// anonymizer. It never leaves the engine; the Dictionary maps it back to the
// original name for output.
type Candidate int

// Dictionary is the bijective name<->ID table produced by anonymization and
// persisted as the ".dict" sidecar so a run's output can be de-anonymized.
type Dictionary struct {
	names []string
	ids   map[string]Candidate
}

// NewDictionary returns an empty dictionary.
func NewDictionary() *Dictionary {
	return &Dictionary{ids: make(map[string]Candidate)}
}

// Intern returns the dense ID for name, assigning the next free ID the first
// time name is seen. IDs are handed out in order of first call, which is how
// the anonymizer achieves deterministic IDs for a given input order.
func (d *Dictionary) Intern(name string) Candidate {
	if id, ok := d.ids[name]; ok {
		return id
	}
	id := Candidate(len(d.names))
	d.names = append(d.names, name)
	d.ids[name] = id
	return id
}

// Name de-interns c back to its original string. Panics if c is out of
// range, which would indicate a programmer error (an ID never produced by
// this dictionary).
func (d *Dictionary) Name(c Candidate) string {
	if int(c) < 0 || int(c) >= len(d.names) {
		panic(fmt.Sprintf("model: candidate %d not present in dictionary", c))
	}
	return d.names[c]
}

// Len returns the number of interned candidates.
func (d *Dictionary) Len() int { return len(d.names) }

// Entries returns the ID->name table in ID order, for serialization.
func (d *Dictionary) Entries() []string {
	out := make([]string, len(d.names))
	copy(out, d.names)
	return out
}

// CandidateSet is a small, copyable bitset-backed set of candidates. It is
// the "subset" value type called for by the design notes: a static choice
// between the dense bitset.BitSet representation (used everywhere here,
// since even the "sparse" DP variant only needs set membership, not an
// ordered word index) with a handful of domain operations layered on top.
type CandidateSet struct {
	bits *bitset.BitSet
}

// NewCandidateSet returns an empty set sized to hold IDs up to capacity-1
// without reallocating.
func NewCandidateSet(capacity int) CandidateSet {
	if capacity < 0 {
		capacity = 0
	}
	return CandidateSet{bits: bitset.New(uint(capacity))}
}

// CandidateSetOf returns a set containing exactly the given candidates.
func CandidateSetOf(cs ...Candidate) CandidateSet {
	cap := 0
	for _, c := range cs {
		if int(c)+1 > cap {
			cap = int(c) + 1
		}
	}
	s := NewCandidateSet(cap)
	for _, c := range cs {
		s.Insert(c)
	}
	return s
}

// Insert adds c to the set.
func (s CandidateSet) Insert(c Candidate) { s.bits.Set(uint(c)) }

// Remove deletes c from the set.
func (s CandidateSet) Remove(c Candidate) { s.bits.Clear(uint(c)) }

// Contains reports whether c is a member.
func (s CandidateSet) Contains(c Candidate) bool { return s.bits.Test(uint(c)) }

// Len returns the number of members.
func (s CandidateSet) Len() int { return int(s.bits.Count()) }

// IsEmpty reports whether the set has no members.
func (s CandidateSet) IsEmpty() bool { return s.bits.None() }

// SingletonMember returns the sole member of a size-1 set. Panics if the set
// is not exactly size 1 (programmer error: callers must check Len() == 1
// first, per the design notes' singleton_member contract).
func (s CandidateSet) SingletonMember() Candidate {
	if s.Len() != 1 {
		panic(fmt.Sprintf("model: SingletonMember called on set of size %d", s.Len()))
	}
	i, _ := s.bits.NextSet(0)
	return Candidate(i)
}

// Clone returns an independent copy of the set.
func (s CandidateSet) Clone() CandidateSet {
	return CandidateSet{bits: s.bits.Clone()}
}

// Union returns a new set containing the members of both s and other.
func (s CandidateSet) Union(other CandidateSet) CandidateSet {
	return CandidateSet{bits: s.bits.Union(other.bits)}
}

// Intersection returns a new set containing only members of both s and other.
func (s CandidateSet) Intersection(other CandidateSet) CandidateSet {
	return CandidateSet{bits: s.bits.Intersection(other.bits)}
}

// Difference returns a new set containing members of s not in other.
func (s CandidateSet) Difference(other CandidateSet) CandidateSet {
	return CandidateSet{bits: s.bits.Difference(other.bits)}
}

// Slice returns the members in ascending order.
func (s CandidateSet) Slice() []Candidate {
	out := make([]Candidate, 0, s.Len())
	for i, e := s.bits.NextSet(0); e; i, e = s.bits.NextSet(i + 1) {
		out = append(out, Candidate(i))
	}
	return out
}

// String renders the set as a sorted, comma-separated ID list for debug
// logging.
func (s CandidateSet) String() string {
	members := s.Slice()
	ids := make([]int, len(members))
	for i, c := range members {
		ids[i] = int(c)
	}
	sort.Ints(ids)
	return fmt.Sprintf("%v", ids)
}

// Equal reports whether s and other contain exactly the same members.
func (s CandidateSet) Equal(other CandidateSet) bool {
	return s.bits.SymmetricDifference(other.bits).None()
}
