// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDictionaryInternIsStableAndRoundTrips(t *testing.T) {
	d := NewDictionary()
	a := d.Intern("alice")
	b := d.Intern("bob")
	again := d.Intern("alice")

	require.Equal(t, a, again)
	require.NotEqual(t, a, b)
	require.Equal(t, "alice", d.Name(a))
	require.Equal(t, "bob", d.Name(b))
	require.Equal(t, 2, d.Len())
	require.Equal(t, []string{"alice", "bob"}, d.Entries())
}

func TestDictionaryNamePanicsOutOfRange(t *testing.T) {
	d := NewDictionary()
	require.Panics(t, func() { d.Name(Candidate(42)) })
}

func TestCandidateSetBasicOperations(t *testing.T) {
	s := NewCandidateSet(8)
	require.True(t, s.IsEmpty())

	s.Insert(1)
	s.Insert(3)
	require.True(t, s.Contains(1))
	require.False(t, s.Contains(2))
	require.Equal(t, 2, s.Len())
	require.Equal(t, []Candidate{1, 3}, s.Slice())

	s.Remove(1)
	require.False(t, s.Contains(1))
	require.Equal(t, 1, s.Len())
}

func TestCandidateSetSetOperations(t *testing.T) {
	a := CandidateSetOf(0, 1, 2)
	b := CandidateSetOf(1, 2, 3)

	require.Equal(t, []Candidate{0, 1, 2, 3}, a.Union(b).Slice())
	require.Equal(t, []Candidate{1, 2}, a.Intersection(b).Slice())
	require.Equal(t, []Candidate{0}, a.Difference(b).Slice())
	require.True(t, a.Clone().Equal(a))
	require.False(t, a.Equal(b))
}

func TestCandidateSetSingletonMember(t *testing.T) {
	s := CandidateSetOf(5)
	require.Equal(t, Candidate(5), s.SingletonMember())

	multi := CandidateSetOf(1, 2)
	require.Panics(t, func() { multi.SingletonMember() })
}
