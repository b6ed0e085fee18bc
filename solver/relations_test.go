// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package solver

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/model"
)

func TestRelationsAddTransitivelyCloses(t *testing.T) {
	rel := NewRelations(4)
	a, b, c := model.Candidate(0), model.Candidate(1), model.Candidate(2)

	rel.Add(b, a) // b below a
	rel.Add(c, b) // c below b

	require.True(t, rel.Lowers(a).Contains(b))
	require.True(t, rel.Lowers(a).Contains(c))
	require.True(t, rel.Uppers(c).Contains(a))
	require.True(t, rel.Uppers(c).Contains(b))
	require.True(t, rel.Consistent())
}

func TestRelationsConformsRejectsContradiction(t *testing.T) {
	rel := NewRelations(2)
	a, b := model.Candidate(0), model.Candidate(1)
	rel.Add(b, a)
	require.False(t, rel.Conforms(a, b))
	require.True(t, rel.Conforms(b, a))
}

func TestRelationsCloneIsIndependent(t *testing.T) {
	rel := NewRelations(2)
	a, b := model.Candidate(0), model.Candidate(1)
	clone := rel.Clone()
	clone.Add(b, a)

	require.False(t, rel.Lowers(a).Contains(b))
	require.True(t, clone.Lowers(a).Contains(b))
}

func TestRelationsToConsensusOrdersByRank(t *testing.T) {
	rel := NewRelations(3)
	a, b, c := model.Candidate(0), model.Candidate(1), model.Candidate(2)
	rel.Add(b, a)
	rel.Add(c, b)

	got := rel.ToConsensus([]model.Candidate{b, c, a})
	require.Equal(t, []model.Candidate{a, b, c}, got)
}
