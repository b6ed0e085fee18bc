// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package election

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/model"
)

func mustBallot(t *testing.T, order ...model.Candidate) model.Ballot {
	t.Helper()
	b, err := model.NewBallot(order)
	require.NoError(t, err)
	return b
}

func cyclicElection(t *testing.T) *Election {
	t.Helper()
	a, b, c := model.Candidate(0), model.Candidate(1), model.Candidate(2)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c),
		mustBallot(t, b, c, a),
		mustBallot(t, c, a, b),
	}
	return New(ballots, 3)
}

// Property 2: P[a][b] + P[b][a] = n for every pair.
func TestMatrixPairwiseSumsToBallotCount(t *testing.T) {
	e := cyclicElection(t)
	p := e.Matrix()
	n := e.NumBallots()
	for a := 0; a < e.NumCandidates; a++ {
		for b := a + 1; b < e.NumCandidates; b++ {
			require.Equal(t, n, p[a][b]+p[b][a])
		}
	}
}

// Property 1: K(pi) + K(reverse(pi)) = n*m*(m-1)/2.
func TestKScorePlusReverseEqualsTotalPairs(t *testing.T) {
	e := cyclicElection(t)
	pi := []model.Candidate{0, 1, 2}
	reversed := []model.Candidate{2, 1, 0}

	n, m := e.NumBallots(), e.NumCandidates
	want := n * m * (m - 1) / 2
	require.Equal(t, want, e.KScore(pi)+e.KScore(reversed))
}

func TestKScorePanicsOnWrongLength(t *testing.T) {
	e := cyclicElection(t)
	require.Panics(t, func() { e.KScore([]model.Candidate{0, 1}) })
}

func TestScoreOfMatchesKScoreOnFullUniverse(t *testing.T) {
	e := cyclicElection(t)
	pi := []model.Candidate{1, 2, 0}
	require.Equal(t, e.KScore(pi), e.ScoreOf(pi))
}

func TestKTDistanceCountsDisagreements(t *testing.T) {
	a := mustBallot(t, 0, 1, 2)
	b := mustBallot(t, 1, 0, 2)
	require.Equal(t, 1, KTDistance(a, b))
	require.Equal(t, 0, KTDistance(a, a))
}
