// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package searchtree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/solver/dp"
)

func mustBallot(t *testing.T, order ...model.Candidate) model.Ballot {
	t.Helper()
	b, err := model.NewBallot(order)
	require.NoError(t, err)
	return b
}

// tiedElection has a genuine Condorcet cycle among 0,1,2 so none of those
// pairs resolve cleanly, forcing the solver to actually branch.
func tiedElection(t *testing.T) *election.Election {
	t.Helper()
	a, b, c := model.Candidate(0), model.Candidate(1), model.Candidate(2)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c),
		mustBallot(t, b, c, a),
		mustBallot(t, c, a, b),
	}
	return election.New(ballots, 3)
}

func TestTreeSolveMatchesDP(t *testing.T) {
	e := tiedElection(t)
	universe := model.CandidateSetOf(0, 1, 2)

	treeResult := Tree{}.Solve(context.Background(), e, universe)
	dpResult := dp.Dense{}.Solve(context.Background(), e, universe)

	require.False(t, treeResult.Cancelled())
	require.Equal(t, dpResult.Score, treeResult.Score)
	require.Equal(t, e.KScore(treeResult.Consensus), treeResult.Score)
}

func TestTreeSolveAllClean(t *testing.T) {
	a, b, c := model.Candidate(0), model.Candidate(1), model.Candidate(2)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c),
		mustBallot(t, a, b, c),
	}
	e := election.New(ballots, 3)
	universe := model.CandidateSetOf(0, 1, 2)

	result := Tree{}.Solve(context.Background(), e, universe)
	require.Equal(t, 0, result.Score)
	require.Equal(t, []model.Candidate{a, b, c}, result.Consensus)
}

func TestTreeSolveSingleton(t *testing.T) {
	e := tiedElection(t)
	result := Tree{}.Solve(context.Background(), e, model.CandidateSetOf(1))
	require.Equal(t, 0, result.Score)
	require.Equal(t, []model.Candidate{1}, result.Consensus)
}

func TestTreeSolveCancelled(t *testing.T) {
	e := tiedElection(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := Tree{}.Solve(ctx, e, model.CandidateSetOf(0, 1, 2))
	require.True(t, result.Cancelled())
}
