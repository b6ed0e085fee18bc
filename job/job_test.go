// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package job

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/reduce"
)

func mustBallot(t *testing.T, order ...model.Candidate) model.Ballot {
	t.Helper()
	b, err := model.NewBallot(order)
	require.NoError(t, err)
	return b
}

func sampleElection(t *testing.T) *election.Election {
	t.Helper()
	a, b, c := model.Candidate(0), model.Candidate(1), model.Candidate(2)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c),
		mustBallot(t, a, b, c),
		mustBallot(t, b, c, a),
	}
	return election.New(ballots, 3)
}

func TestRunnerRunDPModus(t *testing.T) {
	e := sampleElection(t)
	r := NewRunner(2, nil, nil, nil, nil, nil)
	task := NewTask(model.CandidateSetOf(0, 1, 2), 1)
	result := r.Run(context.Background(), e, task)
	require.False(t, result.Cancelled())
	require.Equal(t, e.KScore(result.Consensus), result.Score)
}

func TestRunnerRunSearchTreeModus(t *testing.T) {
	e := sampleElection(t)
	r := NewRunner(2, nil, nil, nil, nil, nil)
	task := NewTask(model.CandidateSetOf(0, 1, 2), 2)
	result := r.Run(context.Background(), e, task)
	require.False(t, result.Cancelled())
	require.Equal(t, e.KScore(result.Consensus), result.Score)
}

func TestRunnerRunHeuristicModus(t *testing.T) {
	e := sampleElection(t)
	r := NewRunner(2, nil, nil, nil, nil, nil)
	task := NewTask(model.CandidateSetOf(0, 1, 2), 0)
	result := r.Run(context.Background(), e, task)
	require.False(t, result.Cancelled())
	require.Len(t, result.Consensus, 3)
}

func TestRunnerRunDecompositionAggregates(t *testing.T) {
	e := sampleElection(t)
	eng := reduce.NewEngine(reduce.DefaultConfig(), nil)
	decomp := eng.Decompose(e)

	r := NewRunner(2, nil, nil, nil, nil, nil)
	result := r.RunDecomposition(context.Background(), e, decomp, 1)
	require.False(t, result.Cancelled())
	require.Len(t, result.Consensus, 3)
	require.Equal(t, e.KScore(result.Consensus), result.Score)
}

func TestRunnerRunDecompositionCancelledPropagates(t *testing.T) {
	e := sampleElection(t)
	eng := reduce.NewEngine(reduce.DefaultConfig(), nil)
	decomp := eng.Decompose(e)

	r := NewRunner(2, nil, nil, nil, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := r.RunDecomposition(ctx, e, decomp, 1)
	require.True(t, result.Cancelled())
}

// Property 9: cancelling before any work begins releases the core token
// immediately and reports (-1, nil) rather than blocking forever.
func TestRunnerRunReleasesTokenOnPreCancelledContext(t *testing.T) {
	e := sampleElection(t)
	r := NewRunner(1, nil, nil, nil, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	result := r.Run(ctx, e, NewTask(model.CandidateSetOf(0, 1, 2), 1))
	require.True(t, result.Cancelled())
	require.Nil(t, result.Consensus)

	// The token must have been released (or never held): a fresh task on
	// the same single-token Runner must still be able to acquire it.
	again := r.Run(context.Background(), e, NewTask(model.CandidateSetOf(0, 1, 2), 1))
	require.False(t, again.Cancelled())
}

// Property 8: the Held-Karp DP and the search-tree solver agree on the
// optimal score for small candidate sets.
func TestRunnerDPAndSearchTreeAgree(t *testing.T) {
	e := sampleElection(t)
	r := NewRunner(2, nil, nil, nil, nil, nil)

	dpResult := r.Run(context.Background(), e, NewTask(model.CandidateSetOf(0, 1, 2), 1))
	treeResult := r.Run(context.Background(), e, NewTask(model.CandidateSetOf(0, 1, 2), 2))
	require.Equal(t, dpResult.Score, treeResult.Score)
}
