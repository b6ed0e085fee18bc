// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/model"
)

func mustBallot(t *testing.T, order ...model.Candidate) model.Ballot {
	t.Helper()
	b, err := model.NewBallot(order)
	require.NoError(t, err)
	return b
}

// S2: five identical ballots collapse to a single chain of singletons with
// zero score and zero cross contribution.
func TestDecomposeScenarioS2UnanimousBallots(t *testing.T) {
	a, b, c, d := model.Candidate(0), model.Candidate(1), model.Candidate(2), model.Candidate(3)
	var ballots []model.Ballot
	for i := 0; i < 5; i++ {
		ballots = append(ballots, mustBallot(t, a, b, c, d))
	}
	e := election.New(ballots, 4)
	lower, upper := e.Bounds()
	require.Zero(t, lower)
	require.Zero(t, upper)
	require.Empty(t, e.DirtyPairs())

	eng := NewEngine(DefaultConfig(), nil)
	decomp := eng.Decompose(e)
	require.Zero(t, decomp.CrossContribution)
	require.Len(t, decomp.SubInstances, 4)
	for _, sub := range decomp.SubInstances {
		require.Equal(t, 1, sub.Candidates.Len())
	}
}

// S3: A beats everyone strictly while B, C, D form a genuine three-way
// cycle among themselves. R5 runs first, splits {A} off as its own strongly
// connected component and cannot split the cycle, leaving {B, C, D} as one
// sub-instance. The cfg also enables R1, which is gated by the
// rules-selection bitstring.
func TestDecomposeScenarioS3CondorcetWinner(t *testing.T) {
	a, b, c, d := model.Candidate(0), model.Candidate(1), model.Candidate(2), model.Candidate(3)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c, d),
		mustBallot(t, a, c, d, b),
		mustBallot(t, a, d, b, c),
	}
	e := election.New(ballots, 4)

	cfg := DefaultConfig()
	cfg.Rules.R1 = true
	eng := NewEngine(cfg, nil)
	decomp := eng.Decompose(e)

	require.Len(t, decomp.SubInstances, 2)
	require.Equal(t, a, decomp.SubInstances[0].Candidates.SingletonMember())
	require.Equal(t, 3, decomp.SubInstances[1].Candidates.Len())
	require.True(t, decomp.SubInstances[1].Candidates.Contains(b))
	require.True(t, decomp.SubInstances[1].Candidates.Contains(c))
	require.True(t, decomp.SubInstances[1].Candidates.Contains(d))
}

// S4: A, B, C form a three-way Condorcet cycle while D strictly loses every
// pairwise comparison, so R5 splits the universe into two SCCs: {A, B, C}
// (a single component, topologically first) and {D} (the sink), with a
// nonzero cross contribution between them.
func TestDecomposeScenarioS4TwoSCCs(t *testing.T) {
	a, b, c, d := model.Candidate(0), model.Candidate(1), model.Candidate(2), model.Candidate(3)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c, d),
		mustBallot(t, b, c, a, d),
		mustBallot(t, c, a, d, b),
	}
	e := election.New(ballots, 4)

	eng := NewEngine(DefaultConfig(), nil)
	decomp := eng.Decompose(e)
	require.Len(t, decomp.SubInstances, 2)

	first := decomp.SubInstances[0].Candidates
	require.Equal(t, 3, first.Len())
	require.True(t, first.Contains(a))
	require.True(t, first.Contains(b))
	require.True(t, first.Contains(c))
	require.Equal(t, d, decomp.SubInstances[1].Candidates.SingletonMember())
	require.Positive(t, decomp.CrossContribution)
}

// Property 5: K_root = X + sum of sub-instance optima, verified here by
// brute force over the whole universe.
func TestDecompositionReconstructsGlobalOptimum(t *testing.T) {
	a, b, c, d := model.Candidate(0), model.Candidate(1), model.Candidate(2), model.Candidate(3)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c, d),
		mustBallot(t, a, b, d, c),
		mustBallot(t, b, a, c, d),
	}
	e := election.New(ballots, 4)

	eng := NewEngine(DefaultConfig(), nil)
	decomp := eng.Decompose(e)

	sumOfSubOptima := 0
	for _, sub := range decomp.SubInstances {
		sumOfSubOptima += bruteForceOptimum(t, e, sub.Candidates)
	}
	globalOptimum := bruteForceOptimum(t, e, fullUniverse(e))
	require.Equal(t, globalOptimum, decomp.CrossContribution+sumOfSubOptima)
}

func fullUniverse(e *election.Election) model.CandidateSet {
	s := model.NewCandidateSet(e.NumCandidates)
	for i := 0; i < e.NumCandidates; i++ {
		s.Insert(model.Candidate(i))
	}
	return s
}

func bruteForceOptimum(t *testing.T, e *election.Election, set model.CandidateSet) int {
	t.Helper()
	members := set.Slice()
	best := -1
	var perm func(remaining, chosen []model.Candidate)
	perm = func(remaining, chosen []model.Candidate) {
		if len(remaining) == 0 {
			score := e.ScoreOf(append([]model.Candidate{}, chosen...))
			if best < 0 || score < best {
				best = score
			}
			return
		}
		for i, c := range remaining {
			next := append(append([]model.Candidate{}, remaining[:i]...), remaining[i+1:]...)
			perm(next, append(chosen, c))
		}
	}
	perm(members, nil)
	return best
}
