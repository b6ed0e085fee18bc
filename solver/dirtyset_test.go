// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package solver

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

func TestBuildDirtySetsSeparatesComponents(t *testing.T) {
	// 0,1,2 form a cycle (mutually dirty); 3 is a Condorcet loser, clean
	// against everyone.
	a, b, c, d := model.Candidate(0), model.Candidate(1), model.Candidate(2), model.Candidate(3)
	ballots := []model.Ballot{
		mustBallot(t, a, b, c, d),
		mustBallot(t, b, c, a, d),
		mustBallot(t, c, a, b, d),
	}
	e := election.New(ballots, 4)
	universe := model.CandidateSetOf(0, 1, 2, 3)

	sets := BuildDirtySets(e, universe, 7)
	require.Len(t, sets, 2)
	require.Equal(t, 3, sets[0].Candidates.Len())
	require.Equal(t, 1, sets[1].Candidates.Len())
	require.Equal(t, d, sets[1].Candidates.SingletonMember())

	// The 3-member cycle has 3! = 6 permutations, sorted ascending by
	// internal subscore.
	require.Len(t, sets[0].Permutations, 6)
	for i := 1; i < len(sets[0].Permutations); i++ {
		require.LessOrEqual(t, sets[0].Permutations[i-1].SubScore, sets[0].Permutations[i].SubScore)
	}

	// The last set has nothing after it, so nothing is owed to successors.
	require.Equal(t, 0, sets[1].ScoreFromSuccessorsMin)
	require.Equal(t, sets[1].Permutations[0].SubScore, sets[0].ScoreFromSuccessorsMin)
}

// The §4.E auxiliary rule: a dirty pair whose majority-ordered projection
// occurs more often than its own internal subscore is optimal immediately,
// short-circuiting the permutation enumeration down to one entry.
func TestBuildDirtySetsUniqueVoteMajorityShortcut(t *testing.T) {
	x, y, z := model.Candidate(0), model.Candidate(1), model.Candidate(2)
	ballots := []model.Ballot{
		mustBallot(t, x, y, z),
		mustBallot(t, x, y, z),
		mustBallot(t, y, x, z),
	}
	e := election.New(ballots, 3)
	universe := model.CandidateSetOf(0, 1, 2)

	sets := BuildDirtySets(e, universe, 7)
	require.Len(t, sets, 2)

	dirty := sets[0]
	require.Equal(t, 2, dirty.Candidates.Len())
	require.Len(t, dirty.Permutations, 1)
	require.Equal(t, []model.Candidate{x, y}, dirty.Permutations[0].Permutation)
	require.Equal(t, 1, dirty.Permutations[0].SubScore)
}

func TestBuildDirtySetsChunksOversizedComponent(t *testing.T) {
	// Five-way cycle: every consecutive pair (mod 5) disagrees, so all five
	// candidates land in one connected component.
	cands := []model.Candidate{0, 1, 2, 3, 4}
	var ballots []model.Ballot
	for shift := 0; shift < 5; shift++ {
		order := make([]model.Candidate, 5)
		for i, c := range cands {
			order[i] = cands[(int(c)+shift)%5]
		}
		ballots = append(ballots, mustBallot(t, order...))
	}
	e := election.New(ballots, 5)
	universe := model.CandidateSetOf(cands...)

	sets := BuildDirtySets(e, universe, 3)
	total := 0
	for _, s := range sets {
		require.LessOrEqual(t, s.Candidates.Len(), 3)
		total += s.Candidates.Len()
	}
	require.Equal(t, 5, total)
}
