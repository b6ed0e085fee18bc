// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/config"
)

const sampleElectionFile = "A B C\nA B C\nB C A\nC A B\n"

func writeElectionFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "election.txt")
	require.NoError(t, os.WriteFile(path, []byte(sampleElectionFile), 0o644))
	return path
}

// Property 10: two runs over the same input produce identical consensus
// and score artifacts (timing aside, which is not expected to match).
func TestRunIsDeterministicAcrossInvocations(t *testing.T) {
	path := writeElectionFile(t)

	cfg := config.Default()
	cfg.ElectionFile = path
	cfg.Modus = 1
	require.NoError(t, run(context.Background(), &cfg))

	consensus1, err := os.ReadFile(path + ".consensus0")
	require.NoError(t, err)
	score1, err := os.ReadFile(path + ".consensus0.score")
	require.NoError(t, err)

	require.NoError(t, run(context.Background(), &cfg))
	consensus2, err := os.ReadFile(path + ".consensus0")
	require.NoError(t, err)
	score2, err := os.ReadFile(path + ".consensus0.score")
	require.NoError(t, err)

	require.Equal(t, consensus1, consensus2)
	require.Equal(t, score1, score2)
}

// Scenario S6: an input line containing the tie marker is rejected with a
// non-nil error rather than silently accepted.
func TestRunRejectsTieMarkerInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "election.txt")
	require.NoError(t, os.WriteFile(path, []byte("A ^ B C\n"), 0o644))

	cfg := config.Default()
	cfg.ElectionFile = path
	cfg.Modus = 1
	require.Error(t, run(context.Background(), &cfg))
}
