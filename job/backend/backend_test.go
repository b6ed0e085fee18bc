// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package backend

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/kemeny/model"
)

func TestGLPSOLParsesObjective(t *testing.T) {
	b := GLPSOL()
	require.Equal(t, "glpsol", b.Name())
	score, ok := b.ParseObjective([]byte("Status:     OPTIMAL\nObjective:  obj = 42 (MINimum)\n"))
	require.True(t, ok)
	require.Equal(t, 42, score)
}

func TestCPLEXParsesObjective(t *testing.T) {
	b := CPLEX()
	score, ok := b.ParseObjective([]byte("MIP - Integer optimal solution:  Objective =  7.0000000000e+00\nBest objective 7.0000000000, \n"))
	require.True(t, ok)
	require.Equal(t, 7, score)
}

func TestLinOrderParsesObjective(t *testing.T) {
	b := LinOrder()
	score, ok := b.ParseObjective([]byte("OPTIMAL 13\nx(0,1) 1\n"))
	require.True(t, ok)
	require.Equal(t, 13, score)
}

func TestExternalSolveMissingBinary(t *testing.T) {
	b := &External{BinaryName: "kemeny-definitely-not-a-real-binary"}
	_, err := b.Solve(context.Background(), [][]int{{0}}, []model.Candidate{0})
	require.Error(t, err)
}

func TestWriteLPRendersVariablesAndConstraints(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "lp-*.in")
	require.NoError(t, err)
	defer f.Close()

	matrix := [][]int{
		{0, 2, 1},
		{1, 0, 3},
		{2, 0, 0},
	}
	candidates := []model.Candidate{0, 1, 2}
	require.NoError(t, writeLP(f, matrix, candidates))

	content, err := os.ReadFile(f.Name())
	require.NoError(t, err)
	require.Contains(t, string(content), "Minimize")
	require.Contains(t, string(content), "x_0_1")
	require.Contains(t, string(content), "Binary")
}
