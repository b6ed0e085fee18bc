// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package backend abstracts the external MIP solvers a negative --solve-
// with-modus value dispatches to (glpsol, CPLEX, Gurobi, linOrder). These
// are optional, out-of-core-scope integrations per spec.md: the engine
// spawns the subprocess, feeds it the pairwise matrix, waits with
// cancellation support, and parses whatever objective line the tool prints.
// None of this is exercised unless the operator points --solve-with-modus
// at a negative value and the named binary is actually on PATH.
package backend

import (
	"bufio"
	"context"
	"os"
	"os/exec"
	"regexp"
	"strconv"
	"syscall"

	"github.com/cockroachdb/errors"

	"github.com/luxfi/kemeny/kerrors"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/solver"
)

// Backend spawns an external MIP solver over a candidate subset's pairwise
// matrix and parses its optimal ordering back out.
type Backend interface {
	Name() string
	Solve(ctx context.Context, matrix [][]int, candidates []model.Candidate) (solver.Result, error)
}

// External is a Backend driven by a subprocess: WriteInput renders the
// problem to a temp file in whatever format the binary expects, Args builds
// its command line, and ParseObjective extracts the best objective value
// from its stdout. The subprocess's assignment is not parsed: the returned
// Consensus is the candidates slice exactly as passed in, and only the
// objective value comes from the tool's output.
type External struct {
	BinaryName     string
	BuildArgs      func(inputPath string) []string
	WriteInput     func(w *os.File, matrix [][]int, candidates []model.Candidate) error
	ParseObjective func(stdout []byte) (int, bool)
}

var _ Backend = (*External)(nil)

func (e *External) Name() string { return e.BinaryName }

// Solve writes the problem to a temp file, spawns the binary, and waits for
// it to exit or ctx to be cancelled — in which case the subprocess is sent
// SIGTERM and the call returns a cancelled Result.
func (e *External) Solve(ctx context.Context, matrix [][]int, candidates []model.Candidate) (solver.Result, error) {
	path, err := exec.LookPath(e.BinaryName)
	if err != nil {
		return solver.Result{}, kerrors.NewBackendFailure(e.BinaryName, -1, "binary not found on PATH")
	}

	f, err := os.CreateTemp("", "kemeny-"+e.BinaryName+"-*.in")
	if err != nil {
		return solver.Result{}, errors.Wrap(err, "backend: create input file")
	}
	defer os.Remove(f.Name())
	defer f.Close()

	if err := e.WriteInput(f, matrix, candidates); err != nil {
		return solver.Result{}, errors.Wrap(err, "backend: write input")
	}
	if err := f.Close(); err != nil {
		return solver.Result{}, errors.Wrap(err, "backend: close input")
	}

	cmd := exec.CommandContext(ctx, path, e.BuildArgs(f.Name())...)
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	out, runErr := cmd.Output()
	if ctx.Err() != nil {
		return solver.Result{Score: solver.CancelledScore}, nil
	}
	if runErr != nil {
		var exitErr *exec.ExitError
		code := -1
		stderr := ""
		if errors.As(runErr, &exitErr) {
			code = exitErr.ExitCode()
			stderr = string(exitErr.Stderr)
		}
		return solver.Result{}, kerrors.NewBackendFailure(e.BinaryName, code, stderr)
	}

	score, ok := e.ParseObjective(out)
	if !ok {
		return solver.Result{}, kerrors.NewBackendFailure(e.BinaryName, 0, "could not locate objective value in output")
	}
	return solver.Result{Score: score, Consensus: candidates}, nil
}

// GLPSOL returns a Backend wrapping GLPK's glpsol CLI, fed a CPLEX-LP
// rendering of the min-disagreement assignment problem.
func GLPSOL() *External {
	re := regexp.MustCompile(`(?i)Objective:\s*\S+\s*=\s*(-?\d+(\.\d+)?)`)
	return &External{
		BinaryName: "glpsol",
		BuildArgs:  func(path string) []string { return []string{"--lp", path, "-o", path + ".sol"} },
		WriteInput: writeLP,
		ParseObjective: func(stdout []byte) (int, bool) {
			return firstRegexInt(re, stdout)
		},
	}
}

// CPLEX returns a Backend wrapping IBM CPLEX's cplex CLI in its common
// "Best objective" reporting format.
func CPLEX() *External {
	re := regexp.MustCompile(`Best objective\s+(-?\d+(\.\d+)?)`)
	return &External{
		BinaryName: "cplex",
		BuildArgs:  func(path string) []string { return []string{"-c", "read " + path, "optimize"} },
		WriteInput: writeLP,
		ParseObjective: func(stdout []byte) (int, bool) {
			return firstRegexInt(re, stdout)
		},
	}
}

// Gurobi returns a Backend wrapping Gurobi's gurobi_cl CLI.
func Gurobi() *External {
	re := regexp.MustCompile(`Best objective\s+(-?\d+(\.\d+)?e?[+-]?\d*)`)
	return &External{
		BinaryName: "gurobi_cl",
		BuildArgs:  func(path string) []string { return []string{"ResultFile=" + path + ".sol", path} },
		WriteInput: writeLP,
		ParseObjective: func(stdout []byte) (int, bool) {
			return firstRegexInt(re, stdout)
		},
	}
}

// LinOrder returns a Backend wrapping the specialized "linOrder" linear-
// ordering-polytope solver some installs of this tooling ship alongside
// the generic MIP backends.
func LinOrder() *External {
	re := regexp.MustCompile(`(?i)OPTIMAL\s+(-?\d+)`)
	return &External{
		BinaryName: "linOrder",
		BuildArgs:  func(path string) []string { return []string{path} },
		WriteInput: writeMatrix,
		ParseObjective: func(stdout []byte) (int, bool) {
			return firstRegexInt(re, stdout)
		},
	}
}

func firstRegexInt(re *regexp.Regexp, stdout []byte) (int, bool) {
	m := re.FindSubmatch(stdout)
	if m == nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(m[1]), 64)
	if err != nil {
		return 0, false
	}
	return int(f), true
}

// writeLP renders the linear-ordering MIP in CPLEX-LP format: one binary
// x(i,j) per ordered pair meaning "i before j", minimizing the sum of
// P[j][i]*x(i,j), subject to x(i,j)+x(j,i)=1 and the usual transitivity
// triangle constraints.
func writeLP(w *os.File, matrix [][]int, candidates []model.Candidate) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()

	if _, err := bw.WriteString("Minimize\n obj:"); err != nil {
		return err
	}
	for _, i := range candidates {
		for _, j := range candidates {
			if i == j {
				continue
			}
			if _, err := bw.WriteString(plusTerm(matrix[j][i], i, j)); err != nil {
				return err
			}
		}
	}
	if _, err := bw.WriteString("\nSubject To\n"); err != nil {
		return err
	}
	for idx, i := range candidates {
		for _, j := range candidates[idx+1:] {
			if _, err := bw.WriteString(pairConstraint(i, j)); err != nil {
				return err
			}
		}
	}
	for a, i := range candidates {
		for b := a + 1; b < len(candidates); b++ {
			j := candidates[b]
			for _, k := range candidates[b+1:] {
				for _, t := range [][3]model.Candidate{{i, j, k}, {i, k, j}} {
					line := " " + varName(t[0], t[1]) + " + " + varName(t[1], t[2]) + " + " + varName(t[2], t[0]) + " <= 2\n"
					if _, err := bw.WriteString(line); err != nil {
						return err
					}
				}
			}
		}
	}
	if _, err := bw.WriteString("Binary\n"); err != nil {
		return err
	}
	for _, i := range candidates {
		for _, j := range candidates {
			if i == j {
				continue
			}
			if _, err := bw.WriteString(varName(i, j) + "\n"); err != nil {
				return err
			}
		}
	}
	_, err := bw.WriteString("End\n")
	return err
}

func plusTerm(coeff int, i, j model.Candidate) string {
	if coeff == 0 {
		return ""
	}
	return " + " + strconv.Itoa(coeff) + " " + varName(i, j)
}

func pairConstraint(i, j model.Candidate) string {
	return " c_" + varName(i, j) + ": " + varName(i, j) + " + " + varName(j, i) + " = 1\n"
}

func varName(i, j model.Candidate) string {
	return "x_" + strconv.Itoa(int(i)) + "_" + strconv.Itoa(int(j))
}

// writeMatrix renders the raw pairwise-preference matrix, one row per line,
// in the plain whitespace-separated format linOrder expects.
func writeMatrix(w *os.File, matrix [][]int, candidates []model.Candidate) error {
	bw := bufio.NewWriter(w)
	defer bw.Flush()
	for _, i := range candidates {
		for k, j := range candidates {
			if k > 0 {
				if _, err := bw.WriteString(" "); err != nil {
					return err
				}
			}
			if _, err := bw.WriteString(strconv.Itoa(matrix[i][j])); err != nil {
				return err
			}
		}
		if _, err := bw.WriteString("\n"); err != nil {
			return err
		}
	}
	return nil
}
