// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Command kemeny computes an exact or heuristic Kemeny consensus ranking
// over a ballot file, wiring together every component of the engine:
// ballot parsing and anonymization (A), the election model (B), the
// data-reduction preprocessor (C), the job/worker layer dispatching DP (D)
// or search-tree (E) solves, and result persistence (G).
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/luxfi/kemeny/ballot"
	"github.com/luxfi/kemeny/config"
	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/internal/logging"
	"github.com/luxfi/kemeny/internal/metrics"
	"github.com/luxfi/kemeny/job"
	"github.com/luxfi/kemeny/job/backend"
	"github.com/luxfi/kemeny/kerrors"
	"github.com/luxfi/kemeny/model"
	"github.com/luxfi/kemeny/reduce"
	"github.com/luxfi/kemeny/scoreio"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "kemeny",
		Short: "Compute a Kemeny consensus ranking over a set of ballots",
	}
	cfg := config.BindFlags(cmd.Flags())
	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), cfg)
	}
	return cmd
}

func run(ctx context.Context, cfg *config.Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	log := logging.New(cfg.Verbose)

	f, err := os.Open(cfg.ElectionFile)
	if err != nil {
		return kerrors.NewFileNotFound(cfg.ElectionFile)
	}
	defer f.Close()

	raw, err := ballot.Parse(f)
	if err != nil {
		return err
	}
	common := ballot.IntersectUniverse(raw)
	ballots, dict, err := ballot.RestrictAndReindex(raw, common)
	if err != nil {
		return err
	}

	e := election.New(ballots, dict.Len())
	m := metrics.New(nil)

	if cfg.PrintInfo {
		printInfo(e)
	}

	decomp := buildDecomposition(e, cfg, m)

	limiter := job.NewLimiter(cfg.TimeLimit, 5, log, m)
	streamer := &job.StatusStreamer{Out: os.Stdout, Verbose: cfg.Verbose, Dict: dict}
	runner := job.NewRunner(job.DefaultCoreTokens, limiter, streamer, m, log, selectBackend(cfg.Modus))

	start := time.Now()
	result := runner.RunDecomposition(ctx, e, decomp, cfg.Modus)
	elapsed := time.Since(start)

	writer := scoreio.NewWriter(cfg.ElectionFile, dict, log)
	if err := writer.WriteDictionary(); err != nil {
		return err
	}
	if err := writer.WriteResult(0, result, elapsed); err != nil {
		return err
	}

	if cfg.Verbose {
		names := make([]string, len(result.Consensus))
		for i, c := range result.Consensus {
			names[i] = dict.Name(c)
		}
		fmt.Printf("score=%d consensus=%v\n", result.Score, names)
	} else {
		fmt.Printf("%d\t%d\n", result.Score, len(result.Consensus))
	}
	return nil
}

func buildDecomposition(e *election.Election, cfg *config.Config, m *metrics.Metrics) *reduce.Decomposition {
	if !cfg.Partitionate {
		universe := model.NewCandidateSet(e.NumCandidates)
		for c := 0; c < e.NumCandidates; c++ {
			universe.Insert(model.Candidate(c))
		}
		return &reduce.Decomposition{
			SubInstances: []reduce.SubInstance{{Candidates: universe, ScoreToSuccessors: 0}},
		}
	}
	rc, err := cfg.ReduceConfig()
	if err != nil {
		// Validate already checked RulesBits/SetChoice; this would only
		// fire on a programmer error wiring a new flag incorrectly.
		rc = reduce.DefaultConfig()
	}
	eng := reduce.NewEngine(rc, m)
	return eng.Decompose(e)
}

// selectBackend maps a negative modus value to one of the four external
// MIP backends spec.md names; -1 through -4 select glpsol, cplex,
// gurobi_cl, and linOrder respectively. Any other negative value still
// falls back to glpsol rather than failing fast, since which exact backend
// a given negative number selects is not specified.
func selectBackend(modus int) backend.Backend {
	switch modus {
	case -2:
		return backend.CPLEX()
	case -3:
		return backend.Gurobi()
	case -4:
		return backend.LinOrder()
	default:
		return backend.GLPSOL()
	}
}

func printInfo(e *election.Election) {
	lower, upper := e.Bounds()
	fmt.Printf("ballots=%d candidates=%d dirty_pairs=%d lower_bound=%d upper_bound=%d\n",
		e.NumBallots(), e.NumCandidates, len(e.DirtyPairs()), lower, upper)
}
