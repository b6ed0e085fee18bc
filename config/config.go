// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package config builds a Config from the CLI surface of spec.md §6 using
// cobra/pflag, the same stack the teacher's cmd/consensus submodule uses
// for its own flag handling.
package config

import (
	"time"

	"github.com/spf13/pflag"

	"github.com/luxfi/kemeny/kerrors"
	"github.com/luxfi/kemeny/reduce"
)

// Config is the fully parsed set of run parameters, bug-compatible with
// the CLI flag table of spec.md §6.
type Config struct {
	ElectionFile  string
	Modus         int
	Partitionate  bool
	RulesBits     string
	SetChoice     string
	MaxSetSize    int
	KeepAllSolutions bool
	TimeLimit     time.Duration
	MajorityRatio float64
	PrintInfo     bool
	Verbose       bool
	Brief         bool
}

// Default returns a Config with the spec's documented defaults.
func Default() Config {
	return Config{
		Modus:         1,
		RulesBits:     "0000",
		SetChoice:     "smallestInstance",
		MaxSetSize:    0,
		MajorityRatio: 0.75,
	}
}

// BindFlags registers every flag of spec.md §6 onto fs and returns the
// Config that will be populated once fs.Parse has run.
func BindFlags(fs *pflag.FlagSet) *Config {
	cfg := Default()
	fs.StringVarP(&cfg.ElectionFile, "election-file", "e", "", "path to the ballot file (required)")
	fs.IntVarP(&cfg.Modus, "solve-with-modus", "s", cfg.Modus, "mode selector: <0 external backend, 0 heuristic, 1 DP, >=2 search tree dirty-set cap")
	fs.BoolVarP(&cfg.Partitionate, "partitionate-with-datareductions", "p", false, "enable the data-reduction preprocessor")
	fs.StringVarP(&cfg.RulesBits, "rules-selection-mode", "r", cfg.RulesBits, "4-bit rules-selection bitstring: bit0=R3 bit1=R1 bit2=R4 bit3=R2")
	fs.StringVar(&cfg.SetChoice, "set-choice-method", cfg.SetChoice, "smallestInstance|halfOfInstance|thirdOfInstance|biggestInstance")
	fs.IntVarP(&cfg.MaxSetSize, "extract-instances-maxsize", "x", 0, "R2/R4 cap; 0 means m-1")
	fs.BoolVarP(&cfg.KeepAllSolutions, "keep-all-solutions", "k", false, "force rules to preserve all optima (informational)")
	fs.DurationVarP(&cfg.TimeLimit, "timelimit", "t", 0, "wall-clock cap per task, e.g. 30s")
	fs.Float64VarP(&cfg.MajorityRatio, "nondirty-majority-ratio", "m", cfg.MajorityRatio, "majority ratio used by R3/R4")
	fs.BoolVarP(&cfg.PrintInfo, "print-information", "i", false, "emit instance statistics table")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "human-readable progress output")
	fs.BoolVar(&cfg.Brief, "brief", false, "tab-separated machine-readable output")
	return &cfg
}

// Validate checks the parsed flags for the invariants the CLI must enforce
// before starting a run, per §6's exit-code table.
func (c *Config) Validate() error {
	if c.ElectionFile == "" {
		return kerrors.NewArgumentsRequired("--election-file is required")
	}
	if _, err := reduce.ParseRulesSelection(c.RulesBits); err != nil {
		return err
	}
	if err := validSetChoice(c.SetChoice); err != nil {
		return err
	}
	return nil
}

func validSetChoice(s string) error {
	switch s {
	case "smallestInstance", "halfOfInstance", "thirdOfInstance", "biggestInstance":
		return nil
	default:
		return kerrors.NewBadConversion(s, "set-choice-method")
	}
}

// SetChoiceValue maps the parsed --set-choice-method string to the
// reduce.SetChoice enum. Validate must have already confirmed it is one of
// the four recognized values.
func (c *Config) SetChoiceValue() reduce.SetChoice {
	switch c.SetChoice {
	case "halfOfInstance":
		return reduce.HalfOfInstance
	case "thirdOfInstance":
		return reduce.ThirdOfInstance
	case "biggestInstance":
		return reduce.BiggestInstance
	default:
		return reduce.SmallestInstance
	}
}

// ReduceConfig builds a reduce.Config from the parsed CLI flags.
func (c *Config) ReduceConfig() (reduce.Config, error) {
	rules, err := reduce.ParseRulesSelection(c.RulesBits)
	if err != nil {
		return reduce.Config{}, err
	}
	return reduce.Config{
		Rules:         rules,
		MaxSetSize:    c.MaxSetSize,
		SetChoice:     c.SetChoiceValue(),
		MajorityRatio: c.MajorityRatio,
		StrictBetter:  true,
	}, nil
}
