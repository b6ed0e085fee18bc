// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package reduce implements component C: the data-reduction preprocessor
// that applies the five rules of §4.C to a root election instance, yielding
// an ordered decomposition whose sub-consensuses concatenate to a global
// optimum. Grounded on votesplitter.cpp/.hpp from the original
// implementation.
package reduce

// SetChoice selects among multiple candidate Condorcet/non-dirty sets when
// a rule finds more than one valid split, per --set-choice-method.
type SetChoice int

const (
	// SmallestInstance prefers the split whose extracted set is smallest.
	SmallestInstance SetChoice = iota
	// HalfOfInstance prefers the split closest to half the block size.
	HalfOfInstance
	// ThirdOfInstance prefers the split closest to a third of the block size.
	ThirdOfInstance
	// BiggestInstance prefers the split whose extracted set is biggest.
	BiggestInstance
)

// denom returns the SetChoice's target-fraction denominator; BiggestInstance
// has no finite target and is handled separately by callers.
func (s SetChoice) denom() float64 {
	switch s {
	case HalfOfInstance:
		return 2
	case ThirdOfInstance:
		return 3
	default:
		return 1 // SmallestInstance targets 0, handled by caller
	}
}

// RulesSelection toggles which of R1-R4 the engine applies. R5 (Condorcet
// component / SCC) is not gated by the CLI bitstring: it is cheap, always
// safe, and documented in spec.md as "always first if enabled"; we treat it
// as always enabled, matching the "all-zero defaults to R5 only" behavior
// exactly when R1-R4 are all off.
type RulesSelection struct {
	R1 bool // bit1: Condorcet candidate
	R2 bool // bit3: Condorcet set
	R3 bool // bit0: majority-non-dirty candidate
	R4 bool // bit2: majority-non-dirty set
}

// ParseRulesSelection decodes the 4-bit binary string of --rules-selection-mode.
// bit0=R3, bit1=R1, bit2=R4, bit3=R2, read left-to-right as emitted by the
// CLI (e.g. "1010" sets bit0 and bit2: R3 and R4).
func ParseRulesSelection(bits string) (RulesSelection, error) {
	var rs RulesSelection
	padded := bits
	for len(padded) < 4 {
		padded += "0"
	}
	if len(padded) != 4 {
		return rs, errInvalidRulesBits(bits)
	}
	for i, ch := range padded[:4] {
		on := ch == '1'
		if ch != '0' && ch != '1' {
			return rs, errInvalidRulesBits(bits)
		}
		switch i {
		case 0:
			rs.R3 = on
		case 1:
			rs.R1 = on
		case 2:
			rs.R4 = on
		case 3:
			rs.R2 = on
		}
	}
	return rs, nil
}

// Config bundles the reduction engine's tunables, sourced from the CLI
// flags of §6.
type Config struct {
	Rules         RulesSelection
	MaxSetSize    int     // R2/R4 cap; 0 means "use NumCandidates-1"
	SetChoice     SetChoice
	MajorityRatio float64 // default 0.75, used by R3/R4
	StrictBetter  bool    // strict (>) vs weak (>=) pairwise win for R1/R2
}

// DefaultConfig returns the engine defaults documented in spec.md §6.
func DefaultConfig() Config {
	return Config{
		Rules:         RulesSelection{},
		MaxSetSize:    0,
		SetChoice:     SmallestInstance,
		MajorityRatio: 0.75,
		StrictBetter:  true,
	}
}

func (c Config) maxSetSize(numCandidates int) int {
	if c.MaxSetSize > 0 {
		return c.MaxSetSize
	}
	return numCandidates - 1
}
