// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package reduce

import (
	"github.com/luxfi/kemeny/election"
	"github.com/luxfi/kemeny/internal/metrics"
	"github.com/luxfi/kemeny/model"
)

// Engine runs the five data-reduction rules to a fixed point over a root
// election instance.
type Engine struct {
	Config  Config
	Metrics *metrics.Metrics
}

// NewEngine returns an Engine with the given configuration. m may be nil.
func NewEngine(cfg Config, m *metrics.Metrics) *Engine {
	return &Engine{Config: cfg, Metrics: m}
}

// Decompose partitions the full candidate universe of e into an ordered
// decomposition per §4.C: rules are applied to a worklist of blocks in
// priority order R5 -> R3 -> R1 -> R4 -> R2, re-entering the whole list
// after any successful split, until a full pass changes nothing.
func (eng *Engine) Decompose(e *election.Election) *Decomposition {
	universe := model.NewCandidateSet(e.NumCandidates)
	for c := 0; c < e.NumCandidates; c++ {
		universe.Insert(model.Candidate(c))
	}
	blocks := eng.run(e, []model.CandidateSet{universe})
	return buildDecomposition(e, blocks)
}

// DecomposeSet is Decompose restricted to an arbitrary candidate subset,
// used by callers (e.g. tests, or a future incremental re-reduction) that
// already hold a sub-instance rather than the full election.
func (eng *Engine) DecomposeSet(e *election.Election, subset model.CandidateSet) *Decomposition {
	blocks := eng.run(e, []model.CandidateSet{subset})
	return buildDecomposition(e, blocks)
}

func (eng *Engine) run(e *election.Election, blocks []model.CandidateSet) []model.CandidateSet {
	for {
		next, changed := eng.pass(e, blocks)
		blocks = next
		if !changed {
			return blocks
		}
	}
}

// pass makes one left-to-right scan over blocks, splitting the first
// applicable block it finds and leaving the rest untouched for the next
// pass (re-entering the fixed point after any successful split, per §4.C).
func (eng *Engine) pass(e *election.Election, blocks []model.CandidateSet) ([]model.CandidateSet, bool) {
	out := make([]model.CandidateSet, 0, len(blocks))
	changed := false
	for _, b := range blocks {
		if !changed {
			if parts, rule, ok := eng.trySplit(e, b); ok {
				out = append(out, parts...)
				changed = true
				eng.hit(rule)
				continue
			}
		}
		out = append(out, b)
	}
	return out, changed
}

func (eng *Engine) trySplit(e *election.Election, block model.CandidateSet) ([]model.CandidateSet, string, bool) {
	if block.Len() <= 1 {
		return nil, "", false
	}
	if parts, ok := ruleCondorcetComponent(e, block, eng.Config); ok {
		return parts, "R5", true
	}
	if eng.Config.Rules.R3 {
		if parts, ok := ruleNonDirtyCandidate(e, block, eng.Config.MajorityRatio); ok {
			return parts, "R3", true
		}
	}
	if eng.Config.Rules.R1 {
		if parts, ok := ruleCondorcetCandidate(e, block, eng.Config); ok {
			return parts, "R1", true
		}
	}
	if eng.Config.Rules.R4 {
		if parts, ok := ruleNonDirtySet(e, block, eng.Config, eng.Config.MajorityRatio); ok {
			return parts, "R4", true
		}
	}
	if eng.Config.Rules.R2 {
		if parts, ok := ruleCondorcetSet(e, block, eng.Config); ok {
			return parts, "R2", true
		}
	}
	return nil, "", false
}

func (eng *Engine) hit(rule string) {
	if eng.Metrics == nil {
		return
	}
	eng.Metrics.ReductionHits.WithLabelValues(rule).Inc()
}
