// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package job

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/luxfi/kemeny/model"
)

// StatusStreamer reports task progress to a writer, either as a
// human-readable banner (--verbose) or as brief tab-separated records
// (--brief), per §6.
type StatusStreamer struct {
	Out     io.Writer
	Verbose bool
	Dict    *model.Dictionary
}

// Started reports that a sub-instance's solve has begun.
func (s *StatusStreamer) Started(id string, candidates model.CandidateSet, modus int) {
	if s.Verbose {
		fmt.Fprintf(s.Out, "[%s] starting solve over %s candidates (modus %d)\n",
			id, humanize.Comma(int64(candidates.Len())), modus)
		return
	}
	fmt.Fprintf(s.Out, "start\t%s\t%d\t%d\n", id, candidates.Len(), modus)
}

// Finished reports a completed (or cancelled) sub-instance solve.
func (s *StatusStreamer) Finished(id string, elapsed time.Duration, score int, cancelled bool) {
	if s.Verbose {
		if cancelled {
			fmt.Fprintf(s.Out, "[%s] cancelled after %s\n", id, humanize.RelTime(time.Now().Add(-elapsed), time.Now(), "", ""))
			return
		}
		fmt.Fprintf(s.Out, "[%s] done in %s, score %s\n", id, elapsed.Round(time.Millisecond), humanize.Comma(int64(score)))
		return
	}
	fmt.Fprintf(s.Out, "done\t%s\t%d\t%d\t%t\n", id, elapsed.Milliseconds(), score, cancelled)
}

// RAMSample reports a free-RAM sample, verbose mode only.
func (s *StatusStreamer) RAMSample(freePercent float64, totalBytes uint64) {
	if !s.Verbose {
		return
	}
	fmt.Fprintf(s.Out, "free RAM: %.1f%% of %s\n", freePercent, humanize.Bytes(totalBytes))
}
