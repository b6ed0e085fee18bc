// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

// Package ballot implements component A of the Kemeny consensus engine: the
// ballot file reader and the anonymizer that interns candidate names to
// dense integer IDs and restricts every ballot to the common candidate
// universe. Grounded on votesmanagement.cpp/.hpp from the original
// implementation.
package ballot

import (
	"bufio"
	"io"
	"strings"

	"github.com/luxfi/kemeny/kerrors"
	"github.com/luxfi/kemeny/model"
)

// RawBallot is one parsed, tokenized ballot line before anonymization: an
// ordered list of candidate names exactly as they appeared on the line.
type RawBallot []string

// Parse reads a ballot stream per §6 of the specification: one ballot per
// non-blank line, tokens separated by runs of ASCII whitespace or by '>'
// (both indicate a strict preference step), leading/trailing whitespace
// ignored, blank lines skipped. The reserved tie marker '^' is rejected.
func Parse(r io.Reader) ([]RawBallot, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	var ballots []RawBallot
	line := 0
	for scanner.Scan() {
		line++
		raw := strings.TrimSpace(scanner.Text())
		if raw == "" {
			continue
		}
		if idx := strings.IndexByte(raw, '^'); idx >= 0 {
			return nil, kerrors.NewTieUnsupported(line)
		}
		tokens := tokenize(raw)
		if len(tokens) == 0 {
			continue
		}
		ballots = append(ballots, RawBallot(tokens))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ballots, nil
}

// tokenize splits a ballot line on runs of whitespace or '>' separators,
// treating either as a rank boundary. A candidate token is any non-empty
// maximal run of characters that are neither whitespace nor '>'.
func tokenize(line string) []string {
	return strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t' || r == '>'
	})
}
