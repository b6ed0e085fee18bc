// Copyright (C) 2019-2026, Lux Industries Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package model

import "fmt"

// Ballot is a strict total order over a subset of candidates. Order holds
// the ranking itself (Order[i] is the candidate in position i); Rank is the
// inverse map (Rank[c] is the position of candidate c). Once a ballot has
// passed through restrict-and-reindex, every ballot in an Election shares
// the same candidate universe and Rank is dense over 0..len(Order)-1.
type Ballot struct {
	Order []Candidate
	Rank  map[Candidate]int
}

// NewBallot builds a Ballot from an ordered candidate sequence, validating
// the no-repeats invariant from the data model.
func NewBallot(order []Candidate) (Ballot, error) {
	rank := make(map[Candidate]int, len(order))
	for i, c := range order {
		if _, dup := rank[c]; dup {
			return Ballot{}, fmt.Errorf("model: duplicate candidate %d in ballot", c)
		}
		rank[c] = i
	}
	return Ballot{Order: order, Rank: rank}, nil
}

// Len returns the number of ranked candidates.
func (b Ballot) Len() int { return len(b.Order) }

// Prefers reports whether ballot b ranks a strictly above c (i.e. a appears
// earlier in Order than c). Both candidates must be present in the ballot.
func (b Ballot) Prefers(a, c Candidate) bool {
	return b.Rank[a] < b.Rank[c]
}

// Key returns a string fingerprint of the ballot's ranking, suitable for use
// as a map key when counting identical ballots (the unique-vote-majority
// auxiliary rule of the search-tree solver).
func (b Ballot) Key() string {
	buf := make([]byte, 0, len(b.Order)*5)
	for _, c := range b.Order {
		buf = fmt.Appendf(buf, "%d,", c)
	}
	return string(buf)
}
