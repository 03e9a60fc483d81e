// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package voting

// Ballot accumulates a voter's in-progress selections, one candidate per
// position. It lives only for the voting session: never persisted, and
// treated as consumed once handed to Engine.Commit.
type Ballot struct {
	selections map[string]string // position id -> candidate id
}

func NewBallot() *Ballot {
	return &Ballot{selections: make(map[string]string)}
}

// Select records a candidate for a position, replacing any prior selection
// for that position. Candidate/position consistency is checked at commit.
func (b *Ballot) Select(positionID, candidateID string) {
	b.selections[positionID] = candidateID
}

// Selections returns a copy of the position -> candidate mapping.
// Iteration order is unspecified.
func (b *Ballot) Selections() map[string]string {
	out := make(map[string]string, len(b.selections))
	for pos, cand := range b.selections {
		out[pos] = cand
	}
	return out
}

// Len reports how many positions have a selection.
func (b *Ballot) Len() int {
	return len(b.selections)
}
