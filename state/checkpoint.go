// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"sort"
)

// Checkpoint records an account's voting power as of a height. Histories
// are append-only and hold at most one entry per height, so the sequence
// of heights is strictly increasing.
type Checkpoint struct {
	Height uint64 `serialize:"true" json:"height"`
	Power  uint64 `serialize:"true" json:"power"`
}

// powerAt returns the power of the latest checkpoint recorded at or
// before [height], or 0 if the history is empty or starts later.
//
// The common case is a query near the head of the history, so the last
// entry is checked before falling back to a binary search.
func powerAt(history []Checkpoint, height uint64) uint64 {
	if len(history) == 0 {
		return 0
	}

	if last := history[len(history)-1]; last.Height <= height {
		return last.Power
	}
	if history[0].Height > height {
		return 0
	}

	// Invariant: history[0].Height <= height < history[len-1].Height.
	// Find the first checkpoint past [height]; its predecessor is the
	// latest one at or before it.
	i := sort.Search(len(history), func(i int) bool {
		return history[i].Height > height
	})
	return history[i-1].Power
}

// applyPower stages [power] onto [history] at [height], overwriting the
// last checkpoint when it was recorded at the same height and appending
// otherwise. The returned bool reports whether an entry was appended.
func applyPower(history []Checkpoint, height uint64, power uint64) ([]Checkpoint, bool) {
	if n := len(history); n > 0 && history[n-1].Height == height {
		history[n-1].Power = power
		return history, false
	}
	return append(history, Checkpoint{
		Height: height,
		Power:  power,
	}), true
}
