// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"bytes"
	"fmt"

	"github.com/google/btree"
	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"

	"github.com/luxfi/governance/txs"
)

var _ btree.LessFunc[*TimelockEntry] = (*TimelockEntry).Less

// TimelockEntry schedules a proposal's execution. Created by queue,
// overwritten by a re-queue, and consumed by execute.
type TimelockEntry struct {
	Key        ids.ID `serialize:"true" json:"key"`
	ProposalID uint64 `serialize:"true" json:"proposalID"`
	// ETA is the unix second at which execution becomes permitted.
	ETA uint64 `serialize:"true" json:"eta"`
}

// Less orders entries by eta so the schedule can be walked in execution
// order, breaking ties by key.
func (e *TimelockEntry) Less(than *TimelockEntry) bool {
	if e.ETA != than.ETA {
		return e.ETA < than.ETA
	}
	return bytes.Compare(e.Key[:], than.Key[:]) == -1
}

// timelockDigest binds a timelock entry's key to the proposal identity
// it schedules.
type timelockDigest struct {
	ProposalID uint64       `serialize:"true"`
	Actions    []txs.Action `serialize:"true"`
}

// TimelockKey derives the schedule key for a proposal. The key commits
// to the proposal's id and its full action batch.
func TimelockKey(proposalID uint64, actions []txs.Action) (ids.ID, error) {
	b, err := Codec.Marshal(CodecVersion, &timelockDigest{
		ProposalID: proposalID,
		Actions:    actions,
	})
	if err != nil {
		return ids.Empty, fmt.Errorf("couldn't marshal timelock digest: %w", err)
	}
	return hash.ComputeHash256Array(b), nil
}
