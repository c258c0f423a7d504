// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/governance/status"
	"github.com/luxfi/governance/txs"
)

// Proposal is the stored record of one governance proposal. It is written
// once by propose and afterwards only its tallies and flags change; it is
// never deleted.
type Proposal struct {
	ID           uint64       `serialize:"true" json:"id"`
	Proposer     ids.ShortID  `serialize:"true" json:"proposer"`
	Actions      []txs.Action `serialize:"true" json:"actions"`
	StartHeight  uint64       `serialize:"true" json:"startHeight"`
	EndHeight    uint64       `serialize:"true" json:"endHeight"`
	ForVotes     uint64       `serialize:"true" json:"forVotes"`
	AgainstVotes uint64       `serialize:"true" json:"againstVotes"`
	Canceled     bool         `serialize:"true" json:"canceled"`
	Executed     bool         `serialize:"true" json:"executed"`
	Description  string       `serialize:"true" json:"description"`
}

// Status derives the proposal's lifecycle status from its stored fields.
// [height] is the current chain height, [quorum] the configured quorum,
// and [queued] whether a live timelock entry exists for the proposal.
// The derivation never touches state.
func (p *Proposal) Status(height uint64, quorum uint64, queued bool) status.Status {
	switch {
	case p.Canceled:
		return status.Canceled
	case p.Executed:
		return status.Executed
	case height <= p.StartHeight:
		return status.Pending
	case height <= p.EndHeight:
		return status.Active
	case p.ForVotes+p.AgainstVotes < quorum || p.ForVotes <= p.AgainstVotes:
		return status.Defeated
	case queued:
		return status.Queued
	default:
		return status.Succeeded
	}
}
