// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "errors"

var (
	ErrZeroVotingDelay  = errors.New("voting delay must be at least one height")
	ErrZeroVotingPeriod = errors.New("voting period must be at least one height")
)

// Params are the governance parameters. They are fixed at genesis and may
// be replaced afterwards only by the administrator.
type Params struct {
	// Heights between proposal creation and the start of voting. Must be
	// at least one so vote weights snapshot a finalized height.
	VotingDelay uint64 `serialize:"true" json:"votingDelay"`

	// Heights the voting window stays open once it starts.
	VotingPeriod uint64 `serialize:"true" json:"votingPeriod"`

	// Minimum current voting power required to create a proposal.
	ProposalThreshold uint64 `serialize:"true" json:"proposalThreshold"`

	// Minimum combined for+against votes for a proposal to be eligible to
	// succeed. An absolute vote count, not a fraction of supply.
	QuorumVotes uint64 `serialize:"true" json:"quorumVotes"`

	// Minimum seconds between queueing a proposal and executing it.
	MinTimelockDelay uint64 `serialize:"true" json:"minTimelockDelay"`
}

// DefaultParams returns the parameters used when a genesis does not
// override them.
func DefaultParams() Params {
	return Params{
		VotingDelay:       1,
		VotingPeriod:      100,
		ProposalThreshold: 100,
		QuorumVotes:       400,
		MinTimelockDelay:  2 * 24 * 60 * 60,
	}
}

func (p *Params) Verify() error {
	switch {
	case p.VotingDelay == 0:
		return ErrZeroVotingDelay
	case p.VotingPeriod == 0:
		return ErrZeroVotingPeriod
	default:
		return nil
	}
}
