// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
)

var (
	_ Tx = (*CastVoteTx)(nil)

	errMissingProposalID = errors.New("proposal id is zero")
)

// CastVoteTx records the sender's vote on an active proposal, weighted
// by the sender's power at the proposal's start height.
type CastVoteTx struct {
	BaseTx `serialize:"true"`
	// ProposalID names the proposal voted on.
	ProposalID uint64 `serialize:"true" json:"proposalID"`
	// Support is true for a vote in favor.
	Support bool `serialize:"true" json:"support"`
}

func (tx *CastVoteTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case tx.ProposalID == 0:
		return errMissingProposalID
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *CastVoteTx) Visit(visitor Visitor) error {
	return visitor.CastVoteTx(tx)
}
