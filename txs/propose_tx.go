// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/constants"
)

const (
	MaxActionsPerProposal = 16
	MaxDescriptionLen     = constants.MiB
)

var (
	_ Tx = (*ProposeTx)(nil)

	ErrEmptyProposal = errors.New("proposal has no actions")

	errTooManyActions     = errors.New("too many actions in proposal")
	errDescriptionTooLong = errors.New("description too long")
)

// ProposeTx opens a new proposal over an ordered batch of actions. The
// sender must hold voting power of at least the proposal threshold.
type ProposeTx struct {
	BaseTx `serialize:"true"`
	// Actions run in order if the proposal eventually executes.
	Actions []Action `serialize:"true" json:"actions"`
	// Description is free text carried with the proposal.
	Description string `serialize:"true" json:"description"`
}

func (tx *ProposeTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case len(tx.Actions) == 0:
		return ErrEmptyProposal
	case len(tx.Actions) > MaxActionsPerProposal:
		return errTooManyActions
	case len(tx.Description) > MaxDescriptionLen:
		return errDescriptionTooLong
	}

	for i := range tx.Actions {
		if err := tx.Actions[i].Verify(); err != nil {
			return err
		}
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *ProposeTx) Visit(visitor Visitor) error {
	return visitor.ProposeTx(tx)
}
