// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

var _ Tx = (*CancelTx)(nil)

// CancelTx withdraws a proposal. Only the original proposer may cancel,
// and only before the proposal executes.
type CancelTx struct {
	BaseTx `serialize:"true"`
	// ProposalID names the proposal withdrawn.
	ProposalID uint64 `serialize:"true" json:"proposalID"`
}

func (tx *CancelTx) SyntacticVerify(ctx *Context) error {
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

func (tx *CancelTx) Visit(visitor Visitor) error {
	return visitor.CancelTx(tx)
}
