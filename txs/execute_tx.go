// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

var _ Tx = (*ExecuteTx)(nil)

// ExecuteTx runs a queued proposal's action batch once its eta has
// passed. The batch is all-or-nothing: if any action fails, every state
// change of the attempt is rolled back.
type ExecuteTx struct {
	BaseTx `serialize:"true"`
	// ProposalID names the proposal executed.
	ProposalID uint64 `serialize:"true" json:"proposalID"`
}

func (tx *ExecuteTx) SyntacticVerify(ctx *Context) error {
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

func (tx *ExecuteTx) Visit(visitor Visitor) error {
	return visitor.ExecuteTx(tx)
}
