// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

var _ Tx = (*QueueTx)(nil)

// QueueTx schedules a succeeded proposal for execution after a delay.
// Re-queueing a queued, not-yet-executed proposal moves its eta.
type QueueTx struct {
	BaseTx `serialize:"true"`
	// ProposalID names the proposal scheduled.
	ProposalID uint64 `serialize:"true" json:"proposalID"`
	// Delay in seconds between now and the earliest execution time. Must
	// be at least the configured minimum timelock delay.
	Delay uint64 `serialize:"true" json:"delay"`
}

func (tx *QueueTx) SyntacticVerify(ctx *Context) error {
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

func (tx *QueueTx) Visit(visitor Visitor) error {
	return visitor.QueueTx(tx)
}
