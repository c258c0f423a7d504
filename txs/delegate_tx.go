// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"
)

var _ Tx = (*DelegateTx)(nil)

// DelegateTx repoints the sender's delegation, moving its entire balance
// worth of voting power from the previous delegatee to the new one.
type DelegateTx struct {
	BaseTx `serialize:"true"`
	// Delegatee receives the sender's voting power. Delegating to the
	// sender itself is how an account votes with its own balance. An
	// empty delegatee clears the delegation.
	Delegatee ids.ShortID `serialize:"true" json:"delegatee"`
}

func (tx *DelegateTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *DelegateTx) Visit(visitor Visitor) error {
	return visitor.DelegateTx(tx)
}
