// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	_ Tx = (*TransferFromTx)(nil)

	errEmptyOwner = errors.New("owner address is empty")
)

// TransferFromTx moves balance out of an owner's account on the strength
// of an allowance previously granted to the sender.
type TransferFromTx struct {
	BaseTx `serialize:"true"`
	// Owner is the account debited. The sender spends its allowance.
	Owner ids.ShortID `serialize:"true" json:"owner"`
	// To is credited the transferred amount.
	To ids.ShortID `serialize:"true" json:"to"`
	// Amount of balance to move.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (tx *TransferFromTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case tx.Owner == ids.ShortEmpty:
		return errEmptyOwner
	case tx.To == ids.ShortEmpty:
		return errEmptyRecipient
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *TransferFromTx) Visit(visitor Visitor) error {
	return visitor.TransferFromTx(tx)
}
