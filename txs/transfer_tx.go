// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	_ Tx = (*TransferTx)(nil)

	errEmptyRecipient = errors.New("recipient address is empty")
)

// TransferTx moves balance from the sender to a recipient, carrying the
// matching voting power between the two accounts' delegates.
type TransferTx struct {
	BaseTx `serialize:"true"`
	// To is credited the transferred amount.
	To ids.ShortID `serialize:"true" json:"to"`
	// Amount of balance to move.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (tx *TransferTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case tx.To == ids.ShortEmpty:
		return errEmptyRecipient
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *TransferTx) Visit(visitor Visitor) error {
	return visitor.TransferTx(tx)
}
