// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"
)

var _ Tx = (*MintTx)(nil)

// MintTx creates new balance on an account, growing the total supply.
// Only the administrator may mint.
type MintTx struct {
	BaseTx `serialize:"true"`
	// To is credited the minted amount.
	To ids.ShortID `serialize:"true" json:"to"`
	// Amount of new balance to create.
	Amount uint64 `serialize:"true" json:"amount"`
}

func (tx *MintTx) SyntacticVerify(ctx *Context) error {
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

func (tx *MintTx) Visit(visitor Visitor) error {
	return visitor.MintTx(tx)
}
