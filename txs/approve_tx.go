// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	_ Tx = (*ApproveTx)(nil)

	errEmptySpender = errors.New("spender address is empty")
)

// ApproveTx sets the allowance a spender may transfer out of the
// sender's balance.
type ApproveTx struct {
	BaseTx `serialize:"true"`
	// Spender receives the allowance.
	Spender ids.ShortID `serialize:"true" json:"spender"`
	// Value replaces any prior allowance.
	Value uint64 `serialize:"true" json:"value"`
}

func (tx *ApproveTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case tx.Spender == ids.ShortEmpty:
		return errEmptySpender
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *ApproveTx) Visit(visitor Visitor) error {
	return visitor.ApproveTx(tx)
}
