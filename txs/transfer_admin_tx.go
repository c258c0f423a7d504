// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	_ Tx = (*TransferAdminTx)(nil)

	errEmptyAdmin = errors.New("new admin address is empty")
)

// TransferAdminTx hands the administrator capability to a new identity.
type TransferAdminTx struct {
	BaseTx `serialize:"true"`
	// NewAdmin holds the administrator capability afterwards.
	NewAdmin ids.ShortID `serialize:"true" json:"newAdmin"`
}

func (tx *TransferAdminTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case tx.NewAdmin == ids.ShortEmpty:
		return errEmptyAdmin
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *TransferAdminTx) Visit(visitor Visitor) error {
	return visitor.TransferAdminTx(tx)
}
