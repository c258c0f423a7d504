// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/ids"
)

var (
	ErrNilTx = errors.New("tx is nil")

	errNilContext  = errors.New("context is nil")
	errEmptySender = errors.New("sender address is empty")
)

// BaseTx carries the fields shared by every operation.
type BaseTx struct {
	// Sender is the account the execution environment authenticated as the
	// submitter of this operation.
	Sender ids.ShortID `serialize:"true" json:"sender"`

	// true iff this transaction has already passed syntactic verification
	SyntacticallyVerified bool `json:"-"`
}

func (tx *BaseTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case ctx == nil:
		return errNilContext
	case tx.Sender == ids.ShortEmpty:
		return errEmptySender
	default:
		return nil
	}
}
