// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/governance/config"
)

var _ Tx = (*SetParamsTx)(nil)

// SetParamsTx replaces the governance parameters. Only the administrator
// may change them.
type SetParamsTx struct {
	BaseTx `serialize:"true"`
	// Params replace the current governance parameters wholesale.
	Params config.Params `serialize:"true" json:"params"`
}

func (tx *SetParamsTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	}

	if err := tx.Params.Verify(); err != nil {
		return err
	}
	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *SetParamsTx) Visit(visitor Visitor) error {
	return visitor.SetParamsTx(tx)
}
