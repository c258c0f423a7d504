// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"fmt"

	"github.com/luxfi/crypto/hash"
	"github.com/luxfi/ids"
)

var _ Tx = (*AuthorizeTx)(nil)

// AuthorizeTx sets a spender's allowance over an owner's balance on the
// strength of an off-chain signature. The owner never submits anything;
// whoever holds the signed message may deliver it.
type AuthorizeTx struct {
	BaseTx `serialize:"true"`
	// Owner granted the allowance and signed the authorization.
	Owner ids.ShortID `serialize:"true" json:"owner"`
	// Spender receives the allowance.
	Spender ids.ShortID `serialize:"true" json:"spender"`
	// Value replaces any prior allowance.
	Value uint64 `serialize:"true" json:"value"`
	// Deadline is the unix second after which the authorization expires.
	Deadline uint64 `serialize:"true" json:"deadline"`
	// Signature recovers to the owner over the authorization digest.
	Signature []byte `serialize:"true" json:"signature"`
}

// authorizationDigest is the structured message an owner signs. The
// network and chain identifiers pin the signature to one deployment and
// the nonce pins it to a single use.
type authorizationDigest struct {
	NetworkID uint32      `serialize:"true"`
	ChainID   ids.ID      `serialize:"true"`
	Owner     ids.ShortID `serialize:"true"`
	Spender   ids.ShortID `serialize:"true"`
	Value     uint64      `serialize:"true"`
	Nonce     uint64      `serialize:"true"`
	Deadline  uint64      `serialize:"true"`
}

// Digest returns the hash the owner must have signed, for the owner's
// nonce [nonce].
func (tx *AuthorizeTx) Digest(ctx *Context, nonce uint64) ([]byte, error) {
	unsignedBytes, err := Codec.Marshal(CodecVersion, &authorizationDigest{
		NetworkID: ctx.NetworkID,
		ChainID:   ctx.ChainID,
		Owner:     tx.Owner,
		Spender:   tx.Spender,
		Value:     tx.Value,
		Nonce:     nonce,
		Deadline:  tx.Deadline,
	})
	if err != nil {
		return nil, fmt.Errorf("couldn't marshal authorization: %w", err)
	}
	return hash.ComputeHash256(unsignedBytes), nil
}

func (tx *AuthorizeTx) SyntacticVerify(ctx *Context) error {
	switch {
	case tx == nil:
		return ErrNilTx
	case tx.SyntacticallyVerified: // already passed syntactic verification
		return nil
	case tx.Owner == ids.ShortEmpty:
		return errEmptyOwner
	case tx.Spender == ids.ShortEmpty:
		return errEmptySpender
	}

	if err := tx.BaseTx.SyntacticVerify(ctx); err != nil {
		return err
	}

	tx.SyntacticallyVerified = true
	return nil
}

func (tx *AuthorizeTx) Visit(visitor Visitor) error {
	return visitor.AuthorizeTx(tx)
}
