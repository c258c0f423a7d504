// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"github.com/luxfi/ids"
)

// Context carries the identifiers binding operations, and the signed
// authorizations inside them, to a single deployment.
type Context struct {
	NetworkID uint32
	ChainID   ids.ID
}

// Tx is an operation submitted to the governance core. Reads are served
// directly off state; everything that mutates state is a Tx.
type Tx interface {
	// SyntacticVerify rejects structurally malformed operations without
	// touching state.
	SyntacticVerify(ctx *Context) error

	// Visit calls the method of [visitor] corresponding to this
	// operation's type.
	Visit(visitor Visitor) error
}
