// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"

	"github.com/luxfi/constants"
	"github.com/luxfi/ids"
)

const MaxActionPayloadLen = constants.MiB

var (
	errEmptyActionTarget = errors.New("action target is empty")
	errPayloadTooLong    = errors.New("action payload too long")
)

// Action is one step of a proposal's batch. The core never interprets
// the payload; the dispatcher configured by the host does.
type Action struct {
	// Target identifies the handler this action is dispatched to.
	Target ids.ShortID `serialize:"true" json:"target"`

	// Value is the asset amount attached to the action.
	Value uint64 `serialize:"true" json:"value"`

	// Payload is the opaque call data interpreted by the target.
	Payload []byte `serialize:"true" json:"payload"`
}

func (a *Action) Verify() error {
	switch {
	case a == nil:
		return ErrNilTx
	case a.Target == ids.ShortEmpty:
		return errEmptyActionTarget
	case len(a.Payload) > MaxActionPayloadLen:
		return errPayloadTooLong
	default:
		return nil
	}
}
