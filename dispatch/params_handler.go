// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/state"
	"github.com/luxfi/governance/txs"
)

var (
	_ Handler = (*ParamsHandler)(nil)

	errUnexpectedValue = errors.New("params action does not accept a value")
)

// ParamsHandler lets proposals retune the governance parameters through
// the normal propose, vote, queue, execute path. The action payload is a
// codec encoded replacement parameter set.
type ParamsHandler struct{}

func (ParamsHandler) HandleAction(_ context.Context, chain state.Chain, action *txs.Action) error {
	if action.Value != 0 {
		return errUnexpectedValue
	}

	params := config.Params{}
	if _, err := state.Codec.Unmarshal(action.Payload, &params); err != nil {
		return fmt.Errorf("failed to parse params payload: %w", err)
	}
	if err := params.Verify(); err != nil {
		return err
	}

	chain.SetParams(params)
	return nil
}
