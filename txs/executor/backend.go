// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"github.com/luxfi/log"

	"github.com/luxfi/governance/dispatch"
	"github.com/luxfi/governance/txs"
	"github.com/luxfi/governance/utils/timer/mockable"
)

type Backend struct {
	ChainCtx   *txs.Context
	Clk        *mockable.Clock
	Dispatcher dispatch.Dispatcher
	Log        log.Logger
}
