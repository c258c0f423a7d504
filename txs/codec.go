// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"errors"
	"math"

	"github.com/luxfi/codec"
	"github.com/luxfi/codec/linearcodec"
)

const CodecVersion = 0

var Codec codec.Manager

func init() {
	Codec = codec.NewManager(math.MaxInt)
	lc := linearcodec.NewDefault()

	err := errors.Join(
		lc.RegisterType(&TransferTx{}),
		lc.RegisterType(&TransferFromTx{}),
		lc.RegisterType(&ApproveTx{}),
		lc.RegisterType(&MintTx{}),
		lc.RegisterType(&DelegateTx{}),
		lc.RegisterType(&AuthorizeTx{}),
		lc.RegisterType(&ProposeTx{}),
		lc.RegisterType(&CastVoteTx{}),
		lc.RegisterType(&CancelTx{}),
		lc.RegisterType(&QueueTx{}),
		lc.RegisterType(&ExecuteTx{}),
		lc.RegisterType(&SetParamsTx{}),
		lc.RegisterType(&TransferAdminTx{}),
		Codec.RegisterCodec(CodecVersion, lc),
	)
	if err != nil {
		panic(err)
	}
}
