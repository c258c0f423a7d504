// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"
)

func TestTxSerialization(t *testing.T) {
	require := require.New(t)

	tx := Tx(&ProposeTx{
		BaseTx: BaseTx{Sender: ids.GenerateTestShortID()},
		Actions: []Action{
			{
				Target:  ids.GenerateTestShortID(),
				Value:   3,
				Payload: []byte("raise the quorum"),
			},
		},
		Description: "tighten quorum requirements",
	})

	txBytes, err := Codec.Marshal(CodecVersion, &tx)
	require.NoError(err)

	var parsed Tx
	version, err := Codec.Unmarshal(txBytes, &parsed)
	require.NoError(err)
	require.Equal(uint16(CodecVersion), version)
	require.Equal(tx, parsed)
}
