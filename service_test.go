// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/governance/txs"
	"github.com/luxfi/governance/utils/json"
)

// Queue is the one service method that digs its reply out of the
// operation's events, so it gets an end-to-end check.
func TestServiceQueue(t *testing.T) {
	require := require.New(t)
	ctx := context.Background()
	gov := newTestGovernor(t, nil)
	service := &Service{gov: gov}

	receipt, err := gov.Apply(ctx, &txs.ProposeTx{
		BaseTx:  txs.BaseTx{Sender: testProposer},
		Actions: []txs.Action{{Target: noopTarget}},
	})
	require.NoError(err)

	require.NoError(gov.AdvanceHeight(6))
	_, err = gov.Apply(ctx, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{Sender: testVoter},
		ProposalID: receipt.ProposalID,
		Support:    true,
	})
	require.NoError(err)
	require.NoError(gov.AdvanceHeight(16))

	req := httptest.NewRequest(http.MethodPost, "/rpc", nil)
	reply := QueueReply{}
	require.NoError(service.Queue(req, &QueueArgs{
		Sender:     testVoter,
		ProposalID: json.Uint64(receipt.ProposalID),
		Delay:      150,
	}, &reply))
	require.Equal(json.Uint64(gov.clk.Unix()+150), reply.ETA)
}
