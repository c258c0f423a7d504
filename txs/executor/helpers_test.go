// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/constants"
	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/dispatch"
	"github.com/luxfi/governance/genesis"
	"github.com/luxfi/governance/state"
	"github.com/luxfi/governance/txs"
	"github.com/luxfi/governance/utils/timer/mockable"
)

var (
	defaultStartTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

	testKeys = secp256k1.TestKeys()

	// testOwner's private key is testKeys[0], for signed authorizations.
	testOwner = testKeys[0].Address()

	testAdmin     = ids.ShortID{0xad}
	testProposer  = ids.ShortID{0x01}
	testVoter     = ids.ShortID{0x02}
	testBystander = ids.ShortID{0x03}

	noopTarget    = ids.ShortID{0xaa}
	failingTarget = ids.ShortID{0xbb}
	paramsTarget  = ids.ShortID{0xcc}

	errRefused = errors.New("handler refused the action")
)

func defaultParams() config.Params {
	return config.Params{
		VotingDelay:       5,
		VotingPeriod:      10,
		ProposalThreshold: 50,
		QuorumVotes:       20,
		MinTimelockDelay:  100,
	}
}

func defaultGenesis() *genesis.Genesis {
	return &genesis.Genesis{
		NetworkID: constants.UnitTestID,
		Admin:     testAdmin,
		Params:    defaultParams(),
		Allocations: []genesis.Allocation{
			{
				Address:  testProposer,
				Balance:  100,
				Delegate: testProposer,
			},
			{
				Address:  testVoter,
				Balance:  30,
				Delegate: testVoter,
			},
			{
				Address: testBystander,
				Balance: 5,
			},
			{
				Address: testOwner,
				Balance: 50,
			},
		},
	}
}

type environment struct {
	state   state.State
	clk     *mockable.Clock
	backend *Backend
}

func newEnvironment(t *testing.T) *environment {
	require := require.New(t)

	clk := &mockable.Clock{}
	clk.Set(defaultStartTime)

	registry := dispatch.NewRegistry()
	require.NoError(registry.RegisterHandler(noopTarget, dispatch.HandlerFunc(
		func(context.Context, state.Chain, *txs.Action) error {
			return nil
		},
	)))
	require.NoError(registry.RegisterHandler(failingTarget, dispatch.HandlerFunc(
		func(context.Context, state.Chain, *txs.Action) error {
			return errRefused
		},
	)))
	require.NoError(registry.RegisterHandler(paramsTarget, dispatch.ParamsHandler{}))

	s, err := state.New(
		memdb.New(),
		defaultGenesis(),
		config.DefaultConfig,
		metric.NewRegistry(),
		log.NoLog{},
	)
	require.NoError(err)

	return &environment{
		state: s,
		clk:   clk,
		backend: &Backend{
			ChainCtx: &txs.Context{
				NetworkID: constants.UnitTestID,
				ChainID:   ids.ID{'g', 'o', 'v'},
			},
			Clk:        clk,
			Dispatcher: registry,
			Log:        log.NoLog{},
		},
	}
}

// apply runs [tx] on a fresh diff. The diff lands on the environment's
// state only if the operation succeeds, mirroring how the governor
// discards the writes of failed operations.
func (env *environment) apply(t *testing.T, tx txs.Tx) (*Executor, error) {
	require := require.New(t)

	require.NoError(tx.SyntacticVerify(env.backend.ChainCtx))

	diff, err := state.NewDiffOn(env.state)
	require.NoError(err)

	e := &Executor{
		Backend: env.backend,
		Ctx:     context.Background(),
		State:   diff,
	}
	if err := tx.Visit(e); err != nil {
		return e, err
	}

	require.NoError(diff.Apply(env.state))
	require.NoError(env.state.Commit())
	return e, nil
}

// propose submits a proposal from the default proposer and returns the
// id it was assigned. With no explicit actions the proposal carries a
// single action for the noop target.
func (env *environment) propose(t *testing.T, actions ...txs.Action) uint64 {
	if len(actions) == 0 {
		actions = []txs.Action{{Target: noopTarget}}
	}
	e, err := env.apply(t, &txs.ProposeTx{
		BaseTx:  txs.BaseTx{Sender: testProposer},
		Actions: actions,
	})
	require.NoError(t, err)
	return e.ProposalID
}

func (env *environment) castVote(t *testing.T, sender ids.ShortID, proposalID uint64, support bool) {
	_, err := env.apply(t, &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{Sender: sender},
		ProposalID: proposalID,
		Support:    support,
	})
	require.NoError(t, err)
}

func (env *environment) advanceHeight(t *testing.T, heights uint64) {
	env.state.SetHeight(env.state.GetHeight() + heights)
	require.NoError(t, env.state.Commit())
}

func (env *environment) advanceTime(d time.Duration) {
	env.clk.Set(env.clk.Time().Add(d))
}

func (env *environment) balance(t *testing.T, addr ids.ShortID) uint64 {
	balance, err := env.state.GetBalance(addr)
	require.NoError(t, err)
	return balance
}

func (env *environment) power(t *testing.T, addr ids.ShortID) uint64 {
	power, err := env.state.GetCurrentPower(addr)
	require.NoError(t, err)
	return power
}

func (env *environment) proposal(t *testing.T, proposalID uint64) *state.Proposal {
	proposal, err := env.state.GetProposal(proposalID)
	require.NoError(t, err)
	return proposal
}
