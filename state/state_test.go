// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/constants"
	"github.com/luxfi/database"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/genesis"
	"github.com/luxfi/governance/txs"
)

var (
	testAdmin     = ids.ShortID{1}
	testHolder    = ids.ShortID{2}
	testDelegatee = ids.ShortID{3}
)

func newTestGenesis() *genesis.Genesis {
	return &genesis.Genesis{
		NetworkID: constants.UnitTestID,
		Admin:     testAdmin,
		Params:    config.DefaultParams(),
		Allocations: []genesis.Allocation{
			{
				Address:  testHolder,
				Balance:  1000,
				Delegate: testDelegatee,
			},
			{
				Address: testDelegatee,
				Balance: 500,
			},
		},
	}
}

func newTestState(t testing.TB, db database.Database) State {
	s, err := New(
		db,
		newTestGenesis(),
		config.DefaultConfig,
		metric.NewRegistry(),
		log.NoLog{},
	)
	require.NoError(t, err)
	return s
}

func TestStateGenesis(t *testing.T) {
	require := require.New(t)

	state := newTestState(t, memdb.New())

	require.Equal(uint64(0), state.GetHeight())
	require.Equal(uint64(1500), state.GetTotalSupply())
	require.Equal(testAdmin, state.GetAdmin())
	require.Equal(config.DefaultParams(), state.GetParams())
	require.Equal(uint64(0), state.GetProposalCount())

	balance, err := state.GetBalance(testHolder)
	require.NoError(err)
	require.Equal(uint64(1000), balance)

	delegatee, err := state.GetDelegate(testHolder)
	require.NoError(err)
	require.Equal(testDelegatee, delegatee)

	delegatee, err = state.GetDelegate(testDelegatee)
	require.NoError(err)
	require.Equal(ids.ShortEmpty, delegatee)

	power, err := state.GetCurrentPower(testDelegatee)
	require.NoError(err)
	require.Equal(uint64(1000), power)

	power, err = state.GetCurrentPower(testHolder)
	require.NoError(err)
	require.Zero(power)
}

func TestStateSyncIsIdempotent(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	state := newTestState(t, db)

	state.SetBalance(testHolder, 1)
	state.SetHeight(7)
	require.NoError(state.Commit())

	// Reopening must load the committed state rather than reapplying
	// genesis. The first instance isn't closed as memdb doesn't support
	// reopening.
	reloaded := newTestState(t, db)
	require.Equal(uint64(7), reloaded.GetHeight())

	balance, err := reloaded.GetBalance(testHolder)
	require.NoError(err)
	require.Equal(uint64(1), balance)
}

func TestStatePersistence(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	state := newTestState(t, db)

	addr := ids.GenerateTestShortID()
	spender := ids.GenerateTestShortID()

	state.SetBalance(addr, 42)
	state.SetDelegate(addr, testHolder)
	state.SetNonce(addr, 3)
	state.SetAllowance(addr, spender, 17)
	state.SetTotalSupply(1542)
	state.SetAdmin(addr)
	state.SetProposalCount(2)

	params := state.GetParams()
	params.QuorumVotes = 999
	state.SetParams(params)

	proposal := &Proposal{
		ID:       1,
		Proposer: testHolder,
		Actions: []txs.Action{
			{
				Target:  testDelegatee,
				Value:   5,
				Payload: []byte{0xde, 0xad},
			},
		},
		StartHeight: 1,
		EndHeight:   101,
		ForVotes:    10,
		Description: "fund the treasury",
	}
	state.PutProposal(proposal)
	state.PutVoted(1, testHolder)

	entry := &TimelockEntry{
		Key:        ids.ID{9},
		ProposalID: 1,
		ETA:        12345,
	}
	state.PutTimelock(entry)

	require.NoError(state.Commit())

	reloaded := newTestState(t, db)

	balance, err := reloaded.GetBalance(addr)
	require.NoError(err)
	require.Equal(uint64(42), balance)

	delegatee, err := reloaded.GetDelegate(addr)
	require.NoError(err)
	require.Equal(testHolder, delegatee)

	nonce, err := reloaded.GetNonce(addr)
	require.NoError(err)
	require.Equal(uint64(3), nonce)

	allowance, err := reloaded.GetAllowance(addr, spender)
	require.NoError(err)
	require.Equal(uint64(17), allowance)

	require.Equal(uint64(1542), reloaded.GetTotalSupply())
	require.Equal(addr, reloaded.GetAdmin())
	require.Equal(params, reloaded.GetParams())
	require.Equal(uint64(2), reloaded.GetProposalCount())

	storedProposal, err := reloaded.GetProposal(1)
	require.NoError(err)
	require.Equal(proposal, storedProposal)

	voted, err := reloaded.GetVoted(1, testHolder)
	require.NoError(err)
	require.True(voted)

	voted, err = reloaded.GetVoted(1, testDelegatee)
	require.NoError(err)
	require.False(voted)

	storedEntry, err := reloaded.GetTimelock(entry.Key)
	require.NoError(err)
	require.Equal(entry, storedEntry)
}

func TestStatePowerHistory(t *testing.T) {
	require := require.New(t)

	state := newTestState(t, memdb.New())

	// The current height is never finalized.
	_, err := state.GetPowerAt(testDelegatee, 0)
	require.ErrorIs(err, ErrFutureHeight)

	state.SetHeight(1)
	power, err := state.GetPowerAt(testDelegatee, 0)
	require.NoError(err)
	require.Equal(uint64(1000), power)

	state.SetHeight(5)
	state.SetPower(testDelegatee, 2000)
	require.NoError(state.Commit())

	power, err = state.GetPowerAt(testDelegatee, 4)
	require.NoError(err)
	require.Equal(uint64(1000), power)

	_, err = state.GetPowerAt(testDelegatee, 5)
	require.ErrorIs(err, ErrFutureHeight)

	state.SetHeight(6)
	power, err = state.GetPowerAt(testDelegatee, 5)
	require.NoError(err)
	require.Equal(uint64(2000), power)

	power, err = state.GetCurrentPower(testDelegatee)
	require.NoError(err)
	require.Equal(uint64(2000), power)

	// An account with no checkpoints has no power at any height.
	power, err = state.GetPowerAt(ids.GenerateTestShortID(), 3)
	require.NoError(err)
	require.Zero(power)
}

func TestStateCheckpointOverwrite(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	state := newTestState(t, db)

	// Two writes at the same height must collapse into one checkpoint.
	state.SetHeight(3)
	state.SetPower(testDelegatee, 1100)
	require.NoError(state.Commit())
	state.SetPower(testDelegatee, 1200)
	require.NoError(state.Commit())

	reloaded := newTestState(t, db)
	reloaded.SetHeight(4)

	power, err := reloaded.GetPowerAt(testDelegatee, 3)
	require.NoError(err)
	require.Equal(uint64(1200), power)

	power, err = reloaded.GetPowerAt(testDelegatee, 2)
	require.NoError(err)
	require.Equal(uint64(1000), power)
}

func TestStateAllowanceClear(t *testing.T) {
	require := require.New(t)

	state := newTestState(t, memdb.New())

	state.SetAllowance(testHolder, testDelegatee, 50)
	require.NoError(state.Commit())

	allowance, err := state.GetAllowance(testHolder, testDelegatee)
	require.NoError(err)
	require.Equal(uint64(50), allowance)

	state.SetAllowance(testHolder, testDelegatee, 0)
	require.NoError(state.Commit())

	allowance, err = state.GetAllowance(testHolder, testDelegatee)
	require.NoError(err)
	require.Zero(allowance)
}

func TestStateTimelocks(t *testing.T) {
	require := require.New(t)

	db := memdb.New()
	state := newTestState(t, db)

	late := &TimelockEntry{
		Key:        ids.ID{1},
		ProposalID: 1,
		ETA:        2000,
	}
	early := &TimelockEntry{
		Key:        ids.ID{2},
		ProposalID: 2,
		ETA:        1000,
	}
	state.PutTimelock(late)
	state.PutTimelock(early)
	require.NoError(state.Commit())

	require.Equal([]*TimelockEntry{early, late}, state.PendingTimelocks())

	// Requeueing moves the entry within the schedule.
	requeued := &TimelockEntry{
		Key:        ids.ID{1},
		ProposalID: 1,
		ETA:        500,
	}
	state.PutTimelock(requeued)
	require.NoError(state.Commit())
	require.Equal([]*TimelockEntry{requeued, early}, state.PendingTimelocks())

	state.DeleteTimelock(early.Key)
	require.NoError(state.Commit())
	require.Equal([]*TimelockEntry{requeued}, state.PendingTimelocks())

	_, err := state.GetTimelock(early.Key)
	require.ErrorIs(err, database.ErrNotFound)

	reloaded := newTestState(t, db)
	require.Equal([]*TimelockEntry{requeued}, reloaded.PendingTimelocks())
}

func TestStateProposalNotFound(t *testing.T) {
	require := require.New(t)

	state := newTestState(t, memdb.New())

	_, err := state.GetProposal(9)
	require.ErrorIs(err, database.ErrNotFound)
}
