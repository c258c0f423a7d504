// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/governance/events"
	"github.com/luxfi/governance/txs"
)

func TestTransferTx(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	e, err := env.apply(t, &txs.TransferTx{
		BaseTx: txs.BaseTx{Sender: testProposer},
		To:     testBystander,
		Amount: 40,
	})
	require.NoError(err)

	require.Equal(uint64(60), env.balance(t, testProposer))
	require.Equal(uint64(45), env.balance(t, testBystander))

	// The recipient is undelegated, so the moved power disappears from
	// the sender's delegate without landing anywhere.
	require.Equal(uint64(60), env.power(t, testProposer))

	require.Equal([]events.Event{
		&events.DelegatePowerChanged{
			Delegatee:     testProposer,
			PreviousPower: 100,
			NewPower:      60,
		},
		&events.Transfer{
			From:   testProposer,
			To:     testBystander,
			Amount: 40,
		},
	}, e.Events)
}

func TestTransferTxInsufficientBalance(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.TransferTx{
		BaseTx: txs.BaseTx{Sender: testBystander},
		To:     testVoter,
		Amount: 10,
	})
	require.ErrorIs(err, ErrInsufficientBalance)

	require.Equal(uint64(5), env.balance(t, testBystander))
	require.Equal(uint64(30), env.balance(t, testVoter))
}

func TestTransferTxSharedDelegate(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.DelegateTx{
		BaseTx:    txs.BaseTx{Sender: testBystander},
		Delegatee: testVoter,
	})
	require.NoError(err)
	require.Equal(uint64(35), env.power(t, testVoter))

	// Both accounts now delegate to the voter, so the transfer moves no
	// power.
	e, err := env.apply(t, &txs.TransferTx{
		BaseTx: txs.BaseTx{Sender: testVoter},
		To:     testBystander,
		Amount: 10,
	})
	require.NoError(err)

	require.Equal(uint64(20), env.balance(t, testVoter))
	require.Equal(uint64(15), env.balance(t, testBystander))
	require.Equal(uint64(35), env.power(t, testVoter))
	require.Equal([]events.Event{
		&events.Transfer{
			From:   testVoter,
			To:     testBystander,
			Amount: 10,
		},
	}, e.Events)
}

func TestTransferTxToSelf(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.TransferTx{
		BaseTx: txs.BaseTx{Sender: testProposer},
		To:     testProposer,
		Amount: 100,
	})
	require.NoError(err)

	require.Equal(uint64(100), env.balance(t, testProposer))
	require.Equal(uint64(100), env.power(t, testProposer))
}

func TestDelegateTx(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	e, err := env.apply(t, &txs.DelegateTx{
		BaseTx:    txs.BaseTx{Sender: testBystander},
		Delegatee: testVoter,
	})
	require.NoError(err)

	delegatee, err := env.state.GetDelegate(testBystander)
	require.NoError(err)
	require.Equal(testVoter, delegatee)
	require.Equal(uint64(35), env.power(t, testVoter))

	require.Equal([]events.Event{
		&events.DelegatePowerChanged{
			Delegatee:     testVoter,
			PreviousPower: 30,
			NewPower:      35,
		},
		&events.DelegateChanged{
			Delegator:        testBystander,
			PreviousDelegate: ids.ShortEmpty,
			NewDelegate:      testVoter,
		},
	}, e.Events)
}

func TestDelegateTxRedelegate(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.DelegateTx{
		BaseTx:    txs.BaseTx{Sender: testProposer},
		Delegatee: testVoter,
	})
	require.NoError(err)

	require.Equal(uint64(0), env.power(t, testProposer))
	require.Equal(uint64(130), env.power(t, testVoter))
}

func TestDelegateTxClear(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.DelegateTx{
		BaseTx:    txs.BaseTx{Sender: testProposer},
		Delegatee: ids.ShortEmpty,
	})
	require.NoError(err)

	delegatee, err := env.state.GetDelegate(testProposer)
	require.NoError(err)
	require.Equal(ids.ShortEmpty, delegatee)
	require.Equal(uint64(0), env.power(t, testProposer))
}

func TestApproveTx(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	e, err := env.apply(t, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{Sender: testProposer},
		Spender: testVoter,
		Value:   25,
	})
	require.NoError(err)

	allowance, err := env.state.GetAllowance(testProposer, testVoter)
	require.NoError(err)
	require.Equal(uint64(25), allowance)

	require.Equal([]events.Event{
		&events.Approval{
			Owner:   testProposer,
			Spender: testVoter,
			Value:   25,
		},
	}, e.Events)

	// A second approval replaces the allowance rather than adding to it.
	_, err = env.apply(t, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{Sender: testProposer},
		Spender: testVoter,
		Value:   10,
	})
	require.NoError(err)

	allowance, err = env.state.GetAllowance(testProposer, testVoter)
	require.NoError(err)
	require.Equal(uint64(10), allowance)
}

func TestTransferFromTx(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{Sender: testProposer},
		Spender: testVoter,
		Value:   30,
	})
	require.NoError(err)

	_, err = env.apply(t, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{Sender: testVoter},
		Owner:  testProposer,
		To:     testBystander,
		Amount: 20,
	})
	require.NoError(err)

	require.Equal(uint64(80), env.balance(t, testProposer))
	require.Equal(uint64(25), env.balance(t, testBystander))
	require.Equal(uint64(80), env.power(t, testProposer))

	allowance, err := env.state.GetAllowance(testProposer, testVoter)
	require.NoError(err)
	require.Equal(uint64(10), allowance)
}

func TestTransferFromTxInsufficientAllowance(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{Sender: testVoter},
		Owner:  testProposer,
		To:     testBystander,
		Amount: 1,
	})
	require.ErrorIs(err, ErrInsufficientAllowance)

	require.Equal(uint64(100), env.balance(t, testProposer))
	require.Equal(uint64(5), env.balance(t, testBystander))
}

func TestTransferFromTxOwnFunds(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	// An owner moving its own funds does not need an allowance.
	_, err := env.apply(t, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{Sender: testProposer},
		Owner:  testProposer,
		To:     testBystander,
		Amount: 20,
	})
	require.NoError(err)

	require.Equal(uint64(80), env.balance(t, testProposer))
	require.Equal(uint64(25), env.balance(t, testBystander))
}

func TestTransferFromTxInsufficientBalance(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.ApproveTx{
		BaseTx:  txs.BaseTx{Sender: testBystander},
		Spender: testVoter,
		Value:   50,
	})
	require.NoError(err)

	// The allowance covers the amount but the owner's balance does not.
	_, err = env.apply(t, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{Sender: testVoter},
		Owner:  testBystander,
		To:     testProposer,
		Amount: 50,
	})
	require.ErrorIs(err, ErrInsufficientBalance)

	// The failed transfer must not burn the allowance.
	allowance, err := env.state.GetAllowance(testBystander, testVoter)
	require.NoError(err)
	require.Equal(uint64(50), allowance)
}

func TestMintTx(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	e, err := env.apply(t, &txs.MintTx{
		BaseTx: txs.BaseTx{Sender: testAdmin},
		To:     testVoter,
		Amount: 70,
	})
	require.NoError(err)

	require.Equal(uint64(100), env.balance(t, testVoter))
	require.Equal(uint64(100), env.power(t, testVoter))
	require.Equal(uint64(255), env.state.GetTotalSupply())

	require.Equal([]events.Event{
		&events.DelegatePowerChanged{
			Delegatee:     testVoter,
			PreviousPower: 30,
			NewPower:      100,
		},
		&events.Transfer{
			From:   ids.ShortEmpty,
			To:     testVoter,
			Amount: 70,
		},
	}, e.Events)
}

func TestMintTxNotAdmin(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.MintTx{
		BaseTx: txs.BaseTx{Sender: testProposer},
		To:     testProposer,
		Amount: 1,
	})
	require.ErrorIs(err, ErrNotAdmin)

	require.Equal(uint64(100), env.balance(t, testProposer))
	require.Equal(uint64(185), env.state.GetTotalSupply())
}

func TestMintTxUndelegated(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	_, err := env.apply(t, &txs.MintTx{
		BaseTx: txs.BaseTx{Sender: testAdmin},
		To:     testBystander,
		Amount: 10,
	})
	require.NoError(err)

	require.Equal(uint64(15), env.balance(t, testBystander))
	require.Equal(uint64(0), env.power(t, testBystander))
	require.Equal(uint64(195), env.state.GetTotalSupply())
}
