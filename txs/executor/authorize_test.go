// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/luxfi/ids"

	"github.com/luxfi/governance/events"
	"github.com/luxfi/governance/txs"
)

// signedAuthorization builds an authorization from testOwner over its
// current nonce, signed with testOwner's key and relayed by the
// bystander.
func (env *environment) signedAuthorization(
	t *testing.T,
	spender ids.ShortID,
	value uint64,
	deadline uint64,
) *txs.AuthorizeTx {
	require := require.New(t)

	tx := &txs.AuthorizeTx{
		BaseTx:   txs.BaseTx{Sender: testBystander},
		Owner:    testOwner,
		Spender:  spender,
		Value:    value,
		Deadline: deadline,
	}

	nonce, err := env.state.GetNonce(testOwner)
	require.NoError(err)
	digest, err := tx.Digest(env.backend.ChainCtx, nonce)
	require.NoError(err)
	tx.Signature, err = testKeys[0].SignHash(digest)
	require.NoError(err)
	return tx
}

func TestAuthorizeTx(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	deadline := env.clk.Unix() + 600
	e, err := env.apply(t, env.signedAuthorization(t, testVoter, 40, deadline))
	require.NoError(err)

	allowance, err := env.state.GetAllowance(testOwner, testVoter)
	require.NoError(err)
	require.Equal(uint64(40), allowance)

	nonce, err := env.state.GetNonce(testOwner)
	require.NoError(err)
	require.Equal(uint64(1), nonce)

	require.Equal([]events.Event{
		&events.Approval{
			Owner:   testOwner,
			Spender: testVoter,
			Value:   40,
		},
	}, e.Events)
}

func TestAuthorizeTxSpend(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	deadline := env.clk.Unix() + 600
	_, err := env.apply(t, env.signedAuthorization(t, testVoter, 40, deadline))
	require.NoError(err)

	// The spender moves the owner's funds without the owner ever
	// submitting anything itself.
	_, err = env.apply(t, &txs.TransferFromTx{
		BaseTx: txs.BaseTx{Sender: testVoter},
		Owner:  testOwner,
		To:     testVoter,
		Amount: 40,
	})
	require.NoError(err)

	require.Equal(uint64(10), env.balance(t, testOwner))
	require.Equal(uint64(70), env.balance(t, testVoter))

	allowance, err := env.state.GetAllowance(testOwner, testVoter)
	require.NoError(err)
	require.Zero(allowance)
}

func TestAuthorizeTxReplay(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	deadline := env.clk.Unix() + 600
	tx := env.signedAuthorization(t, testVoter, 40, deadline)

	_, err := env.apply(t, tx)
	require.NoError(err)

	// The nonce advanced, so the digest the signature covers no longer
	// matches and recovery yields some other address.
	_, err = env.apply(t, tx)
	require.ErrorIs(err, ErrInvalidSignature)

	nonce, err := env.state.GetNonce(testOwner)
	require.NoError(err)
	require.Equal(uint64(1), nonce)
}

func TestAuthorizeTxExpired(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	// A deadline of exactly now is still honored.
	_, err := env.apply(t, env.signedAuthorization(t, testVoter, 40, env.clk.Unix()))
	require.NoError(err)

	deadline := env.clk.Unix() + 10
	tx := env.signedAuthorization(t, testProposer, 40, deadline)
	env.advanceTime(11 * time.Second)

	_, err = env.apply(t, tx)
	require.ErrorIs(err, ErrExpired)

	allowance, err := env.state.GetAllowance(testOwner, testProposer)
	require.NoError(err)
	require.Zero(allowance)
}

func TestAuthorizeTxWrongSigner(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	tx := &txs.AuthorizeTx{
		BaseTx:   txs.BaseTx{Sender: testBystander},
		Owner:    testOwner,
		Spender:  testVoter,
		Value:    40,
		Deadline: env.clk.Unix() + 600,
	}
	digest, err := tx.Digest(env.backend.ChainCtx, 0)
	require.NoError(err)
	tx.Signature, err = testKeys[1].SignHash(digest)
	require.NoError(err)

	_, err = env.apply(t, tx)
	require.ErrorIs(err, ErrInvalidSignature)
}

func TestAuthorizeTxMalformedSignature(t *testing.T) {
	require := require.New(t)
	env := newEnvironment(t)

	tx := &txs.AuthorizeTx{
		BaseTx:    txs.BaseTx{Sender: testBystander},
		Owner:     testOwner,
		Spender:   testVoter,
		Value:     40,
		Deadline:  env.clk.Unix() + 600,
		Signature: []byte{1, 2, 3},
	}

	_, err := env.apply(t, tx)
	require.ErrorIs(err, ErrInvalidSignature)

	nonce, err := env.state.GetNonce(testOwner)
	require.NoError(err)
	require.Zero(nonce)
}
