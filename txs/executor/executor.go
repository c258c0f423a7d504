// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/crypto/secp256k1"
	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/governance/events"
	"github.com/luxfi/governance/state"
	"github.com/luxfi/governance/status"
	"github.com/luxfi/governance/txs"
)

var (
	_ txs.Visitor = (*Executor)(nil)

	ErrInsufficientBalance   = errors.New("insufficient balance")
	ErrInsufficientAllowance = errors.New("insufficient allowance")
	ErrExpired               = errors.New("authorization deadline has passed")
	ErrInvalidSignature      = errors.New("invalid authorization signature")
	ErrNotAdmin              = errors.New("sender is not the administrator")
	ErrBelowThreshold        = errors.New("voting power below the proposal threshold")
	ErrUnknownProposal       = errors.New("unknown proposal")
	ErrNotActive             = errors.New("proposal is not active")
	ErrAlreadyVoted          = errors.New("sender already voted on this proposal")
	ErrNoWeight              = errors.New("no voting power at the snapshot height")
	ErrNotProposer           = errors.New("sender did not create the proposal")
	ErrAlreadyExecuted       = errors.New("proposal was already executed")
	ErrDelayTooShort         = errors.New("timelock delay below the minimum")
	ErrNotReady              = errors.New("proposal is not ready to execute")
	ErrWrongState            = errors.New("proposal is in the wrong state")
	ErrActionReverted        = errors.New("proposal action reverted")
)

// Executor applies one operation to [State]. On error the caller must
// discard [State]; no partial writes may survive a failed operation.
type Executor struct {
	*Backend
	Ctx   context.Context
	State state.Diff // state is expected to be modified

	// Events observed while applying the operation, to be emitted by the
	// caller after the state change is committed.
	Events []events.Event

	// ProposalID is set by ProposeTx to the id it allocated.
	ProposalID uint64
}

func (e *Executor) TransferTx(tx *txs.TransferTx) error {
	return e.transfer(tx.Sender, tx.To, tx.Amount)
}

func (e *Executor) TransferFromTx(tx *txs.TransferFromTx) error {
	if tx.Sender != tx.Owner {
		allowance, err := e.State.GetAllowance(tx.Owner, tx.Sender)
		if err != nil {
			return err
		}
		if allowance < tx.Amount {
			return fmt.Errorf("%w: allowance %d, amount %d",
				ErrInsufficientAllowance,
				allowance,
				tx.Amount,
			)
		}
		e.State.SetAllowance(tx.Owner, tx.Sender, allowance-tx.Amount)
	}
	return e.transfer(tx.Owner, tx.To, tx.Amount)
}

func (e *Executor) ApproveTx(tx *txs.ApproveTx) error {
	e.State.SetAllowance(tx.Sender, tx.Spender, tx.Value)
	e.Events = append(e.Events, &events.Approval{
		Owner:   tx.Sender,
		Spender: tx.Spender,
		Value:   tx.Value,
	})
	return nil
}

func (e *Executor) MintTx(tx *txs.MintTx) error {
	if tx.Sender != e.State.GetAdmin() {
		return ErrNotAdmin
	}

	balance, err := e.State.GetBalance(tx.To)
	if err != nil {
		return err
	}
	newBalance, err := safemath.Add64(balance, tx.Amount)
	if err != nil {
		return err
	}
	newSupply, err := safemath.Add64(e.State.GetTotalSupply(), tx.Amount)
	if err != nil {
		return err
	}
	e.State.SetBalance(tx.To, newBalance)
	e.State.SetTotalSupply(newSupply)

	delegatee, err := e.State.GetDelegate(tx.To)
	if err != nil {
		return err
	}
	if err := e.movePower(ids.ShortEmpty, delegatee, tx.Amount); err != nil {
		return err
	}

	e.Events = append(e.Events, &events.Transfer{
		From:   ids.ShortEmpty,
		To:     tx.To,
		Amount: tx.Amount,
	})
	return nil
}

func (e *Executor) DelegateTx(tx *txs.DelegateTx) error {
	previous, err := e.State.GetDelegate(tx.Sender)
	if err != nil {
		return err
	}
	balance, err := e.State.GetBalance(tx.Sender)
	if err != nil {
		return err
	}

	e.State.SetDelegate(tx.Sender, tx.Delegatee)
	if err := e.movePower(previous, tx.Delegatee, balance); err != nil {
		return err
	}

	e.Events = append(e.Events, &events.DelegateChanged{
		Delegator:        tx.Sender,
		PreviousDelegate: previous,
		NewDelegate:      tx.Delegatee,
	})
	return nil
}

func (e *Executor) AuthorizeTx(tx *txs.AuthorizeTx) error {
	if now := e.Clk.Unix(); now > tx.Deadline {
		return fmt.Errorf("%w: deadline %d, now %d", ErrExpired, tx.Deadline, now)
	}

	nonce, err := e.State.GetNonce(tx.Owner)
	if err != nil {
		return err
	}
	digest, err := tx.Digest(e.ChainCtx, nonce)
	if err != nil {
		return err
	}

	pubKey, err := secp256k1.RecoverPublicKeyFromHash(digest, tx.Signature)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidSignature, err)
	}
	if signer := pubKey.Address(); signer != tx.Owner {
		return fmt.Errorf("%w: signed by %s, not %s", ErrInvalidSignature, signer, tx.Owner)
	}

	e.State.SetNonce(tx.Owner, nonce+1)
	e.State.SetAllowance(tx.Owner, tx.Spender, tx.Value)

	e.Events = append(e.Events, &events.Approval{
		Owner:   tx.Owner,
		Spender: tx.Spender,
		Value:   tx.Value,
	})
	return nil
}

func (e *Executor) ProposeTx(tx *txs.ProposeTx) error {
	params := e.State.GetParams()

	power, err := e.State.GetCurrentPower(tx.Sender)
	if err != nil {
		return err
	}
	if power < params.ProposalThreshold {
		return fmt.Errorf("%w: power %d, threshold %d",
			ErrBelowThreshold,
			power,
			params.ProposalThreshold,
		)
	}

	height := e.State.GetHeight()
	startHeight, err := safemath.Add64(height, params.VotingDelay)
	if err != nil {
		return err
	}
	endHeight, err := safemath.Add64(startHeight, params.VotingPeriod)
	if err != nil {
		return err
	}

	proposalID := e.State.GetProposalCount() + 1
	e.State.SetProposalCount(proposalID)
	e.State.PutProposal(&state.Proposal{
		ID:          proposalID,
		Proposer:    tx.Sender,
		Actions:     tx.Actions,
		StartHeight: startHeight,
		EndHeight:   endHeight,
		Description: tx.Description,
	})

	e.ProposalID = proposalID
	e.Events = append(e.Events, &events.ProposalCreated{
		ProposalID:  proposalID,
		Proposer:    tx.Sender,
		StartHeight: startHeight,
		EndHeight:   endHeight,
	})
	return nil
}

func (e *Executor) CastVoteTx(tx *txs.CastVoteTx) error {
	proposal, err := e.getProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	proposalStatus, err := e.proposalStatus(proposal)
	if err != nil {
		return err
	}
	if proposalStatus != status.Active {
		return fmt.Errorf("%w: %s", ErrNotActive, proposalStatus)
	}

	voted, err := e.State.GetVoted(tx.ProposalID, tx.Sender)
	if err != nil {
		return err
	}
	if voted {
		return ErrAlreadyVoted
	}

	// Weight is fixed at the proposal's start height, so transfers after
	// the window opened can't vote twice.
	weight, err := e.State.GetPowerAt(tx.Sender, proposal.StartHeight)
	if err != nil {
		return err
	}
	if weight == 0 {
		return ErrNoWeight
	}

	updated := *proposal
	if tx.Support {
		updated.ForVotes, err = safemath.Add64(updated.ForVotes, weight)
	} else {
		updated.AgainstVotes, err = safemath.Add64(updated.AgainstVotes, weight)
	}
	if err != nil {
		return err
	}

	e.State.PutProposal(&updated)
	e.State.PutVoted(tx.ProposalID, tx.Sender)

	e.Events = append(e.Events, &events.VoteCast{
		Voter:      tx.Sender,
		ProposalID: tx.ProposalID,
		Support:    tx.Support,
		Weight:     weight,
	})
	return nil
}

func (e *Executor) CancelTx(tx *txs.CancelTx) error {
	proposal, err := e.getProposal(tx.ProposalID)
	if err != nil {
		return err
	}
	if proposal.Executed {
		return ErrAlreadyExecuted
	}
	if tx.Sender != proposal.Proposer {
		return ErrNotProposer
	}

	updated := *proposal
	updated.Canceled = true
	e.State.PutProposal(&updated)

	e.Events = append(e.Events, &events.ProposalCanceled{
		ProposalID: tx.ProposalID,
	})
	return nil
}

func (e *Executor) QueueTx(tx *txs.QueueTx) error {
	proposal, err := e.getProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	proposalStatus, err := e.proposalStatus(proposal)
	if err != nil {
		return err
	}
	// Queueing an already queued proposal moves its eta.
	if proposalStatus != status.Succeeded && proposalStatus != status.Queued {
		return fmt.Errorf("%w: %s", ErrWrongState, proposalStatus)
	}

	params := e.State.GetParams()
	if tx.Delay < params.MinTimelockDelay {
		return fmt.Errorf("%w: delay %d, minimum %d",
			ErrDelayTooShort,
			tx.Delay,
			params.MinTimelockDelay,
		)
	}

	eta, err := safemath.Add64(e.Clk.Unix(), tx.Delay)
	if err != nil {
		return err
	}
	key, err := state.TimelockKey(proposal.ID, proposal.Actions)
	if err != nil {
		return err
	}
	e.State.PutTimelock(&state.TimelockEntry{
		Key:        key,
		ProposalID: proposal.ID,
		ETA:        eta,
	})

	e.Events = append(e.Events, &events.ProposalQueued{
		ProposalID: tx.ProposalID,
		ETA:        eta,
	})
	return nil
}

func (e *Executor) ExecuteTx(tx *txs.ExecuteTx) error {
	proposal, err := e.getProposal(tx.ProposalID)
	if err != nil {
		return err
	}

	proposalStatus, err := e.proposalStatus(proposal)
	if err != nil {
		return err
	}
	if proposalStatus != status.Queued && proposalStatus != status.Succeeded {
		return fmt.Errorf("%w: %s", ErrWrongState, proposalStatus)
	}

	key, err := state.TimelockKey(proposal.ID, proposal.Actions)
	if err != nil {
		return err
	}
	entry, err := e.State.GetTimelock(key)
	switch {
	case errors.Is(err, database.ErrNotFound):
		return fmt.Errorf("%w: not queued", ErrNotReady)
	case err != nil:
		return err
	}
	if now := e.Clk.Unix(); now < entry.ETA {
		return fmt.Errorf("%w: eta %d, now %d", ErrNotReady, entry.ETA, now)
	}

	// The entry is single use. Dropping it and marking execution before
	// dispatching means a failed action reverts both along with the
	// actions' own writes.
	e.State.DeleteTimelock(key)

	updated := *proposal
	updated.Executed = true
	e.State.PutProposal(&updated)

	for i := range proposal.Actions {
		if err := e.Dispatcher.Dispatch(e.Ctx, e.State, &proposal.Actions[i]); err != nil {
			return fmt.Errorf("%w: action %d: %w", ErrActionReverted, i, err)
		}
	}

	e.Events = append(e.Events, &events.ProposalExecuted{
		ProposalID: tx.ProposalID,
	})
	return nil
}

func (e *Executor) SetParamsTx(tx *txs.SetParamsTx) error {
	if tx.Sender != e.State.GetAdmin() {
		return ErrNotAdmin
	}

	e.State.SetParams(tx.Params)
	e.Events = append(e.Events, &events.ParamsChanged{
		Params: tx.Params,
	})
	return nil
}

func (e *Executor) TransferAdminTx(tx *txs.TransferAdminTx) error {
	previous := e.State.GetAdmin()
	if tx.Sender != previous {
		return ErrNotAdmin
	}

	e.State.SetAdmin(tx.NewAdmin)
	e.Events = append(e.Events, &events.AdminChanged{
		PreviousAdmin: previous,
		NewAdmin:      tx.NewAdmin,
	})
	return nil
}

// transfer debits [from], credits [to], and carries the matching voting
// power between the two accounts' delegates.
func (e *Executor) transfer(from ids.ShortID, to ids.ShortID, amount uint64) error {
	fromBalance, err := e.State.GetBalance(from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return fmt.Errorf("%w: balance %d, amount %d",
			ErrInsufficientBalance,
			fromBalance,
			amount,
		)
	}
	e.State.SetBalance(from, fromBalance-amount)

	toBalance, err := e.State.GetBalance(to)
	if err != nil {
		return err
	}
	newToBalance, err := safemath.Add64(toBalance, amount)
	if err != nil {
		return err
	}
	e.State.SetBalance(to, newToBalance)

	fromDelegate, err := e.State.GetDelegate(from)
	if err != nil {
		return err
	}
	toDelegate, err := e.State.GetDelegate(to)
	if err != nil {
		return err
	}
	if err := e.movePower(fromDelegate, toDelegate, amount); err != nil {
		return err
	}

	e.Events = append(e.Events, &events.Transfer{
		From:   from,
		To:     to,
		Amount: amount,
	})
	return nil
}

// movePower shifts [amount] of voting power from delegatee [src] to
// delegatee [dst]. The empty address on either side means the power
// appears or disappears rather than moving.
func (e *Executor) movePower(src ids.ShortID, dst ids.ShortID, amount uint64) error {
	if src == dst || amount == 0 {
		return nil
	}

	if src != ids.ShortEmpty {
		power, err := e.State.GetCurrentPower(src)
		if err != nil {
			return err
		}
		newPower, err := safemath.Sub(power, amount)
		if err != nil {
			return err
		}
		e.State.SetPower(src, newPower)
		e.Events = append(e.Events, &events.DelegatePowerChanged{
			Delegatee:     src,
			PreviousPower: power,
			NewPower:      newPower,
		})
	}

	if dst != ids.ShortEmpty {
		power, err := e.State.GetCurrentPower(dst)
		if err != nil {
			return err
		}
		newPower, err := safemath.Add64(power, amount)
		if err != nil {
			return err
		}
		e.State.SetPower(dst, newPower)
		e.Events = append(e.Events, &events.DelegatePowerChanged{
			Delegatee:     dst,
			PreviousPower: power,
			NewPower:      newPower,
		})
	}
	return nil
}

func (e *Executor) getProposal(proposalID uint64) (*state.Proposal, error) {
	proposal, err := e.State.GetProposal(proposalID)
	if errors.Is(err, database.ErrNotFound) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownProposal, proposalID)
	}
	return proposal, err
}

// proposalStatus derives the proposal's lifecycle state from the current
// height, the configured quorum, and whether a live timelock entry
// exists for it.
func (e *Executor) proposalStatus(proposal *state.Proposal) (status.Status, error) {
	key, err := state.TimelockKey(proposal.ID, proposal.Actions)
	if err != nil {
		return 0, err
	}

	queued := true
	if _, err := e.State.GetTimelock(key); err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return 0, err
		}
		queued = false
	}

	params := e.State.GetParams()
	return proposal.Status(e.State.GetHeight(), params.QuorumVotes, queued), nil
}
