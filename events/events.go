// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package events

import (
	"github.com/luxfi/ids"

	"github.com/luxfi/governance/config"
)

// Type enumerates the notifications the core emits.
type Type uint8

const (
	TypeTransfer Type = iota + 1
	TypeApproval
	TypeDelegateChanged
	TypeDelegatePowerChanged
	TypeProposalCreated
	TypeVoteCast
	TypeProposalCanceled
	TypeProposalQueued
	TypeProposalExecuted
	TypeParamsChanged
	TypeAdminChanged
)

func (t Type) String() string {
	switch t {
	case TypeTransfer:
		return "transfer"
	case TypeApproval:
		return "approval"
	case TypeDelegateChanged:
		return "delegateChanged"
	case TypeDelegatePowerChanged:
		return "delegatePowerChanged"
	case TypeProposalCreated:
		return "proposalCreated"
	case TypeVoteCast:
		return "voteCast"
	case TypeProposalCanceled:
		return "proposalCanceled"
	case TypeProposalQueued:
		return "proposalQueued"
	case TypeProposalExecuted:
		return "proposalExecuted"
	case TypeParamsChanged:
		return "paramsChanged"
	case TypeAdminChanged:
		return "adminChanged"
	default:
		return "unknown"
	}
}

// Event is a single observable side effect of an accepted operation.
type Event interface {
	Type() Type

	// Addresses returns the accounts this event concerns, used to match
	// address subscriptions.
	Addresses() []ids.ShortID
}

// Transfer reports balance moving between accounts. A mint is a transfer
// from the empty address.
type Transfer struct {
	From   ids.ShortID `json:"from"`
	To     ids.ShortID `json:"to"`
	Amount uint64      `json:"amount"`
}

func (*Transfer) Type() Type {
	return TypeTransfer
}

func (e *Transfer) Addresses() []ids.ShortID {
	return []ids.ShortID{e.From, e.To}
}

// Approval reports a spender's allowance over an owner's balance being
// replaced.
type Approval struct {
	Owner   ids.ShortID `json:"owner"`
	Spender ids.ShortID `json:"spender"`
	Value   uint64      `json:"value"`
}

func (*Approval) Type() Type {
	return TypeApproval
}

func (e *Approval) Addresses() []ids.ShortID {
	return []ids.ShortID{e.Owner, e.Spender}
}

// DelegateChanged reports an account repointing its delegation.
type DelegateChanged struct {
	Delegator        ids.ShortID `json:"delegator"`
	PreviousDelegate ids.ShortID `json:"previousDelegate"`
	NewDelegate      ids.ShortID `json:"newDelegate"`
}

func (*DelegateChanged) Type() Type {
	return TypeDelegateChanged
}

func (e *DelegateChanged) Addresses() []ids.ShortID {
	return []ids.ShortID{e.Delegator, e.PreviousDelegate, e.NewDelegate}
}

// DelegatePowerChanged reports a delegatee's voting power total moving.
type DelegatePowerChanged struct {
	Delegatee     ids.ShortID `json:"delegatee"`
	PreviousPower uint64      `json:"previousPower"`
	NewPower      uint64      `json:"newPower"`
}

func (*DelegatePowerChanged) Type() Type {
	return TypeDelegatePowerChanged
}

func (e *DelegatePowerChanged) Addresses() []ids.ShortID {
	return []ids.ShortID{e.Delegatee}
}

// ProposalCreated reports a new proposal and its voting window.
type ProposalCreated struct {
	ProposalID  uint64      `json:"proposalID"`
	Proposer    ids.ShortID `json:"proposer"`
	StartHeight uint64      `json:"startHeight"`
	EndHeight   uint64      `json:"endHeight"`
}

func (*ProposalCreated) Type() Type {
	return TypeProposalCreated
}

func (e *ProposalCreated) Addresses() []ids.ShortID {
	return []ids.ShortID{e.Proposer}
}

// VoteCast reports a vote and the snapshot weight it carried.
type VoteCast struct {
	Voter      ids.ShortID `json:"voter"`
	ProposalID uint64      `json:"proposalID"`
	Support    bool        `json:"support"`
	Weight     uint64      `json:"weight"`
}

func (*VoteCast) Type() Type {
	return TypeVoteCast
}

func (e *VoteCast) Addresses() []ids.ShortID {
	return []ids.ShortID{e.Voter}
}

// ProposalCanceled reports a proposal being withdrawn by its proposer.
type ProposalCanceled struct {
	ProposalID uint64 `json:"proposalID"`
}

func (*ProposalCanceled) Type() Type {
	return TypeProposalCanceled
}

func (*ProposalCanceled) Addresses() []ids.ShortID {
	return nil
}

// ProposalQueued reports a proposal being scheduled for execution.
type ProposalQueued struct {
	ProposalID uint64 `json:"proposalID"`
	ETA        uint64 `json:"eta"`
}

func (*ProposalQueued) Type() Type {
	return TypeProposalQueued
}

func (*ProposalQueued) Addresses() []ids.ShortID {
	return nil
}

// ProposalExecuted reports a proposal's action batch completing.
type ProposalExecuted struct {
	ProposalID uint64 `json:"proposalID"`
}

func (*ProposalExecuted) Type() Type {
	return TypeProposalExecuted
}

func (*ProposalExecuted) Addresses() []ids.ShortID {
	return nil
}

// ParamsChanged reports the governance parameters being replaced.
type ParamsChanged struct {
	Params config.Params `json:"params"`
}

func (*ParamsChanged) Type() Type {
	return TypeParamsChanged
}

func (*ParamsChanged) Addresses() []ids.ShortID {
	return nil
}

// AdminChanged reports the administrator capability moving.
type AdminChanged struct {
	PreviousAdmin ids.ShortID `json:"previousAdmin"`
	NewAdmin      ids.ShortID `json:"newAdmin"`
}

func (*AdminChanged) Type() Type {
	return TypeAdminChanged
}

func (e *AdminChanged) Addresses() []ids.ShortID {
	return []ids.ShortID{e.PreviousAdmin, e.NewAdmin}
}
