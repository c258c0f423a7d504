// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"github.com/luxfi/database"
	"github.com/luxfi/ids"

	"github.com/luxfi/governance/config"
)

var _ Diff = (*diff)(nil)

// Diff stages the writes of a single operation on top of a parent view.
// Applying the diff transfers those writes to the parent; dropping it
// discards them.
type Diff interface {
	Chain

	Apply(Chain) error
}

type diff struct {
	parent Chain

	modifiedBalances   map[ids.ShortID]uint64
	modifiedDelegates  map[ids.ShortID]ids.ShortID
	modifiedNonces     map[ids.ShortID]uint64
	modifiedAllowances map[allowanceKey]uint64

	// Every power write inside an operation lands on the current height,
	// so a single staged value per account is the whole checkpoint delta.
	modifiedPowers map[ids.ShortID]uint64

	modifiedProposals map[uint64]*Proposal
	addedVotes        map[voteKey]struct{}
	modifiedTimelocks map[ids.ID]*TimelockEntry // nil entry means deleted

	height        uint64
	totalSupply   uint64
	admin         ids.ShortID
	params        config.Params
	proposalCount uint64
}

func NewDiffOn(parent Chain) (Diff, error) {
	return &diff{
		parent: parent,

		modifiedBalances:   make(map[ids.ShortID]uint64),
		modifiedDelegates:  make(map[ids.ShortID]ids.ShortID),
		modifiedNonces:     make(map[ids.ShortID]uint64),
		modifiedAllowances: make(map[allowanceKey]uint64),
		modifiedPowers:     make(map[ids.ShortID]uint64),
		modifiedProposals:  make(map[uint64]*Proposal),
		addedVotes:         make(map[voteKey]struct{}),
		modifiedTimelocks:  make(map[ids.ID]*TimelockEntry),

		height:        parent.GetHeight(),
		totalSupply:   parent.GetTotalSupply(),
		admin:         parent.GetAdmin(),
		params:        parent.GetParams(),
		proposalCount: parent.GetProposalCount(),
	}, nil
}

func (d *diff) GetBalance(addr ids.ShortID) (uint64, error) {
	if balance, ok := d.modifiedBalances[addr]; ok {
		return balance, nil
	}
	return d.parent.GetBalance(addr)
}

func (d *diff) SetBalance(addr ids.ShortID, balance uint64) {
	d.modifiedBalances[addr] = balance
}

func (d *diff) GetDelegate(addr ids.ShortID) (ids.ShortID, error) {
	if delegatee, ok := d.modifiedDelegates[addr]; ok {
		return delegatee, nil
	}
	return d.parent.GetDelegate(addr)
}

func (d *diff) SetDelegate(addr ids.ShortID, delegatee ids.ShortID) {
	d.modifiedDelegates[addr] = delegatee
}

func (d *diff) GetNonce(addr ids.ShortID) (uint64, error) {
	if nonce, ok := d.modifiedNonces[addr]; ok {
		return nonce, nil
	}
	return d.parent.GetNonce(addr)
}

func (d *diff) SetNonce(addr ids.ShortID, nonce uint64) {
	d.modifiedNonces[addr] = nonce
}

func (d *diff) GetAllowance(owner ids.ShortID, spender ids.ShortID) (uint64, error) {
	if value, ok := d.modifiedAllowances[allowanceKey{owner: owner, spender: spender}]; ok {
		return value, nil
	}
	return d.parent.GetAllowance(owner, spender)
}

func (d *diff) SetAllowance(owner ids.ShortID, spender ids.ShortID, value uint64) {
	d.modifiedAllowances[allowanceKey{owner: owner, spender: spender}] = value
}

func (d *diff) GetCurrentPower(addr ids.ShortID) (uint64, error) {
	if power, ok := d.modifiedPowers[addr]; ok {
		return power, nil
	}
	return d.parent.GetCurrentPower(addr)
}

// GetPowerAt only serves finalized heights, which staged checkpoints are
// never part of, so the parent history answers directly.
func (d *diff) GetPowerAt(addr ids.ShortID, height uint64) (uint64, error) {
	return d.parent.GetPowerAt(addr, height)
}

func (d *diff) SetPower(addr ids.ShortID, power uint64) {
	d.modifiedPowers[addr] = power
}

func (d *diff) GetHeight() uint64 {
	return d.height
}

func (d *diff) GetTotalSupply() uint64 {
	return d.totalSupply
}

func (d *diff) SetTotalSupply(supply uint64) {
	d.totalSupply = supply
}

func (d *diff) GetAdmin() ids.ShortID {
	return d.admin
}

func (d *diff) SetAdmin(admin ids.ShortID) {
	d.admin = admin
}

func (d *diff) GetParams() config.Params {
	return d.params
}

func (d *diff) SetParams(params config.Params) {
	d.params = params
}

func (d *diff) GetProposalCount() uint64 {
	return d.proposalCount
}

func (d *diff) SetProposalCount(count uint64) {
	d.proposalCount = count
}

func (d *diff) GetProposal(proposalID uint64) (*Proposal, error) {
	if proposal, ok := d.modifiedProposals[proposalID]; ok {
		return proposal, nil
	}
	return d.parent.GetProposal(proposalID)
}

func (d *diff) PutProposal(proposal *Proposal) {
	d.modifiedProposals[proposal.ID] = proposal
}

func (d *diff) GetVoted(proposalID uint64, voter ids.ShortID) (bool, error) {
	if _, ok := d.addedVotes[voteKey{proposalID: proposalID, voter: voter}]; ok {
		return true, nil
	}
	return d.parent.GetVoted(proposalID, voter)
}

func (d *diff) PutVoted(proposalID uint64, voter ids.ShortID) {
	d.addedVotes[voteKey{proposalID: proposalID, voter: voter}] = struct{}{}
}

func (d *diff) GetTimelock(key ids.ID) (*TimelockEntry, error) {
	if entry, ok := d.modifiedTimelocks[key]; ok {
		if entry == nil {
			return nil, database.ErrNotFound
		}
		return entry, nil
	}
	return d.parent.GetTimelock(key)
}

func (d *diff) PutTimelock(entry *TimelockEntry) {
	d.modifiedTimelocks[entry.Key] = entry
}

func (d *diff) DeleteTimelock(key ids.ID) {
	d.modifiedTimelocks[key] = nil
}

func (d *diff) Apply(baseState Chain) error {
	baseState.SetTotalSupply(d.totalSupply)
	baseState.SetAdmin(d.admin)
	baseState.SetParams(d.params)
	baseState.SetProposalCount(d.proposalCount)
	for addr, balance := range d.modifiedBalances {
		baseState.SetBalance(addr, balance)
	}
	for addr, delegatee := range d.modifiedDelegates {
		baseState.SetDelegate(addr, delegatee)
	}
	for addr, nonce := range d.modifiedNonces {
		baseState.SetNonce(addr, nonce)
	}
	for key, value := range d.modifiedAllowances {
		baseState.SetAllowance(key.owner, key.spender, value)
	}
	for addr, power := range d.modifiedPowers {
		baseState.SetPower(addr, power)
	}
	for _, proposal := range d.modifiedProposals {
		baseState.PutProposal(proposal)
	}
	for key := range d.addedVotes {
		baseState.PutVoted(key.proposalID, key.voter)
	}
	for key, entry := range d.modifiedTimelocks {
		if entry == nil {
			baseState.DeleteTimelock(key)
		} else {
			baseState.PutTimelock(entry)
		}
	}
	return nil
}
