// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"net/http"

	"github.com/luxfi/ids"
	"github.com/luxfi/log"

	"github.com/luxfi/governance/api"
	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/events"
	"github.com/luxfi/governance/txs"
	"github.com/luxfi/governance/utils/formatting"
	"github.com/luxfi/governance/utils/json"
)

// Service defines the API calls that can be made to the governance core.
type Service struct {
	gov *Governor
}

// APIAction is the JSON form of one proposal action.
type APIAction struct {
	Target ids.ShortID `json:"target"`
	Value  json.Uint64 `json:"value"`
	// Payload is hex encoded.
	Payload string `json:"payload"`
}

// APIProposal is the JSON form of a stored proposal together with its
// derived status.
type APIProposal struct {
	ID           json.Uint64 `json:"id"`
	Proposer     ids.ShortID `json:"proposer"`
	Actions      []APIAction `json:"actions"`
	StartHeight  json.Uint64 `json:"startHeight"`
	EndHeight    json.Uint64 `json:"endHeight"`
	ForVotes     json.Uint64 `json:"forVotes"`
	AgainstVotes json.Uint64 `json:"againstVotes"`
	Canceled     bool        `json:"canceled"`
	Executed     bool        `json:"executed"`
	Description  string      `json:"description"`
	Status       string      `json:"status"`
}

// APITimelock is the JSON form of one schedule entry.
type APITimelock struct {
	Key        ids.ID      `json:"key"`
	ProposalID json.Uint64 `json:"proposalID"`
	ETA        json.Uint64 `json:"eta"`
}

func newAPIActions(actions []txs.Action) ([]APIAction, error) {
	apiActions := make([]APIAction, len(actions))
	for i, action := range actions {
		payload, err := formatting.Encode(formatting.Hex, action.Payload)
		if err != nil {
			return nil, err
		}
		apiActions[i] = APIAction{
			Target:  action.Target,
			Value:   json.Uint64(action.Value),
			Payload: payload,
		}
	}
	return apiActions, nil
}

func parseAPIActions(apiActions []APIAction) ([]txs.Action, error) {
	actions := make([]txs.Action, len(apiActions))
	for i, apiAction := range apiActions {
		payload, err := formatting.Decode(formatting.Hex, apiAction.Payload)
		if err != nil {
			return nil, err
		}
		actions[i] = txs.Action{
			Target:  apiAction.Target,
			Value:   uint64(apiAction.Value),
			Payload: payload,
		}
	}
	return actions, nil
}

// GetHeight returns the latest finalized height.
func (s *Service) GetHeight(_ *http.Request, _ *struct{}, reply *api.GetHeightResponse) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getHeight"),
	)

	reply.Height = json.Uint64(s.gov.Height())
	return nil
}

type AdvanceHeightArgs struct {
	Height json.Uint64 `json:"height"`
}

// AdvanceHeight finalizes every height up to the given one.
func (s *Service) AdvanceHeight(_ *http.Request, args *AdvanceHeightArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "advanceHeight"),
	)

	return s.gov.AdvanceHeight(uint64(args.Height))
}

type GetAccountArgs struct {
	Address ids.ShortID `json:"address"`
}

type GetAccountReply struct {
	Balance  json.Uint64 `json:"balance"`
	Delegate ids.ShortID `json:"delegate"`
	Nonce    json.Uint64 `json:"nonce"`
	Power    json.Uint64 `json:"power"`
}

// GetAccount returns the balance, delegation, nonce, and current voting
// power of an address.
func (s *Service) GetAccount(_ *http.Request, args *GetAccountArgs, reply *GetAccountReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getAccount"),
	)

	balance, err := s.gov.Balance(args.Address)
	if err != nil {
		return err
	}
	delegate, err := s.gov.Delegate(args.Address)
	if err != nil {
		return err
	}
	nonce, err := s.gov.Nonce(args.Address)
	if err != nil {
		return err
	}
	power, err := s.gov.CurrentPower(args.Address)
	if err != nil {
		return err
	}

	reply.Balance = json.Uint64(balance)
	reply.Delegate = delegate
	reply.Nonce = json.Uint64(nonce)
	reply.Power = json.Uint64(power)
	return nil
}

type GetPowerAtArgs struct {
	Address ids.ShortID `json:"address"`
	Height  json.Uint64 `json:"height"`
}

type GetPowerAtReply struct {
	Power json.Uint64 `json:"power"`
}

// GetPowerAt returns the voting power an address held at a finalized
// height.
func (s *Service) GetPowerAt(_ *http.Request, args *GetPowerAtArgs, reply *GetPowerAtReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getPowerAt"),
	)

	power, err := s.gov.PowerAt(args.Address, uint64(args.Height))
	if err != nil {
		return err
	}
	reply.Power = json.Uint64(power)
	return nil
}

type GetAllowanceArgs struct {
	Owner   ids.ShortID `json:"owner"`
	Spender ids.ShortID `json:"spender"`
}

type GetAllowanceReply struct {
	Allowance json.Uint64 `json:"allowance"`
}

func (s *Service) GetAllowance(_ *http.Request, args *GetAllowanceArgs, reply *GetAllowanceReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getAllowance"),
	)

	allowance, err := s.gov.Allowance(args.Owner, args.Spender)
	if err != nil {
		return err
	}
	reply.Allowance = json.Uint64(allowance)
	return nil
}

type GetTotalSupplyReply struct {
	Supply json.Uint64 `json:"supply"`
}

func (s *Service) GetTotalSupply(_ *http.Request, _ *struct{}, reply *GetTotalSupplyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getTotalSupply"),
	)

	reply.Supply = json.Uint64(s.gov.TotalSupply())
	return nil
}

type GetAdminReply struct {
	Admin ids.ShortID `json:"admin"`
}

func (s *Service) GetAdmin(_ *http.Request, _ *struct{}, reply *GetAdminReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getAdmin"),
	)

	reply.Admin = s.gov.Admin()
	return nil
}

type GetParamsReply struct {
	Params config.Params `json:"params"`
}

func (s *Service) GetParams(_ *http.Request, _ *struct{}, reply *GetParamsReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getParams"),
	)

	reply.Params = s.gov.Params()
	return nil
}

type GetProposalArgs struct {
	ProposalID json.Uint64 `json:"proposalID"`
}

type GetProposalReply struct {
	Proposal APIProposal `json:"proposal"`
}

func (s *Service) GetProposal(_ *http.Request, args *GetProposalArgs, reply *GetProposalReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getProposal"),
	)

	proposal, err := s.gov.Proposal(uint64(args.ProposalID))
	if err != nil {
		return err
	}
	proposalStatus, err := s.gov.ProposalStatus(uint64(args.ProposalID))
	if err != nil {
		return err
	}
	actions, err := newAPIActions(proposal.Actions)
	if err != nil {
		return err
	}

	reply.Proposal = APIProposal{
		ID:           json.Uint64(proposal.ID),
		Proposer:     proposal.Proposer,
		Actions:      actions,
		StartHeight:  json.Uint64(proposal.StartHeight),
		EndHeight:    json.Uint64(proposal.EndHeight),
		ForVotes:     json.Uint64(proposal.ForVotes),
		AgainstVotes: json.Uint64(proposal.AgainstVotes),
		Canceled:     proposal.Canceled,
		Executed:     proposal.Executed,
		Description:  proposal.Description,
		Status:       proposalStatus.String(),
	}
	return nil
}

type GetProposalStatusReply struct {
	Status string `json:"status"`
}

func (s *Service) GetProposalStatus(_ *http.Request, args *GetProposalArgs, reply *GetProposalStatusReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getProposalStatus"),
	)

	proposalStatus, err := s.gov.ProposalStatus(uint64(args.ProposalID))
	if err != nil {
		return err
	}
	reply.Status = proposalStatus.String()
	return nil
}

type HasVotedArgs struct {
	ProposalID json.Uint64 `json:"proposalID"`
	Voter      ids.ShortID `json:"voter"`
}

type HasVotedReply struct {
	Voted bool `json:"voted"`
}

func (s *Service) HasVoted(_ *http.Request, args *HasVotedArgs, reply *HasVotedReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "hasVoted"),
	)

	voted, err := s.gov.HasVoted(uint64(args.ProposalID), args.Voter)
	if err != nil {
		return err
	}
	reply.Voted = voted
	return nil
}

type GetPendingTimelocksReply struct {
	Timelocks []APITimelock `json:"timelocks"`
}

// GetPendingTimelocks returns the queued executions in eta order.
func (s *Service) GetPendingTimelocks(_ *http.Request, _ *struct{}, reply *GetPendingTimelocksReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "getPendingTimelocks"),
	)

	pending := s.gov.PendingTimelocks()
	reply.Timelocks = make([]APITimelock, len(pending))
	for i, entry := range pending {
		reply.Timelocks[i] = APITimelock{
			Key:        entry.Key,
			ProposalID: json.Uint64(entry.ProposalID),
			ETA:        json.Uint64(entry.ETA),
		}
	}
	return nil
}

type TransferArgs struct {
	Sender ids.ShortID `json:"sender"`
	To     ids.ShortID `json:"to"`
	Amount json.Uint64 `json:"amount"`
}

func (s *Service) Transfer(r *http.Request, args *TransferArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "transfer"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.TransferTx{
		BaseTx: txs.BaseTx{Sender: args.Sender},
		To:     args.To,
		Amount: uint64(args.Amount),
	})
	return err
}

type TransferFromArgs struct {
	Sender ids.ShortID `json:"sender"`
	Owner  ids.ShortID `json:"owner"`
	To     ids.ShortID `json:"to"`
	Amount json.Uint64 `json:"amount"`
}

func (s *Service) TransferFrom(r *http.Request, args *TransferFromArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "transferFrom"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.TransferFromTx{
		BaseTx: txs.BaseTx{Sender: args.Sender},
		Owner:  args.Owner,
		To:     args.To,
		Amount: uint64(args.Amount),
	})
	return err
}

type ApproveArgs struct {
	Sender  ids.ShortID `json:"sender"`
	Spender ids.ShortID `json:"spender"`
	Value   json.Uint64 `json:"value"`
}

func (s *Service) Approve(r *http.Request, args *ApproveArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "approve"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.ApproveTx{
		BaseTx:  txs.BaseTx{Sender: args.Sender},
		Spender: args.Spender,
		Value:   uint64(args.Value),
	})
	return err
}

type MintArgs struct {
	Sender ids.ShortID `json:"sender"`
	To     ids.ShortID `json:"to"`
	Amount json.Uint64 `json:"amount"`
}

func (s *Service) Mint(r *http.Request, args *MintArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "mint"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.MintTx{
		BaseTx: txs.BaseTx{Sender: args.Sender},
		To:     args.To,
		Amount: uint64(args.Amount),
	})
	return err
}

type DelegateArgs struct {
	Sender ids.ShortID `json:"sender"`
	// Delegatee may be omitted to clear the delegation.
	Delegatee ids.ShortID `json:"delegatee"`
}

func (s *Service) Delegate(r *http.Request, args *DelegateArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "delegate"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.DelegateTx{
		BaseTx:    txs.BaseTx{Sender: args.Sender},
		Delegatee: args.Delegatee,
	})
	return err
}

type AuthorizeArgs struct {
	Sender   ids.ShortID `json:"sender"`
	Owner    ids.ShortID `json:"owner"`
	Spender  ids.ShortID `json:"spender"`
	Value    json.Uint64 `json:"value"`
	Deadline json.Uint64 `json:"deadline"`
	// Signature is hex encoded.
	Signature string `json:"signature"`
}

func (s *Service) Authorize(r *http.Request, args *AuthorizeArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "authorize"),
	)

	signature, err := formatting.Decode(formatting.Hex, args.Signature)
	if err != nil {
		return err
	}
	_, err = s.gov.Apply(r.Context(), &txs.AuthorizeTx{
		BaseTx:    txs.BaseTx{Sender: args.Sender},
		Owner:     args.Owner,
		Spender:   args.Spender,
		Value:     uint64(args.Value),
		Deadline:  uint64(args.Deadline),
		Signature: signature,
	})
	return err
}

type ProposeArgs struct {
	Sender      ids.ShortID `json:"sender"`
	Actions     []APIAction `json:"actions"`
	Description string      `json:"description"`
}

type ProposeReply struct {
	ProposalID json.Uint64 `json:"proposalID"`
}

func (s *Service) Propose(r *http.Request, args *ProposeArgs, reply *ProposeReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "propose"),
	)

	actions, err := parseAPIActions(args.Actions)
	if err != nil {
		return err
	}
	receipt, err := s.gov.Apply(r.Context(), &txs.ProposeTx{
		BaseTx:      txs.BaseTx{Sender: args.Sender},
		Actions:     actions,
		Description: args.Description,
	})
	if err != nil {
		return err
	}
	reply.ProposalID = json.Uint64(receipt.ProposalID)
	return nil
}

type CastVoteArgs struct {
	Sender     ids.ShortID `json:"sender"`
	ProposalID json.Uint64 `json:"proposalID"`
	Support    bool        `json:"support"`
}

func (s *Service) CastVote(r *http.Request, args *CastVoteArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "castVote"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.CastVoteTx{
		BaseTx:     txs.BaseTx{Sender: args.Sender},
		ProposalID: uint64(args.ProposalID),
		Support:    args.Support,
	})
	return err
}

type CancelArgs struct {
	Sender     ids.ShortID `json:"sender"`
	ProposalID json.Uint64 `json:"proposalID"`
}

func (s *Service) Cancel(r *http.Request, args *CancelArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "cancel"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.CancelTx{
		BaseTx:     txs.BaseTx{Sender: args.Sender},
		ProposalID: uint64(args.ProposalID),
	})
	return err
}

type QueueArgs struct {
	Sender     ids.ShortID `json:"sender"`
	ProposalID json.Uint64 `json:"proposalID"`
	Delay      json.Uint64 `json:"delay"`
}

type QueueReply struct {
	ETA json.Uint64 `json:"eta"`
}

func (s *Service) Queue(r *http.Request, args *QueueArgs, reply *QueueReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "queue"),
	)

	receipt, err := s.gov.Apply(r.Context(), &txs.QueueTx{
		BaseTx:     txs.BaseTx{Sender: args.Sender},
		ProposalID: uint64(args.ProposalID),
		Delay:      uint64(args.Delay),
	})
	if err != nil {
		return err
	}
	for _, evt := range receipt.Events {
		if queued, ok := evt.(*events.ProposalQueued); ok {
			reply.ETA = json.Uint64(queued.ETA)
		}
	}
	return nil
}

type ExecuteArgs struct {
	Sender     ids.ShortID `json:"sender"`
	ProposalID json.Uint64 `json:"proposalID"`
}

func (s *Service) Execute(r *http.Request, args *ExecuteArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "execute"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.ExecuteTx{
		BaseTx:     txs.BaseTx{Sender: args.Sender},
		ProposalID: uint64(args.ProposalID),
	})
	return err
}

type SetParamsArgs struct {
	Sender ids.ShortID   `json:"sender"`
	Params config.Params `json:"params"`
}

func (s *Service) SetParams(r *http.Request, args *SetParamsArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "setParams"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.SetParamsTx{
		BaseTx: txs.BaseTx{Sender: args.Sender},
		Params: args.Params,
	})
	return err
}

type TransferAdminArgs struct {
	Sender   ids.ShortID `json:"sender"`
	NewAdmin ids.ShortID `json:"newAdmin"`
}

func (s *Service) TransferAdmin(r *http.Request, args *TransferAdminArgs, _ *api.EmptyReply) error {
	s.gov.log.Debug("API called",
		log.String("service", "governance"),
		log.String("method", "transferAdmin"),
	)

	_, err := s.gov.Apply(r.Context(), &txs.TransferAdminTx{
		BaseTx:   txs.BaseTx{Sender: args.Sender},
		NewAdmin: args.NewAdmin,
	})
	return err
}
