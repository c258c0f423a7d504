// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/gorilla/rpc/v2"

	"github.com/luxfi/database"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"
	"github.com/luxfi/pubsub"

	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/dispatch"
	"github.com/luxfi/governance/events"
	"github.com/luxfi/governance/genesis"
	"github.com/luxfi/governance/metrics"
	"github.com/luxfi/governance/state"
	"github.com/luxfi/governance/status"
	"github.com/luxfi/governance/txs"
	"github.com/luxfi/governance/txs/executor"
	"github.com/luxfi/governance/utils/json"
	"github.com/luxfi/governance/utils/timer/mockable"
)

var (
	// ErrReentrant rejects an operation that arrives while an execution
	// is dispatching its action batch.
	ErrReentrant = errors.New("execution already in progress")

	errHeightNotMonotonic = errors.New("height may only advance")
)

// Governor is the serialized entry point of the governance core. Every
// mutation runs on a scratch view of state and lands only when the
// whole operation succeeds.
type Governor struct {
	cfg     config.Config
	log     log.Logger
	clk     mockable.Clock
	state   state.State
	metrics metrics.Metrics
	pubsub  *pubsub.Server
	backend *executor.Backend

	// lock serializes operations against state.
	lock sync.Mutex

	// executing is the single permit held while an execution dispatches
	// its actions. An action handler that calls back into Apply is
	// rejected here, before it can deadlock on [lock].
	executing atomic.Bool
}

// Receipt reports what an accepted operation did.
type Receipt struct {
	// ProposalID is set when the operation created a proposal.
	ProposalID uint64
	Events     []events.Event
}

func New(
	db database.Database,
	g *genesis.Genesis,
	chainID ids.ID,
	cfg config.Config,
	dispatcher dispatch.Dispatcher,
	registerer metric.Registerer,
	logger log.Logger,
) (*Governor, error) {
	m, err := metrics.New(registerer)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize metrics: %w", err)
	}

	s, err := state.New(db, g, cfg, registerer, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize state: %w", err)
	}

	gov := &Governor{
		cfg:     cfg,
		log:     logger,
		state:   s,
		metrics: m,
		pubsub:  pubsub.New(logger),
	}
	gov.backend = &executor.Backend{
		ChainCtx: &txs.Context{
			NetworkID: g.NetworkID,
			ChainID:   chainID,
		},
		Clk:        &gov.clk,
		Dispatcher: dispatcher,
		Log:        logger,
	}

	m.SetHeight(s.GetHeight())
	m.SetPendingTimelocks(len(s.PendingTimelocks()))
	return gov, nil
}

// Apply runs one operation to completion. On failure the state is left
// exactly as it was; on success the receipt carries everything the
// operation emitted.
func (g *Governor) Apply(ctx context.Context, tx txs.Tx) (*Receipt, error) {
	if _, ok := tx.(*txs.ExecuteTx); ok {
		if !g.executing.CompareAndSwap(false, true) {
			return nil, ErrReentrant
		}
		g.lock.Lock()
		defer g.lock.Unlock()
		defer g.executing.Store(false)
		return g.apply(ctx, tx)
	}

	// Any other operation observed while an execution is dispatching
	// can only be a callback out of one of its actions.
	if g.executing.Load() {
		return nil, ErrReentrant
	}
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.apply(ctx, tx)
}

func (g *Governor) apply(ctx context.Context, tx txs.Tx) (*Receipt, error) {
	if err := tx.SyntacticVerify(g.backend.ChainCtx); err != nil {
		return nil, err
	}

	diff, err := state.NewDiffOn(g.state)
	if err != nil {
		return nil, err
	}

	e := &executor.Executor{
		Backend: g.backend,
		Ctx:     ctx,
		State:   diff,
	}
	if err := tx.Visit(e); err != nil {
		// The scratch view is dropped; nothing the operation wrote
		// survives.
		return nil, err
	}

	if err := diff.Apply(g.state); err != nil {
		return nil, err
	}
	if err := g.state.Commit(); err != nil {
		return nil, err
	}

	if err := g.metrics.MarkAccepted(tx); err != nil {
		g.log.Error("failed to mark accepted operation",
			log.Err(err),
		)
	}
	g.metrics.SetPendingTimelocks(len(g.state.PendingTimelocks()))

	g.publish(e.Events)
	return &Receipt{
		ProposalID: e.ProposalID,
		Events:     e.Events,
	}, nil
}

func (g *Governor) publish(evts []events.Event) {
	for _, evt := range evts {
		g.log.Debug("event emitted",
			log.Stringer("type", evt.Type()),
		)
		g.pubsub.Publish(NewPubSubFilterer(evt))
	}
}

// AdvanceHeight finalizes every height up to [height]. Voting windows
// and snapshot queries move on heights, so the host drives this as its
// view of the ledger grows.
func (g *Governor) AdvanceHeight(height uint64) error {
	g.lock.Lock()
	defer g.lock.Unlock()

	if current := g.state.GetHeight(); height <= current {
		return fmt.Errorf("%w: at %d, got %d", errHeightNotMonotonic, current, height)
	}
	g.state.SetHeight(height)
	if err := g.state.Commit(); err != nil {
		return err
	}
	g.metrics.SetHeight(height)
	return nil
}

func (g *Governor) Height() uint64 {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetHeight()
}

func (g *Governor) Balance(addr ids.ShortID) (uint64, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetBalance(addr)
}

func (g *Governor) Delegate(addr ids.ShortID) (ids.ShortID, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetDelegate(addr)
}

func (g *Governor) Nonce(addr ids.ShortID) (uint64, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetNonce(addr)
}

func (g *Governor) Allowance(owner ids.ShortID, spender ids.ShortID) (uint64, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetAllowance(owner, spender)
}

func (g *Governor) CurrentPower(addr ids.ShortID) (uint64, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetCurrentPower(addr)
}

func (g *Governor) PowerAt(addr ids.ShortID, height uint64) (uint64, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetPowerAt(addr, height)
}

func (g *Governor) TotalSupply() uint64 {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetTotalSupply()
}

func (g *Governor) Admin() ids.ShortID {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetAdmin()
}

func (g *Governor) Params() config.Params {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetParams()
}

func (g *Governor) ProposalCount() uint64 {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetProposalCount()
}

// Proposal returns the stored proposal. The returned proposal must not
// be modified.
func (g *Governor) Proposal(proposalID uint64) (*state.Proposal, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetProposal(proposalID)
}

// ProposalStatus derives the proposal's lifecycle status at the current
// height. It never writes.
func (g *Governor) ProposalStatus(proposalID uint64) (status.Status, error) {
	g.lock.Lock()
	defer g.lock.Unlock()

	proposal, err := g.state.GetProposal(proposalID)
	if err != nil {
		return 0, err
	}
	key, err := state.TimelockKey(proposal.ID, proposal.Actions)
	if err != nil {
		return 0, err
	}

	queued := true
	if _, err := g.state.GetTimelock(key); err != nil {
		if !errors.Is(err, database.ErrNotFound) {
			return 0, err
		}
		queued = false
	}
	return proposal.Status(g.state.GetHeight(), g.state.GetParams().QuorumVotes, queued), nil
}

func (g *Governor) HasVoted(proposalID uint64, voter ids.ShortID) (bool, error) {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.GetVoted(proposalID, voter)
}

// PendingTimelocks returns the queued executions in eta order.
func (g *Governor) PendingTimelocks() []*state.TimelockEntry {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.PendingTimelocks()
}

func (g *Governor) CreateHandlers(context.Context) (map[string]http.Handler, error) {
	codec := json.NewCodec()

	rpcServer := rpc.NewServer()
	rpcServer.RegisterCodec(codec, "application/json")
	rpcServer.RegisterCodec(codec, "application/json;charset=UTF-8")
	rpcServer.RegisterInterceptFunc(g.metrics.InterceptRequest)
	rpcServer.RegisterAfterFunc(g.metrics.AfterRequest)
	// name this service "governance"
	if err := rpcServer.RegisterService(&Service{gov: g}, "governance"); err != nil {
		return nil, err
	}

	handlers := map[string]http.Handler{
		"": rpcServer,
	}
	if g.cfg.PubSubEnabled {
		handlers["/events"] = g.pubsub
	}
	return handlers, nil
}

func (g *Governor) Shutdown(context.Context) error {
	g.lock.Lock()
	defer g.lock.Unlock()
	return g.state.Close()
}
