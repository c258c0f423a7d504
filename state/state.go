// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package state

import (
	"errors"
	"fmt"

	"github.com/google/btree"

	"github.com/luxfi/cache"
	"github.com/luxfi/cache/lru"
	"github.com/luxfi/cache/metercacher"
	"github.com/luxfi/database"
	"github.com/luxfi/database/prefixdb"
	"github.com/luxfi/database/versiondb"
	"github.com/luxfi/ids"
	"github.com/luxfi/log"
	"github.com/luxfi/metric"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/governance/config"
	"github.com/luxfi/governance/genesis"
)

const defaultTreeDegree = 2

var (
	_ State = (*state)(nil)

	// ErrFutureHeight is returned by point-in-time power queries on the
	// current height or beyond. Only finalized history may be queried.
	ErrFutureHeight = errors.New("height has not been finalized")

	AccountPrefix    = []byte("account")
	CheckpointPrefix = []byte("checkpoint")
	ProposalPrefix   = []byte("proposal")
	VotePrefix       = []byte("vote")
	TimelockPrefix   = []byte("timelock")
	AllowancePrefix  = []byte("allowance")
	SingletonPrefix  = []byte("singleton")

	HeightKey        = []byte("height")
	SupplyKey        = []byte("total supply")
	AdminKey         = []byte("admin")
	ParamsKey        = []byte("params")
	ProposalCountKey = []byte("proposal count")
	InitializedKey   = []byte("initialized")
)

// Chain is the mutable view an operation executes against. Reads observe
// staged writes before falling back to what was last committed.
type Chain interface {
	GetBalance(addr ids.ShortID) (uint64, error)
	SetBalance(addr ids.ShortID, balance uint64)
	GetDelegate(addr ids.ShortID) (ids.ShortID, error)
	SetDelegate(addr ids.ShortID, delegatee ids.ShortID)
	GetNonce(addr ids.ShortID) (uint64, error)
	SetNonce(addr ids.ShortID, nonce uint64)
	GetAllowance(owner ids.ShortID, spender ids.ShortID) (uint64, error)
	SetAllowance(owner ids.ShortID, spender ids.ShortID, value uint64)

	// GetCurrentPower returns the power of the account's latest
	// checkpoint, or 0 without one.
	GetCurrentPower(addr ids.ShortID) (uint64, error)
	// GetPowerAt returns the account's power as of [height]. Fails with
	// [ErrFutureHeight] unless [height] precedes the current height.
	GetPowerAt(addr ids.ShortID, height uint64) (uint64, error)
	// SetPower checkpoints the account's power at the current height.
	SetPower(addr ids.ShortID, power uint64)

	GetHeight() uint64
	GetTotalSupply() uint64
	SetTotalSupply(supply uint64)
	GetAdmin() ids.ShortID
	SetAdmin(admin ids.ShortID)
	GetParams() config.Params
	SetParams(params config.Params)

	GetProposalCount() uint64
	SetProposalCount(count uint64)
	// GetProposal returns the stored proposal. The returned proposal must
	// not be modified.
	GetProposal(proposalID uint64) (*Proposal, error)
	PutProposal(proposal *Proposal)
	GetVoted(proposalID uint64, voter ids.ShortID) (bool, error)
	PutVoted(proposalID uint64, voter ids.ShortID)

	// GetTimelock returns the live schedule entry under [key], or
	// [database.ErrNotFound] if the proposal isn't scheduled.
	GetTimelock(key ids.ID) (*TimelockEntry, error)
	PutTimelock(entry *TimelockEntry)
	DeleteTimelock(key ids.ID)
}

// State is the durable store underneath the governance core.
type State interface {
	Chain

	// SetHeight records the execution environment's finalized height.
	SetHeight(height uint64)

	// PendingTimelocks returns the committed schedule in eta order. The
	// returned entries must not be modified.
	PendingTimelocks() []*TimelockEntry

	// Discard uncommitted changes to the base database.
	Abort()

	// Commit changes to the base database.
	Commit() error

	// Returns a batch of unwritten changes that, when written, will
	// commit all pending changes to the base database.
	CommitBatch() (database.Batch, error)

	Close() error
}

// account is the stored per-address record. A missing record reads as
// the zero account.
type account struct {
	Balance  uint64      `serialize:"true"`
	Delegate ids.ShortID `serialize:"true"`
	Nonce    uint64      `serialize:"true"`
}

type voteKey struct {
	proposalID uint64
	voter      ids.ShortID
}

type allowanceKey struct {
	owner   ids.ShortID
	spender ids.ShortID
}

type state struct {
	cfg config.Config
	log log.Logger

	baseDB *versiondb.Database

	modifiedBalances  map[ids.ShortID]uint64
	modifiedDelegates map[ids.ShortID]ids.ShortID
	modifiedNonces    map[ids.ShortID]uint64
	accountCache      cache.Cacher[ids.ShortID, *account]
	accountDB         database.Database

	modifiedPowers  map[ids.ShortID]uint64
	checkpointCache cache.Cacher[ids.ShortID, []Checkpoint]
	checkpointDB    database.Database

	modifiedProposals map[uint64]*Proposal
	proposalCache     cache.Cacher[uint64, *Proposal]
	proposalDB        database.Database

	addedVotes map[voteKey]struct{}
	voteDB     database.Database

	modifiedTimelocks map[ids.ID]*TimelockEntry // nil entry means deleted
	timelockEntries   map[ids.ID]*TimelockEntry
	timelockTree      *btree.BTreeG[*TimelockEntry]
	timelockDB        database.Database

	modifiedAllowances map[allowanceKey]uint64
	allowanceDB        database.Database

	singletonDB database.Database

	height        uint64
	totalSupply   uint64
	admin         ids.ShortID
	params        config.Params
	proposalCount uint64
}

// New loads state from [db], initializing it from [g] on first use.
func New(
	db database.Database,
	g *genesis.Genesis,
	cfg config.Config,
	registerer metric.Registerer,
	logger log.Logger,
) (State, error) {
	s, err := newState(db, cfg, registerer, logger)
	if err != nil {
		return nil, err
	}

	if err := s.sync(g); err != nil {
		return nil, errors.Join(err, s.Close())
	}
	return s, nil
}

func newState(
	db database.Database,
	cfg config.Config,
	registerer metric.Registerer,
	logger log.Logger,
) (*state, error) {
	// metercacher attaches its hit/miss counters to the concrete
	// registry; a registerer that isn't one leaves the caches unmetered.
	registry, _ := registerer.(metric.Registry)

	accountCache, err := metercacher.New[ids.ShortID, *account](
		"account_cache",
		registry,
		lru.NewCache[ids.ShortID, *account](cfg.AccountCacheSize),
	)
	if err != nil {
		return nil, err
	}

	checkpointCache, err := metercacher.New[ids.ShortID, []Checkpoint](
		"checkpoint_cache",
		registry,
		lru.NewCache[ids.ShortID, []Checkpoint](cfg.CheckpointCacheSize),
	)
	if err != nil {
		return nil, err
	}

	proposalCache, err := metercacher.New[uint64, *Proposal](
		"proposal_cache",
		registry,
		lru.NewCache[uint64, *Proposal](cfg.ProposalCacheSize),
	)
	if err != nil {
		return nil, err
	}

	baseDB := versiondb.New(db)
	return &state{
		cfg: cfg,
		log: logger,

		baseDB: baseDB,

		modifiedBalances:  make(map[ids.ShortID]uint64),
		modifiedDelegates: make(map[ids.ShortID]ids.ShortID),
		modifiedNonces:    make(map[ids.ShortID]uint64),
		accountCache:      accountCache,
		accountDB:         prefixdb.New(AccountPrefix, baseDB),

		modifiedPowers:  make(map[ids.ShortID]uint64),
		checkpointCache: checkpointCache,
		checkpointDB:    prefixdb.New(CheckpointPrefix, baseDB),

		modifiedProposals: make(map[uint64]*Proposal),
		proposalCache:     proposalCache,
		proposalDB:        prefixdb.New(ProposalPrefix, baseDB),

		addedVotes: make(map[voteKey]struct{}),
		voteDB:     prefixdb.New(VotePrefix, baseDB),

		modifiedTimelocks: make(map[ids.ID]*TimelockEntry),
		timelockEntries:   make(map[ids.ID]*TimelockEntry),
		timelockTree:      btree.NewG(defaultTreeDegree, (*TimelockEntry).Less),
		timelockDB:        prefixdb.New(TimelockPrefix, baseDB),

		modifiedAllowances: make(map[allowanceKey]uint64),
		allowanceDB:        prefixdb.New(AllowancePrefix, baseDB),

		singletonDB: prefixdb.New(SingletonPrefix, baseDB),
	}, nil
}

func (s *state) sync(g *genesis.Genesis) error {
	wasInitialized, err := isInitialized(s.singletonDB)
	if err != nil {
		return fmt.Errorf(
			"failed to check if the database is initialized: %w",
			err,
		)
	}

	if !wasInitialized {
		if err := s.init(g); err != nil {
			return fmt.Errorf(
				"failed to initialize the database: %w",
				err,
			)
		}
	}

	if err := s.load(); err != nil {
		return fmt.Errorf(
			"failed to load the database state: %w",
			err,
		)
	}
	return nil
}

func (s *state) init(g *genesis.Genesis) error {
	if err := g.Verify(); err != nil {
		return err
	}

	supply := uint64(0)
	powers := make(map[ids.ShortID]uint64)
	for _, alloc := range g.Allocations {
		s.SetBalance(alloc.Address, alloc.Balance)

		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return fmt.Errorf("failed to compute genesis supply: %w", err)
		}

		if alloc.Delegate == ids.ShortEmpty {
			continue
		}
		s.SetDelegate(alloc.Address, alloc.Delegate)
		powers[alloc.Delegate], err = safemath.Add64(powers[alloc.Delegate], alloc.Balance)
		if err != nil {
			return fmt.Errorf("failed to compute genesis power: %w", err)
		}
	}
	for delegatee, power := range powers {
		s.SetPower(delegatee, power)
	}

	s.SetHeight(0)
	s.SetTotalSupply(supply)
	s.SetAdmin(g.Admin)
	s.SetParams(g.Params)
	s.SetProposalCount(0)

	s.log.Info("initializing genesis state",
		log.Int("numAllocations", len(g.Allocations)),
		log.Uint64("supply", supply),
		log.Stringer("admin", g.Admin),
	)

	if err := markInitialized(s.singletonDB); err != nil {
		return err
	}

	return s.Commit()
}

func (s *state) load() error {
	height, err := database.GetUInt64(s.singletonDB, HeightKey)
	if err != nil {
		return fmt.Errorf("failed to load height: %w", err)
	}
	s.height = height

	supply, err := database.GetUInt64(s.singletonDB, SupplyKey)
	if err != nil {
		return fmt.Errorf("failed to load total supply: %w", err)
	}
	s.totalSupply = supply

	adminBytes, err := s.singletonDB.Get(AdminKey)
	if err != nil {
		return fmt.Errorf("failed to load admin: %w", err)
	}
	s.admin, err = ids.ToShortID(adminBytes)
	if err != nil {
		return fmt.Errorf("failed to parse admin: %w", err)
	}

	paramsBytes, err := s.singletonDB.Get(ParamsKey)
	if err != nil {
		return fmt.Errorf("failed to load params: %w", err)
	}
	if _, err := Codec.Unmarshal(paramsBytes, &s.params); err != nil {
		return fmt.Errorf("failed to parse params: %w", err)
	}

	count, err := database.GetUInt64(s.singletonDB, ProposalCountKey)
	if err != nil {
		return fmt.Errorf("failed to load proposal count: %w", err)
	}
	s.proposalCount = count

	return s.loadTimelocks()
}

// loadTimelocks populates the in-memory schedule. The live set is small,
// bounded by the number of queued, not-yet-executed proposals.
func (s *state) loadTimelocks() error {
	it := s.timelockDB.NewIterator()
	defer it.Release()

	for it.Next() {
		entry := &TimelockEntry{}
		if _, err := Codec.Unmarshal(it.Value(), entry); err != nil {
			return fmt.Errorf("failed to parse timelock entry: %w", err)
		}
		s.timelockEntries[entry.Key] = entry
		s.timelockTree.ReplaceOrInsert(entry)
	}
	return it.Error()
}

func (s *state) getAccount(addr ids.ShortID) (*account, error) {
	if acct, ok := s.accountCache.Get(addr); ok {
		return acct, nil
	}

	acct := &account{}
	bytes, err := s.accountDB.Get(addr.Bytes())
	switch err {
	case nil:
		if _, err := Codec.Unmarshal(bytes, acct); err != nil {
			return nil, fmt.Errorf("failed to parse account %s: %w", addr, err)
		}
	case database.ErrNotFound:
		// A missing record is the zero account.
	default:
		return nil, err
	}

	s.accountCache.Put(addr, acct)
	return acct, nil
}

func (s *state) GetBalance(addr ids.ShortID) (uint64, error) {
	if balance, ok := s.modifiedBalances[addr]; ok {
		return balance, nil
	}
	acct, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return acct.Balance, nil
}

func (s *state) SetBalance(addr ids.ShortID, balance uint64) {
	s.modifiedBalances[addr] = balance
}

func (s *state) GetDelegate(addr ids.ShortID) (ids.ShortID, error) {
	if delegatee, ok := s.modifiedDelegates[addr]; ok {
		return delegatee, nil
	}
	acct, err := s.getAccount(addr)
	if err != nil {
		return ids.ShortEmpty, err
	}
	return acct.Delegate, nil
}

func (s *state) SetDelegate(addr ids.ShortID, delegatee ids.ShortID) {
	s.modifiedDelegates[addr] = delegatee
}

func (s *state) GetNonce(addr ids.ShortID) (uint64, error) {
	if nonce, ok := s.modifiedNonces[addr]; ok {
		return nonce, nil
	}
	acct, err := s.getAccount(addr)
	if err != nil {
		return 0, err
	}
	return acct.Nonce, nil
}

func (s *state) SetNonce(addr ids.ShortID, nonce uint64) {
	s.modifiedNonces[addr] = nonce
}

func (s *state) GetAllowance(owner ids.ShortID, spender ids.ShortID) (uint64, error) {
	if value, ok := s.modifiedAllowances[allowanceKey{owner: owner, spender: spender}]; ok {
		return value, nil
	}
	value, err := database.GetUInt64(s.allowanceDB, allowanceDBKey(owner, spender))
	if err == database.ErrNotFound {
		return 0, nil
	}
	return value, err
}

func (s *state) SetAllowance(owner ids.ShortID, spender ids.ShortID, value uint64) {
	s.modifiedAllowances[allowanceKey{owner: owner, spender: spender}] = value
}

// checkpoints returns the account's full checkpoint history, loading and
// caching it on first use.
func (s *state) checkpoints(addr ids.ShortID) ([]Checkpoint, error) {
	if history, ok := s.checkpointCache.Get(addr); ok {
		return history, nil
	}

	count, err := database.GetUInt64(s.checkpointDB, addr.Bytes())
	if err == database.ErrNotFound {
		s.checkpointCache.Put(addr, nil)
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	history := make([]Checkpoint, 0, count)
	for i := uint64(0); i < count; i++ {
		bytes, err := s.checkpointDB.Get(checkpointEntryKey(addr, i))
		if err != nil {
			return nil, fmt.Errorf("failed to load checkpoint %d of %s: %w", i, addr, err)
		}
		cp := Checkpoint{}
		if _, err := Codec.Unmarshal(bytes, &cp); err != nil {
			return nil, fmt.Errorf("failed to parse checkpoint %d of %s: %w", i, addr, err)
		}
		history = append(history, cp)
	}

	s.checkpointCache.Put(addr, history)
	return history, nil
}

func (s *state) GetCurrentPower(addr ids.ShortID) (uint64, error) {
	if power, ok := s.modifiedPowers[addr]; ok {
		return power, nil
	}
	history, err := s.checkpoints(addr)
	if err != nil {
		return 0, err
	}
	if len(history) == 0 {
		return 0, nil
	}
	return history[len(history)-1].Power, nil
}

func (s *state) GetPowerAt(addr ids.ShortID, height uint64) (uint64, error) {
	if height >= s.height {
		return 0, fmt.Errorf("%w: %d >= %d", ErrFutureHeight, height, s.height)
	}
	history, err := s.checkpoints(addr)
	if err != nil {
		return 0, err
	}
	return powerAt(history, height), nil
}

func (s *state) SetPower(addr ids.ShortID, power uint64) {
	s.modifiedPowers[addr] = power
}

func (s *state) GetHeight() uint64 {
	return s.height
}

func (s *state) SetHeight(height uint64) {
	s.height = height
}

func (s *state) GetTotalSupply() uint64 {
	return s.totalSupply
}

func (s *state) SetTotalSupply(supply uint64) {
	s.totalSupply = supply
}

func (s *state) GetAdmin() ids.ShortID {
	return s.admin
}

func (s *state) SetAdmin(admin ids.ShortID) {
	s.admin = admin
}

func (s *state) GetParams() config.Params {
	return s.params
}

func (s *state) SetParams(params config.Params) {
	s.params = params
}

func (s *state) GetProposalCount() uint64 {
	return s.proposalCount
}

func (s *state) SetProposalCount(count uint64) {
	s.proposalCount = count
}

func (s *state) GetProposal(proposalID uint64) (*Proposal, error) {
	if proposal, ok := s.modifiedProposals[proposalID]; ok {
		return proposal, nil
	}
	if proposal, ok := s.proposalCache.Get(proposalID); ok {
		if proposal == nil {
			return nil, database.ErrNotFound
		}
		return proposal, nil
	}

	bytes, err := s.proposalDB.Get(database.PackUInt64(proposalID))
	if err == database.ErrNotFound {
		s.proposalCache.Put(proposalID, nil)
		return nil, database.ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	proposal := &Proposal{}
	if _, err := Codec.Unmarshal(bytes, proposal); err != nil {
		return nil, fmt.Errorf("failed to parse proposal %d: %w", proposalID, err)
	}
	s.proposalCache.Put(proposalID, proposal)
	return proposal, nil
}

func (s *state) PutProposal(proposal *Proposal) {
	s.modifiedProposals[proposal.ID] = proposal
}

func (s *state) GetVoted(proposalID uint64, voter ids.ShortID) (bool, error) {
	if _, ok := s.addedVotes[voteKey{proposalID: proposalID, voter: voter}]; ok {
		return true, nil
	}
	return s.voteDB.Has(voteDBKey(proposalID, voter))
}

func (s *state) PutVoted(proposalID uint64, voter ids.ShortID) {
	s.addedVotes[voteKey{proposalID: proposalID, voter: voter}] = struct{}{}
}

func (s *state) GetTimelock(key ids.ID) (*TimelockEntry, error) {
	if entry, ok := s.modifiedTimelocks[key]; ok {
		if entry == nil {
			return nil, database.ErrNotFound
		}
		return entry, nil
	}
	if entry, ok := s.timelockEntries[key]; ok {
		return entry, nil
	}
	return nil, database.ErrNotFound
}

func (s *state) PutTimelock(entry *TimelockEntry) {
	s.modifiedTimelocks[entry.Key] = entry
}

func (s *state) DeleteTimelock(key ids.ID) {
	s.modifiedTimelocks[key] = nil
}

func (s *state) PendingTimelocks() []*TimelockEntry {
	entries := make([]*TimelockEntry, 0, s.timelockTree.Len())
	s.timelockTree.Ascend(func(entry *TimelockEntry) bool {
		entries = append(entries, entry)
		return true
	})
	return entries
}

func (s *state) Abort() {
	s.baseDB.Abort()
}

func (s *state) Commit() error {
	defer s.Abort()
	batch, err := s.CommitBatch()
	if err != nil {
		return err
	}
	return batch.Write()
}

func (s *state) CommitBatch() (database.Batch, error) {
	if err := s.write(); err != nil {
		return nil, err
	}
	return s.baseDB.CommitBatch()
}

func (s *state) Close() error {
	// The per-bucket databases are prefixdb wrappers whose Close closes
	// the shared underlying database. Closing one is closing them all;
	// closing each would report "closed" on every call after the first.
	return s.singletonDB.Close()
}

func (s *state) write() error {
	return errors.Join(
		s.writeAccounts(),
		s.writeCheckpoints(),
		s.writeProposals(),
		s.writeVotes(),
		s.writeTimelocks(),
		s.writeAllowances(),
		s.writeMetadata(),
	)
}

func (s *state) writeAccounts() error {
	touched := make(map[ids.ShortID]*account)
	load := func(addr ids.ShortID) (*account, error) {
		if acct, ok := touched[addr]; ok {
			return acct, nil
		}
		stored, err := s.getAccount(addr)
		if err != nil {
			return nil, err
		}
		acct := *stored
		touched[addr] = &acct
		return &acct, nil
	}

	for addr, balance := range s.modifiedBalances {
		acct, err := load(addr)
		if err != nil {
			return err
		}
		acct.Balance = balance
		delete(s.modifiedBalances, addr)
	}
	for addr, delegatee := range s.modifiedDelegates {
		acct, err := load(addr)
		if err != nil {
			return err
		}
		acct.Delegate = delegatee
		delete(s.modifiedDelegates, addr)
	}
	for addr, nonce := range s.modifiedNonces {
		acct, err := load(addr)
		if err != nil {
			return err
		}
		acct.Nonce = nonce
		delete(s.modifiedNonces, addr)
	}

	for addr, acct := range touched {
		bytes, err := Codec.Marshal(CodecVersion, acct)
		if err != nil {
			return fmt.Errorf("failed to serialize account %s: %w", addr, err)
		}
		if err := s.accountDB.Put(addr.Bytes(), bytes); err != nil {
			return fmt.Errorf("failed to write account %s: %w", addr, err)
		}
		s.accountCache.Put(addr, acct)
	}
	return nil
}

func (s *state) writeCheckpoints() error {
	for addr, power := range s.modifiedPowers {
		history, err := s.checkpoints(addr)
		if err != nil {
			return err
		}
		delete(s.modifiedPowers, addr)

		history, appended := applyPower(history, s.height, power)
		index := uint64(len(history) - 1)

		bytes, err := Codec.Marshal(CodecVersion, &history[index])
		if err != nil {
			return fmt.Errorf("failed to serialize checkpoint for %s: %w", addr, err)
		}
		if err := s.checkpointDB.Put(checkpointEntryKey(addr, index), bytes); err != nil {
			return fmt.Errorf("failed to write checkpoint for %s: %w", addr, err)
		}
		if appended {
			if err := database.PutUInt64(s.checkpointDB, addr.Bytes(), uint64(len(history))); err != nil {
				return fmt.Errorf("failed to write checkpoint count for %s: %w", addr, err)
			}
		}
		s.checkpointCache.Put(addr, history)
	}
	return nil
}

func (s *state) writeProposals() error {
	for proposalID, proposal := range s.modifiedProposals {
		bytes, err := Codec.Marshal(CodecVersion, proposal)
		if err != nil {
			return fmt.Errorf("failed to serialize proposal %d: %w", proposalID, err)
		}

		delete(s.modifiedProposals, proposalID)
		s.proposalCache.Put(proposalID, proposal)
		if err := s.proposalDB.Put(database.PackUInt64(proposalID), bytes); err != nil {
			return fmt.Errorf("failed to write proposal %d: %w", proposalID, err)
		}
	}
	return nil
}

func (s *state) writeVotes() error {
	for key := range s.addedVotes {
		delete(s.addedVotes, key)
		if err := s.voteDB.Put(voteDBKey(key.proposalID, key.voter), nil); err != nil {
			return fmt.Errorf("failed to write vote record: %w", err)
		}
	}
	return nil
}

func (s *state) writeTimelocks() error {
	for key, entry := range s.modifiedTimelocks {
		delete(s.modifiedTimelocks, key)

		if prev, ok := s.timelockEntries[key]; ok {
			s.timelockTree.Delete(prev)
			delete(s.timelockEntries, key)
		}

		if entry == nil {
			if err := s.timelockDB.Delete(key[:]); err != nil {
				return fmt.Errorf("failed to delete timelock entry: %w", err)
			}
			continue
		}

		s.timelockEntries[key] = entry
		s.timelockTree.ReplaceOrInsert(entry)

		bytes, err := Codec.Marshal(CodecVersion, entry)
		if err != nil {
			return fmt.Errorf("failed to serialize timelock entry: %w", err)
		}
		if err := s.timelockDB.Put(key[:], bytes); err != nil {
			return fmt.Errorf("failed to write timelock entry: %w", err)
		}
	}
	return nil
}

func (s *state) writeAllowances() error {
	for key, value := range s.modifiedAllowances {
		delete(s.modifiedAllowances, key)

		var err error
		if value == 0 {
			err = s.allowanceDB.Delete(allowanceDBKey(key.owner, key.spender))
		} else {
			err = database.PutUInt64(s.allowanceDB, allowanceDBKey(key.owner, key.spender), value)
		}
		if err != nil {
			return fmt.Errorf("failed to write allowance: %w", err)
		}
	}
	return nil
}

func (s *state) writeMetadata() error {
	if err := database.PutUInt64(s.singletonDB, HeightKey, s.height); err != nil {
		return fmt.Errorf("failed to write height: %w", err)
	}
	if err := database.PutUInt64(s.singletonDB, SupplyKey, s.totalSupply); err != nil {
		return fmt.Errorf("failed to write total supply: %w", err)
	}
	if err := s.singletonDB.Put(AdminKey, s.admin.Bytes()); err != nil {
		return fmt.Errorf("failed to write admin: %w", err)
	}
	paramsBytes, err := Codec.Marshal(CodecVersion, &s.params)
	if err != nil {
		return fmt.Errorf("failed to serialize params: %w", err)
	}
	if err := s.singletonDB.Put(ParamsKey, paramsBytes); err != nil {
		return fmt.Errorf("failed to write params: %w", err)
	}
	if err := database.PutUInt64(s.singletonDB, ProposalCountKey, s.proposalCount); err != nil {
		return fmt.Errorf("failed to write proposal count: %w", err)
	}
	return nil
}

func checkpointEntryKey(addr ids.ShortID, index uint64) []byte {
	return append(addr.Bytes(), database.PackUInt64(index)...)
}

func voteDBKey(proposalID uint64, voter ids.ShortID) []byte {
	return append(database.PackUInt64(proposalID), voter.Bytes()...)
}

func allowanceDBKey(owner ids.ShortID, spender ids.ShortID) []byte {
	return append(owner.Bytes(), spender.Bytes()...)
}

func markInitialized(db database.KeyValueWriter) error {
	return db.Put(InitializedKey, nil)
}

func isInitialized(db database.KeyValueReader) (bool, error) {
	return db.Has(InitializedKey)
}
