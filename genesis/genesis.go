// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package genesis

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/luxfi/ids"
	"github.com/luxfi/math/set"

	safemath "github.com/luxfi/math"

	"github.com/luxfi/governance/config"
)

var (
	errNilGenesis          = errors.New("nil genesis")
	errEmptyAdmin          = errors.New("empty genesis admin")
	errEmptyAllocationAddr = errors.New("empty allocation address")
	errDuplicateAllocation = errors.New("duplicate allocation address")
)

// Allocation credits an address with an initial balance and, optionally,
// an initial delegation.
type Allocation struct {
	Address ids.ShortID `serialize:"true" json:"address"`
	Balance uint64      `serialize:"true" json:"balance"`
	// Delegate is the address the balance is initially delegated to. An
	// empty delegate means the balance starts undelegated.
	Delegate ids.ShortID `serialize:"true" json:"delegate,omitempty"`
}

// Genesis describes the initial contents of the ledger.
type Genesis struct {
	NetworkID   uint32        `serialize:"true" json:"networkID"`
	Admin       ids.ShortID   `serialize:"true" json:"admin"`
	Params      config.Params `serialize:"true" json:"params"`
	Allocations []Allocation  `serialize:"true" json:"allocations"`
}

// Parse unmarshals and verifies a JSON encoded genesis.
func Parse(genesisBytes []byte) (*Genesis, error) {
	g := &Genesis{}
	if err := json.Unmarshal(genesisBytes, g); err != nil {
		return nil, fmt.Errorf("failed to parse genesis: %w", err)
	}
	if err := g.Verify(); err != nil {
		return nil, err
	}
	return g, nil
}

func (g *Genesis) Verify() error {
	switch {
	case g == nil:
		return errNilGenesis
	case g.Admin == ids.ShortEmpty:
		return errEmptyAdmin
	}
	if err := g.Params.Verify(); err != nil {
		return fmt.Errorf("invalid genesis params: %w", err)
	}

	addrs := set.NewSet[ids.ShortID](len(g.Allocations))
	supply := uint64(0)
	for _, alloc := range g.Allocations {
		if alloc.Address == ids.ShortEmpty {
			return errEmptyAllocationAddr
		}
		if addrs.Contains(alloc.Address) {
			return fmt.Errorf("%w: %s", errDuplicateAllocation, alloc.Address)
		}
		addrs.Add(alloc.Address)

		var err error
		supply, err = safemath.Add64(supply, alloc.Balance)
		if err != nil {
			return fmt.Errorf("failed to compute genesis supply: %w", err)
		}
	}
	return nil
}
