// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package txs

// Allow the governor to execute custom logic against the underlying
// operation types.
type Visitor interface {
	// Ledger operations:
	TransferTx(*TransferTx) error
	TransferFromTx(*TransferFromTx) error
	ApproveTx(*ApproveTx) error
	MintTx(*MintTx) error
	DelegateTx(*DelegateTx) error
	AuthorizeTx(*AuthorizeTx) error

	// Proposal operations:
	ProposeTx(*ProposeTx) error
	CastVoteTx(*CastVoteTx) error
	CancelTx(*CancelTx) error

	// Timelock operations:
	QueueTx(*QueueTx) error
	ExecuteTx(*ExecuteTx) error

	// Administrative operations:
	SetParamsTx(*SetParamsTx) error
	TransferAdminTx(*TransferAdminTx) error
}
