// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/governance/txs"
)

const txLabel = "tx"

var (
	_ txs.Visitor = (*txMetrics)(nil)

	txLabels = []string{txLabel}
)

type txMetrics struct {
	numTxs metric.CounterVec
}

func newTxMetrics(registerer metric.Registerer) (*txMetrics, error) {
	m := &txMetrics{
		numTxs: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "txs_accepted",
				Help: "number of operations accepted",
			},
			txLabels,
		),
	}
	return m, nil
}

func (m *txMetrics) TransferTx(*txs.TransferTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer",
	}).Inc()
	return nil
}

func (m *txMetrics) TransferFromTx(*txs.TransferFromTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer_from",
	}).Inc()
	return nil
}

func (m *txMetrics) ApproveTx(*txs.ApproveTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "approve",
	}).Inc()
	return nil
}

func (m *txMetrics) MintTx(*txs.MintTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "mint",
	}).Inc()
	return nil
}

func (m *txMetrics) DelegateTx(*txs.DelegateTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "delegate",
	}).Inc()
	return nil
}

func (m *txMetrics) AuthorizeTx(*txs.AuthorizeTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "authorize",
	}).Inc()
	return nil
}

func (m *txMetrics) ProposeTx(*txs.ProposeTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "propose",
	}).Inc()
	return nil
}

func (m *txMetrics) CastVoteTx(*txs.CastVoteTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "cast_vote",
	}).Inc()
	return nil
}

func (m *txMetrics) CancelTx(*txs.CancelTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "cancel",
	}).Inc()
	return nil
}

func (m *txMetrics) QueueTx(*txs.QueueTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "queue",
	}).Inc()
	return nil
}

func (m *txMetrics) ExecuteTx(*txs.ExecuteTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "execute",
	}).Inc()
	return nil
}

func (m *txMetrics) SetParamsTx(*txs.SetParamsTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "set_params",
	}).Inc()
	return nil
}

func (m *txMetrics) TransferAdminTx(*txs.TransferAdminTx) error {
	m.numTxs.With(metric.Labels{
		txLabel: "transfer_admin",
	}).Inc()
	return nil
}
