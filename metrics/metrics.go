// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"github.com/luxfi/metric"

	"github.com/luxfi/governance/txs"
	"github.com/luxfi/governance/utils/wrappers"
)

var _ Metrics = (*metricsImpl)(nil)

type Metrics interface {
	APIInterceptor

	// MarkAccepted updates all metrics relating to the acceptance of an
	// operation.
	MarkAccepted(tx txs.Tx) error

	// SetPendingTimelocks records how many proposals currently sit in
	// the execution schedule.
	SetPendingTimelocks(n int)

	// SetHeight records the latest finalized height.
	SetHeight(height uint64)
}

type metricsImpl struct {
	txMetrics *txMetrics

	numPendingTimelocks metric.Gauge
	height              metric.Gauge

	APIInterceptor
}

func (m *metricsImpl) MarkAccepted(tx txs.Tx) error {
	return tx.Visit(m.txMetrics)
}

func (m *metricsImpl) SetPendingTimelocks(n int) {
	m.numPendingTimelocks.Set(float64(n))
}

func (m *metricsImpl) SetHeight(height uint64) {
	m.height.Set(float64(height))
}

func New(registerer metric.Registerer) (Metrics, error) {
	txMetrics, err := newTxMetrics(registerer)
	errs := wrappers.Errs{Err: err}

	m := &metricsImpl{txMetrics: txMetrics}

	m.numPendingTimelocks = metric.NewGauge(metric.GaugeOpts{
		Name: "pending_timelocks",
		Help: "Number of proposals waiting in the execution schedule",
	})
	m.height = metric.NewGauge(metric.GaugeOpts{
		Name: "height",
		Help: "Latest finalized height",
	})

	apiRequestMetric, err := newAPIInterceptor()
	m.APIInterceptor = apiRequestMetric
	errs.Add(err)
	// Metrics are self-registering when created with NewGauge etc.
	return m, errs.Err
}
