// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/rpc/v2"

	"github.com/luxfi/metric"
)

const methodLabel = "method"

var (
	_ APIInterceptor = (*apiInterceptor)(nil)

	methodLabels = []string{methodLabel}
)

// APIInterceptor instruments the JSON-RPC surface with per-method
// request counts, durations, and error counts. The two hooks plug into
// the rpc server's intercept and after functions.
type APIInterceptor interface {
	InterceptRequest(i *rpc.RequestInfo) *http.Request
	AfterRequest(i *rpc.RequestInfo)
}

type requestTimestampKey struct{}

type apiInterceptor struct {
	requestDurationCount metric.CounterVec
	requestDurationSum   metric.CounterVec
	requestErrors        metric.CounterVec
}

func newAPIInterceptor() (APIInterceptor, error) {
	return &apiInterceptor{
		requestDurationCount: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "request_duration_count",
				Help: "number of API requests served",
			},
			methodLabels,
		),
		requestDurationSum: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "request_duration_sum",
				Help: "total time, in seconds, spent serving API requests",
			},
			methodLabels,
		),
		requestErrors: metric.NewCounterVec(
			metric.CounterOpts{
				Name: "request_errors",
				Help: "number of API requests that errored",
			},
			methodLabels,
		),
	}, nil
}

// InterceptRequest stamps the arrival time into the request context so
// AfterRequest can report the duration.
func (*apiInterceptor) InterceptRequest(i *rpc.RequestInfo) *http.Request {
	ctx := i.Request.Context()
	ctx = context.WithValue(ctx, requestTimestampKey{}, time.Now())
	return i.Request.WithContext(ctx)
}

func (a *apiInterceptor) AfterRequest(i *rpc.RequestInfo) {
	labels := metric.Labels{
		methodLabel: i.Method,
	}
	a.requestDurationCount.With(labels).Inc()

	// The timestamp is missing if the request never went through
	// InterceptRequest; skip the duration rather than misreport it.
	if timestamp, ok := i.Request.Context().Value(requestTimestampKey{}).(time.Time); ok {
		a.requestDurationSum.With(labels).Add(time.Since(timestamp).Seconds())
	}

	if i.Error != nil {
		a.requestErrors.With(labels).Inc()
	}
}
