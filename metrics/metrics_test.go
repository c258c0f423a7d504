// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/rpc/v2"
	"github.com/stretchr/testify/require"

	"github.com/luxfi/metric"
)

func TestAPIInterceptor(t *testing.T) {
	require := require.New(t)

	m, err := New(metric.NewRegistry())
	require.NoError(err)

	req := httptest.NewRequest(http.MethodPost, "/rpc", nil)
	info := &rpc.RequestInfo{
		Request: req,
		Method:  "governance.getHeight",
	}

	intercepted := m.InterceptRequest(info)
	timestamp, ok := intercepted.Context().Value(requestTimestampKey{}).(time.Time)
	require.True(ok)
	require.False(timestamp.IsZero())

	info.Request = intercepted
	info.Error = errors.New("rpc: can't find method")
	m.AfterRequest(info)

	// A request that skipped InterceptRequest has no timestamp and must
	// still be countable.
	m.AfterRequest(&rpc.RequestInfo{
		Request: httptest.NewRequest(http.MethodPost, "/rpc", nil),
		Method:  "governance.getProposal",
	})
}
