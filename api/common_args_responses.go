// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package api

import (
	"github.com/luxfi/governance/utils/json"
)

// EmptyReply indicates that an api doesn't have a response to return.
type EmptyReply struct{}

// GetHeightResponse is the response from calls reporting a height.
type GetHeightResponse struct {
	Height json.Uint64 `json:"height"`
}
