// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import "encoding/json"

var DefaultConfig = Config{
	AccountCacheSize:    2048,
	CheckpointCacheSize: 2048,
	ProposalCacheSize:   512,
	PubSubEnabled:       true,
}

// Config collects the node-level knobs of the governance core. Chain-level
// parameters live in Params and travel in state.
type Config struct {
	// Number of account records held in memory.
	AccountCacheSize int `json:"accountCacheSize"`

	// Number of per-account checkpoint histories held in memory.
	CheckpointCacheSize int `json:"checkpointCacheSize"`

	// Number of proposals held in memory.
	ProposalCacheSize int `json:"proposalCacheSize"`

	// PubSubEnabled mounts the event subscription endpoint.
	PubSubEnabled bool `json:"pubSubEnabled"`
}

func ParseConfig(configBytes []byte) (Config, error) {
	if len(configBytes) == 0 {
		return DefaultConfig, nil
	}

	cfg := DefaultConfig
	err := json.Unmarshal(configBytes, &cfg)
	return cfg, err
}
