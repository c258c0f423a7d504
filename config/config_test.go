// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name        string
		configBytes []byte
		expected    Config
		expectedErr bool
	}{
		{
			name:        "empty config falls back to defaults",
			configBytes: nil,
			expected:    DefaultConfig,
		},
		{
			name:        "partial config keeps remaining defaults",
			configBytes: []byte(`{"proposalCacheSize":64}`),
			expected: Config{
				AccountCacheSize:    DefaultConfig.AccountCacheSize,
				CheckpointCacheSize: DefaultConfig.CheckpointCacheSize,
				ProposalCacheSize:   64,
				PubSubEnabled:       true,
			},
		},
		{
			name:        "malformed config",
			configBytes: []byte(`{"accountCacheSize":`),
			expectedErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require := require.New(t)

			cfg, err := ParseConfig(tt.configBytes)
			if tt.expectedErr {
				require.Error(err)
				return
			}
			require.NoError(err)
			require.Equal(tt.expected, cfg)
		})
	}
}

func TestParamsVerify(t *testing.T) {
	tests := []struct {
		name        string
		params      Params
		expectedErr error
	}{
		{
			name:   "default params",
			params: DefaultParams(),
		},
		{
			name: "zero voting delay",
			params: Params{
				VotingPeriod: 10,
			},
			expectedErr: ErrZeroVotingDelay,
		},
		{
			name: "zero voting period",
			params: Params{
				VotingDelay: 1,
			},
			expectedErr: ErrZeroVotingPeriod,
		},
		{
			name: "zero quorum is allowed",
			params: Params{
				VotingDelay:  1,
				VotingPeriod: 1,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Verify()
			require.ErrorIs(t, err, tt.expectedErr)
		})
	}
}
