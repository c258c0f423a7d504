// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusString(t *testing.T) {
	require := require.New(t)

	require.Equal("Pending", Pending.String())
	require.Equal("Active", Active.String())
	require.Equal("Canceled", Canceled.String())
	require.Equal("Defeated", Defeated.String())
	require.Equal("Succeeded", Succeeded.String())
	require.Equal("Queued", Queued.String())
	require.Equal("Executed", Executed.String())
	require.Equal("Invalid", Status(200).String())
}

func TestStatusTerminal(t *testing.T) {
	require := require.New(t)

	require.True(Canceled.Terminal())
	require.True(Executed.Terminal())
	require.False(Pending.Terminal())
	require.False(Active.Terminal())
	require.False(Defeated.Terminal())
	require.False(Succeeded.Terminal())
	require.False(Queued.Terminal())
}

func TestStatusJSON(t *testing.T) {
	for _, s := range []Status{
		Pending,
		Active,
		Canceled,
		Defeated,
		Succeeded,
		Queued,
		Executed,
	} {
		t.Run(s.String(), func(t *testing.T) {
			require := require.New(t)

			b, err := json.Marshal(s)
			require.NoError(err)

			var parsed Status
			require.NoError(json.Unmarshal(b, &parsed))
			require.Equal(s, parsed)
		})
	}

	require := require.New(t)
	_, err := json.Marshal(Status(200))
	require.ErrorIs(err, errUnknownStatus)

	var parsed Status
	require.ErrorIs(json.Unmarshal([]byte(`"Nope"`), &parsed), errUnknownStatus)
}
