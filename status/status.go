// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package status

import (
	"errors"
	"fmt"
)

var errUnknownStatus = errors.New("unknown proposal status")

// Status describes where a proposal is in its lifecycle. It is always
// derived from stored proposal data and the current height, never stored
// itself.
type Status uint8

const (
	// Pending is the initial status. The voting window has not opened yet.
	Pending Status = iota
	// Active proposals accept votes.
	Active
	// Canceled is terminal. The proposer withdrew the proposal.
	Canceled
	// Defeated proposals missed quorum or failed to out-vote opposition.
	Defeated
	// Succeeded proposals passed and may be queued.
	Succeeded
	// Queued proposals are scheduled and execute once their eta passes.
	Queued
	// Executed is terminal. The action batch ran to completion.
	Executed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "Pending"
	case Active:
		return "Active"
	case Canceled:
		return "Canceled"
	case Defeated:
		return "Defeated"
	case Succeeded:
		return "Succeeded"
	case Queued:
		return "Queued"
	case Executed:
		return "Executed"
	default:
		return "Invalid"
	}
}

// Terminal returns true once no operation can change the proposal again.
func (s Status) Terminal() bool {
	return s == Canceled || s == Executed
}

func (s Status) Valid() error {
	switch s {
	case Pending, Active, Canceled, Defeated, Succeeded, Queued, Executed:
		return nil
	default:
		return errUnknownStatus
	}
}

func (s Status) MarshalJSON() ([]byte, error) {
	if err := s.Valid(); err != nil {
		return nil, err
	}
	return []byte(`"` + s.String() + `"`), nil
}

func (s *Status) UnmarshalJSON(b []byte) error {
	switch string(b) {
	case `"Pending"`:
		*s = Pending
	case `"Active"`:
		*s = Active
	case `"Canceled"`:
		*s = Canceled
	case `"Defeated"`:
		*s = Defeated
	case `"Succeeded"`:
		*s = Succeeded
	case `"Queued"`:
		*s = Queued
	case `"Executed"`:
		*s = Executed
	case "null":
	default:
		return fmt.Errorf("%w: %s", errUnknownStatus, b)
	}
	return nil
}
