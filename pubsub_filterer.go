// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package governance

import (
	"github.com/luxfi/pubsub"

	"github.com/luxfi/governance/events"
)

var _ pubsub.Filterer = (*filterer)(nil)

type filterer struct {
	evt events.Event
}

func NewPubSubFilterer(evt events.Event) pubsub.Filterer {
	return &filterer{evt: evt}
}

// Notification is the wire form of a published event.
type Notification struct {
	Type  string       `json:"type"`
	Event events.Event `json:"event"`
}

// Apply the filter on the addresses the event touches.
func (f *filterer) Filter(filters []pubsub.Filter) ([]bool, interface{}) {
	resp := make([]bool, len(filters))
	for i, filter := range filters {
		for _, addr := range f.evt.Addresses() {
			if filter.Check(addr[:]) {
				resp[i] = true
				break
			}
		}
	}
	return resp, &Notification{
		Type:  f.evt.Type().String(),
		Event: f.evt,
	}
}
