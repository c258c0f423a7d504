// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package dispatch

import (
	"context"
	"errors"
	"fmt"

	"github.com/luxfi/ids"

	"github.com/luxfi/governance/state"
	"github.com/luxfi/governance/txs"
)

var (
	_ Dispatcher = (*Registry)(nil)
	_ Handler    = HandlerFunc(nil)

	// ErrUnknownTarget is returned when an action names a target no
	// handler is registered for.
	ErrUnknownTarget = errors.New("no handler registered for action target")

	errDuplicateTarget = errors.New("handler already registered for target")
)

// Handler applies one action against the in-flight state view. Returning
// an error reverts the entire batch the action is part of.
type Handler interface {
	HandleAction(ctx context.Context, chain state.Chain, action *txs.Action) error
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, chain state.Chain, action *txs.Action) error

func (f HandlerFunc) HandleAction(ctx context.Context, chain state.Chain, action *txs.Action) error {
	return f(ctx, chain, action)
}

// Dispatcher routes actions of an executing proposal to whatever the
// host wired up for their targets. The core depends on the routing, not
// on what the targets do.
type Dispatcher interface {
	Dispatch(ctx context.Context, chain state.Chain, action *txs.Action) error
}

// Registry is a static target-to-handler table.
type Registry struct {
	handlers map[ids.ShortID]Handler
}

func NewRegistry() *Registry {
	return &Registry{
		handlers: make(map[ids.ShortID]Handler),
	}
}

func (r *Registry) RegisterHandler(target ids.ShortID, handler Handler) error {
	if _, ok := r.handlers[target]; ok {
		return fmt.Errorf("%w: %s", errDuplicateTarget, target)
	}
	r.handlers[target] = handler
	return nil
}

func (r *Registry) Dispatch(ctx context.Context, chain state.Chain, action *txs.Action) error {
	handler, ok := r.handlers[action.Target]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTarget, action.Target)
	}
	return handler.HandleAction(ctx, chain, action)
}
