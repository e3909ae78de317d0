package wizard

import (
	"context"
	"sync"

	"cac-forms/internal/client"
)

// Submitter sends a payload to an endpoint. *client.Client implements it.
type Submitter interface {
	Submit(ctx context.Context, endpoint client.Endpoint, payload interface{}) client.Result
}

// Reducer is the pure transition function of one flow.
type Reducer[S any] func(S, Event) (S, *Effect)

// Controller owns one wizard instance. Reductions are serialized; the network
// call of a submit effect runs outside the lock, and the in-flight flag set by
// the reducer turns repeated submits into no-ops until it resolves.
type Controller[S any] struct {
	mu        sync.Mutex
	state     S
	reduce    Reducer[S]
	submitter Submitter
}

func NewController[S any](initial S, reduce Reducer[S], submitter Submitter) *Controller[S] {
	return &Controller[S]{state: initial, reduce: reduce, submitter: submitter}
}

func NewHelpController(submitter Submitter) *Controller[HelpState] {
	return NewController(NewHelp(), ReduceHelp, submitter)
}

func NewSupportController(submitter Submitter) *Controller[SupportState] {
	return NewController(NewSupport(), ReduceSupport, submitter)
}

func NewMailingController(submitter Submitter) *Controller[MailingState] {
	return NewController(NewMailing(), ReduceMailing, submitter)
}

// State returns the current state.
func (c *Controller[S]) State() S {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Dispatch applies ev and, when the reducer asks for a submission, sends it
// and applies the answer. It returns the state after all of that.
func (c *Controller[S]) Dispatch(ctx context.Context, ev Event) S {
	c.mu.Lock()
	next, effect := c.reduce(c.state, ev)
	c.state = next
	c.mu.Unlock()

	if effect == nil {
		return next
	}

	res := c.submitter.Submit(ctx, effect.Endpoint, effect.Payload)
	return c.Dispatch(ctx, Resolved{Result: res})
}
