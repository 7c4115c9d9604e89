package operator

import (
	"context"
)

// Action is a unit of work serialized through the operator queue.
type Action interface {
	Perform(ctx context.Context) error
}

// ActionFunc adapts a function to the Action interface.
type ActionFunc func(ctx context.Context) error

func (f ActionFunc) Perform(ctx context.Context) error {
	return f(ctx)
}

// Operator is the worker that processes items from the queue.
type Operator struct {
	queue chan ActionItem
}

func NewOperator(queue chan ActionItem) *Operator {
	return &Operator{
		queue: queue,
	}
}

// Run listens to the queue and processes items. Exits when the queue is
// closed. Items whose context is already cancelled are not performed:
// their caller has stopped waiting and must not see the mutation applied.
func (o *Operator) Run() {
	for item := range o.queue {
		if err := item.ctx.Err(); err != nil {
			item.response <- ActionItemResponse{err: err}
			continue
		}
		item.response <- ActionItemResponse{err: item.action.Perform(item.ctx)}
	}
}

type ActionItem struct {
	ctx      context.Context
	action   Action
	response chan ActionItemResponse
}

type ActionItemResponse struct {
	err error
}
