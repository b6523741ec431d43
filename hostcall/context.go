package hostcall

import "context"

// CallContext is the context.Context seen by middleware and the bridge.
// It carries the name of the invoked operation.
type CallContext interface {
	context.Context

	// OperationName returns the name of the invoked operation.
	OperationName() string
}

type callContext struct {
	context.Context
	name string
}

// NewCallContext creates a CallContext wrapping ctx.
func NewCallContext(ctx context.Context, name string) CallContext {
	return &callContext{Context: ctx, name: name}
}

func (c *callContext) OperationName() string {
	return c.name
}

// CallContextFrom returns ctx when it already is a CallContext for the same
// operation, and a new CallContext otherwise.
func CallContextFrom(ctx context.Context, name string) CallContext {
	if cc, ok := ctx.(CallContext); ok && cc.OperationName() == name {
		return cc
	}
	return NewCallContext(ctx, name)
}

// operationName reports the operation carried by ctx, or "unknown".
func operationName(ctx context.Context) string {
	if cc, ok := ctx.(CallContext); ok {
		return cc.OperationName()
	}
	return "unknown"
}
