package hostcall

import (
	"context"
	"fmt"
	"sort"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
)

// Table is an immutable collection of operations served by one bridge.
// Once created via NewTable, operations cannot be added or removed, so
// lookups are lock-free and the table is safe for concurrent use.
type Table struct {
	ops      map[string]Operation
	handlers map[string]Handler
	names    []string
}

// TableOption is a functional option for configuring a Table.
type TableOption func(*tableBuilder)

type tableBuilder struct {
	ops        map[string]Operation
	middleware []Middleware
	errors     []error
}

// NewTable creates an immutable Table over bridge.
// Returns an error if an operation name is registered twice.
//
//	table, err := NewTable(bridge,
//	    WithMiddleware(FaultRecoveryMiddleware(), LoggingMiddleware(logger)),
//	    WithCatalog(),
//	)
func NewTable(bridge *Bridge, opts ...TableOption) (*Table, error) {
	if bridge == nil {
		return nil, fmt.Errorf("bridge cannot be nil")
	}
	b := &tableBuilder{ops: make(map[string]Operation)}
	for _, opt := range opts {
		opt(b)
	}
	if len(b.errors) > 0 {
		return nil, b.errors[0]
	}

	names := make([]string, 0, len(b.ops))
	for name := range b.ops {
		names = append(names, name)
	}
	sort.Strings(names)

	handlers := make(map[string]Handler, len(b.ops))
	for name, op := range b.ops {
		op := op
		var h Handler = func(ctx context.Context, req entities.Request) (entities.Result, error) {
			return bridge.Call(ctx, op, req)
		}
		// Reverse order so the first middleware wraps outermost.
		for i := len(b.middleware) - 1; i >= 0; i-- {
			h = b.middleware[i](h)
		}
		handlers[name] = h
	}

	return &Table{ops: b.ops, handlers: handlers, names: names}, nil
}

// Invoke dispatches an operation by name.
func (t *Table) Invoke(ctx context.Context, name string, req entities.Request) (entities.Result, error) {
	h, ok := t.handlers[name]
	if !ok {
		return entities.Result{}, &errors.NotFoundError{Name: name}
	}
	return h(CallContextFrom(ctx, name), req)
}

// Names returns the sorted operation names.
func (t *Table) Names() []string {
	result := make([]string, len(t.names))
	copy(result, t.names)
	return result
}

// Operation returns the registered operation with the given name.
func (t *Table) Operation(name string) (Operation, bool) {
	op, ok := t.ops[name]
	return op, ok
}

// Describe returns the registered operations sorted by name.
func (t *Table) Describe() []Operation {
	result := make([]Operation, 0, len(t.names))
	for _, name := range t.names {
		result = append(result, t.ops[name])
	}
	return result
}

func (b *tableBuilder) addOperation(op Operation) error {
	if op.Name == "" {
		return fmt.Errorf("operation name cannot be empty")
	}
	if op.Entry == "" {
		return fmt.Errorf("operation %q has no entry point", op.Name)
	}
	if op.Policy == nil {
		return fmt.Errorf("operation %q has no size policy", op.Name)
	}
	if _, exists := b.ops[op.Name]; exists {
		return fmt.Errorf("duplicate operation name: %q", op.Name)
	}
	b.ops[op.Name] = op
	return nil
}

// WithOperations registers operations.
func WithOperations(ops ...Operation) TableOption {
	return func(b *tableBuilder) {
		for _, op := range ops {
			if err := b.addOperation(op); err != nil {
				b.errors = append(b.errors, err)
			}
		}
	}
}

// WithCatalog registers every operation of Catalog.
func WithCatalog() TableOption {
	return WithOperations(Catalog()...)
}

// WithMiddleware adds middleware to the table.
// Middleware executes in FIFO order (first added wraps first).
func WithMiddleware(mw ...Middleware) TableOption {
	return func(b *tableBuilder) {
		b.middleware = append(b.middleware, mw...)
	}
}
