package hostcall

import (
	"bytes"
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"math"
	"unicode/utf8"

	"github.com/Emurgo/node-cardano-wallet/buffer"
	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
)

// Operation is an operation contract bound to its size policy.
type Operation struct {
	entities.OperationContract
	Policy SizePolicy
}

// Bridge runs single engine calls under the call protocol.
// A Bridge holds no per-call state and is safe for concurrent use as long
// as its engine is.
type Bridge struct {
	engine        ports.Engine
	logger        *slog.Logger
	reporter      ports.FaultReporter
	maxCapacity   uint64
	maxTextLength int
	strictUTF8    bool
}

// Option configures a Bridge.
type Option func(*Bridge)

// WithLogger sets the logger used for failed calls and, unless a reporter is
// set, for fault reports.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Bridge) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithFaultReporter sets the policy applied to contained faults.
func WithFaultReporter(r ports.FaultReporter) Option {
	return func(b *Bridge) {
		b.reporter = r
	}
}

// WithMaxCapacity bounds the output region of a single call.
func WithMaxCapacity(n uint64) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.maxCapacity = min(n, math.MaxInt32)
		}
	}
}

// WithMaxTextLength bounds text results.
func WithMaxTextLength(n int) Option {
	return func(b *Bridge) {
		if n > 0 {
			b.maxTextLength = n
		}
	}
}

// WithStrictUTF8 rejects text results that are not valid UTF-8.
func WithStrictUTF8(strict bool) Option {
	return func(b *Bridge) {
		b.strictUTF8 = strict
	}
}

// NewBridge creates a bridge over the given engine.
func NewBridge(engine ports.Engine, opts ...Option) *Bridge {
	b := &Bridge{
		engine:        engine,
		logger:        slog.Default(),
		maxCapacity:   entities.DefaultMaxCapacity,
		maxTextLength: entities.DefaultMaxTextLength,
	}
	for _, opt := range opts {
		opt(b)
	}
	if b.reporter == nil {
		b.reporter = NewSlogFaultReporter(b.logger)
	}
	return b
}

// Engine returns the engine the bridge calls into.
func (b *Bridge) Engine() ports.Engine {
	return b.engine
}

// Call performs one operation. It returns either a complete result or an
// error, never a partial result.
func (b *Bridge) Call(ctx context.Context, op Operation, req entities.Request) (entities.Result, error) {
	res, err := b.call(ctx, op, req)
	if err != nil {
		b.logger.DebugContext(ctx, "bridge call failed",
			"operation", op.Name,
			"kind", errors.KindOf(err),
			"error", err,
		)
	}
	return res, err
}

func (b *Bridge) call(ctx context.Context, op Operation, req entities.Request) (entities.Result, error) {
	if err := validateRequest(op, req); err != nil {
		return entities.Result{}, err
	}

	capacity, err := b.capacity(op, req)
	if err != nil {
		return entities.Result{}, err
	}

	entry, ok := b.engine.EntryPoint(op.Entry)
	if !ok {
		return entities.Result{}, &errors.NativeFailure{
			Operation: op.Name,
			Status:    ports.StatusFailure,
			Message:   fmt.Sprintf("entry point %q not provided by engine %q", op.Entry, b.engine.Name()),
		}
	}

	if err := ctx.Err(); err != nil {
		return entities.Result{}, err
	}

	out := make([]byte, capacity)
	var (
		written int32
		callErr error
	)
	err = buffer.With(func(s *buffer.Scope) error {
		args := ports.Args{Index: req.Index, Inputs: make([]buffer.View, 0, len(req.Inputs))}
		for i, in := range req.Inputs {
			v, err := s.Borrow(in)
			if err != nil {
				return fmt.Errorf("borrow input %s: %w", op.Inputs[i].Name, err)
			}
			args.Inputs = append(args.Inputs, v)
		}
		o, err := s.BorrowMut(out)
		if err != nil {
			return fmt.Errorf("borrow output: %w", err)
		}
		args.Output = o

		written, callErr = Protect(func() (int32, error) {
			return entry(ctx, args)
		})
		return nil
	})
	if err != nil {
		return entities.Result{}, err
	}
	if callErr != nil {
		return entities.Result{}, b.fault(ctx, op, callErr)
	}

	if err := checkWritten(op, req, written, capacity); err != nil {
		return entities.Result{}, err
	}
	return b.encode(op, out, int(written), capacity)
}

func validateRequest(op Operation, req entities.Request) error {
	if len(req.Inputs) != len(op.Inputs) {
		return &errors.InputSizeError{
			Operation: op.Name,
			Input:     "inputs",
			Got:       len(req.Inputs),
			Want:      len(op.Inputs),
			Reason:    fmt.Sprintf("expected %d inputs, got %d", len(op.Inputs), len(req.Inputs)),
		}
	}
	for i, spec := range op.Inputs {
		n := len(req.Inputs[i])
		if spec.Exact > 0 && n != spec.Exact {
			return &errors.InputSizeError{Operation: op.Name, Input: spec.Name, Got: n, Want: spec.Exact}
		}
		if spec.AtLeast > 0 && n < spec.AtLeast {
			return &errors.InputSizeError{Operation: op.Name, Input: spec.Name, Got: n, AtLeast: spec.AtLeast}
		}
	}
	if op.Index == entities.IndexSoftOnly && req.Index >= entities.HardenedIndex {
		return &errors.DerivationImpossible{
			Operation: op.Name,
			Index:     req.Index,
			Reason:    "Cannot do public derivation with hard index",
		}
	}
	if len(req.Hints) != len(op.Hints) {
		return &errors.InputSizeError{
			Operation: op.Name,
			Input:     "hints",
			Got:       len(req.Hints),
			Want:      len(op.Hints),
			Reason:    fmt.Sprintf("expected count hints %v, got %d values", op.Hints, len(req.Hints)),
		}
	}
	return nil
}

func (b *Bridge) capacity(op Operation, req entities.Request) (uint64, error) {
	if op.Policy == nil {
		return 0, &errors.InputSizeError{Operation: op.Name, Input: "output", Reason: "operation has no size policy"}
	}
	capacity, err := op.Policy.Capacity(req)
	if err != nil {
		var sizeErr *errors.InputSizeError
		if stdErrors.As(err, &sizeErr) && sizeErr.Operation == "" {
			sizeErr.Operation = op.Name
		}
		return 0, err
	}
	if capacity == 0 {
		return 0, &errors.InputSizeError{Operation: op.Name, Input: "output", Reason: "output capacity is zero"}
	}
	if capacity > b.maxCapacity {
		return 0, &errors.InputSizeError{
			Operation: op.Name,
			Input:     "output",
			Reason:    fmt.Sprintf("output capacity %d exceeds limit %d", capacity, b.maxCapacity),
		}
	}
	return capacity, nil
}

func (b *Bridge) fault(ctx context.Context, op Operation, err error) error {
	failure := &errors.NativeFailure{Operation: op.Name, Status: ports.StatusFailure, Fault: err}
	var fe *FaultError
	if stdErrors.As(err, &fe) {
		failure.Stack = fe.Stack
	}
	b.reporter.ReportFault(ctx, op.Name, err, failure.Stack)
	return failure
}

func checkWritten(op Operation, req entities.Request, written int32, capacity uint64) error {
	switch {
	case written == ports.StatusDerivationImpossible:
		return &errors.DerivationImpossible{Operation: op.Name, Index: req.Index}
	case written <= 0:
		return &errors.NativeFailure{Operation: op.Name, Status: written}
	case uint64(written) > capacity:
		return &errors.CapacityExceeded{Operation: op.Name, Written: int64(written), Capacity: int64(capacity)}
	case op.ExactOutput && uint64(written) != capacity:
		return &errors.NativeFailure{
			Operation: op.Name,
			Status:    written,
			Message:   fmt.Sprintf("Size mismatch %d should be %d", written, capacity),
		}
	}
	return nil
}

func (b *Bridge) encode(op Operation, out []byte, written int, capacity uint64) (entities.Result, error) {
	data := out[:written]
	if op.Output == entities.OutputText {
		if written > b.maxTextLength {
			return entities.Result{}, &errors.EncodingError{
				Operation: op.Name,
				Reason:    fmt.Sprintf("text of %d bytes exceeds limit %d", written, b.maxTextLength),
			}
		}
		if b.strictUTF8 && !utf8.Valid(data) {
			return entities.Result{}, &errors.EncodingError{Operation: op.Name, Reason: "invalid UTF-8"}
		}
		return entities.Result{Encoding: entities.OutputText, Text: string(data)}, nil
	}
	if uint64(written) < capacity {
		data = bytes.Clone(data)
	}
	return entities.Result{Encoding: entities.OutputBytes, Bytes: data}, nil
}
