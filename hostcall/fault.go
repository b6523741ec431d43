package hostcall

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// FaultError is a panic raised inside a protected call, converted to an error.
type FaultError struct {
	// Value is the recovered panic value.
	Value any
	// Message describes Value.
	Message string
	// Stack is the goroutine stack at the time of recovery.
	Stack []byte
}

func (e *FaultError) Error() string {
	return e.Message
}

// Unwrap exposes the panic value when it is an error.
func (e *FaultError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}

// Protect runs fn and converts any panic it raises into a *FaultError.
// Errors returned by fn pass through unchanged.
func Protect[T any](fn func() (T, error)) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			result = zero
			err = &FaultError{Value: r, Message: describePanic(r), Stack: debug.Stack()}
		}
	}()
	return fn()
}

func describePanic(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case error:
		return x.Error()
	default:
		return fmt.Sprintf("Error: %v", x)
	}
}

// SlogFaultReporter logs contained faults with their stack.
type SlogFaultReporter struct {
	logger *slog.Logger
}

// NewSlogFaultReporter creates a reporter. A nil logger uses slog.Default().
func NewSlogFaultReporter(logger *slog.Logger) *SlogFaultReporter {
	return &SlogFaultReporter{logger: logger}
}

// ReportFault implements ports.FaultReporter.
func (r *SlogFaultReporter) ReportFault(ctx context.Context, operation string, fault error, stack []byte) {
	logger := r.logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.ErrorContext(ctx, "engine fault contained",
		"operation", operation,
		"error", fault,
		"stack", string(stack),
	)
}

// SilentFaultReporter drops every fault report.
type SilentFaultReporter struct{}

// ReportFault implements ports.FaultReporter.
func (SilentFaultReporter) ReportFault(context.Context, string, error, []byte) {}
