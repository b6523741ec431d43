package hostcall

import (
	"context"
	"log/slog"
	"time"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
)

// Handler serves one operation.
type Handler func(ctx context.Context, req entities.Request) (entities.Result, error)

// Middleware wraps a Handler to add cross-cutting behavior.
// Middleware executes in FIFO order (first registered wraps first, onion model).
type Middleware func(next Handler) Handler

// FaultRecoveryMiddleware converts a panic raised anywhere in the rest of the
// chain into a NativeFailure. The bridge already contains engine faults;
// this covers middleware and handlers outside the engine call.
func FaultRecoveryMiddleware() Middleware {
	return func(next Handler) Handler {
		return func(ctx context.Context, req entities.Request) (res entities.Result, err error) {
			res, err = Protect(func() (entities.Result, error) {
				return next(ctx, req)
			})
			if fe, ok := err.(*FaultError); ok {
				err = &errors.NativeFailure{
					Operation: operationName(ctx),
					Status:    ports.StatusFailure,
					Fault:     fe,
					Stack:     fe.Stack,
				}
			}
			return res, err
		}
	}
}

// LoggingMiddleware logs each invocation and its outcome at debug level.
// Failures are returned to the caller and contained faults go to the bridge's
// FaultReporter, so nothing here is logged above debug.
func LoggingMiddleware(logger *slog.Logger) Middleware {
	if logger == nil {
		logger = slog.Default()
	}
	return func(next Handler) Handler {
		return func(ctx context.Context, req entities.Request) (entities.Result, error) {
			name := operationName(ctx)
			start := time.Now()
			logger.DebugContext(ctx, "invoking operation", "operation", name, "inputs", len(req.Inputs))

			res, err := next(ctx, req)
			if err != nil {
				logger.DebugContext(ctx, "operation failed",
					"operation", name,
					"kind", errors.KindOf(err),
					"error", err,
					"duration", time.Since(start),
				)
				return res, err
			}
			logger.DebugContext(ctx, "operation completed",
				"operation", name,
				"bytes", res.Len(),
				"duration", time.Since(start),
			)
			return res, nil
		}
	}
}
