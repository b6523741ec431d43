package builtin

import (
	"context"
	"errors"
	"log/slog"

	"github.com/Emurgo/node-cardano-wallet/buffer"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// Name identifies the builtin engine.
const Name = "builtin"

// Engine is the pure-Go engine. It is stateless and safe for concurrent use.
type Engine struct {
	logger  *slog.Logger
	entries map[string]ports.EntryPoint
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger for rejected engine calls.
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates the builtin engine.
func New(opts ...Option) *Engine {
	e := &Engine{logger: slog.Default()}
	for _, opt := range opts {
		opt(e)
	}
	e.entries = map[string]ports.EntryPoint{
		hostcall.EntryWalletFromEnhancedEntropy: e.fromEnhancedEntropy,
		hostcall.EntryWalletFromSeed:            e.fromSeed,
		hostcall.EntryWalletToPublic:            e.toPublic,
		hostcall.EntryWalletDerivePrivate:       e.derivePrivate,
		hostcall.EntryWalletDerivePublic:        e.derivePublic,
		hostcall.EntryWalletSign:                e.sign,
		hostcall.EntryEncryptWithPassword:       e.encrypt,
		hostcall.EntryDecryptWithPassword:       e.decrypt,
	}
	return e
}

// Name implements ports.Engine.
func (e *Engine) Name() string {
	return Name
}

// EntryPoint implements ports.Engine.
func (e *Engine) EntryPoint(name string) (ports.EntryPoint, bool) {
	ep, ok := e.entries[name]
	return ep, ok
}

// Close implements ports.Engine.
func (e *Engine) Close(context.Context) error {
	return nil
}

func (e *Engine) fromEnhancedEntropy(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 2)
	if !ok {
		return ports.StatusFailure, nil
	}
	xprv, err := XPrvFromEnhancedEntropy(in[0], in[1])
	return e.reply(ctx, hostcall.EntryWalletFromEnhancedEntropy, args.Output, xprv, err)
}

func (e *Engine) fromSeed(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 1)
	if !ok {
		return ports.StatusFailure, nil
	}
	xprv, err := XPrvFromSeed(in[0])
	return e.reply(ctx, hostcall.EntryWalletFromSeed, args.Output, xprv, err)
}

func (e *Engine) toPublic(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 1)
	if !ok {
		return ports.StatusFailure, nil
	}
	xpub, err := ToPublic(in[0])
	return e.reply(ctx, hostcall.EntryWalletToPublic, args.Output, xpub, err)
}

func (e *Engine) derivePrivate(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 1)
	if !ok {
		return ports.StatusFailure, nil
	}
	child, err := DerivePrivate(in[0], args.Index)
	return e.reply(ctx, hostcall.EntryWalletDerivePrivate, args.Output, child, err)
}

func (e *Engine) derivePublic(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 1)
	if !ok {
		return ports.StatusFailure, nil
	}
	child, err := DerivePublic(in[0], args.Index)
	if errors.Is(err, errInvalidPoint) || errors.Is(err, errHardenedPublic) {
		e.logger.DebugContext(ctx, "public derivation impossible", "index", args.Index, "error", err)
		return ports.StatusDerivationImpossible, nil
	}
	return e.reply(ctx, hostcall.EntryWalletDerivePublic, args.Output, child, err)
}

func (e *Engine) sign(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 2)
	if !ok {
		return ports.StatusFailure, nil
	}
	sig, err := Sign(in[0], in[1])
	return e.reply(ctx, hostcall.EntryWalletSign, args.Output, sig, err)
}

func (e *Engine) encrypt(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 4)
	if !ok {
		return ports.StatusFailure, nil
	}
	sealed, err := Encrypt(in[0], in[1], in[2], in[3])
	return e.reply(ctx, hostcall.EntryEncryptWithPassword, args.Output, sealed, err)
}

func (e *Engine) decrypt(ctx context.Context, args ports.Args) (int32, error) {
	in, ok := inputs(args, 2)
	if !ok {
		return ports.StatusFailure, nil
	}
	plain, err := Decrypt(in[0], in[1])
	return e.reply(ctx, hostcall.EntryDecryptWithPassword, args.Output, plain, err)
}

// reply writes data to out, or turns err into a failure status.
func (e *Engine) reply(ctx context.Context, entry string, out buffer.MutView, data []byte, err error) (int32, error) {
	if err != nil {
		e.logger.DebugContext(ctx, "engine call rejected", "entry", entry, "error", err)
		return ports.StatusFailure, nil
	}
	n, err := out.CopyFrom(data)
	if err != nil {
		e.logger.DebugContext(ctx, "engine output does not fit", "entry", entry, "error", err)
		return ports.StatusFailure, nil
	}
	return int32(n), nil
}

func inputs(args ports.Args, n int) ([][]byte, bool) {
	if len(args.Inputs) != n {
		return nil, false
	}
	in := make([][]byte, n)
	for i, v := range args.Inputs {
		in[i] = v.Bytes()
	}
	return in, true
}
