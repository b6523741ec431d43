// Package wazero runs the wallet engine compiled to WebAssembly (the
// wallet_wasm crate) inside the wazero runtime and exposes its exports as
// ports.EntryPoint values.
//
// Each call copies its inputs into guest linear memory through the guest's
// alloc/dealloc exports, invokes the export with C-style pointer and length
// arguments, and copies back at most the output capacity:
//
//	engine, err := wazero.NewFromFile(ctx, "wallet_wasm.wasm",
//	    wazero.WithMemoryLimitPages(1024),
//	    wazero.WithCompilationCacheDir(cacheDir),
//	)
//	if err != nil {
//	    return err
//	}
//	defer engine.Close(ctx)
//	bridge := hostcall.NewBridge(engine)
//
// # Status mapping
//
// The guest exports do not share one return convention. The engine maps
// them onto the uniform ports status convention:
//
//   - exports without a result report the full output capacity,
//   - wallet_from_enhanced_entropy reports the capacity on 0 and failure otherwise,
//   - wallet_derive_public reports ports.StatusDerivationImpossible on false,
//   - every other export already returns a length or a non-positive status.
//
// A trap discards the guest instance; the next call instantiates a fresh one.
// Guest instances are not reentrant, so calls are serialised.
package wazero
