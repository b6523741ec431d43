// Package builtin provides a pure-Go wallet engine for the key and password
// entry points: Ed25519-BIP32 key generation, derivation (derivation scheme
// V2) and signing, and ChaCha20-Poly1305 password envelopes.
//
// The engine follows the same contract as a native engine: inputs are read
// from borrowed views, at most Output.Len() bytes are written and the
// written length (or a status) is returned. Wallet and address checker entry
// points are only provided by the wasm engine.
package builtin
