package wallet

import (
	"context"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// HdWallet exposes the Ed25519-BIP32 key operations.
// Keys travel as raw bytes: 96-byte XPrv, 64-byte XPub.
type HdWallet struct {
	c *caller
}

// FromEnhancedEntropy derives a root XPrv from BIP39 entropy and a password.
func (h *HdWallet) FromEnhancedEntropy(ctx context.Context, entropy []byte, password string) ([]byte, error) {
	return h.c.bytes(ctx, hostcall.OpHdWalletFromEnhancedEntropy, entities.Request{
		Inputs: [][]byte{entropy, []byte(password)},
	})
}

// FromSeed derives a root XPrv from a 32-byte legacy seed.
func (h *HdWallet) FromSeed(ctx context.Context, seed []byte) ([]byte, error) {
	return h.c.bytes(ctx, hostcall.OpHdWalletFromSeed, entities.Request{Inputs: [][]byte{seed}})
}

// ToPublic returns the XPub of xprv.
func (h *HdWallet) ToPublic(ctx context.Context, xprv []byte) ([]byte, error) {
	return h.c.bytes(ctx, hostcall.OpHdWalletToPublic, entities.Request{Inputs: [][]byte{xprv}})
}

// DerivePrivate derives the child XPrv at index. Indices from
// entities.HardenedIndex up are hardened.
func (h *HdWallet) DerivePrivate(ctx context.Context, xprv []byte, index uint32) ([]byte, error) {
	return h.c.bytes(ctx, hostcall.OpHdWalletDerivePrivate, entities.Request{Inputs: [][]byte{xprv}, Index: index})
}

// DerivePublic derives the child XPub at a soft index.
func (h *HdWallet) DerivePublic(ctx context.Context, xpub []byte, index uint32) ([]byte, error) {
	return h.c.bytes(ctx, hostcall.OpHdWalletDerivePublic, entities.Request{Inputs: [][]byte{xpub}, Index: index})
}

// Sign returns the 64-byte signature of msg.
func (h *HdWallet) Sign(ctx context.Context, xprv, msg []byte) ([]byte, error) {
	return h.c.bytes(ctx, hostcall.OpHdWalletSign, entities.Request{Inputs: [][]byte{xprv, msg}})
}
