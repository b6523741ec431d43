package wallet

import (
	"context"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// PasswordProtect seals data under a password.
type PasswordProtect struct {
	c *caller
}

// Encrypt returns salt ‖ nonce ‖ tag ‖ ciphertext.
func (p *PasswordProtect) Encrypt(ctx context.Context, password, salt, nonce, data []byte) ([]byte, error) {
	return p.c.bytes(ctx, hostcall.OpEncryptWithPassword, entities.Request{
		Inputs: [][]byte{password, salt, nonce, data},
	})
}

// Decrypt opens an envelope produced by Encrypt.
func (p *PasswordProtect) Decrypt(ctx context.Context, password, envelope []byte) ([]byte, error) {
	return p.c.bytes(ctx, hostcall.OpDecryptWithPassword, entities.Request{
		Inputs: [][]byte{password, envelope},
	})
}
