package wallet

import (
	"context"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/mr-tron/base58"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// Wallet builds BIP44 and Daedalus wallets, their addresses and transactions.
// Wallet and account objects are opaque JSON produced by the engine.
type Wallet struct {
	c *caller
}

// FromMasterKey creates a wallet from a 96-byte root XPrv.
func (w *Wallet) FromMasterKey(ctx context.Context, xprv []byte) (json.RawMessage, error) {
	res, err := w.c.invoker.Invoke(ctx, hostcall.OpWalletFromMasterKey, entities.Request{Inputs: [][]byte{xprv}})
	if err != nil {
		return nil, err
	}
	var wallet json.RawMessage
	if err := decodeEnvelope(hostcall.OpWalletFromMasterKey, res.Text, &wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// FromDaedalusMnemonic creates a Daedalus wallet.
func (w *Wallet) FromDaedalusMnemonic(ctx context.Context, mnemonic string) (json.RawMessage, error) {
	if err := w.c.validator.Var("mnemonic", mnemonic, "required,mnemonic"); err != nil {
		return nil, err
	}
	var wallet json.RawMessage
	if err := w.c.quoted(ctx, hostcall.OpWalletFromDaedalusMnemonic, mnemonic, &wallet); err != nil {
		return nil, err
	}
	return wallet, nil
}

// NewAccount creates the account with the given index.
func (w *Wallet) NewAccount(ctx context.Context, wallet json.RawMessage, account uint32) (json.RawMessage, error) {
	var out json.RawMessage
	if err := w.c.params(ctx, hostcall.OpWalletNewAccount, NewAccountParams{Wallet: wallet, Account: account}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GenerateAddresses returns the account addresses at indices.
func (w *Wallet) GenerateAddresses(ctx context.Context, account json.RawMessage, kind AddressType, indices []uint32) ([]string, error) {
	var addresses []string
	err := w.c.params(ctx, hostcall.OpWalletGenerateAddresses, GenerateAddressesParams{
		Account:     account,
		AddressType: kind,
		Indices:     indices,
	}, &addresses)
	if err != nil {
		return nil, err
	}
	return addresses, nil
}

// CheckAddress reports whether a base58 address is a valid Cardano
// extended address.
func (w *Wallet) CheckAddress(ctx context.Context, address string) (bool, error) {
	raw, err := base58.Decode(address)
	if err != nil || len(raw) == 0 {
		return false, &errors.ValidationError{Field: "address", Err: fmt.Errorf("not a base58 address: %q", address)}
	}
	var valid bool
	if err := w.c.quoted(ctx, hostcall.OpWalletCheckAddress, hex.EncodeToString(raw), &valid); err != nil {
		return false, err
	}
	return valid, nil
}

// Spend builds and signs a transaction.
func (w *Wallet) Spend(ctx context.Context, p SpendParams) (*Transaction, error) {
	var tx Transaction
	if err := w.c.params(ctx, hostcall.OpWalletSpend, p, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}

// Move sends every input of a Daedalus wallet to one address.
func (w *Wallet) Move(ctx context.Context, p MoveParams) (*Transaction, error) {
	var tx Transaction
	if err := w.c.params(ctx, hostcall.OpWalletMove, p, &tx); err != nil {
		return nil, err
	}
	return &tx, nil
}
