package wallet

import (
	"context"
	"encoding/hex"
	"encoding/json"

	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// RandomAddressChecker finds the legacy random addresses owned by a root key.
type RandomAddressChecker struct {
	c *caller
}

// New creates a checker from a root XPrv.
func (r *RandomAddressChecker) New(ctx context.Context, xprv []byte) (json.RawMessage, error) {
	var checker json.RawMessage
	if err := r.c.quoted(ctx, hostcall.OpCheckerNew, hex.EncodeToString(xprv), &checker); err != nil {
		return nil, err
	}
	return checker, nil
}

// NewFromMnemonics creates a checker from Daedalus mnemonics.
func (r *RandomAddressChecker) NewFromMnemonics(ctx context.Context, mnemonics string) (json.RawMessage, error) {
	if err := r.c.validator.Var("mnemonics", mnemonics, "required,mnemonic"); err != nil {
		return nil, err
	}
	var checker json.RawMessage
	if err := r.c.quoted(ctx, hostcall.OpCheckerNewFromMnemonics, mnemonics, &checker); err != nil {
		return nil, err
	}
	return checker, nil
}

// CheckAddresses returns the addresses that belong to checker.
func (r *RandomAddressChecker) CheckAddresses(ctx context.Context, checker json.RawMessage, addresses []string) ([]CheckedAddress, error) {
	var found []CheckedAddress
	err := r.c.params(ctx, hostcall.OpCheckerCheckAddresses, CheckAddressesParams{
		Checker:   checker,
		Addresses: addresses,
	}, &found)
	if err != nil {
		return nil, err
	}
	return found, nil
}
