package wallet

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/hostcall"
)

// ParamsFor returns a new parameter object for a text operation that takes
// one, or nil.
func ParamsFor(op string) Params {
	switch op {
	case hostcall.OpWalletNewAccount:
		return &NewAccountParams{}
	case hostcall.OpWalletGenerateAddresses:
		return &GenerateAddressesParams{}
	case hostcall.OpCheckerCheckAddresses:
		return &CheckAddressesParams{}
	case hostcall.OpWalletSpend:
		return &SpendParams{}
	case hostcall.OpWalletMove:
		return &MoveParams{}
	}
	return nil
}

// Call invokes a text operation with caller-provided JSON and returns the
// unwrapped result. For operations with a parameter object the JSON is
// validated and, when hints is non-nil, the hints must match the ones the
// parameters derive. Other text operations take input verbatim.
func (c *Client) Call(ctx context.Context, op string, input []byte, hints []uint32) (json.RawMessage, error) {
	var out json.RawMessage
	p := ParamsFor(op)
	if p == nil {
		if err := c.c.text(ctx, op, input, hints, &out); err != nil {
			return nil, err
		}
		return out, nil
	}

	if err := c.c.validator.Decode(input, p); err != nil {
		return nil, err
	}
	if hints != nil && !slices.Equal(hints, p.Hints()) {
		return nil, &errors.ValidationError{
			Field: "hints",
			Err:   fmt.Errorf("count hints %v do not match parameters %v", hints, p.Hints()),
		}
	}
	if err := c.c.params(ctx, op, p, &out); err != nil {
		return nil, err
	}
	return out, nil
}
