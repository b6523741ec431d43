package wallet

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Emurgo/node-cardano-wallet/application/validation"
	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
)

// Client groups the four façades over one invoker.
type Client struct {
	HdWallet        *HdWallet
	Wallet          *Wallet
	Checker         *RandomAddressChecker
	PasswordProtect *PasswordProtect

	c *caller
}

// New creates the façades over invoker.
func New(invoker ports.Invoker, v ports.ParamsValidator) *Client {
	if v == nil {
		v = validation.New()
	}
	c := &caller{invoker: invoker, validator: v}
	return &Client{
		HdWallet:        &HdWallet{c: c},
		Wallet:          &Wallet{c: c},
		Checker:         &RandomAddressChecker{c: c},
		PasswordProtect: &PasswordProtect{c: c},
		c:               c,
	}
}

type caller struct {
	invoker   ports.Invoker
	validator ports.ParamsValidator
}

func (c *caller) bytes(ctx context.Context, op string, req entities.Request) ([]byte, error) {
	res, err := c.invoker.Invoke(ctx, op, req)
	if err != nil {
		return nil, err
	}
	return res.Bytes, nil
}

// text invokes op with a single text input and unwraps the envelope into out.
func (c *caller) text(ctx context.Context, op string, input []byte, hints []uint32, out any) error {
	res, err := c.invoker.Invoke(ctx, op, entities.Request{Inputs: [][]byte{input}, Hints: hints})
	if err != nil {
		return err
	}
	return decodeEnvelope(op, res.Text, out)
}

// params validates p, marshals it, and invokes op with the hints p derives.
func (c *caller) params(ctx context.Context, op string, p Params, out any) error {
	if err := c.validator.Validate(p); err != nil {
		return err
	}
	data, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode %s parameters: %w", op, err)
	}
	return c.text(ctx, op, data, p.Hints(), out)
}

// quoted invokes op with value encoded as a JSON string.
func (c *caller) quoted(ctx context.Context, op, value string, out any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s argument: %w", op, err)
	}
	return c.text(ctx, op, data, nil, out)
}

type envelope struct {
	Failed bool            `json:"failed"`
	Loc    string          `json:"loc"`
	Msg    string          `json:"msg"`
	Result json.RawMessage `json:"result"`
}

func decodeEnvelope(op, text string, out any) error {
	var env envelope
	if err := json.Unmarshal([]byte(text), &env); err != nil {
		return &errors.EncodingError{Operation: op, Reason: fmt.Sprintf("invalid result envelope: %v", err)}
	}
	if env.Failed {
		return &errors.EngineError{Location: env.Loc, Message: env.Msg}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(env.Result, out); err != nil {
		return &errors.EncodingError{Operation: op, Reason: fmt.Sprintf("invalid result: %v", err)}
	}
	return nil
}
