package wallet

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
)

// Params is a JSON parameter object of a text operation.
type Params interface {
	// Hints returns the count hints the operation sizes its output from.
	Hints() []uint32
}

// AddressType selects the BIP44 change chain.
type AddressType string

// Address chains.
const (
	External AddressType = "External"
	Internal AddressType = "Internal"
)

// NewAccountParams are the parameters of wallet_new_account.
type NewAccountParams struct {
	Wallet  json.RawMessage `json:"wallet" validate:"required" jsonschema:"description=Wallet object returned by wallet_from_master_key"`
	Account uint32          `json:"account" jsonschema:"description=Account index"`
}

// Hints implements Params.
func (NewAccountParams) Hints() []uint32 { return nil }

// GenerateAddressesParams are the parameters of wallet_generate_addresses.
type GenerateAddressesParams struct {
	Account     json.RawMessage `json:"account" validate:"required" jsonschema:"description=Account object returned by wallet_new_account"`
	AddressType AddressType     `json:"address_type" validate:"required,oneof=External Internal" jsonschema:"enum=External,enum=Internal"`
	Indices     []uint32        `json:"indices" validate:"required,min=1" jsonschema:"minItems=1"`
}

// Hints implements Params.
func (p GenerateAddressesParams) Hints() []uint32 {
	return []uint32{uint32(len(p.Indices))} //nolint:gosec // G115: slice length
}

// CheckAddressesParams are the parameters of random_checker_check_addresses.
type CheckAddressesParams struct {
	Checker   json.RawMessage `json:"checker" validate:"required" jsonschema:"description=Checker object returned by random_checker_new_checker"`
	Addresses []string        `json:"addresses" validate:"required,min=1,dive,base58" jsonschema:"minItems=1"`
}

// Hints implements Params.
func (p CheckAddressesParams) Hints() []uint32 {
	return []uint32{uint32(len(p.Addresses))} //nolint:gosec // G115: slice length
}

// SpendParams are the parameters of wallet_spend.
type SpendParams struct {
	Wallet     json.RawMessage   `json:"wallet" validate:"required"`
	Inputs     []json.RawMessage `json:"inputs" validate:"required,min=1" jsonschema:"minItems=1"`
	Outputs    []json.RawMessage `json:"outputs" validate:"required,min=1" jsonschema:"minItems=1"`
	ChangeAddr string            `json:"change_addr" validate:"required,base58"`
}

// Hints implements Params.
func (p SpendParams) Hints() []uint32 {
	return []uint32{uint32(len(p.Inputs)), uint32(len(p.Outputs))} //nolint:gosec // G115: slice lengths
}

// MoveParams are the parameters of wallet_move.
type MoveParams struct {
	Wallet json.RawMessage   `json:"wallet" validate:"required" jsonschema:"description=Daedalus wallet object"`
	Inputs []json.RawMessage `json:"inputs" validate:"required,min=1" jsonschema:"minItems=1"`
	Output string            `json:"output" validate:"required,base58"`
}

// Hints implements Params.
func (p MoveParams) Hints() []uint32 {
	return []uint32{uint32(len(p.Inputs))} //nolint:gosec // G115: slice length
}

// CheckedAddress is an address that belongs to a checker, with its
// derivation path.
type CheckedAddress struct {
	Address    string    `json:"address"`
	Addressing [2]uint32 `json:"addressing"`
}

// Transaction is a signed transaction ready to be sent.
type Transaction struct {
	CBOR       CBOR   `json:"cbor_encoded_tx"`
	ChangeUsed bool   `json:"change_used"`
	Fee        string `json:"fee"`
}

// CBOR is an encoded transaction. The engine emits it as an array of byte
// values; it marshals as hex.
type CBOR []byte

// MarshalJSON encodes the bytes as a hex string.
func (c CBOR) MarshalJSON() ([]byte, error) {
	return json.Marshal(hex.EncodeToString(c))
}

// UnmarshalJSON accepts an array of byte values or a hex string.
func (c *CBOR) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		b, err := hex.DecodeString(s)
		if err != nil {
			return fmt.Errorf("cbor_encoded_tx: %w", err)
		}
		*c = b
		return nil
	}
	var values []int
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("cbor_encoded_tx: %w", err)
	}
	out := make([]byte, len(values))
	for i, v := range values {
		if v < 0 || v > 0xff {
			return fmt.Errorf("cbor_encoded_tx: value %d at %d is not a byte", v, i)
		}
		out[i] = byte(v)
	}
	*c = out
	return nil
}
