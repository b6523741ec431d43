package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInputSizeError(t *testing.T) {
	tests := []struct {
		name string
		err  *InputSizeError
		want string
	}{
		{"exact", &InputSizeError{Input: "seed", Got: 31, Want: 32}, "Wrong seed len 31 should be 32"},
		{"at least", &InputSizeError{Input: "data", Got: 60, AtLeast: 61}, "Wrong data len 60 should be at least 61"},
		{"reason", &InputSizeError{Input: "addresses", Reason: "missing count hint addresses"}, "missing count hint addresses"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, ErrInputSize))
			assert.False(t, errors.Is(tt.err, ErrNativeFailure))
		})
	}
}

func TestNativeFailure(t *testing.T) {
	err := &NativeFailure{Operation: "wallet_spend", Status: -1}
	assert.Equal(t, "Response -1 <= 0", err.Error())
	assert.True(t, errors.Is(err, ErrNativeFailure))
	assert.Equal(t, KindNative, KindOf(err))

	fault := fmt.Errorf("wasm error: unreachable")
	wrapped := fmt.Errorf("call: %w", &NativeFailure{Operation: "wallet_move", Fault: fault})
	assert.True(t, errors.Is(wrapped, fault))
	assert.True(t, errors.Is(wrapped, ErrNativeFailure))

	detail := ToErrorDetail(wrapped)
	require.NotNil(t, detail)
	assert.True(t, detail.IsFault)
	assert.Equal(t, "wallet_move", detail.Operation)
}

func TestDerivationImpossible_MatchesNativeFailure(t *testing.T) {
	err := &DerivationImpossible{Operation: "hdwallet_derive_public", Index: 0x80000000,
		Reason: "Cannot do public derivation with hard index"}

	assert.True(t, errors.Is(err, ErrDerivationImpossible))
	assert.True(t, errors.Is(err, ErrNativeFailure))
	assert.Equal(t, KindDerivation, KindOf(err))
	assert.Equal(t, "index_2147483648", ToErrorDetail(err).Code)

	assert.Equal(t, "Can't derive public key", (&DerivationImpossible{}).Error())
}

func TestCapacityExceeded(t *testing.T) {
	err := &CapacityExceeded{Operation: "wallet_generate_addresses", Written: 264, Capacity: 133}
	assert.Equal(t, "Response 264 >= 133", err.Error())
	assert.True(t, errors.Is(err, ErrCapacityExceeded))
	assert.Equal(t, KindCapacity, KindOf(err))
}

func TestEncodingError(t *testing.T) {
	err := &EncodingError{Operation: "wallet_new_account", Reason: "invalid UTF-8"}
	assert.Equal(t, "cannot create host string: invalid UTF-8", err.Error())
	assert.True(t, errors.Is(err, ErrEncoding))
}

func TestEngineError(t *testing.T) {
	err := &EngineError{Location: "spend", Message: "not enough inputs"}
	assert.Equal(t, "Error in: spend, message: not enough inputs", err.Error())
	assert.True(t, errors.Is(err, ErrNativeFailure))
}

func TestValidationAndConfigErrors(t *testing.T) {
	base := fmt.Errorf("must not be empty")

	v := &ValidationError{Field: "Indices", Err: base}
	assert.Equal(t, "invalid parameter 'Indices': must not be empty", v.Error())
	assert.True(t, errors.Is(v, base))
	assert.True(t, errors.Is(v, ErrValidation))

	c := &ConfigError{Err: base}
	assert.Equal(t, "config validation failed: must not be empty", c.Error())
	assert.Equal(t, KindConfig, KindOf(c))
}

func TestToErrorDetail(t *testing.T) {
	assert.Nil(t, ToErrorDetail(nil))
	assert.Equal(t, "", KindOf(nil))

	generic := ToErrorDetail(fmt.Errorf("boom"))
	assert.Equal(t, KindInternal, generic.Type)
	assert.Equal(t, "boom", generic.Message)

	nf := ToErrorDetail(&NotFoundError{Name: "nope"})
	assert.True(t, nf.IsNotFound)
	assert.Equal(t, "unknown operation: nope", nf.Message)

	detail := &ErrorDetail{Type: KindCapacity, Message: "x"}
	assert.Same(t, detail, ToErrorDetail(fmt.Errorf("wrapped: %w", detail)))
}
