package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_Len(t *testing.T) {
	assert.Equal(t, 3, Result{Encoding: OutputBytes, Bytes: []byte{1, 2, 3}}.Len())
	assert.Equal(t, 5, Result{Encoding: OutputText, Text: "hello"}.Len())
	assert.Zero(t, Result{}.Len())
}

func TestEncodingStrings(t *testing.T) {
	assert.Equal(t, "bytes", OutputBytes.String())
	assert.Equal(t, "text", OutputText.String())
	assert.Equal(t, "bytes", InputBytes.String())
	assert.Equal(t, "text", InputText.String())
}

func TestDefaultBridgeConfig(t *testing.T) {
	cfg := DefaultBridgeConfig()
	assert.Equal(t, EngineBuiltin, cfg.Engine)
	assert.Equal(t, uint64(DefaultMaxCapacity), cfg.MaxCapacity)
	assert.Equal(t, DefaultMaxTextLength, cfg.MaxTextLength)
	assert.False(t, cfg.StrictUTF8)
	assert.False(t, cfg.QuietFaults)
}

func TestSizes(t *testing.T) {
	assert.Equal(t, SaltSize+NonceSize+TagSize, PasswordOverhead)
	assert.Equal(t, uint32(1)<<31, HardenedIndex)
}

func TestErrorDetail_Error(t *testing.T) {
	tests := []struct {
		name   string
		detail *ErrorDetail
		want   string
	}{
		{name: "nil", detail: nil, want: ""},
		{name: "internal", detail: NewErrorDetail("internal", "boom"), want: "boom"},
		{
			name:   "operation and code",
			detail: (&ErrorDetail{Type: "input_size", Operation: "hdwallet_from_seed", Message: "Wrong seed len 31 should be 32"}).WithCode("seed"),
			want:   "input_size: hdwallet_from_seed: Wrong seed len 31 should be 32 [seed]",
		},
		{
			name:   "wrapped",
			detail: &ErrorDetail{Type: "native", Message: "outer", Wrapped: NewErrorDetail("internal", "inner")},
			want:   "native: outer: inner",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.detail.Error())
		})
	}
}

func TestErrorDetail_WithDetails(t *testing.T) {
	d := NewErrorDetail("capacity", "Response 10 >= 5").WithDetails(map[string]any{"written": 10})
	assert.Equal(t, 10, d.Details["written"])
}
