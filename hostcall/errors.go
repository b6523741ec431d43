package hostcall

import (
	"encoding/json"

	"github.com/Emurgo/node-cardano-wallet/domain/errors"
)

// ErrorResponse is the machine-readable form of a failed call.
type ErrorResponse struct {
	// Error is the error type identifier (e.g. "INPUT_SIZE", "NATIVE_FAILURE").
	Error string `json:"error"`

	// Message is a human-readable error description.
	Message string `json:"message"`

	// Operation is the failed operation, if known.
	Operation string `json:"operation,omitempty"`

	// Code is a numeric error code (e.g. 400, 500).
	Code int `json:"code"`
}

// ToJSON serializes the ErrorResponse to JSON bytes.
// Returns nil if serialization fails (which should never happen for this simple type).
func (e ErrorResponse) ToJSON() []byte {
	data, err := json.Marshal(e)
	if err != nil {
		return nil
	}
	return data
}

// NewErrorResponse classifies err by kind.
func NewErrorResponse(err error) ErrorResponse {
	detail := errors.ToErrorDetail(err)
	resp := ErrorResponse{Message: detail.Message, Operation: detail.Operation}
	switch detail.Type {
	case errors.KindInputSize:
		resp.Error, resp.Code = "INPUT_SIZE", 400
	case errors.KindValidation, errors.KindConfig:
		resp.Error, resp.Code = "VALIDATION_ERROR", 400
	case errors.KindNotFound:
		resp.Error, resp.Code = "NOT_FOUND", 404
	case errors.KindDerivation:
		resp.Error, resp.Code = "DERIVATION_IMPOSSIBLE", 422
	case errors.KindNative:
		resp.Error, resp.Code = "NATIVE_FAILURE", 500
	case errors.KindCapacity:
		resp.Error, resp.Code = "CAPACITY_EXCEEDED", 500
	case errors.KindEncoding:
		resp.Error, resp.Code = "ENCODING_ERROR", 500
	default:
		resp.Error, resp.Code = "INTERNAL_ERROR", 500
	}
	return resp
}
