// Package errors provides the error taxonomy of the wallet bridge.
// Caller mistakes (InputSizeError, ValidationError) are kept apart from engine
// failures (NativeFailure, DerivationImpossible, CapacityExceeded) and from
// result conversion failures (EncodingError). All error types support
// errors.As() and errors.Is() against their sentinel.
package errors

import (
	stdErrors "errors"
	"fmt"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

// ErrorDetail is an alias to entities.ErrorDetail for convenience.
type ErrorDetail = entities.ErrorDetail

// Sentinels matched by errors.Is.
var (
	ErrInputSize            = stdErrors.New("input size")
	ErrNativeFailure        = stdErrors.New("native failure")
	ErrDerivationImpossible = stdErrors.New("derivation impossible")
	ErrCapacityExceeded     = stdErrors.New("capacity exceeded")
	ErrEncoding             = stdErrors.New("encoding")
	ErrNotFound             = stdErrors.New("not found")
	ErrValidation           = stdErrors.New("validation")
)

// Kinds returned by KindOf.
const (
	KindInputSize  = "input_size"
	KindNative     = "native"
	KindDerivation = "derivation"
	KindCapacity   = "capacity"
	KindEncoding   = "encoding"
	KindNotFound   = "not_found"
	KindValidation = "validation"
	KindConfig     = "config"
	KindInternal   = "internal"
)

// DetailedError is an interface for error types that can convert themselves
// to a structured ErrorDetail.
type DetailedError interface {
	error
	ToErrorDetail() *entities.ErrorDetail
}

// ToErrorDetail converts a Go error to our structured ErrorDetail.
func ToErrorDetail(err error) *entities.ErrorDetail {
	if err == nil {
		return nil
	}

	var e *entities.ErrorDetail
	if stdErrors.As(err, &e) {
		return e
	}

	var de DetailedError
	if stdErrors.As(err, &de) {
		return de.ToErrorDetail()
	}

	return &entities.ErrorDetail{
		Message: err.Error(),
		Type:    KindInternal,
	}
}

// KindOf returns the error kind of err, or "" for nil.
func KindOf(err error) string {
	if err == nil {
		return ""
	}
	return ToErrorDetail(err).Type
}

// InputSizeError reports an argument whose length (or derived capacity)
// violates the operation contract. The engine is never invoked.
type InputSizeError struct {
	Operation string
	Input     string
	Reason    string
	Got       int
	Want      int
	AtLeast   int
}

func (e *InputSizeError) Error() string {
	switch {
	case e.Reason != "":
		return e.Reason
	case e.AtLeast > 0:
		return fmt.Sprintf("Wrong %s len %d should be at least %d", e.Input, e.Got, e.AtLeast)
	default:
		return fmt.Sprintf("Wrong %s len %d should be %d", e.Input, e.Got, e.Want)
	}
}

func (e *InputSizeError) Is(target error) bool {
	return target == ErrInputSize
}

// ToErrorDetail implements DetailedError.
func (e *InputSizeError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindInputSize, Code: e.Input, Operation: e.Operation}
}

// NativeFailure reports a failed or faulted engine call.
// Fault holds the contained fault, if the call panicked or trapped.
type NativeFailure struct {
	Fault     error
	Operation string
	Message   string
	Stack     []byte
	Status    int32
}

func (e *NativeFailure) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Fault != nil {
		return e.Fault.Error()
	}
	return fmt.Sprintf("Response %d <= 0", e.Status)
}

func (e *NativeFailure) Unwrap() error {
	return e.Fault
}

func (e *NativeFailure) Is(target error) bool {
	return target == ErrNativeFailure
}

// ToErrorDetail implements DetailedError.
func (e *NativeFailure) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:   e.Error(),
		Type:      KindNative,
		Code:      fmt.Sprintf("status_%d", e.Status),
		Operation: e.Operation,
		Stack:     e.Stack,
		IsFault:   e.Fault != nil,
	}
}

// DerivationImpossible reports a key derivation that cannot be performed.
// It also matches ErrNativeFailure.
type DerivationImpossible struct {
	Operation string
	Reason    string
	Index     uint32
}

func (e *DerivationImpossible) Error() string {
	if e.Reason != "" {
		return e.Reason
	}
	return "Can't derive public key"
}

func (e *DerivationImpossible) Is(target error) bool {
	return target == ErrDerivationImpossible || target == ErrNativeFailure
}

// ToErrorDetail implements DetailedError.
func (e *DerivationImpossible) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{
		Message:   e.Error(),
		Type:      KindDerivation,
		Code:      fmt.Sprintf("index_%d", e.Index),
		Operation: e.Operation,
	}
}

// CapacityExceeded reports an engine that claimed more bytes than the
// output region holds. The over-length region is never read.
type CapacityExceeded struct {
	Operation string
	Written   int64
	Capacity  int64
}

func (e *CapacityExceeded) Error() string {
	return fmt.Sprintf("Response %d >= %d", e.Written, e.Capacity)
}

func (e *CapacityExceeded) Is(target error) bool {
	return target == ErrCapacityExceeded
}

// ToErrorDetail implements DetailedError.
func (e *CapacityExceeded) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindCapacity, Operation: e.Operation}
}

// EncodingError reports an engine output that cannot become a host string.
type EncodingError struct {
	Operation string
	Reason    string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("cannot create host string: %s", e.Reason)
}

func (e *EncodingError) Is(target error) bool {
	return target == ErrEncoding
}

// ToErrorDetail implements DetailedError.
func (e *EncodingError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindEncoding, Operation: e.Operation}
}

// NotFoundError reports an unknown operation name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("unknown operation: %s", e.Name)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ToErrorDetail implements DetailedError.
func (e *NotFoundError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindNotFound, Code: e.Name, IsNotFound: true}
}

// ValidationError reports typed parameters rejected before they reach the bridge.
type ValidationError struct {
	Err   error
	Field string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid parameter '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid parameters: %v", e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ToErrorDetail implements DetailedError.
func (e *ValidationError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindValidation, Code: e.Field}
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Err   error
	Field string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("config validation failed for field '%s': %v", e.Field, e.Err)
	}
	return fmt.Sprintf("config validation failed: %v", e.Err)
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

// ToErrorDetail implements DetailedError.
func (e *ConfigError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindConfig, Code: e.Field}
}

// EngineError reports a result envelope with failed=true returned by the
// wallet engine, e.g. "Error in: spend, message: not enough inputs".
type EngineError struct {
	Location string
	Message  string
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("Error in: %s, message: %s", e.Location, e.Message)
}

func (e *EngineError) Is(target error) bool {
	return target == ErrNativeFailure
}

// ToErrorDetail implements DetailedError.
func (e *EngineError) ToErrorDetail() *entities.ErrorDetail {
	return &entities.ErrorDetail{Message: e.Error(), Type: KindNative, Code: e.Location}
}
