// Package validation checks typed parameters and configuration with
// go-playground/validator struct tags.
//
// Besides the builtin tags it registers:
//
//	mnemonic  a BIP39 mnemonic with a valid checksum
//	base58    a non-empty base58 string
//	hexbytes  an even-length hex string
package validation

import (
	"encoding/hex"
	"encoding/json"
	stdErrors "errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mr-tron/base58"
	"github.com/tyler-smith/go-bip39"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
	"github.com/Emurgo/node-cardano-wallet/domain/errors"
	"github.com/Emurgo/node-cardano-wallet/domain/ports"
)

// StructValidator implements ports.ParamsValidator.
type StructValidator struct {
	validate *validator.Validate
}

// New creates a validator with the wallet tags registered. Field names in
// errors follow the json tags.
func New() *StructValidator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return f.Name
		}
		return name
	})
	// Registration only fails for empty tags or nil functions.
	_ = v.RegisterValidation("mnemonic", func(fl validator.FieldLevel) bool {
		return bip39.IsMnemonicValid(fl.Field().String())
	})
	_ = v.RegisterValidation("base58", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return false
		}
		_, err := base58.Decode(s)
		return err == nil
	})
	_ = v.RegisterValidation("hexbytes", func(fl validator.FieldLevel) bool {
		_, err := hex.DecodeString(fl.Field().String())
		return err == nil
	})
	return &StructValidator{validate: v}
}

var _ ports.ParamsValidator = (*StructValidator)(nil)

// Validate checks a struct against its validate tags.
// Returns a *errors.ValidationError naming the first failing field.
func (s *StructValidator) Validate(params any) error {
	if err := s.validate.Struct(params); err != nil {
		field, cause := describe(err)
		return &errors.ValidationError{Field: field, Err: cause}
	}
	return nil
}

// Var checks a single value against a tag list, reporting it as field.
func (s *StructValidator) Var(field string, value any, tag string) error {
	if err := s.validate.Var(value, tag); err != nil {
		_, cause := describe(err)
		return &errors.ValidationError{Field: field, Err: cause}
	}
	return nil
}

// Decode unmarshals JSON into target and validates it.
func (s *StructValidator) Decode(data []byte, target any) error {
	if err := json.Unmarshal(data, target); err != nil {
		return &errors.ValidationError{Err: fmt.Errorf("decode parameters: %w", err)}
	}
	return s.Validate(target)
}

// ValidateConfig checks a bridge configuration.
// Returns a *errors.ConfigError naming the first failing field.
func (s *StructValidator) ValidateConfig(cfg *entities.BridgeConfig) error {
	if cfg == nil {
		return &errors.ConfigError{Err: stdErrors.New("config is nil")}
	}
	if err := s.validate.Struct(cfg); err != nil {
		field, cause := describe(err)
		return &errors.ConfigError{Field: field, Err: cause}
	}
	return nil
}

func describe(err error) (string, error) {
	var verrs validator.ValidationErrors
	if !stdErrors.As(err, &verrs) || len(verrs) == 0 {
		return "", err
	}
	fe := verrs[0]
	field := fe.Namespace()
	// Drop the struct name prefix.
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	if fe.Param() != "" {
		return field, fmt.Errorf("failed on '%s=%s'", fe.Tag(), fe.Param())
	}
	return field, fmt.Errorf("failed on '%s'", fe.Tag())
}
