// Package schema publishes JSON schemas for the parameter objects of the
// text operations and for the bridge configuration.
package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"github.com/Emurgo/node-cardano-wallet/application/wallet"
	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

// GenerateSchema creates a JSON schema from a Go struct.
// It uses the `invopop/jsonschema` library to reflect on the struct
// and generate a standard JSON Schema (Draft 2020-12).
func GenerateSchema(v interface{}) ([]byte, error) {
	reflector := jsonschema.Reflector{
		ExpandedStruct: true, // Expand struct definitions inline
	}
	schema := reflector.Reflect(v)

	jsonBytes, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema: %w", err)
	}

	return jsonBytes, nil
}

// ForOperation returns the schema of an operation's parameter object.
func ForOperation(op string) ([]byte, error) {
	p := wallet.ParamsFor(op)
	if p == nil {
		return nil, fmt.Errorf("operation %s takes no parameter object", op)
	}
	return GenerateSchema(p)
}

// Config returns the schema of the bridge configuration file.
func Config() ([]byte, error) {
	return GenerateSchema(&entities.BridgeConfig{})
}
