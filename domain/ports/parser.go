package ports

import "github.com/Emurgo/node-cardano-wallet/domain/entities"

// ConfigParser parses raw configuration bytes into a BridgeConfig.
type ConfigParser interface {
	// Parse unmarshals the bytes over the default configuration.
	Parse(data []byte) (*entities.BridgeConfig, error)
}
