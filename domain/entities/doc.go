// Package entities provides the core value types of the wallet bridge:
// operation contracts, call requests and results, size constants, bridge
// configuration and structured error details.
package entities
