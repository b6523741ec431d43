package ports

import (
	"context"

	"github.com/Emurgo/node-cardano-wallet/domain/entities"
)

// Invoker dispatches bridge operations by name.
type Invoker interface {
	Invoke(ctx context.Context, name string, req entities.Request) (entities.Result, error)
}
