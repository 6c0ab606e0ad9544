package reconcile

import (
	"github.com/raffler-space/backend/internal/domain/blockchain"
)

type managerProvider struct {
	manager *blockchain.Manager
}

// NewManagerProvider adapts the blockchain manager to the reconciler's reader
// lookup.
func NewManagerProvider(manager *blockchain.Manager) ReaderProvider {
	return managerProvider{manager: manager}
}

func (p managerProvider) Reader(chain string) (RaffleInfoReader, error) {
	return p.manager.Reader(chain)
}
