package blockchain

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/raffler-space/backend/internal/domain/blockchain/eth"
	"github.com/raffler-space/backend/internal/domain/blockchain/types"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// Manager keeps one client, reader and writer per supported network. Networks
// come from the blockchains table and are picked up without a restart.
type Manager struct {
	rootCtx        context.Context
	blockchainRepo repository.BlockChainRepository

	mutex      sync.RWMutex
	ethClients map[string]eth.EthClient
	readers    map[string]*eth.Reader
	writers    map[string]*eth.Writer
}

func NewManager(
	ctx context.Context,
	blockchainRepo repository.BlockChainRepository,
) *Manager {
	return &Manager{
		rootCtx:        ctx,
		blockchainRepo: blockchainRepo,
		ethClients:     make(map[string]eth.EthClient),
		readers:        make(map[string]*eth.Reader),
		writers:        make(map[string]*eth.Writer),
	}
}

func (m *Manager) Run(ctx context.Context) {
	for {
		m.ReloadChains(ctx)
		time.Sleep(30 * time.Second)
	}
}

func (m *Manager) ReloadChains(ctx context.Context) {
	allChains, err := m.blockchainRepo.GetAll(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load all chains: %v", err)
		return
	}

	for _, chain := range allChains {
		m.mutex.RLock()
		_, ok := m.ethClients[chain.Name]
		m.mutex.RUnlock()

		if !ok {
			m.addChain(ctx, &chain)
		}
	}
}

func (m *Manager) addChain(ctx context.Context, blockchain *entity.Blockchain) {
	xcontext.Logger(ctx).Infof("Begin supporting chain %s", blockchain.Name)
	client := eth.NewEthClients(blockchain, m.blockchainRepo)

	m.mutex.Lock()
	m.ethClients[blockchain.Name] = client
	m.readers[blockchain.Name] = eth.NewReader(client, blockchain.Name)
	m.writers[blockchain.Name] = eth.NewWriter(client, blockchain.Name)
	m.mutex.Unlock()

	client.Start(ctx)
}

// AddEthClient installs a prebuilt client for a chain, bypassing the
// blockchains table.
func (m *Manager) AddEthClient(chain string, client eth.EthClient) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	m.ethClients[chain] = client
	m.readers[chain] = eth.NewReader(client, chain)
	m.writers[chain] = eth.NewWriter(client, chain)
}

func (m *Manager) IsSupported(chain string) bool {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	_, ok := m.ethClients[chain]
	return ok
}

func (m *Manager) Reader(chain string) (*eth.Reader, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	reader, ok := m.readers[chain]
	if !ok {
		return nil, fmt.Errorf("unsupported chain %s", chain)
	}

	return reader, nil
}

func (m *Manager) Writer(chain string) (*eth.Writer, error) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	writer, ok := m.writers[chain]
	if !ok {
		return nil, fmt.Errorf("unsupported chain %s", chain)
	}

	return writer, nil
}

// OtherChain returns a supported network different from the given one. The
// drift job uses it to double check a raffle when its home network misbehaves.
func (m *Manager) OtherChain(chain string) (string, bool) {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	for name := range m.ethClients {
		if name != chain {
			return name, true
		}
	}

	return "", false
}

func (m *Manager) ERC20TokenInfo(
	_ context.Context, chain, address string,
) (types.TokenInfo, error) {
	m.mutex.RLock()
	client, ok := m.ethClients[chain]
	m.mutex.RUnlock()

	if !ok {
		return types.TokenInfo{}, fmt.Errorf("unsupported chain %s", chain)
	}

	return client.ERC20TokenInfo(m.rootCtx, address)
}
