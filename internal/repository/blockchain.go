package repository

import (
	"context"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
)

type BlockChainRepository interface {
	Create(ctx context.Context, blockchain *entity.Blockchain) error
	Get(ctx context.Context, chain string) (*entity.Blockchain, error)
	GetAll(ctx context.Context) ([]entity.Blockchain, error)
	GetConnectionsByChain(ctx context.Context, chain string) ([]entity.BlockchainConnection, error)
	CreateConnection(ctx context.Context, connection *entity.BlockchainConnection) error
}

type blockChainRepository struct{}

func NewBlockChainRepository() *blockChainRepository {
	return &blockChainRepository{}
}

func (r *blockChainRepository) Create(ctx context.Context, blockchain *entity.Blockchain) error {
	return xcontext.DB(ctx).Create(blockchain).Error
}

func (r *blockChainRepository) Get(ctx context.Context, chain string) (*entity.Blockchain, error) {
	var result entity.Blockchain
	if err := xcontext.DB(ctx).Take(&result, "name=?", chain).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *blockChainRepository) GetAll(ctx context.Context) ([]entity.Blockchain, error) {
	var result []entity.Blockchain
	if err := xcontext.DB(ctx).Find(&result).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *blockChainRepository) GetConnectionsByChain(
	ctx context.Context, chain string,
) ([]entity.BlockchainConnection, error) {
	var result []entity.BlockchainConnection
	if err := xcontext.DB(ctx).Find(&result, "chain=?", chain).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *blockChainRepository) CreateConnection(
	ctx context.Context, connection *entity.BlockchainConnection,
) error {
	return xcontext.DB(ctx).Create(connection).Error
}
