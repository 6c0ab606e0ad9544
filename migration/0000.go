package migration

import (
	"context"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// migrate0000 creates the initial schema.
func migrate0000(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&entity.User{},
		&entity.Raffle{},
		&entity.Ticket{},
		&entity.Blockchain{},
		&entity.BlockchainConnection{},
	)
}
