package entity

import (
	"context"

	"github.com/raffler-space/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Raffle{},
		&Ticket{},
		&Blockchain{},
		&BlockchainConnection{},
	)
}
