package migration

import (
	"context"

	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/pkg/xcontext"
)

// migrate0001 adds the prize collection and contact columns.
func migrate0001(ctx context.Context) error {
	if err := xcontext.DB(ctx).Migrator().AddColumn(&entity.Raffle{}, "NFTContract"); err != nil {
		return err
	}

	return xcontext.DB(ctx).Migrator().AddColumn(&entity.User{}, "Email")
}
