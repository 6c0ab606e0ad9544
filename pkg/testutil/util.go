package testutil

import (
	"context"
	"time"

	"github.com/raffler-space/backend/config"
	"github.com/raffler-space/backend/internal/entity"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/pkg/authenticator"
	"github.com/raffler-space/backend/pkg/logger"
	"github.com/raffler-space/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Auth: config.AuthConfigs{
			TokenSecret: "secret",
			AccessToken: config.TokenConfigs{
				Name:       "access_token",
				Expiration: config.Duration{Duration: time.Minute},
			},
		},
		Storage: config.S3Configs{
			Bucket: "test-bucket",
		},
		Email: config.EmailConfigs{
			Sender: "no-reply@example.com",
		},
		File: config.FileConfigs{
			MaxMemory: 2 << 20,
			MaxSize:   2 << 20,
		},
		Blockchain: config.BlockchainConfigs{
			SecretKey:            "wallet-secret",
			ReceiptPollFrequency: config.Duration{Duration: time.Millisecond},
			ReceiptMaxRetry:      3,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.SILENCE))
	ctx = xcontext.WithTokenEngine(ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
