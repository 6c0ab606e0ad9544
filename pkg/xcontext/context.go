package xcontext

import (
	"context"
	"net/http"

	"github.com/raffler-space/backend/config"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/pkg/authenticator"
	"github.com/raffler-space/backend/pkg/logger"
	"gorm.io/gorm"
)

type (
	configsKey     struct{}
	loggerKey      struct{}
	dbKey          struct{}
	dbTxKey        struct{}
	httpRequestKey struct{}
	httpWriterKey  struct{}
	tokenEngineKey struct{}
)

func WithConfigs(ctx context.Context, configs config.Configs) context.Context {
	return context.WithValue(ctx, configsKey{}, configs)
}

func Configs(ctx context.Context) config.Configs {
	return ctx.Value(configsKey{}).(config.Configs)
}

func WithLogger(ctx context.Context, logger logger.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

func Logger(ctx context.Context) logger.Logger {
	return ctx.Value(loggerKey{}).(logger.Logger)
}

func WithDB(ctx context.Context, db *gorm.DB) context.Context {
	return context.WithValue(ctx, dbKey{}, db)
}

// DB returns the transaction began by WithDBTransaction if any, otherwise the
// root *gorm.DB.
func DB(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		return tx
	}

	return ctx.Value(dbKey{}).(*gorm.DB)
}

func WithDBTransaction(ctx context.Context) context.Context {
	return context.WithValue(ctx, dbTxKey{}, DB(ctx).Begin())
}

func WithCommitDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		tx.Commit()
	}

	return context.WithValue(ctx, dbTxKey{}, (*gorm.DB)(nil))
}

// WithRollbackDBTransaction is a no-op if the transaction was already
// committed. It is designed to be deferred right after WithDBTransaction.
func WithRollbackDBTransaction(ctx context.Context) context.Context {
	if tx, ok := ctx.Value(dbTxKey{}).(*gorm.DB); ok && tx != nil {
		tx.Rollback()
	}

	return context.WithValue(ctx, dbTxKey{}, (*gorm.DB)(nil))
}

func WithHTTPRequest(ctx context.Context, r *http.Request) context.Context {
	return context.WithValue(ctx, httpRequestKey{}, r)
}

func HTTPRequest(ctx context.Context) *http.Request {
	return ctx.Value(httpRequestKey{}).(*http.Request)
}

func WithHTTPWriter(ctx context.Context, w http.ResponseWriter) context.Context {
	return context.WithValue(ctx, httpWriterKey{}, w)
}

func HTTPWriter(ctx context.Context) http.ResponseWriter {
	return ctx.Value(httpWriterKey{}).(http.ResponseWriter)
}

func WithTokenEngine(ctx context.Context, engine authenticator.TokenEngine[model.AccessToken]) context.Context {
	return context.WithValue(ctx, tokenEngineKey{}, engine)
}

func TokenEngine(ctx context.Context) authenticator.TokenEngine[model.AccessToken] {
	return ctx.Value(tokenEngineKey{}).(authenticator.TokenEngine[model.AccessToken])
}
