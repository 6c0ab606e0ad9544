package main

import (
	"context"
	"net/http"

	"github.com/raffler-space/backend/config"
	"github.com/raffler-space/backend/internal/domain"
	"github.com/raffler-space/backend/internal/domain/blockchain"
	"github.com/raffler-space/backend/internal/domain/reconcile"
	"github.com/raffler-space/backend/internal/model"
	"github.com/raffler-space/backend/internal/repository"
	"github.com/raffler-space/backend/migration"
	"github.com/raffler-space/backend/pkg/authenticator"
	"github.com/raffler-space/backend/pkg/emailer"
	"github.com/raffler-space/backend/pkg/logger"
	"github.com/raffler-space/backend/pkg/router"
	"github.com/raffler-space/backend/pkg/storage"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/raffler-space/backend/pkg/xredis"
	"github.com/urfave/cli/v2"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	userRepo       repository.UserRepository
	raffleRepo     repository.RaffleRepository
	ticketRepo     repository.TicketRepository
	blockchainRepo repository.BlockChainRepository

	walletAuthDomain domain.WalletAuthDomain
	raffleDomain     domain.RaffleDomain
	ticketDomain     domain.TicketDomain
	fileDomain       domain.FileDomain

	chainManager *blockchain.Manager
	reconciler   *reconcile.Reconciler

	redisClient xredis.Client
	fileStorage storage.Storage
	emailer     emailer.Emailer

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig(cctx *cli.Context) {
	configs, err := config.Load(cctx.String("config"))
	if err != nil {
		panic(err)
	}

	s.ctx = xcontext.WithConfigs(context.Background(), configs)
}

func (s *srv) loadLogger() {
	s.ctx = xcontext.WithLogger(s.ctx,
		logger.NewLoggerByName(xcontext.Configs(s.ctx).LogLevel))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) migrateDB() {
	if err := migration.AutoMigrate(s.ctx); err != nil {
		panic(err)
	}
}

func (s *srv) loadTokenEngine() {
	cfg := xcontext.Configs(s.ctx)
	s.ctx = xcontext.WithTokenEngine(s.ctx, authenticator.NewTokenEngine[model.AccessToken](
		cfg.Auth.TokenSecret, cfg.Auth.AccessToken.Expiration.Duration))
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadStorage() {
	s.fileStorage = storage.NewS3Storage(xcontext.Configs(s.ctx).Storage)
}

func (s *srv) loadEmailer() {
	s.emailer = emailer.NewSESEmailer(xcontext.Configs(s.ctx).Email)
}

func (s *srv) loadRepos() {
	s.userRepo = repository.NewUserRepository()
	s.raffleRepo = repository.NewRaffleRepository()
	s.ticketRepo = repository.NewTicketRepository()
	s.blockchainRepo = repository.NewBlockChainRepository()
}

func (s *srv) loadChainManager() {
	s.chainManager = blockchain.NewManager(s.ctx, s.blockchainRepo)
	s.chainManager.ReloadChains(s.ctx)
	go s.chainManager.Run(s.ctx)

	s.reconciler = reconcile.NewReconciler(reconcile.NewManagerProvider(s.chainManager))
}

func (s *srv) loadDomains() {
	s.walletAuthDomain = domain.NewWalletAuthDomain(s.userRepo, s.redisClient)
	s.raffleDomain = domain.NewRaffleDomain(
		s.raffleRepo, s.userRepo, s.chainManager, s.reconciler)
	s.ticketDomain = domain.NewTicketDomain(
		s.raffleRepo, s.ticketRepo, s.userRepo, s.blockchainRepo,
		s.chainManager, s.reconciler, s.emailer)
	s.fileDomain = domain.NewFileDomain(s.fileStorage, s.userRepo)
}
