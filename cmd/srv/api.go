package main

import (
	"net/http"

	"github.com/raffler-space/backend/internal/middleware"
	"github.com/raffler-space/backend/pkg/router"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadTokenEngine()
	s.loadRedisClient()
	s.loadStorage()
	s.loadEmailer()
	s.loadRepos()
	s.loadChainManager()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	s.server = &http.Server{
		Addr:    cfg.ApiServer.Address(),
		Handler: s.router.Handler(),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on %s", cfg.ApiServer.Address())
	if err := s.server.ListenAndServe(); err != nil {
		return err
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Before(middleware.AllowCors())
	s.router.Before(middleware.WithStartTime())
	s.router.AddCloser(middleware.Logger())
	s.router.AddCloser(middleware.Prometheus())

	// Public API.
	router.GET(s.router, "/wallet/login", s.walletAuthDomain.Login)
	router.GET(s.router, "/wallet/verify", s.walletAuthDomain.Verify)
	router.GET(s.router, "/getRaffle", s.raffleDomain.GetRaffle)
	router.GET(s.router, "/getRaffles", s.raffleDomain.GetRaffles)
	router.GET(s.router, "/getUserEntries", s.ticketDomain.GetUserEntries)

	// These following APIs need authentication with Access Token.
	authRouter := s.router.Branch()
	authVerifier := middleware.NewAuthVerifier().WithAccessToken()
	authRouter.Before(authVerifier.Middleware())
	{
		router.GET(authRouter, "/getMyTickets", s.ticketDomain.GetMyTickets)
		router.POST(authRouter, "/buyTickets", s.ticketDomain.Buy)

		// Admin API. The domains check the global role on top of this.
		router.POST(authRouter, "/createRaffle", s.raffleDomain.CreateRaffle)
		router.POST(authRouter, "/updateRaffle", s.raffleDomain.UpdateRaffle)
		router.POST(authRouter, "/activateRaffle", s.raffleDomain.ActivateRaffle)
		router.POST(authRouter, "/selectWinner", s.raffleDomain.SelectWinner)
		router.POST(authRouter, "/claimPrize", s.raffleDomain.ClaimPrize)
		router.POST(authRouter, "/withdrawFees", s.raffleDomain.WithdrawFees)
		router.POST(authRouter, "/uploadRaffleImage", s.fileDomain.UploadRaffleImage)
	}
}
