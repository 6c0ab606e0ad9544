package main

import (
	"net/http"

	"github.com/raffler-space/backend/internal/domain/cron"
	"github.com/raffler-space/backend/pkg/prometheus"
	"github.com/raffler-space/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(cctx *cli.Context) error {
	s.loadConfig(cctx)
	s.loadLogger()
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
	s.migrateDB()
	s.loadRepos()
	s.loadChainManager()

	go s.startPrometheusServer()

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(cron.NewWinnerDriftCronJob(s.raffleRepo, s.chainManager))
	cronJobManager.Register(cron.NewRefundCheckCronJob(s.raffleRepo, s.chainManager))
	cronJobManager.Register(cron.NewLaunchRaffleCronJob(s.raffleRepo))
	cronJobManager.Start(s.ctx)

	return nil
}

func (s *srv) startPrometheusServer() {
	cfg := xcontext.Configs(s.ctx)
	mux := http.NewServeMux()
	mux.Handle("/metrics", prometheus.NewHandler())

	xcontext.Logger(s.ctx).Infof("Starting prometheus server on %s", cfg.PrometheusServer.Address())
	if err := http.ListenAndServe(cfg.PrometheusServer.Address(), mux); err != nil {
		xcontext.Logger(s.ctx).Errorf("Prometheus server stopped: %v", err)
	}
}
