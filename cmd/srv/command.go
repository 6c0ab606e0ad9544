package main

import "github.com/urfave/cli/v2"

func (s *srv) loadApp() {
	configFlag := &cli.StringFlag{
		Name:  "config",
		Usage: "The path of the toml configuration file",
	}

	s.app = cli.NewApp()
	s.app.Action = cli.ShowAppHelp
	s.app.Name = "Raffler"
	s.app.Usage = ""
	s.app.Commands = []*cli.Command{
		{
			Action:      s.startApi,
			Name:        "api",
			Usage:       "Start service api",
			Flags:       []cli.Flag{configFlag},
			Category:    "Api",
			Description: `Used for start service api, it main service included all apis.`,
		},
		{
			Action:   s.startCron,
			Name:     "cron",
			Usage:    "Start cron jobs",
			Flags:    []cli.Flag{configFlag},
			Category: "Worker",
			Description: `Used to start the worker that keeps the database mirror in sync ` +
				`with the raffle contracts.`,
		},
		{
			Action: s.startMigrate,
			Name:   "migrate",
			Usage:  "Migrate the database",
			Flags: []cli.Flag{
				configFlag,
				&cli.StringFlag{
					Name:  "version",
					Usage: "The migrator version to run",
					Value: "auto",
				},
			},
			Category:    "Database",
			Description: `Used to run a versioned database migrator.`,
		},
	}
}
