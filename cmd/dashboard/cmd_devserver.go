package main

import (
	"github.com/spf13/cobra"

	"business-dashboard/internal/common/config"
	"business-dashboard/internal/common/database"
	"business-dashboard/internal/devserver"
	"business-dashboard/internal/models"
)

var devserverCmd = &cobra.Command{
	Use:   "devserver",
	Short: "Run a local dashboard backend over fixture data",
	Long: `Serves the dashboard REST API from devserver.fixtures_path (or built-in
sample data). Sessions live in redis; with no redis.address an embedded
in-process redis is started. Sign in with "dashboard login".`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := current.cfg
		log := current.log

		data := devserver.DefaultDataset()
		if cfg.DevServer.FixturesPath != "" {
			var err error
			if data, err = devserver.LoadDataset(cfg.DevServer.FixturesPath); err != nil {
				return err
			}
		}

		rc, err := database.NewRedis(cfg.Redis)
		if err != nil {
			return err
		}
		defer rc.Close()
		if err := rc.Ping(cmd.Context()); err != nil {
			return err
		}
		log.Info("session store ready", map[string]interface{}{"embedded": rc.Embedded()})

		srv := devserver.New(devserver.Config{
			Addr:              cfg.DevServer.Addr,
			SessionCookieName: cfg.API.SessionCookieName,
			SessionTTL:        config.GetDuration(cfg.DevServer.SessionTTL),
			DemoUser: models.User{
				Name:  cfg.DevServer.DemoUser.Name,
				Email: cfg.DevServer.DemoUser.Email,
				Photo: cfg.DevServer.DemoUser.Photo,
			},
		}, data, devserver.NewRedisSessions(rc, config.GetDuration(cfg.DevServer.SessionTTL)), log)
		return srv.Run(cmd.Context())
	},
}
