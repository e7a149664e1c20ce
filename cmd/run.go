package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/sport-scheduler/internal/booking"
	"github.com/example/sport-scheduler/internal/config"
	"github.com/example/sport-scheduler/internal/logging"
	"github.com/example/sport-scheduler/internal/nubapp"
)

func newRunCmd() *cobra.Command {
	var (
		configPath string
		logLevel   string
	)

	c := &cobra.Command{
		Use:   "run",
		Short: "Execute one scheduling run: wait for the execution instant, then book all configured classes",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			if logLevel != "" {
				cfg.LogLevel = logLevel
			}
			log, err := logging.New(cfg.LogLevel, cfg.Location)
			if err != nil {
				return err
			}
			log.Infof("Time zone: %s", cfg.TimeZone)
			log.Infof("Booking execution: %s", cfg.Execution)

			svc := &booking.Service{
				Client: nubapp.New(log),
				Log:    log,
			}
			_, err = svc.Run(context.Background(), booking.Params{
				Email:         cfg.Email,
				Password:      cfg.Password,
				Centre:        cfg.Centre,
				Classes:       cfg.Targets,
				Execution:     cfg.Execution,
				BookingDelay:  cfg.BookingDelay(),
				RetryAttempts: cfg.RetryAttempts,
				RetryDelay:    cfg.RetryDelay(),
				MaxWorkers:    cfg.MaxThreads,
				Location:      cfg.Location,
			})
			return err
		},
	}

	c.Flags().StringVar(&configPath, "config", "config.json", "path to the JSON configuration file")
	c.Flags().StringVar(&logLevel, "log-level", "", "override the configured log level")
	return c
}
