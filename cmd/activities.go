package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sport-scheduler/internal/config"
	"github.com/example/sport-scheduler/internal/logging"
	"github.com/example/sport-scheduler/internal/nubapp"
)

func newActivitiesCmd() *cobra.Command {
	var configPath string

	c := &cobra.Command{
		Use:   "activities",
		Short: "List the activities offered by the configured centre",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			log, err := logging.New(cfg.LogLevel, cfg.Location)
			if err != nil {
				return err
			}

			ctx := context.Background()
			client := nubapp.New(log)
			if err := client.Login(ctx, cfg.Email, cfg.Password, cfg.Centre); err != nil {
				return err
			}
			activities, err := client.Activities(ctx)
			if err != nil {
				return err
			}
			for _, a := range activities {
				fmt.Printf("%s\t%s\n", a.ID, a.Name)
			}
			return nil
		},
	}

	c.Flags().StringVar(&configPath, "config", "config.json", "path to the JSON configuration file")
	return c
}
