package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/sport-scheduler/internal/booking"
	"github.com/example/sport-scheduler/internal/config"
	"github.com/example/sport-scheduler/internal/logging"
	"github.com/example/sport-scheduler/internal/nubapp"
)

func newCancelCmd() *cobra.Command {
	var (
		configPath string
		activity   string
		start      string
	)

	c := &cobra.Command{
		Use:   "cancel",
		Short: "Cancel a previously booked slot",
		RunE: func(cmd *cobra.Command, args []string) error {
			parts := strings.SplitN(start, " ", 2)
			if len(parts) != 2 {
				return fmt.Errorf("invalid --start %q (want \"YYYY-MM-DD HH:MM:SS\")", start)
			}
			date, classTime := parts[0], parts[1]

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
			slots, err := client.DailySlots(ctx, activity, date)
			if err != nil {
				return err
			}
			slot, err := booking.MatchSlot(slots, activity, date, classTime)
			if err != nil {
				return err
			}
			if err := client.CancelSlot(ctx, slot.ID); err != nil {
				return err
			}
			log.Infof("Successfully cancelled %q at %s.", activity, start)
			return nil
		},
	}

	c.Flags().StringVar(&configPath, "config", "config.json", "path to the JSON configuration file")
	c.Flags().StringVar(&activity, "activity", "", "activity name as listed by 'activities'")
	c.Flags().StringVar(&start, "start", "", "slot start timestamp, \"YYYY-MM-DD HH:MM:SS\"")
	_ = c.MarkFlagRequired("activity")
	_ = c.MarkFlagRequired("start")
	return c
}
