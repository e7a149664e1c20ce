package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/sport-scheduler/internal/logging"
	"github.com/example/sport-scheduler/internal/nubapp"
)

func newCentresCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "centres",
		Short: "List known centre slugs (no login required)",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := logging.New("info", nil)
			if err != nil {
				return err
			}
			centres, err := nubapp.New(log).Centres(context.Background())
			if err != nil {
				return err
			}
			for _, c := range centres {
				fmt.Printf("%s\t%s\n", c.Slug, c.Name)
			}
			return nil
		},
	}
}
