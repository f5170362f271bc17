package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func SweepCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sweep",
		Short: "Deactivate expired goals that missed their target",
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, cancel := context.WithTimeout(cmd.Context(), app.Cfg.SweepTimeout)
			defer cancel()

			count, err := app.SweeperService.Sweep(ctx)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "deactivated %d expired goals\n", count)
			return nil
		},
	}
}
