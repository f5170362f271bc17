package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage goal owners",
	}

	cmd.AddCommand(usersCreateCmd())
	return cmd
}

func usersCreateCmd() *cobra.Command {
	var name string

	cmd := &cobra.Command{
		Use:   "create <email>",
		Short: "Create an owner and print its id",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.UserService.Create(cmd.Context(), args[0], name)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), user.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name used in milestone emails")
	return cmd
}

func TokenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "token <user-id>",
		Short: "Issue an API token for an existing owner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := loadApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.UserService.ByID(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			token, err := app.AuthService.GenerateJWT(user.ID)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
}
