package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/services/users"
)

func newUsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "User management commands",
	}

	cmd.AddCommand(newUsersListCmd())
	cmd.AddCommand(newUsersSuspendCmd(true))
	cmd.AddCommand(newUsersSuspendCmd(false))

	return cmd
}

func newUsersListCmd() *cobra.Command {
	var filter users.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := users.New(api).List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Match name, email or id")
	cmd.Flags().StringVar(&filter.Role, "role", "", "Filter by role: player, geologist")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Filter by status: active, suspended")

	return cmd
}

func newUsersSuspendCmd(suspend bool) *cobra.Command {
	var yes bool

	use, short, done := "unsuspend <id>", "Reinstate a suspended user", "User reinstated"
	if suspend {
		use, short, done = "suspend <id>", "Suspend a user", "User suspended"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if suspend {
				if err := confirm(cmd, yes, "Suspend user "+id+"?"); err != nil {
					return err
				}
			}

			if _, err := users.New(api).SetSuspended(cmd.Context(), id, suspend); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage(done)
			return nil
		},
	}

	if suspend {
		addYesFlag(cmd, &yes)
	}

	return cmd
}
