package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/services/dashboard"
)

func newDashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show the dashboard totals",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			cards, err := dashboard.New(api).Cards(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(cards)
			return nil
		},
	}
}
