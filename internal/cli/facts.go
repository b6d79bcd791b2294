package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/services/facts"
)

func newFactsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "facts",
		Short: "Geological fact commands",
	}

	cmd.AddCommand(newFactsListCmd())
	cmd.AddCommand(newFactsDeleteCmd())

	return cmd
}

func newFactsListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List facts",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := facts.New(api).List(cmd.Context(), search)
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match title, description or author")

	return cmd
}

func newFactsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a fact",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Are you sure you want to delete this fact?"); err != nil {
				return err
			}

			if _, err := facts.New(api).Delete(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Fact deleted")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
