package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/services/posts"
)

func newPostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "Published post commands",
	}

	cmd.AddCommand(newPostsListCmd())
	cmd.AddCommand(newPostsDeleteCmd())

	return cmd
}

func newPostsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List posts",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := posts.New(api).List(cmd.Context())
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}
}

func newPostsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Are you sure you want to delete this post?"); err != nil {
				return err
			}

			if _, err := posts.New(api).Delete(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Post deleted")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
