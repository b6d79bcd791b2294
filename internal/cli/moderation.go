package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/moderation"
)

// reviewItem is a submitted post with what the moderation screen shows beside it
type reviewItem struct {
	model.ReviewPost
	Username   string          `json:"username"`
	State      model.PostState `json:"state"`
	Confidence *float64        `json:"confidence,omitempty"`
}

// reportItem is a report with the reporter's username
type reportItem struct {
	model.Report
	Username string `json:"username"`
}

func newModerationCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moderation",
		Short: "Review submitted rocks and user reports",
	}

	cmd.AddCommand(newModerationPostsCmd())
	cmd.AddCommand(newModerationApproveCmd())
	cmd.AddCommand(newModerationRejectCmd())
	cmd.AddCommand(newModerationToggleCmd())
	cmd.AddCommand(newModerationReportsCmd())
	cmd.AddCommand(newModerationReviewCmd())

	return cmd
}

func newModerationPostsCmd() *cobra.Command {
	var state string

	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List submitted posts by review state",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch model.PostState(state) {
			case model.PostStatePending, model.PostStateApproved, model.PostStateRejected:
			default:
				return fmt.Errorf("unknown state %q: use pending, approved or rejected", state)
			}

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			board, err := moderation.New(api).Load(cmd.Context())
			if err != nil {
				return err
			}

			items := []reviewItem{}
			for _, p := range board.PostsIn(model.PostState(state)) {
				item := reviewItem{ReviewPost: p, Username: board.Username(p.CreatedBy), State: p.State()}
				if c, ok := board.Confidence(p.ID); ok {
					item.Confidence = &c
				}
				items = append(items, item)
			}

			NewOutput(cmd).Print(items)
			return nil
		},
	}

	cmd.Flags().StringVar(&state, "state", string(model.PostStatePending), "Review state: pending, approved, rejected")

	return cmd
}

func newModerationApproveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "approve <post-id>",
		Short: "Approve a submitted post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			if _, err := moderation.New(api).Approve(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Post approved")
			return nil
		},
	}
}

func newModerationRejectCmd() *cobra.Command {
	var reason string
	var yes bool

	cmd := &cobra.Command{
		Use:   "reject <post-id>",
		Short: "Reject a submitted post with a reason",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Reject post "+args[0]+"?"); err != nil {
				return err
			}

			if _, err := moderation.New(api).Reject(cmd.Context(), args[0], reason); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Post rejected")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason shown to the submitter (required)")
	addYesFlag(cmd, &yes)

	return cmd
}

func newModerationToggleCmd() *cobra.Command {
	var reason string
	var yes bool

	cmd := &cobra.Command{
		Use:   "toggle <post-id>",
		Short: "Reverse the decision on a reviewed post",
		Long: `Reverse the decision on a reviewed post: an approved post is rejected (with
--reason) and a rejected post is approved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Change the decision on post "+args[0]+"?"); err != nil {
				return err
			}

			if _, err := moderation.New(api).TogglePost(cmd.Context(), args[0], reason); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Post decision changed")
			return nil
		},
	}

	cmd.Flags().StringVar(&reason, "reason", "", "Reason, when rejecting an approved post")
	addYesFlag(cmd, &yes)

	return cmd
}

func newModerationReportsCmd() *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "reports",
		Short: "List user reports by status",
		RunE: func(cmd *cobra.Command, args []string) error {
			switch model.ReportStatus(status) {
			case model.ReportStatusPending, model.ReportStatusApproved, model.ReportStatusRejected:
			default:
				return fmt.Errorf("unknown status %q: use pending, approve or reject", status)
			}

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			board, err := moderation.New(api).Load(cmd.Context())
			if err != nil {
				return err
			}

			items := []reportItem{}
			for _, r := range board.ReportsWith(model.ReportStatus(status)) {
				items = append(items, reportItem{Report: r, Username: board.Username(r.ReportedBy)})
			}

			NewOutput(cmd).Print(items)
			return nil
		},
	}

	cmd.Flags().StringVar(&status, "status", string(model.ReportStatusPending), "Report status: pending, approve, reject")

	return cmd
}

func newModerationReviewCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "review <report-id> <approve|reject|toggle>",
		Short: "Record or reverse a decision on a report",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, action := args[0], args[1]

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			svc := moderation.New(api)

			switch action {
			case "approve", "reject":
				_, err = svc.ReviewReport(cmd.Context(), id, model.ReviewAction(action))
			case "toggle":
				if err := confirm(cmd, yes, "Change the decision on report "+id+"?"); err != nil {
					return err
				}
				_, err = svc.ToggleReport(cmd.Context(), id)
			default:
				return fmt.Errorf("unknown action %q: use approve, reject or toggle", action)
			}
			if changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Report updated")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
