package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/announcements"
)

func newAnnouncementsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "announcements",
		Short: "Announcement commands",
	}

	cmd.AddCommand(newAnnouncementsListCmd())
	cmd.AddCommand(newAnnouncementsCreateCmd())
	cmd.AddCommand(newAnnouncementsUpdateCmd())
	cmd.AddCommand(newAnnouncementsDeleteCmd())

	return cmd
}

// announcementFlags are the editable fields of an announcement
type announcementFlags struct {
	title, description, kind, publishDate string
}

func (f *announcementFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.kind, "type", string(model.AnnouncementUpdate), "Type: update, feature, maintenance, event")
	cmd.Flags().StringVar(&f.publishDate, "publish-date", "", "Publish date as YYYY-MM-DD (default today)")
}

// apply overlays the flags the user set onto in
func (f *announcementFlags) apply(cmd *cobra.Command, in *model.AnnouncementInput) error {
	if changed(cmd, "title") {
		in.Title = strings.TrimSpace(f.title)
	}
	if changed(cmd, "description") {
		in.Description = strings.TrimSpace(f.description)
	}
	if changed(cmd, "type") {
		in.Type = model.AnnouncementType(f.kind)
	}
	if changed(cmd, "publish-date") {
		date := model.ParseTimestamp(f.publishDate)
		if date.IsZero() {
			return fmt.Errorf("invalid publish date %q: use YYYY-MM-DD", f.publishDate)
		}
		in.PublishDate = date
	}
	return nil
}

func newAnnouncementsListCmd() *cobra.Command {
	var search string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List announcements",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := announcements.New(api, clk).List(cmd.Context(), search)
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Match title or description")

	return cmd
}

func newAnnouncementsCreateCmd() *cobra.Command {
	var flags announcementFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Publish a new announcement",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.AnnouncementInput{
				Type:        model.AnnouncementType(flags.kind),
				PublishDate: model.NewTimestamp(clk.Now()),
			}
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := announcements.New(api, clk).Create(cmd.Context(), in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Announcement created")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newAnnouncementsUpdateCmd() *cobra.Command {
	var flags announcementFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit an announcement; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			svc := announcements.New(api, clk)

			all, err := svc.List(cmd.Context(), "")
			if err != nil {
				return err
			}
			current, err := find(all, args[0], func(a model.Announcement) string { return a.ID })
			if err != nil {
				return err
			}

			in := model.AnnouncementInput{
				Title:       current.Title,
				Description: current.Description,
				Type:        current.Type,
				PublishDate: current.PublishDate,
			}
			if err := flags.apply(cmd, &in); err != nil {
				return err
			}
			if _, err := svc.Update(cmd.Context(), current.ID, in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Announcement updated")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newAnnouncementsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an announcement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Are you sure you want to delete this announcement?"); err != nil {
				return err
			}

			if _, err := announcements.New(api, clk).Delete(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Announcement deleted")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
