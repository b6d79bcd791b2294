package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/rocks"
)

func newRocksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rocks",
		Short: "Rock database commands",
	}

	cmd.AddCommand(newRocksListCmd())
	cmd.AddCommand(newRocksCreateCmd())
	cmd.AddCommand(newRocksUpdateCmd())
	cmd.AddCommand(newRocksDeleteCmd())

	return cmd
}

type rockFlags struct {
	name, kind, description, image string
}

func (f *rockFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.name, "name", "", "Rock name")
	cmd.Flags().StringVar(&f.kind, "type", "", "Type: igneous, sedimentary, metamorphic")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.image, "image", "", "Image URL")
}

func (f *rockFlags) apply(cmd *cobra.Command, in *model.RockInput) {
	if changed(cmd, "name") {
		in.Name = strings.TrimSpace(f.name)
	}
	if changed(cmd, "type") {
		in.Type = model.RockType(f.kind)
	}
	if changed(cmd, "description") {
		in.Description = strings.TrimSpace(f.description)
	}
	if changed(cmd, "image") {
		in.Image = strings.TrimSpace(f.image)
	}
}

func newRocksListCmd() *cobra.Command {
	var filter rocks.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := rocks.New(api).List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Match name or type")
	cmd.Flags().StringVar(&filter.Type, "type", "", "Filter by type")

	return cmd
}

func newRocksCreateCmd() *cobra.Command {
	var flags rockFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a rock",
		RunE: func(cmd *cobra.Command, args []string) error {
			var in model.RockInput
			flags.apply(cmd, &in)

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := rocks.New(api).Create(cmd.Context(), in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Rock added")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newRocksUpdateCmd() *cobra.Command {
	var flags rockFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a rock; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			svc := rocks.New(api)

			all, err := svc.List(cmd.Context(), rocks.Filter{})
			if err != nil {
				return err
			}
			current, err := find(all, args[0], func(r model.Rock) string { return r.ID })
			if err != nil {
				return err
			}

			in := model.RockInput{
				Name:        current.Name,
				Type:        current.Type,
				Description: current.Description,
				Image:       current.Image,
			}
			flags.apply(cmd, &in)
			if _, err := svc.Update(cmd.Context(), current.ID, in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Rock updated")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newRocksDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a rock",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Are you sure you want to delete this rock?"); err != nil {
				return err
			}

			if _, err := rocks.New(api).Delete(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Rock deleted")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
