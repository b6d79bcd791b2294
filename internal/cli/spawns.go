package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/distribution"
)

func newSpawnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "spawns",
		Aliases: []string{"distribution"},
		Short:   "Rock distribution point commands",
	}

	cmd.AddCommand(newSpawnsListCmd())
	cmd.AddCommand(newSpawnsCreateCmd())
	cmd.AddCommand(newSpawnsUpdateCmd())
	cmd.AddCommand(newSpawnsDeleteCmd())

	return cmd
}

type spawnFlags struct {
	rockID, rockType, location, description, status string
	latitude, longitude                              float64
}

func (f *spawnFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.rockID, "rock-id", "", "Rock id")
	cmd.Flags().StringVar(&f.rockType, "rock-type", "", "Rock type")
	cmd.Flags().StringVar(&f.location, "location", "", "Location name")
	cmd.Flags().Float64Var(&f.latitude, "lat", 0, "Latitude, -90 to 90")
	cmd.Flags().Float64Var(&f.longitude, "lng", 0, "Longitude, -180 to 180")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.status, "status", model.SpawnStatusPendingReview, "Status: active, pending review")
}

func (f *spawnFlags) apply(cmd *cobra.Command, in *model.SpawnInput) {
	if changed(cmd, "rock-id") {
		in.RockID = strings.TrimSpace(f.rockID)
	}
	if changed(cmd, "rock-type") {
		in.RockType = strings.TrimSpace(f.rockType)
	}
	if changed(cmd, "location") {
		in.Location = strings.TrimSpace(f.location)
	}
	if changed(cmd, "lat") {
		in.Latitude = f.latitude
	}
	if changed(cmd, "lng") {
		in.Longitude = f.longitude
	}
	if changed(cmd, "description") {
		in.Description = strings.TrimSpace(f.description)
	}
	if changed(cmd, "status") {
		in.Status = f.status
	}
}

func newSpawnsListCmd() *cobra.Command {
	var filter distribution.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List distribution points",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := distribution.New(api).List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Match rock type or location")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Filter by status: active, pendingreview")

	return cmd
}

func newSpawnsCreateCmd() *cobra.Command {
	var flags spawnFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a distribution point",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.SpawnInput{Status: flags.status}
			flags.apply(cmd, &in)

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := distribution.New(api).Create(cmd.Context(), in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Distribution point added")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newSpawnsUpdateCmd() *cobra.Command {
	var flags spawnFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a distribution point; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			svc := distribution.New(api)

			all, err := svc.List(cmd.Context(), distribution.Filter{})
			if err != nil {
				return err
			}
			current, err := find(all, args[0], func(s model.Spawn) string { return s.ID })
			if err != nil {
				return err
			}

			in := model.SpawnInput{
				RockID:      current.RockID,
				RockType:    current.RockType,
				Location:    current.Location,
				Latitude:    current.Latitude,
				Longitude:   current.Longitude,
				Description: current.Description,
				Status:      current.Status,
			}
			flags.apply(cmd, &in)
			if _, err := svc.Update(cmd.Context(), current.ID, in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Distribution point updated")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newSpawnsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a distribution point",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Are you sure you want to delete this distribution point?"); err != nil {
				return err
			}

			if _, err := distribution.New(api).Delete(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Distribution point deleted")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
