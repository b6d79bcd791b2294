package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/quests"
)

func newQuestsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quests",
		Short: "Quest management commands",
	}

	cmd.AddCommand(newQuestsListCmd())
	cmd.AddCommand(newQuestsCreateCmd())
	cmd.AddCommand(newQuestsUpdateCmd())
	cmd.AddCommand(newQuestsDeleteCmd())

	return cmd
}

type questFlags struct {
	title, description, kind, difficulty, reward, location, status string
}

func (f *questFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.title, "title", "", "Title")
	cmd.Flags().StringVar(&f.description, "description", "", "Description")
	cmd.Flags().StringVar(&f.kind, "type", string(model.QuestTypeGPS), "Type: gps-based, collection, identification")
	cmd.Flags().StringVar(&f.difficulty, "difficulty", string(model.QuestDifficultyEasy), "Difficulty: easy, medium, hard")
	cmd.Flags().StringVar(&f.reward, "reward", "", "Reward")
	cmd.Flags().StringVar(&f.location, "location", "", "Location")
	cmd.Flags().StringVar(&f.status, "status", string(model.QuestStatusDraft), "Status: active, draft, completed")
}

func (f *questFlags) apply(cmd *cobra.Command, in *model.QuestInput) {
	if changed(cmd, "title") {
		in.Title = strings.TrimSpace(f.title)
	}
	if changed(cmd, "description") {
		in.Description = strings.TrimSpace(f.description)
	}
	if changed(cmd, "type") {
		in.Type = model.QuestType(f.kind)
	}
	if changed(cmd, "difficulty") {
		in.Difficulty = model.QuestDifficulty(f.difficulty)
	}
	if changed(cmd, "reward") {
		in.Reward = strings.TrimSpace(f.reward)
	}
	if changed(cmd, "location") {
		in.Location = strings.TrimSpace(f.location)
	}
	if changed(cmd, "status") {
		in.Status = model.QuestStatus(f.status)
	}
}

func newQuestsListCmd() *cobra.Command {
	var filter quests.Filter

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List quests",
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}

			result, err := quests.New(api).List(cmd.Context(), filter)
			if err != nil {
				return err
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter.Search, "search", "", "Match title or description")
	cmd.Flags().StringVar(&filter.Status, "status", "", "Filter by status")

	return cmd
}

func newQuestsCreateCmd() *cobra.Command {
	var flags questFlags

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a quest",
		RunE: func(cmd *cobra.Command, args []string) error {
			in := model.QuestInput{
				Type:       model.QuestType(flags.kind),
				Difficulty: model.QuestDifficulty(flags.difficulty),
				Status:     model.QuestStatus(flags.status),
			}
			flags.apply(cmd, &in)

			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if _, err := quests.New(api).Create(cmd.Context(), in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Quest created")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newQuestsUpdateCmd() *cobra.Command {
	var flags questFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Edit a quest; unset flags keep their current values",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			svc := quests.New(api)

			all, err := svc.List(cmd.Context(), quests.Filter{})
			if err != nil {
				return err
			}
			current, err := find(all, args[0], func(q model.Quest) string { return q.ID })
			if err != nil {
				return err
			}

			in := model.QuestInput{
				Title:       current.Title,
				Description: current.Description,
				Type:        current.Type,
				Difficulty:  current.Difficulty,
				Reward:      current.Reward,
				Location:    current.Location,
				Status:      current.Status,
			}
			flags.apply(cmd, &in)
			if _, err := svc.Update(cmd.Context(), current.ID, in); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Quest updated")
			return nil
		},
	}

	flags.register(cmd)

	return cmd
}

func newQuestsDeleteCmd() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a quest",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			api, err := screenAPI(cmd.Context())
			if err != nil {
				return err
			}
			if err := confirm(cmd, yes, "Are you sure you want to delete this quest?"); err != nil {
				return err
			}

			if _, err := quests.New(api).Delete(cmd.Context(), args[0]); changeFailed(err) {
				return err
			}

			NewOutput(cmd).PrintMessage("Quest deleted")
			return nil
		},
	}

	addYesFlag(cmd, &yes)

	return cmd
}
