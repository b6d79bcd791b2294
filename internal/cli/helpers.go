package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
)

var errAborted = errors.New("aborted")

// screenAPI returns the guarded endpoints, or ErrLoginRequired before any
// request is made when there is no token
func screenAPI(ctx context.Context) (*backend.API, error) {
	if err := session.Check(ctx); err != nil {
		return nil, err
	}
	return session.API(), nil
}

// confirm asks before a destructive action unless --yes was given
func confirm(cmd *cobra.Command, yes bool, prompt string) error {
	if yes {
		return nil
	}

	_, _ = fmt.Fprintf(cmd.ErrOrStderr(), "%s [y/N] ", prompt)
	answer, _ := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return nil
	}
	return errAborted
}

// changeFailed reports whether a mutation did not happen. A failed reload of
// the list afterwards still counts as done.
func changeFailed(err error) bool {
	return err != nil && !errors.Is(err, model.ErrReloadFailed)
}

func addYesFlag(cmd *cobra.Command, yes *bool) {
	cmd.Flags().BoolVarP(yes, "yes", "y", false, "Do not ask for confirmation")
}

// find returns the item with id, for updates that start from the current values
func find[T any](items []T, id string, idOf func(T) string) (T, error) {
	for _, item := range items {
		if idOf(item) == id {
			return item, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("%s not found", id)
}

func changed(cmd *cobra.Command, flag string) bool {
	return cmd.Flags().Changed(flag)
}
