package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/model"
	"github.com/mcoot/rockquest-admin/internal/services/auth"
)

// whoami describes the stored token
type whoami struct {
	Server    string     `json:"server"`
	Email     string     `json:"email,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

func newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the backend token",
		Long: `Log in with an administrator email and password. The password is read from
--password, then RQADMIN_PASSWORD, then prompted for.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			email = strings.TrimSpace(email)
			if email == "" {
				return errors.New("--email is required")
			}
			if password == "" {
				password = os.Getenv("RQADMIN_PASSWORD")
			}
			if password == "" {
				var err error
				if password, err = readPassword(cmd); err != nil {
					return err
				}
			}

			resp, err := backend.NewAPI(client).Login(cmd.Context(), email, password)
			if err != nil {
				return errors.New(backend.Message(err, "Invalid email or password"))
			}
			token := resp.BearerToken()
			if token == "" {
				return model.ErrTokenNotReturned
			}
			if exp := auth.ReadClaims(token).ExpiresAt; !exp.IsZero() && !exp.After(clk.Now()) {
				return model.ErrTokenExpired
			}

			if err := tokens.Save(token); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			NewOutput(cmd).PrintMessage("Logged in as " + email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Administrator email")
	cmd.Flags().StringVar(&password, "password", "", "Administrator password (env: RQADMIN_PASSWORD)")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored token",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := tokens.Clear(cmd.Context()); err != nil {
				return err
			}
			NewOutput(cmd).PrintMessage("Logged out")
			return nil
		},
	}
}

func newWhoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show who the stored token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := session.Check(cmd.Context()); err != nil {
				return err
			}
			token, err := tokens.Token(cmd.Context())
			if err != nil {
				return err
			}

			claims := auth.ReadClaims(token)
			result := whoami{Server: client.BaseURL(), Email: claims.Email, Subject: claims.Subject}
			if !claims.ExpiresAt.IsZero() {
				result.ExpiresAt = &claims.ExpiresAt
			}

			NewOutput(cmd).Print(result)
			return nil
		},
	}
}

// readPassword prompts for a password, without echo on a terminal
func readPassword(cmd *cobra.Command) (string, error) {
	_, _ = fmt.Fprint(cmd.ErrOrStderr(), "Password: ")

	if f, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		b, err := term.ReadPassword(int(f.Fd()))
		_, _ = fmt.Fprintln(cmd.ErrOrStderr())
		if err != nil {
			return "", fmt.Errorf("failed to read password: %w", err)
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}
