package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mcoot/rockquest-admin/internal/backend"
	"github.com/mcoot/rockquest-admin/internal/dependencies/clock"
	"github.com/mcoot/rockquest-admin/internal/guard"
)

var (
	cfg     *Config
	tokens  *FileTokenStore
	client  *backend.Client
	session *guard.Session

	// clk stamps new announcements and checks login token expiry
	clk clock.Clock = clock.New()
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "rqadmin",
		Short: "CLI tool for RockQuest administration",
		Long: `rqadmin is a CLI tool for administering RockQuest through its REST backend.

It covers everything the admin dashboard does: user suspension, moderation of
submitted rocks and reports, posts, announcements, geological facts, the rock
database, quests and rock distribution points.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q: use text or json", cfg.Output)
			}

			logger := newLogger(cmd.ErrOrStderr(), cfg.Verbose)
			client = backend.NewClient(backend.Config{BaseURL: cfg.ServerURL}, logger)
			tokens = NewFileTokenStore(cfg)
			session = guard.New(client, tokens, logger)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Backend URL (env: RQADMIN_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Backend token (env: RQADMIN_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: RQADMIN_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log backend requests to stderr")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newWhoamiCmd())
	rootCmd.AddCommand(newDashboardCmd())
	rootCmd.AddCommand(newUsersCmd())
	rootCmd.AddCommand(newModerationCmd())
	rootCmd.AddCommand(newPostsCmd())
	rootCmd.AddCommand(newAnnouncementsCmd())
	rootCmd.AddCommand(newFactsCmd())
	rootCmd.AddCommand(newRocksCmd())
	rootCmd.AddCommand(newQuestsCmd())
	rootCmd.AddCommand(newSpawnsCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		NewOutput(rootCmd).PrintError(err)
		stop()
		os.Exit(1)
	}
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
