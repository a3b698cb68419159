package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
	logger = slog.New(slog.NewTextHandler(io.Discard, nil))
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scrabble",
		Short: "CLI tool for the crossword board game server",
		Long: `scrabble talks to the crossword board game JSON API.

It creates games, plays, previews and undoes moves, follows games live and
queries the dictionary. The replay command scores a move log locally without
a server.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cfg.Output != "text" && cfg.Output != "json" {
				return fmt.Errorf("unknown output format %q, want text or json", cfg.Output)
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			client = NewClient(cfg.ServerURL, logger)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SCRABBLE_SERVER)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Log requests to stderr")

	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newWordCmd())
	rootCmd.AddCommand(newReplayCmd())

	return rootCmd
}

func newOutput(cmd *cobra.Command) *Output {
	return NewOutput(cfg.Output, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// Execute runs the root command
func Execute() {
	root := NewRootCmd()
	if err := root.Execute(); err != nil {
		NewOutput(cfg.Output, root.OutOrStdout(), root.ErrOrStderr()).PrintError(err)
		os.Exit(1)
	}
}
