package cmd

import (
	"log/slog"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-session/internal/config"
)

// Env is filled before any subcommand runs.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

type (
	ConfigLoader  func(path string) *config.Config
	LoggerFactory func(conf *config.Config) *slog.Logger
)

func Root(loadConfig ConfigLoader, newLogger LoggerFactory) *cobra.Command {
	env := &Env{}

	root := &cobra.Command{
		Use:   "tictactoe",
		Short: "Play tic-tac-toe on the console or host a multiplayer session",
		Long: heredoc.Doc(`tictactoe plays the classic 3x3 game.

			"play" runs a single game in this terminal, against another
			person or the built-in player. "serve" hosts a session where
			rounds follow each other with a short countdown in between.

			Settings are read from --config, ./config.yml or
			$XDG_CONFIG_HOME/tictactoe/config.yml, in that order.`),
		Args: cobra.NoArgs,

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			path, _ := cmd.Flags().GetString("config")

			env.Config = loadConfig(path)

			if level, _ := cmd.Flags().GetString("log-level"); level != "" {
				env.Config.LogLevel = level
			}

			env.Logger = newLogger(env.Config)
		},
	}

	root.PersistentFlags().StringP("config", "c", "", "Path to the config file")
	root.PersistentFlags().String("log-level", "", "Override the configured log level (debug, info, warn, error)")

	root.AddCommand(Play(env))
	root.AddCommand(Serve(env))

	return root
}
