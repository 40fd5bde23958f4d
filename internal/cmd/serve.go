package cmd

import (
	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	app "github.com/rocketscienceinc/tictactoe-session/internal"
)

// tictactoe serve
func Serve(env *Env) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Host a multiplayer session",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`serve runs one session: when a round is decided the
			next one starts after a countdown, with a new starting
			player chosen by game.starting-player.

			Moves are typed on standard input as "<player> <column> <row>".
			The session state and the scoreboard are served over HTTP on
			http-port and a live feed of the session is streamed over a
			websocket on socket-port. Finished rounds are kept in Redis.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.RunApp(env.Logger, env.Config, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}
