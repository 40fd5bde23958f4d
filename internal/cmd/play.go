package cmd

import (
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/rocketscienceinc/tictactoe-session/internal/config"
	"github.com/rocketscienceinc/tictactoe-session/internal/console"
	"github.com/rocketscienceinc/tictactoe-session/internal/service"
)

// tictactoe play
func Play(env *Env) *cobra.Command {
	play := &cobra.Command{
		Use:   "play",
		Short: "Play a single game in the terminal",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play prints the board and asks for a move until the game
			is decided. Moves are entered as "<column> <row>", both
			counted from 1 as printed around the board.

			With --bot x or --bot o the built-in player takes that
			symbol and never loses. Without it two people share the
			keyboard.`),
		RunE: func(cmd *cobra.Command, _ []string) error {
			symbol := env.Config.Game.BotSymbol
			if cmd.Flags().Changed("bot") {
				symbol, _ = cmd.Flags().GetString("bot")
			}

			botSymbol, withBot, err := config.ParseBotSymbol(symbol)
			if err != nil {
				return err
			}

			policy, err := env.Config.Game.Policy()
			if err != nil {
				return err
			}

			var bot service.BotService
			if withBot {
				bot = service.NewBotService(botSymbol)
			}

			game := console.New(env.Logger, policy, bot, cmd.InOrStdin(), cmd.OutOrStdout())

			_, err = game.Run(cmd.Context())
			if errors.Is(err, console.ErrInputClosed) {
				fmt.Fprintln(cmd.OutOrStdout(), "Bye!")
				return nil
			}

			return err
		},
	}

	play.Flags().String("bot", "none", "Symbol of the built-in player: x, o or none")

	return play
}
