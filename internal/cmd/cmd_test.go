package cmd

import (
	"bytes"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-session/internal/config"
)

func run(t *testing.T, conf *config.Config, input string, args ...string) (string, error) {
	t.Helper()

	root := Root(
		func(string) *config.Config {
			return conf
		},
		func(*config.Config) *slog.Logger {
			return slog.New(slog.NewTextHandler(io.Discard, nil))
		},
	)

	out := &bytes.Buffer{}
	root.SetArgs(args)
	root.SetIn(strings.NewReader(input))
	root.SetOut(out)
	root.SetErr(io.Discard)

	err := root.Execute()

	return out.String(), err
}

func TestRoot_Commands(t *testing.T) {
	root := Root(nil, nil)

	names := make([]string, 0, len(root.Commands()))
	for _, command := range root.Commands() {
		names = append(names, command.Name())
	}

	assert.Contains(t, names, "play")
	assert.Contains(t, names, "serve")
	assert.NotNil(t, root.PersistentFlags().Lookup("config"))
}

func TestPlay_TwoPlayers(t *testing.T) {
	// Given: X is configured to open
	conf := &config.Config{Game: config.Game{StartingPlayer: "x", BotSymbol: "none"}}

	// When: the top row is played
	text, err := run(t, conf, "1 1\n1 2\n2 1\n2 2\n3 1\n", "play")

	// Then: X wins
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(text, "Winner: X\n"))
}

func TestPlay_BotFlagOverridesConfig(t *testing.T) {
	conf := &config.Config{Game: config.Game{StartingPlayer: "x", BotSymbol: "none"}}

	text, err := run(t, conf, "", "play", "--bot", "x")

	require.NoError(t, err)
	assert.Contains(t, text, "It's the AI's turn!")
	assert.True(t, strings.HasSuffix(text, "Bye!\n"))
}

func TestPlay_InvalidSettings(t *testing.T) {
	t.Run("Bot symbol", func(t *testing.T) {
		conf := &config.Config{Game: config.Game{StartingPlayer: "x"}}

		_, err := run(t, conf, "", "play", "--bot", "z")

		assert.ErrorIs(t, err, config.ErrInvalidBotSymbol)
	})

	t.Run("Starting player", func(t *testing.T) {
		conf := &config.Config{Game: config.Game{StartingPlayer: "nobody", BotSymbol: "none"}}

		_, err := run(t, conf, "", "play")

		assert.Error(t, err)
	})
}

func TestRoot_LogLevelFlag(t *testing.T) {
	conf := &config.Config{LogLevel: "info", Game: config.Game{StartingPlayer: "x", BotSymbol: "none"}}

	_, err := run(t, conf, "", "--log-level", "debug", "play")

	require.NoError(t, err)
	assert.Equal(t, "debug", conf.LogLevel)
}
