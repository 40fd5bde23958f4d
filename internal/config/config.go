package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-session/internal/entity"
	"github.com/rocketscienceinc/tictactoe-session/internal/tictactoe"
)

const (
	fileName    = "config.yml"
	xdgFileName = "tictactoe/" + fileName
)

var ErrInvalidBotSymbol = errors.New("bot symbol must be x, o or none")

type Config struct {
	LogLevel   string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string  `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string  `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Redis      Redis   `yaml:"redis"`
	Game       Game    `yaml:"game"`
	Session    Session `yaml:"session"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	StartingPlayer string `yaml:"starting-player" env:"GAME_STARTING_PLAYER" env-default:"random"`
	// Seed of the random starting player; 0 seeds from the clock.
	Seed      int64  `yaml:"seed" env:"GAME_SEED" env-default:"0"`
	BotSymbol string `yaml:"bot-symbol" env:"GAME_BOT_SYMBOL" env-default:"none"`
}

type Session struct {
	CountdownSeconds int           `yaml:"countdown-seconds" env:"SESSION_COUNTDOWN_SECONDS" env-default:"5"`
	TickInterval     time.Duration `yaml:"tick-interval" env:"SESSION_TICK_INTERVAL" env-default:"1s"`
}

// MustLoad - load all configurations, see Load.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load - reads path, or the first config.yml found in the working directory
// and then in the XDG config directories. Without a file only the environment is used.
func Load(path string) (*Config, error) {
	config := &Config{}

	if path == "" {
		path = lookup()
	}

	if path == "" {
		if err := cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file %s: %w", path, err)
	}

	return config, nil
}

func lookup() string {
	if _, err := os.Stat(fileName); err == nil {
		return fileName
	}

	if path, err := xdg.SearchConfigFile(xdgFileName); err == nil {
		return path
	}

	return ""
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Policy - builds the starting-player policy.
func (that *Game) Policy() (tictactoe.StartingPlayerPolicy, error) {
	seed := that.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	policy, err := tictactoe.ParsePolicy(that.StartingPlayer, seed)
	if err != nil {
		return nil, fmt.Errorf("game.starting-player: %w", err)
	}

	return policy, nil
}

// Bot - returns the symbol the automated player takes, or false when there is none.
func (that *Game) Bot() (entity.Cell, bool, error) {
	return ParseBotSymbol(that.BotSymbol)
}

func ParseBotSymbol(value string) (entity.Cell, bool, error) {
	if strings.EqualFold(strings.TrimSpace(value), "none") {
		return entity.EmptyCell, false, nil
	}

	symbol, err := entity.ParseCell(value)
	if err != nil {
		return entity.EmptyCell, false, fmt.Errorf("%w: %q", ErrInvalidBotSymbol, value)
	}

	return symbol, symbol.IsPlayer(), nil
}
