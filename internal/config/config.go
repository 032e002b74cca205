package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/seabattle/internal/apperror"
)

type Config struct {
	LogLevel  string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"warn"`
	Seed      int64     `yaml:"seed" env:"SEED" env-default:"0"`
	Board     Board     `yaml:"board"`
	Placement Placement `yaml:"placement"`
	Redis     Redis     `yaml:"redis"`
}

type Board struct {
	Size int `yaml:"size" env:"BOARD_SIZE" env-default:"6"`
}

// Placement tunes the random fleet placer.
// Heads are sampled from [HeadSampleMin, board size] inclusive. Draws of 0 are
// rejected by the board and count against the retry budget.
type Placement struct {
	RetryBudget   int `yaml:"retry-budget" env:"PLACEMENT_RETRY_BUDGET" env-default:"2000"`
	HeadSampleMin int `yaml:"head-sample-min" env:"PLACEMENT_HEAD_SAMPLE_MIN" env-default:"0"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port    string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// MustLoad - loads config.yml when it exists, otherwise environment and defaults only.
func MustLoad(path string) *Config {
	conf, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return conf
}

func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.Board.Size < 1 {
		return fmt.Errorf("%w: board size must be positive, got %d", apperror.ErrInvalidConfig, that.Board.Size)
	}

	if that.Placement.RetryBudget < 1 {
		return fmt.Errorf("%w: retry budget must be positive, got %d", apperror.ErrInvalidConfig, that.Placement.RetryBudget)
	}

	if that.Placement.HeadSampleMin > that.Board.Size {
		return fmt.Errorf("%w: head sample range [%d, %d] misses the board",
			apperror.ErrInvalidConfig, that.Placement.HeadSampleMin, that.Board.Size)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
