package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Opponent Opponent `yaml:"opponent"`
}

type Opponent struct {
	Label     string        `yaml:"label" env:"OPPONENT_LABEL" env-default:"Computer"`
	MoveDelay time.Duration `yaml:"move-delay" env:"OPPONENT_MOVE_DELAY" env-default:"0s"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}
