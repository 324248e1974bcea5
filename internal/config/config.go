package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/connectfour-backend/internal/entity"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis    `yaml:"redis"`
	Board    Board    `yaml:"board"`
	Palette  []string `yaml:"palette" env-default:"red,blue"`
	CORS     CORS     `yaml:"cors"`
}

type Redis struct {
	Host     string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	MatchTTL time.Duration `yaml:"match-ttl" env-default:"24h"`
}

type Board struct {
	Height int `yaml:"height" env-default:"6"`
	Width  int `yaml:"width" env-default:"7"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed-origins" env-default:"*"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	if err := config.Validate(); err != nil {
		panic(fmt.Errorf("invalid config: %w", err))
	}

	return config
}

func (that *Config) Validate() error {
	if that.Board.Height <= 0 || that.Board.Width <= 0 {
		return fmt.Errorf("board size %dx%d must be positive", that.Board.Height, that.Board.Width)
	}

	if _, err := that.DefaultPalette(); err != nil {
		return err
	}

	return nil
}

// DefaultPalette - the colors used when a page starts a match without picking its own.
func (that *Config) DefaultPalette() (entity.Palette, error) {
	if len(that.Palette) != 2 {
		return entity.Palette{}, fmt.Errorf("palette must list two colors, got %d", len(that.Palette))
	}

	palette := entity.Palette{that.Palette[0], that.Palette[1]}
	if err := palette.Validate(); err != nil {
		return entity.Palette{}, err
	}

	return palette, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
