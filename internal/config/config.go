// Package config loads process configuration from an env file and the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"timestamp-bot/internal/timestamp"
)

const (
	DevEnvFile    = "dev.env"
	DeployEnvFile = "deploy.env"
)

type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required,notEmpty"`
	// GuildID registers commands for one guild only; empty registers globally.
	GuildID string `env:"GUILD_ID"`
	Debug   bool   `env:"TT_DEBUG"`

	DefaultTimezone string `env:"DEFAULT_TIMEZONE" envDefault:"utc+1"`
	DevMention      string `env:"DEV_MENTION" envDefault:"the bot maintainer"`
	DevPronoun      string `env:"DEV_PRONOUN" envDefault:"them"`

	HTTPAddr string `env:"HTTP_ADDR"`

	LogLevel          string `env:"LOG_LEVEL"`
	LogFile           string `env:"LOG_FILE"`
	LogFileMaxSizeMB  int    `env:"LOG_FILE_MAX_SIZE_MB" envDefault:"10"`
	LogFileMaxBackups int    `env:"LOG_FILE_MAX_BACKUPS" envDefault:"3"`

	// EnvFile is the file Load tried; EnvFileErr is why it could not be read.
	EnvFile    string `env:"-"`
	EnvFileErr error  `env:"-"`
}

// EnvFile picks the env file for the given debug mode.
func EnvFile(debug bool) string {
	if debug {
		return DevEnvFile
	}
	return DeployEnvFile
}

// Load reads dev.env or deploy.env from the working directory, then the
// environment. A missing file is not an error; variables already set in the
// environment win over the file.
func Load() (*Config, error) {
	return LoadDir(".")
}

func LoadDir(dir string) (*Config, error) {
	debug, _ := strconv.ParseBool(os.Getenv("TT_DEBUG"))
	file := filepath.Join(dir, EnvFile(debug))
	fileErr := godotenv.Load(file)

	cfg, err := parse(env.Options{})
	if err != nil {
		return nil, err
	}
	cfg.EnvFile = file
	cfg.EnvFileErr = fileErr
	return cfg, nil
}

// FromMap parses vars instead of the process environment.
func FromMap(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.DefaultOffset(); err != nil {
		return nil, fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}
	return &cfg, nil
}

// DefaultOffset resolves DEFAULT_TIMEZONE against UTC.
func (c *Config) DefaultOffset() (timestamp.Offset, error) {
	return timestamp.Resolve(c.DefaultTimezone, timestamp.UTC)
}

// Level is the log level to run at: LOG_LEVEL when set, else debug in debug
// mode and info otherwise.
func (c *Config) Level() string {
	if c.LogLevel != "" {
		return c.LogLevel
	}
	if c.Debug {
		return "debug"
	}
	return "info"
}
