package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/diamondburned/arikawa/v3/discord"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Default values applied before the configuration file and environment are read.
const (
	DefaultDialect          = "sqlite"
	DefaultStorage          = "./db.sqlite"
	DefaultSlowThreshold    = 200 * time.Millisecond
	DefaultCommandsDir      = "commands"
	DefaultEventsDir        = "events"
	DefaultUserCacheSize    = 256
	DefaultLogLevel         = "info"
	DefaultShutdownDeadline = 30 * time.Second
)

// DiscordConfig stores Discord specific configurations.
type DiscordConfig struct {
	BotToken      string            `yaml:"bot_token" env:"TOKEN"`
	ApplicationID discord.Snowflake `yaml:"application_id" env:"CLIENT_ID"`
	GuildIDs      []string          `yaml:"guild_ids" env:"GUILD_ID" envSeparator:","`
}

// DatabaseConfig describes the local store opened at startup.
type DatabaseConfig struct {
	Dialect       string        `yaml:"dialect" env:"DATABASE_DIALECT"`
	Storage       string        `yaml:"storage" env:"DATABASE_STORAGE"`
	Logging       bool          `yaml:"logging" env:"DATABASE_LOGGING"`
	SlowThreshold time.Duration `yaml:"slow_threshold"`
	UserCacheSize int           `yaml:"user_cache_size"`
}

// CommandsConfig locates command modules.
type CommandsConfig struct {
	Dir string `yaml:"dir" env:"COMMANDS_DIR"`
	// StrictNames turns a duplicate command name into a startup error
	// instead of a warning.
	StrictNames bool `yaml:"strict_names"`
}

// EventsConfig locates event modules.
type EventsConfig struct {
	Dir string `yaml:"dir" env:"EVENTS_DIR"`
}

// BootstrapConfig holds the startup failure policy.
type BootstrapConfig struct {
	FatalDatabaseError bool          `yaml:"fatal_database_error"`
	ShutdownTimeout    time.Duration `yaml:"shutdown_timeout"`
}

// Config stores the application configuration.
type Config struct {
	Discord   DiscordConfig   `yaml:"discord"`
	Database  DatabaseConfig  `yaml:"database"`
	Commands  CommandsConfig  `yaml:"commands"`
	Events    EventsConfig    `yaml:"events"`
	Bootstrap BootstrapConfig `yaml:"bootstrap"`
	LogLevel  string          `yaml:"log_level" env:"LOG_LEVEL"`
}

// Paths names the files the configuration is read from. Empty fields fall
// back to "config.yaml" and ".env"; both files are optional.
type Paths struct {
	File    string
	EnvFile string
}

// Default returns a configuration with every default applied.
func Default() *Config {
	return &Config{
		Database: DatabaseConfig{
			Dialect:       DefaultDialect,
			Storage:       DefaultStorage,
			SlowThreshold: DefaultSlowThreshold,
			UserCacheSize: DefaultUserCacheSize,
		},
		Commands:  CommandsConfig{Dir: DefaultCommandsDir},
		Events:    EventsConfig{Dir: DefaultEventsDir},
		Bootstrap: BootstrapConfig{ShutdownTimeout: DefaultShutdownDeadline},
		LogLevel:  DefaultLogLevel,
	}
}

// LoadConfig loads the configuration: defaults, then the YAML file, then
// the .env file, then the process environment.
func LoadConfig(paths Paths) (*Config, error) {
	file := paths.File
	if file == "" {
		file = "config.yaml"
	}
	envFile := paths.EnvFile
	if envFile == "" {
		envFile = ".env"
	}

	cfg := Default()

	data, err := os.ReadFile(file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", file, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return nil, fmt.Errorf("failed to read config file %s: %w", file, err)
	}

	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	cfg.applyDefaults()

	return cfg, nil
}

// applyDefaults restores defaults that a config file blanked out.
func (c *Config) applyDefaults() {
	d := Default()
	if c.Database.Dialect == "" {
		c.Database.Dialect = d.Database.Dialect
	}
	if c.Database.Storage == "" {
		c.Database.Storage = d.Database.Storage
	}
	if c.Database.UserCacheSize <= 0 {
		c.Database.UserCacheSize = d.Database.UserCacheSize
	}
	if c.Commands.Dir == "" {
		c.Commands.Dir = d.Commands.Dir
	}
	if c.Events.Dir == "" {
		c.Events.Dir = d.Events.Dir
	}
	if c.Bootstrap.ShutdownTimeout <= 0 {
		c.Bootstrap.ShutdownTimeout = d.Bootstrap.ShutdownTimeout
	}
	if c.LogLevel == "" {
		c.LogLevel = d.LogLevel
	}
}

// ApplicationID returns the configured application ID as an AppID.
func (c *Config) ApplicationID() discord.AppID {
	return discord.AppID(c.Discord.ApplicationID)
}

// GuildIDs parses the configured guild IDs. Invalid entries are returned in
// the second value so callers can log them.
func (c *Config) GuildIDs() ([]discord.GuildID, []string) {
	var (
		ids     []discord.GuildID
		invalid []string
	)
	for _, raw := range c.Discord.GuildIDs {
		sf, err := discord.ParseSnowflake(raw)
		if err != nil || !sf.IsValid() {
			invalid = append(invalid, raw)

			continue
		}
		ids = append(ids, discord.GuildID(sf))
	}

	return ids, invalid
}
