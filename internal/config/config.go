// Package config loads karmalog configuration from yaml files, .env
// files, and environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"

	kerrors "github.com/karmabot/karmalog/internal/errors"
)

// Config holds all configuration settings
type Config struct {
	// Credits document refresh
	Credits CreditsConfig `yaml:"credits" mapstructure:"credits"`

	// Activity feed polling
	Feeds FeedsConfig `yaml:"feeds" mapstructure:"feeds"`

	// GitHub commit sources
	GitHub GitHubConfig `yaml:"github" mapstructure:"github"`

	// Seen-event store
	Store StoreConfig `yaml:"store" mapstructure:"store"`

	// Logging
	Log LogConfig `yaml:"log" mapstructure:"log"`
}

type CreditsConfig struct {
	URL      string        `yaml:"url" mapstructure:"url"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

type FeedsConfig struct {
	Interval  time.Duration `yaml:"interval" mapstructure:"interval"`
	RateLimit int           `yaml:"rate_limit" mapstructure:"rate_limit"` // Requests per second
	Entries   []FeedEntry   `yaml:"entries" mapstructure:"entries"`
}

// FeedEntry pairs a feed URL with one delivery target.
type FeedEntry struct {
	URL     string `yaml:"url" mapstructure:"url"`
	Network string `yaml:"network" mapstructure:"network"`
	Channel string `yaml:"channel" mapstructure:"channel"`
}

type GitHubConfig struct {
	Token     string       `yaml:"token" mapstructure:"token"`
	RateLimit int          `yaml:"rate_limit" mapstructure:"rate_limit"`
	Repos     []GitHubRepo `yaml:"repos" mapstructure:"repos"`
}

// GitHubRepo names a repository to watch and its delivery target.
type GitHubRepo struct {
	Owner   string `yaml:"owner" mapstructure:"owner"`
	Name    string `yaml:"name" mapstructure:"name"`
	Network string `yaml:"network" mapstructure:"network"`
	Channel string `yaml:"channel" mapstructure:"channel"`
}

type StoreConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

type LogConfig struct {
	File string `yaml:"file" mapstructure:"file"`
	JSON bool   `yaml:"json" mapstructure:"json"`
}

// Default returns default configuration
func Default() *Config {
	homeDir, _ := os.UserHomeDir()
	return &Config{
		Credits: CreditsConfig{
			Interval: 6 * time.Hour,
		},
		Feeds: FeedsConfig{
			Interval:  5 * time.Minute,
			RateLimit: 1,
		},
		GitHub: GitHubConfig{
			RateLimit: 1,
		},
		Store: StoreConfig{
			Path: filepath.Join(homeDir, ".karmalog", "seen.db"),
		},
	}
}

// Load loads configuration from file, environment, and .env files
func Load(path string) (*Config, error) {
	loadEnvFiles()

	v := viper.New()
	v.SetConfigType("yaml")

	cfg := Default()
	v.SetDefault("credits", cfg.Credits)
	v.SetDefault("feeds", cfg.Feeds)
	v.SetDefault("github", cfg.GitHub)
	v.SetDefault("store", cfg.Store)
	v.SetDefault("log", cfg.Log)

	v.SetEnvPrefix("KARMALOG")
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".karmalog")
		v.AddConfigPath(".")
		homeDir, _ := os.UserHomeDir()
		v.AddConfigPath(filepath.Join(homeDir, ".karmalog"))
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, kerrors.NewConfig("failed to read config", err)
		}
		// No config file is fine, defaults apply.
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, kerrors.NewConfig("failed to unmarshal config", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would only fail later at runtime.
func (c *Config) Validate() error {
	if c.Credits.Interval <= 0 {
		return kerrors.NewConfig("credits.interval must be positive", nil)
	}
	if c.Feeds.Interval <= 0 {
		return kerrors.NewConfig("feeds.interval must be positive", nil)
	}
	for _, entry := range c.Feeds.Entries {
		if entry.Network == "" || entry.Channel == "" {
			return kerrors.NewConfig(fmt.Sprintf("feed %s: network and channel are required", entry.URL), nil)
		}
	}
	for _, repo := range c.GitHub.Repos {
		if repo.Owner == "" || repo.Name == "" {
			return kerrors.NewConfig("github repo: owner and name are required", nil)
		}
	}
	return nil
}
