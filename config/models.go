package config

import (
	"errors"
	"fmt"
	"time"
)

// Config holds application configuration.
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	HTTP    HTTPConfig    `mapstructure:"http"`
	Logging LoggingConfig `mapstructure:"logging"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Cache   CacheConfig   `mapstructure:"cache"`
	GitHub  GitHubConfig  `mapstructure:"github"`
	Slack   SlackConfig   `mapstructure:"slack"`
	Gemini  GeminiConfig  `mapstructure:"gemini"`
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Server.Port == 0 {
		return errors.New("server.port is required")
	}
	if c.Slack.BotToken == "" {
		return errors.New("slack.bot_token is required")
	}
	if c.Slack.ChannelID == "" {
		return errors.New("slack.channel_id is required")
	}
	if c.Gemini.APIKey == "" {
		return errors.New("gemini.api_key is required")
	}
	if c.GitHub.Owner == "" {
		return errors.New("github.owner is required")
	}
	if c.GitHub.RequireToken && c.GitHub.Token == "" {
		return errors.New("github.token is required when github.require_token is set")
	}
	return nil
}

// ServerAddr returns host:port for HTTP server binding.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ServerConfig contains HTTP server options.
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// HTTPConfig contains transport settings.
type HTTPConfig struct {
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// PipelineTimeout bounds one whole summary pipeline run, not a single call.
	PipelineTimeout time.Duration `mapstructure:"pipeline_timeout"`
}

// LoggingConfig contains logger preferences.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
}

// RedisConfig describes cache connection parameters.
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// Addr returns host:port for the Redis client.
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

// CacheConfig contains PR record cache settings.
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// GitHubConfig contains GitHub API access settings.
type GitHubConfig struct {
	Token string `mapstructure:"token"`
	// Owner is the fixed identity of the hosting account; merge events
	// synthesize PR URLs under it.
	Owner string `mapstructure:"owner"`
	// RequireToken makes a missing token a startup error instead of
	// falling back to unauthenticated (rate-limited) calls.
	RequireToken bool          `mapstructure:"require_token"`
	FetchTimeout time.Duration `mapstructure:"fetch_timeout"`
}

// SlackConfig contains Slack delivery settings.
type SlackConfig struct {
	BotToken      string        `mapstructure:"bot_token"`
	ChannelID     string        `mapstructure:"channel_id"`
	NotifyTimeout time.Duration `mapstructure:"notify_timeout"`
	// MaxRetries bounds rate-limit retries after the first attempt.
	MaxRetries int `mapstructure:"max_retries"`
}

// GeminiConfig contains summarizer model settings.
type GeminiConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}
