// Package config loads application configuration.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envFile = "config/.env"

// NewConfig loads configuration from environment using viper with typed defaults and validation.
func NewConfig() (*Config, error) {
	v := viper.New()
	if envMap, err := godotenv.Read(envFile); err == nil {
		for k, v := range envMap {
			if _, exists := os.LookupEnv(k); !exists {
				_ = os.Setenv(k, v)
			}
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnvs(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "debug")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("http.request_timeout", 10*time.Second)
	v.SetDefault("http.pipeline_timeout", 2*time.Minute)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("cache.ttl", time.Hour)

	v.SetDefault("github.token", "")
	v.SetDefault("github.owner", "")
	v.SetDefault("github.require_token", false)
	v.SetDefault("github.fetch_timeout", 30*time.Second)

	v.SetDefault("slack.bot_token", "")
	v.SetDefault("slack.channel_id", "")
	v.SetDefault("slack.notify_timeout", 10*time.Second)
	v.SetDefault("slack.max_retries", 3)

	v.SetDefault("gemini.api_key", "")
	v.SetDefault("gemini.model", "gemini-2.0-flash")
}

func bindEnvs(v *viper.Viper) {
	keys := []string{
		"logging.level",
		"server.host", "server.port", "server.shutdown_timeout",
		"http.request_timeout", "http.pipeline_timeout",
		"redis.host", "redis.port", "redis.password", "redis.db",
		"cache.ttl",
		"github.token", "github.owner", "github.require_token", "github.fetch_timeout",
		"slack.bot_token", "slack.channel_id", "slack.notify_timeout", "slack.max_retries",
		"gemini.api_key", "gemini.model",
	}
	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}
