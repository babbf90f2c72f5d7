// Copyright 2026 The apihook Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package config loads the apihook command configuration.
package config

import (
	"fmt"
	"net/url"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the configuration is
// read from, for example APIHOOK_LOG_LEVEL.
const EnvPrefix = "APIHOOK"

// Config holds the command configuration loaded from the environment.
type Config struct {
	LogLevel       string        `mapstructure:"log_level"`
	TimeoutSeconds int64         `mapstructure:"timeout_seconds"`
	Timeout        time.Duration `mapstructure:"-"`
	UserAgent      string        `mapstructure:"user_agent"`
	BaseURL        string        `mapstructure:"base_url"`
	Base           *url.URL      `mapstructure:"-"`
}

// Load reads configuration from environment variables. If envFile is
// not empty, variables are first loaded from that dotenv file without
// overriding variables already set. A missing envFile is not an error.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("load env file: %w", err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)

	v.SetDefault("log_level", "info")
	v.SetDefault("timeout_seconds", 30)
	v.SetDefault("user_agent", "apihook")
	v.SetDefault("base_url", "")

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.TimeoutSeconds < 0 {
		return nil, fmt.Errorf("invalid timeout_seconds (must not be negative)")
	}
	cfg.Timeout = time.Duration(cfg.TimeoutSeconds) * time.Second

	if cfg.BaseURL != "" {
		u, err := url.Parse(cfg.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid base_url: %w", err)
		}
		if !u.IsAbs() {
			return nil, fmt.Errorf("invalid base_url (must be absolute): %q", cfg.BaseURL)
		}
		cfg.Base = u
	}

	return &cfg, nil
}
