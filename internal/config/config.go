// Folio: A streamlined CLI tool for searching and downloading web novels.
// Copyright (C) 2025 Luca M. Schmidt (LuMiSxh)
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE. See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"Folio/pkg/core"
	"Folio/pkg/engine"
	"Folio/pkg/provider/fanqie"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Endpoints []EndpointConfig `mapstructure:"endpoints"`
	HTTP      HTTPConfig       `mapstructure:"http"`
	Download  DownloadConfig   `mapstructure:"download"`
	History   HistoryConfig    `mapstructure:"history"`
	Logging   LoggingConfig    `mapstructure:"logging"`
}

// EndpointConfig is one mirror, tried in list order
type EndpointConfig struct {
	Name    string `mapstructure:"name"`
	Address string `mapstructure:"address"`
	Listed  bool   `mapstructure:"listed"`
}

// HTTPConfig holds transport settings
type HTTPConfig struct {
	Timeout        time.Duration     `mapstructure:"timeout"`
	ConnectTimeout time.Duration     `mapstructure:"connect_timeout"`
	Retries        int               `mapstructure:"retries"`
	UserAgent      string            `mapstructure:"user_agent"`
	Headers        map[string]string `mapstructure:"headers"`
}

// DownloadConfig holds download defaults
type DownloadConfig struct {
	OutputDir    string        `mapstructure:"output_dir"`
	Format       string        `mapstructure:"format"`
	ChapterDelay time.Duration `mapstructure:"chapter_delay"`
	Language     string        `mapstructure:"language"`
}

// HistoryConfig locates the download history database. An empty path
// disables history.
type HistoryConfig struct {
	Path string `mapstructure:"path"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	defaults := fanqie.DefaultEndpoints()
	endpoints := make([]EndpointConfig, len(defaults))
	for i, ep := range defaults {
		endpoints[i] = EndpointConfig{Name: ep.Name, Address: ep.Address, Listed: ep.Listed}
	}

	return &Config{
		Endpoints: endpoints,
		HTTP: HTTPConfig{
			Timeout:        fanqie.DefaultTimeout,
			ConnectTimeout: fanqie.DefaultConnectTimeout,
			Retries:        0,
			UserAgent:      fanqie.DefaultUserAgent,
		},
		Download: DownloadConfig{
			OutputDir:    ".",
			Format:       string(core.FormatText),
			ChapterDelay: fanqie.DefaultChapterDelay,
			Language:     "zh-CN",
		},
		History: HistoryConfig{
			Path: filepath.Join(dataDir(), "history.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(dataDir(), "logs", "folio.log"),
			Level: "INFO",
		},
	}
}

// dataDir is where logs and history live
func dataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".folio"
	}
	return filepath.Join(home, ".folio")
}

// DefaultConfigPath returns the default config directory for the current OS
func DefaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "folio")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "folio")
	}
}

// Load reads configuration from file and environment. An explicit file must
// exist; otherwise a missing config.yaml is not an error.
func Load(file string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigPath())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. FOLIO_DOWNLOAD_FORMAT
	v.SetEnvPrefix("FOLIO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// A configured mirror list replaces the built-in one instead of merging
	if v.IsSet("endpoints") {
		cfg.Endpoints = nil
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// bindEnv registers scalar keys so AutomaticEnv applies to Unmarshal.
func bindEnv(v *viper.Viper) {
	for _, key := range []string{
		"http.timeout", "http.connect_timeout", "http.retries", "http.user_agent",
		"download.output_dir", "download.format", "download.chapter_delay", "download.language",
		"history.path", "logging.file", "logging.level",
	} {
		_ = v.BindEnv(key)
	}
}

// Validate checks values that would make the engine unusable
func (c *Config) Validate() error {
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("at least one endpoint must be configured")
	}
	for i, ep := range c.Endpoints {
		if strings.TrimSpace(ep.Address) == "" {
			return fmt.Errorf("endpoint %d has no address", i)
		}
	}
	if c.HTTP.Retries < 0 {
		return fmt.Errorf("http.retries must not be negative")
	}
	if c.Download.ChapterDelay < 0 {
		return fmt.Errorf("download.chapter_delay must not be negative")
	}
	return nil
}

// CoreEndpoints converts the configured mirrors to core endpoints. Unnamed
// mirrors are named after their address.
func (c *Config) CoreEndpoints() []core.Endpoint {
	out := make([]core.Endpoint, len(c.Endpoints))
	for i, ep := range c.Endpoints {
		name := ep.Name
		if name == "" {
			name = ep.Address
		}
		out[i] = core.Endpoint{
			Name:    name,
			Address: strings.TrimRight(ep.Address, "/"),
			Listed:  ep.Listed,
		}
	}
	return out
}

// EngineOptions maps the configuration onto engine options
func (c *Config) EngineOptions() engine.Options {
	opts := engine.Options{
		Endpoints:    c.CoreEndpoints(),
		ChapterDelay: c.Download.ChapterDelay,
		Language:     c.Download.Language,
		HistoryPath:  c.History.Path,
		LogFile:      c.Logging.File,
		LogLevel:     c.Logging.Level,
	}
	opts.HTTP.Timeout = c.HTTP.Timeout
	opts.HTTP.ConnectTimeout = c.HTTP.ConnectTimeout
	opts.HTTP.Retries = c.HTTP.Retries
	opts.HTTP.UserAgent = c.HTTP.UserAgent
	opts.HTTP.Headers = c.HTTP.Headers
	return opts
}
