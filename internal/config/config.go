// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads client settings from a YAML file, PDFCLOUD_*
// environment variables, and an optional .env file, in that order of
// increasing precedence. Command-line flags bound to the same viper keys
// override all three.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/pdiddy/pdfcloud/pkg/types"
)

const (
	// EnvPrefix prefixes every environment override, e.g. PDFCLOUD_SERVICE_BASE_URL.
	EnvPrefix = "PDFCLOUD"

	// FileName is the config file name without extension.
	FileName = "pdfcloud"
)

// Viper keys.
const (
	KeyBaseURL     = "service.base_url"
	KeyTimeout     = "service.timeout"
	KeyUserAgent   = "service.user_agent"
	KeyAPIToken    = "service.api_token"
	KeyMergeMax    = "merge.max_files"
	KeySplitMode   = "split.mode"
	KeyMaxFileSize = "max_file_size"
	KeyLogLevel    = "log_level"
)

// Defaults.
const (
	DefaultBaseURL     = "http://localhost:8000/api"
	DefaultTimeout     = 5 * time.Minute
	DefaultUserAgent   = "pdfcloud/0.1"
	DefaultMergeMax    = 20
	DefaultMaxFileSize = 50 << 20
	DefaultLogLevel    = "warn"
)

// SetDefaults registers every key with its default so that environment
// variables are seen by Unmarshal.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyBaseURL, DefaultBaseURL)
	v.SetDefault(KeyTimeout, DefaultTimeout)
	v.SetDefault(KeyUserAgent, DefaultUserAgent)
	v.SetDefault(KeyAPIToken, "")
	v.SetDefault(KeyMergeMax, DefaultMergeMax)
	v.SetDefault(KeySplitMode, string(types.ModeSingle))
	v.SetDefault(KeyMaxFileSize, DefaultMaxFileSize)
	v.SetDefault(KeyLogLevel, DefaultLogLevel)
}

// Init points v at the config file and environment. With cfgFile empty it
// searches ./pdfcloud.yaml and ~/.config/pdfcloud/pdfcloud.yaml; a missing
// file is not an error then. It returns the file used, if any.
func Init(v *viper.Viper, cfgFile string) (string, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(FileName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", FileName))
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return "", nil
		}
		return "", fmt.Errorf("reading config: %w", err)
	}
	return v.ConfigFileUsed(), nil
}

// LoadDotEnv loads variables from path into the process environment without
// overriding ones already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Load decodes and validates the client configuration held by v.
func Load(v *viper.Viper) (types.ClientConfig, error) {
	SetDefaults(v)

	var cfg types.ClientConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return types.ClientConfig{}, fmt.Errorf("decoding config: %w", err)
	}
	if err := Validate(cfg); err != nil {
		return types.ClientConfig{}, err
	}
	return cfg, nil
}

// Validate checks the settings Load cannot repair.
func Validate(cfg types.ClientConfig) error {
	u, err := url.Parse(cfg.Service.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%s: %q is not an absolute http(s) URL", KeyBaseURL, cfg.Service.BaseURL)
	}
	if cfg.Service.Timeout < 0 {
		return fmt.Errorf("%s: must not be negative", KeyTimeout)
	}
	if cfg.Merge.MaxFiles < 2 {
		return fmt.Errorf("%s: must be at least 2, got %d", KeyMergeMax, cfg.Merge.MaxFiles)
	}
	if _, err := types.ParseOperationMode(string(cfg.Split.Mode)); err != nil {
		return fmt.Errorf("%s: %w", KeySplitMode, err)
	}
	if cfg.MaxFileSize < 0 {
		return fmt.Errorf("%s: must not be negative", KeyMaxFileSize)
	}
	return nil
}
