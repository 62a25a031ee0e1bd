// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for requests to the remote service.
type HTTPConfig struct {
	// Timeout bounds a whole request, upload included.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "pdfcloud/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// ServiceConfig locates the remote PDF-processing service.
type ServiceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the API root; endpoints are BaseURL+"/merge" and BaseURL+"/split".
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url"`

	// APIToken is sent as a bearer token when set. Never written to config output.
	APIToken string `json:"-" yaml:"-" mapstructure:"api_token"`
}

// MergeConfig holds settings for the merge operation.
type MergeConfig struct {
	// MaxFiles caps the merge collection (default 20).
	MaxFiles int `json:"max_files" yaml:"max_files" mapstructure:"max_files"`
}

// SplitConfig holds settings for the split operation.
type SplitConfig struct {
	// Mode is the initial split mode: single or range.
	Mode OperationMode `json:"mode" yaml:"mode" mapstructure:"mode"`
}

// ClientConfig groups all client settings.
type ClientConfig struct {
	Service ServiceConfig `json:"service" yaml:"service" mapstructure:"service"`
	Merge   MergeConfig   `json:"merge" yaml:"merge" mapstructure:"merge"`
	Split   SplitConfig   `json:"split" yaml:"split" mapstructure:"split"`

	// MaxFileSize rejects larger files before upload; 0 disables the check.
	MaxFileSize int64 `json:"max_file_size" yaml:"max_file_size" mapstructure:"max_file_size"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `json:"log_level" yaml:"log_level" mapstructure:"log_level"`
}
