// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings for components that talk to the backend.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout. Research and episode calls run
	// for one to three minutes, so the default is generous.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with requests
	// (e.g. "podcast-assistant/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// BackendConfig holds settings for the podcast-assistant backend API.
type BackendConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the backend root, e.g. "http://localhost:8000".
	BaseURL string `json:"base_url" yaml:"base_url"`

	// APIToken is an optional bearer token sent with every request.
	APIToken string `json:"api_token,omitempty" yaml:"api_token,omitempty"`

	// MaxRetries is the retry budget for rate-limited requests (default 4).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// StoreConfig holds settings for client-local persistence.
type StoreConfig struct {
	// DataDir is the directory holding the local database and downloaded
	// reports (default "data").
	DataDir string `json:"data_dir" yaml:"data_dir"`
}

// ClientConfig groups the client-side configuration.
type ClientConfig struct {
	Backend BackendConfig `json:"backend" yaml:"backend"`
	Store   StoreConfig   `json:"store" yaml:"store"`
}
