package config

import "time"

// CatalogConfig holds ship catalog source configuration. The catalog can be
// loaded from a local JSON export or imported from an HTTP endpoint.
type CatalogConfig struct {
	// Path to a local catalog JSON file
	Path string `mapstructure:"path"`

	// HTTP endpoint for catalog import (used when Path is empty)
	URL string `mapstructure:"url" validate:"omitempty,url"`

	// Rate limiting for the HTTP importer
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// Request timeout
	Timeout time.Duration `mapstructure:"timeout"`

	// Retry configuration
	Retry RetryConfig `mapstructure:"retry"`
}

// RateLimitConfig holds rate limiting configuration
type RateLimitConfig struct {
	// Maximum requests per second
	Requests int `mapstructure:"requests" validate:"min=1"`

	// Burst size for token bucket
	Burst int `mapstructure:"burst" validate:"min=1"`
}

// RetryConfig holds retry configuration for failed requests
type RetryConfig struct {
	// Maximum number of retry attempts
	MaxAttempts int `mapstructure:"max_attempts" validate:"min=0"`

	// Base duration for exponential backoff
	BackoffBase time.Duration `mapstructure:"backoff_base"`
}
