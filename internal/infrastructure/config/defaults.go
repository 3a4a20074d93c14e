package config

import "time"

// SetDefaults sets default values for all configuration fields
func SetDefaults(cfg *Config) {
	// Database defaults: a local sqlite file, the planner is a desktop tool
	if cfg.Database.Type == "" {
		cfg.Database.Type = "sqlite"
	}
	if cfg.Database.Type == "sqlite" && cfg.Database.Path == "" {
		cfg.Database.Path = "ccu-planner.db"
	}
	if cfg.Database.Host == "" {
		cfg.Database.Host = "localhost"
	}
	if cfg.Database.Port == 0 {
		cfg.Database.Port = 5432
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.Pool.MaxOpen == 0 {
		cfg.Database.Pool.MaxOpen = 25
	}
	if cfg.Database.Pool.MaxIdle == 0 {
		cfg.Database.Pool.MaxIdle = 5
	}
	if cfg.Database.Pool.MaxLifetime == 0 {
		cfg.Database.Pool.MaxLifetime = 5 * time.Minute
	}

	// Catalog defaults
	if cfg.Catalog.Timeout == 0 {
		cfg.Catalog.Timeout = 30 * time.Second
	}
	if cfg.Catalog.RateLimit.Requests == 0 {
		cfg.Catalog.RateLimit.Requests = 2
	}
	if cfg.Catalog.RateLimit.Burst == 0 {
		cfg.Catalog.RateLimit.Burst = 2
	}
	if cfg.Catalog.Retry.MaxAttempts == 0 {
		cfg.Catalog.Retry.MaxAttempts = 3
	}
	if cfg.Catalog.Retry.BackoffBase == 0 {
		cfg.Catalog.Retry.BackoffBase = 1 * time.Second
	}

	// Planner defaults
	if cfg.Planner.ExchangeRate == 0 {
		cfg.Planner.ExchangeRate = 1.0
	}
	if cfg.Planner.MaxPathLength == 0 {
		cfg.Planner.MaxPathLength = 64
	}
	if cfg.Planner.DisplayCurrency == "" {
		cfg.Planner.DisplayCurrency = "CNY"
	}
	if len(cfg.Planner.PriorityOrder) == 0 {
		cfg.Planner.PriorityOrder = []string{
			"hangar", "subscription", "available_wb", "historical",
			"manual_wb", "third_party", "official",
		}
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}
}
