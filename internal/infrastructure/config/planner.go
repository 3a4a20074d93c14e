package config

// PlannerConfig holds path enumeration and ranking configuration
type PlannerConfig struct {
	// Exchange rate applied to official-currency spend when ranking
	ExchangeRate float64 `mapstructure:"exchange_rate" validate:"gt=0"`

	// Concierge markup fraction applied to third-party spend when ranking
	Concierge float64 `mapstructure:"concierge" validate:"gte=0"`

	// Enable the best-cost pruning heuristic during path search
	Prune bool `mapstructure:"prune"`

	// Defensive cap on path length for user-authored graphs
	MaxPathLength int `mapstructure:"max_path_length" validate:"min=2"`

	// Display currency for third-party prices
	DisplayCurrency string `mapstructure:"display_currency" validate:"omitempty,oneof=USD CNY"`

	// Strategy priority order for auto-selection, best first.
	// Strategies missing from the list rank after the listed ones.
	PriorityOrder []string `mapstructure:"priority_order" validate:"dive,source_type"`
}
