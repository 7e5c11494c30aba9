package config

import "go.uber.org/fx"

var Module = fx.Module("config",
	fx.Provide(New),
)

// New loads and validates configuration. A validation failure aborts startup.
func New() (Config, error) {
	cfg := Load()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
