package otel

import "github.com/kelseyhightower/envconfig"

// Config holds OTEL exporter configuration.
type Config struct {
	Endpoint string `envconfig:"ENDPOINT"`
	Enabled  bool   `envconfig:"ENABLED"`
	Insecure bool   `envconfig:"INSECURE"`
}

// LoadConfig loads OTEL configuration from EXECDASH_OTEL_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("EXECDASH_OTEL", &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
