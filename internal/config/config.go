// Package config loads the gateway's runtime configuration from
// environment variables, following the same .env-then-envconfig loading
// order used across the retrieval pack's service tooling.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/ethereum/go-ethereum/log"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

var ErrInvalidConfig = errors.New("invalid config")

// Config holds everything the gateway needs to run standalone (the CLI and
// the local dev ingress). It has no analogue to stable-memory persistence:
// provider/auth state lives in internal/provider's in-process Registry,
// re-seeded from SeedFile on every start.
type Config struct {
	Cluster          string `envconfig:"SOLGW_CLUSTER" default:"Devnet"`
	SubnetSize       uint64 `envconfig:"SOLGW_SUBNET_SIZE" default:"34"`
	DemoMode         bool   `envconfig:"SOLGW_DEMO_MODE" default:"true"`
	LogLevel         string `envconfig:"SOLGW_LOG_LEVEL" default:"info"`
	ListenAddr       string `envconfig:"SOLGW_LISTEN_ADDR" default:"127.0.0.1:8787"`
	ThresholdKeyName string `envconfig:"SOLGW_THRESHOLD_KEY_NAME" default:"dev_key_1"`
	SeedFile         string `envconfig:"SOLGW_PROVIDER_SEED_FILE"`
	AdminPrincipals  []string `envconfig:"SOLGW_ADMIN_PRINCIPALS"`
}

// Load reads a .env file if present (without overriding already-set
// environment variables), then fills Config from the environment.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			log.Warn("failed to load .env file", "err", err)
		} else {
			log.Info("loaded .env file")
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch c.Cluster {
	case "Mainnet", "Testnet", "Devnet", "Localnet":
	default:
		return fmt.Errorf("%w: cluster must be Mainnet|Testnet|Devnet|Localnet, got %q", ErrInvalidConfig, c.Cluster)
	}
	if c.SubnetSize == 0 {
		return fmt.Errorf("%w: subnet size must be > 0", ErrInvalidConfig)
	}
	if c.ThresholdKeyName == "" {
		return fmt.Errorf("%w: threshold key name must not be empty", ErrInvalidConfig)
	}
	return nil
}
