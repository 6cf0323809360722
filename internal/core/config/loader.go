package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

// Load reads configuration from a YAML file.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expandedData), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.Backend == "" {
		cfg.Storage.Backend = "memory"
	}
	if cfg.Storage.Namespace == "" {
		cfg.Storage.Namespace = "walletdemo"
	}
	if cfg.Storage.Dir == "" {
		cfg.Storage.Dir = "data"
	}
	if cfg.Ethereum.APIURL == "" {
		cfg.Ethereum.APIURL = "https://api.etherscan.io/api"
	}
	if cfg.Pricing.PriceURL == "" {
		cfg.Pricing.PriceURL = "https://api.coingecko.com/api/v3/simple/price"
	}
	if cfg.Pricing.FiatURL == "" {
		cfg.Pricing.FiatURL = "https://api.exchangerate-api.com/v4/latest"
	}
}
