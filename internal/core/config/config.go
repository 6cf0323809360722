package config

import (
	"github.com/vietddude/walletd/internal/infra/chain/ethereum"
	redisbackend "github.com/vietddude/walletd/internal/infra/redis"
	"github.com/vietddude/walletd/internal/infra/storage/postgres"
	"github.com/vietddude/walletd/internal/rates"
)

// AppConfig represents the top-level configuration.
type AppConfig struct {
	Server   ServerConfig    `yaml:"server"`
	Logging  LoggingConfig   `yaml:"logging"`
	Storage  StorageConfig   `yaml:"storage"`
	Ethereum ethereum.Config `yaml:"ethereum"`
	Pricing  rates.Config    `yaml:"pricing"`
	Chains   SimChainsConfig `yaml:"chains"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
}

// StorageConfig selects and configures the secure store medium.
type StorageConfig struct {
	Backend   string `yaml:"backend"` // memory, file, redis, postgres
	Dir       string `yaml:"dir"`     // file backend only
	Namespace string `yaml:"namespace"`
	// Passphrase switches the codec from the obfuscating placeholder to
	// authenticated encryption with a key derived from this secret.
	Passphrase string              `yaml:"passphrase"`
	Redis      redisbackend.Config `yaml:"redis"`
	Postgres   postgres.Config     `yaml:"postgres"`
}

// SimChainsConfig holds settings for the simulated chain adapters.
type SimChainsConfig struct {
	Bitcoin  SimChainConfig `yaml:"bitcoin"`
	Algorand SimChainConfig `yaml:"algorand"`
}

// SimChainConfig tunes one simulated adapter. A zero seed keeps output
// non-deterministic.
type SimChainConfig struct {
	Seed int64 `yaml:"seed"`
}
