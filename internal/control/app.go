// Package control wires the wallet services together and manages their
// lifecycle. Service instances are constructed here and injected, never
// reached through package-level singletons, so tests can substitute fakes
// and multiple wallet contexts can coexist in one process.
package control

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/vietddude/walletd/internal/core/config"
	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/health"
	"github.com/vietddude/walletd/internal/infra/chain"
	"github.com/vietddude/walletd/internal/infra/chain/algorand"
	"github.com/vietddude/walletd/internal/infra/chain/bitcoin"
	"github.com/vietddude/walletd/internal/infra/chain/ethereum"
	redisbackend "github.com/vietddude/walletd/internal/infra/redis"
	"github.com/vietddude/walletd/internal/infra/securestore"
	"github.com/vietddude/walletd/internal/infra/storage/postgres"
	"github.com/vietddude/walletd/internal/rates"
	"github.com/vietddude/walletd/internal/wallet"
)

// App owns every service of the wallet daemon.
type App struct {
	cfg *config.AppConfig

	backend  securestore.Backend
	Secure   *securestore.Store
	Wallet   *wallet.Store
	Registry *chain.Registry
	Rates    *rates.Service

	healthServer *health.Server
}

// New builds the full service graph from configuration.
func New(ctx context.Context, cfg *config.AppConfig) (*App, error) {
	backend, err := newBackend(ctx, cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage backend: %w", err)
	}

	var codec securestore.Codec = securestore.ObfuscatingCodec{}
	if cfg.Storage.Passphrase != "" {
		codec = securestore.NewAEADCodec(cfg.Storage.Passphrase)
	} else {
		slog.Warn("storage passphrase not set, using reversible obfuscation instead of encryption")
	}

	secure := securestore.New(cfg.Storage.Namespace, codec, backend)
	walletStore := wallet.NewStore(secure)

	registry := chain.NewRegistry(
		bitcoin.NewAdapter(cfg.Chains.Bitcoin.Seed),
		ethereum.NewAdapter(cfg.Ethereum),
		algorand.NewAdapter(cfg.Chains.Algorand.Seed),
	)

	rateService := rates.NewService(cfg.Pricing)

	app := &App{
		cfg:      cfg,
		backend:  backend,
		Secure:   secure,
		Wallet:   walletStore,
		Registry: registry,
		Rates:    rateService,
	}

	app.healthServer = health.NewServer(cfg.Server.Port, healthCheckers(secure, registry)...)

	return app, nil
}

// healthCheckers probes the storage backend and the adapter registry.
func healthCheckers(secure *securestore.Store, registry *chain.Registry) []health.Checker {
	return []health.Checker{
		health.CheckerFunc{
			CheckName: "store",
			Fn: func(ctx context.Context) error {
				_, err := secure.Exists(ctx, "wallet")
				return err
			},
		},
		health.CheckerFunc{
			CheckName: "chains",
			Fn: func(ctx context.Context) error {
				for _, c := range domain.Chains() {
					if _, err := registry.Get(c); err != nil {
						return err
					}
				}
				return nil
			},
		},
	}
}

func newBackend(ctx context.Context, cfg config.StorageConfig) (securestore.Backend, error) {
	switch cfg.Backend {
	case "", "memory":
		return securestore.NewMemoryBackend(), nil
	case "file":
		return securestore.NewFileBackend(cfg.Dir)
	case "redis":
		return redisbackend.NewBackend(cfg.Redis)
	case "postgres":
		return postgres.NewBackend(ctx, cfg.Postgres)
	}
	return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
}

// Start launches the HTTP surface. It returns once the server is running.
func (a *App) Start(ctx context.Context) error {
	go func() {
		slog.Info("health server listening", "port", a.cfg.Server.Port)
		if err := a.healthServer.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("health server failed", "error", err)
		}
	}()
	return nil
}

// Stop shuts the HTTP surface down and closes the storage backend.
func (a *App) Stop(ctx context.Context) error {
	if err := a.healthServer.Stop(ctx); err != nil {
		slog.Error("failed to stop health server", "error", err)
	}
	if err := a.backend.Close(); err != nil {
		return fmt.Errorf("failed to close storage backend: %w", err)
	}
	return nil
}
