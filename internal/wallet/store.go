// Package wallet is the schema-aware façade over the secure store for all
// wallet-domain state: addresses, balances, transaction history, clients and
// settings.
package wallet

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"

	"github.com/google/uuid"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
	"github.com/vietddude/walletd/internal/infra/securestore"
)

const walletKey = "wallet"

// DefaultTransactionLimit is returned by Transactions when no limit is given.
const DefaultTransactionLimit = 50

// Store owns the wallet envelope schema and its migration. Every mutating
// call is a read-modify-write cycle; the mutex serializes them so concurrent
// callers cannot lose updates.
type Store struct {
	mu    sync.Mutex
	store *securestore.Store
	log   *slog.Logger
}

// NewStore creates a wallet store on top of a secure store.
func NewStore(store *securestore.Store) *Store {
	return &Store{
		store: store,
		log:   slog.With("component", "wallet-store"),
	}
}

// Load returns the wallet envelope. An absent envelope yields defaults; an
// envelope persisted under an older schema version is migrated in place:
// stored fields are merged over defaults and the current version is stamped.
// Every load returns a structurally complete copy.
func (s *Store) Load(ctx context.Context) (*domain.WalletData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadLocked(ctx)
}

func (s *Store) loadLocked(ctx context.Context) (*domain.WalletData, error) {
	// Unmarshaling over a pre-populated default envelope keeps default
	// values for every field the stored JSON does not mention.
	data := domain.DefaultWalletData()
	ok, err := s.store.Load(ctx, walletKey, data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return data, nil
	}
	// Stored JSON with explicit null fields nils out the default maps.
	data.Normalize()

	if data.Version != domain.SchemaVersion {
		s.log.Info("migrating wallet envelope",
			"from_version", data.Version,
			"to_version", domain.SchemaVersion,
		)
		data.Version = domain.SchemaVersion
		if err := s.store.Save(ctx, walletKey, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// Update applies apply to the current envelope under the store lock and
// persists the result. It returns the persisted envelope.
func (s *Store) Update(
	ctx context.Context,
	apply func(*domain.WalletData),
) (*domain.WalletData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := s.loadLocked(ctx)
	if err != nil {
		return nil, err
	}

	apply(data)
	data.Version = domain.SchemaVersion

	if err := s.store.Save(ctx, walletKey, data); err != nil {
		return nil, err
	}
	return data, nil
}

// SaveTransaction prepends tx to the history and evicts the oldest entries
// beyond the bound.
func (s *Store) SaveTransaction(ctx context.Context, tx domain.Transaction) error {
	_, err := s.Update(ctx, func(d *domain.WalletData) {
		d.Transactions = append([]domain.Transaction{tx}, d.Transactions...)
		if len(d.Transactions) > domain.MaxStoredTransactions {
			d.Transactions = d.Transactions[:domain.MaxStoredTransactions]
		}
	})
	return err
}

// Transactions returns up to limit stored transactions, newest first.
// A limit <= 0 uses the default.
func (s *Store) Transactions(ctx context.Context, limit int) ([]domain.Transaction, error) {
	if limit <= 0 {
		limit = DefaultTransactionLimit
	}
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	if limit > len(data.Transactions) {
		limit = len(data.Transactions)
	}
	return data.Transactions[:limit], nil
}

// SaveClient upserts a client by ID. A blank ID gets a generated one.
func (s *Store) SaveClient(ctx context.Context, client domain.Client) (domain.Client, error) {
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	_, err := s.Update(ctx, func(d *domain.WalletData) {
		for i, existing := range d.Clients {
			if existing.ID == client.ID {
				d.Clients[i] = client
				return
			}
		}
		d.Clients = append(d.Clients, client)
	})
	return client, err
}

// Clients returns all stored clients.
func (s *Store) Clients(ctx context.Context) ([]domain.Client, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	return data.Clients, nil
}

// RemoveClient deletes the client with the given ID. Removing an unknown ID
// is not an error.
func (s *Store) RemoveClient(ctx context.Context, id string) error {
	_, err := s.Update(ctx, func(d *domain.WalletData) {
		kept := d.Clients[:0]
		for _, c := range d.Clients {
			if c.ID != id {
				kept = append(kept, c)
			}
		}
		d.Clients = kept
	})
	return err
}

// SettingsPatch carries partial settings updates; nil fields are untouched.
type SettingsPatch struct {
	Currency      *string
	Language      *string
	Notifications *bool
	Biometric     *bool
}

// UpdateSettings merges the patch onto the stored settings.
func (s *Store) UpdateSettings(ctx context.Context, patch SettingsPatch) (domain.Settings, error) {
	data, err := s.Update(ctx, func(d *domain.WalletData) {
		if patch.Currency != nil {
			d.Settings.Currency = *patch.Currency
		}
		if patch.Language != nil {
			d.Settings.Language = *patch.Language
		}
		if patch.Notifications != nil {
			d.Settings.Notifications = *patch.Notifications
		}
		if patch.Biometric != nil {
			d.Settings.Biometric = *patch.Biometric
		}
	})
	if err != nil {
		return domain.Settings{}, err
	}
	return data.Settings, nil
}

// Settings returns the stored settings.
func (s *Store) Settings(ctx context.Context) (domain.Settings, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return domain.Settings{}, err
	}
	return data.Settings, nil
}

// UpdateBalances merges the given per-chain balances onto stored ones.
func (s *Store) UpdateBalances(ctx context.Context, balances map[domain.Chain]string) error {
	_, err := s.Update(ctx, func(d *domain.WalletData) {
		for chain, balance := range balances {
			d.Balances[chain] = balance
		}
	})
	return err
}

// SetAddress records the wallet's address on a chain.
func (s *Store) SetAddress(ctx context.Context, chain domain.Chain, address string) error {
	_, err := s.Update(ctx, func(d *domain.WalletData) {
		d.Addresses[chain] = address
	})
	return err
}

// Export returns the full envelope as pretty-printed JSON.
func (s *Store) Export(ctx context.Context) (string, error) {
	data, err := s.Load(ctx)
	if err != nil {
		return "", err
	}
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return "", fault.Wrap(fault.CodeStorage, "failed to serialize wallet data", err)
	}
	return string(out), nil
}

// Import replaces the envelope wholesale with the given JSON document.
func (s *Store) Import(ctx context.Context, raw string) error {
	data := domain.DefaultWalletData()
	if err := json.Unmarshal([]byte(raw), data); err != nil {
		return fault.Wrap(fault.CodeValidation, "invalid wallet backup format", err)
	}
	data.Normalize()
	data.Version = domain.SchemaVersion
	if len(data.Transactions) > domain.MaxStoredTransactions {
		data.Transactions = data.Transactions[:domain.MaxStoredTransactions]
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Save(ctx, walletKey, data)
}

// Reset deletes the persisted envelope. The next Load yields defaults.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.store.Remove(ctx, walletKey)
}
