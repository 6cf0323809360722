// Package chain defines the polymorphic adapter boundary between the wallet
// core and chain-specific backends. One concrete type per chain; call sites
// select adapters through the Registry, never by branching on chain names.
package chain

import (
	"context"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
)

// Adapter is the uniform chain access contract.
type Adapter interface {
	// GetBalance returns a fresh balance snapshot for the address. Transport
	// failures surface as network faults, logical remote failures as API
	// faults. Adapters never cache balances.
	GetBalance(ctx context.Context, address string) (*domain.Balance, error)

	// GetTransactions returns up to limit transactions for the address,
	// newest first. An address with no records yields an empty slice, not
	// an error.
	GetTransactions(ctx context.Context, address string, limit int) ([]*domain.Transaction, error)

	// BroadcastTransaction submits a signed raw transaction and returns its
	// hash. Remote rejection surfaces as a transaction-failed fault.
	BroadcastTransaction(ctx context.Context, signedTx string) (string, error)

	// GetTransactionStatus fetches a single transaction. Status is confirmed
	// once a block reference is present, else pending.
	GetTransactionStatus(ctx context.Context, hash string) (*domain.Transaction, error)

	// Chain returns the chain this adapter serves.
	Chain() domain.Chain
}

// Registry holds one adapter per chain.
type Registry struct {
	adapters map[domain.Chain]Adapter
}

// NewRegistry builds a registry from the given adapters, keyed by their
// chain. A later adapter for the same chain replaces an earlier one.
func NewRegistry(adapters ...Adapter) *Registry {
	m := make(map[domain.Chain]Adapter, len(adapters))
	for _, a := range adapters {
		m[a.Chain()] = a
	}
	return &Registry{adapters: m}
}

// Get returns the adapter for the chain.
func (r *Registry) Get(c domain.Chain) (Adapter, error) {
	a, ok := r.adapters[c]
	if !ok {
		return nil, fault.New(fault.CodeValidation, "unsupported chain", string(c))
	}
	return a, nil
}

// Chains returns the registered chains in the canonical order.
func (r *Registry) Chains() []domain.Chain {
	out := make([]domain.Chain, 0, len(r.adapters))
	for _, c := range domain.Chains() {
		if _, ok := r.adapters[c]; ok {
			out = append(out, c)
		}
	}
	return out
}
