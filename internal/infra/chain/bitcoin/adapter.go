// Package bitcoin implements a simulated chain adapter standing in for a
// real Bitcoin client. Placeholder for demos, not production logic.
package bitcoin

import (
	"context"
	"sync"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
	"github.com/vietddude/walletd/internal/infra/chain"
	"github.com/vietddude/walletd/internal/infra/chain/simulate"
)

type Adapter struct {
	mu  sync.Mutex
	gen *simulate.Generator
}

// NewAdapter creates the simulated Bitcoin adapter. A zero seed keeps output
// non-deterministic; pass a seed for reproducible data.
func NewAdapter(seed int64) *Adapter {
	return &Adapter{
		gen: simulate.NewGenerator(simulate.Options{
			Chain:      domain.ChainBitcoin,
			HashPrefix: "",
			MaxBalance: 2,
			MaxAmount:  0.5,
			Seed:       seed,
		}),
	}
}

func (a *Adapter) Chain() domain.Chain {
	return domain.ChainBitcoin
}

func (a *Adapter) GetBalance(ctx context.Context, address string) (*domain.Balance, error) {
	if err := a.gen.Delay(ctx); err != nil {
		return nil, fault.Wrap(fault.CodeTimeout, "balance request canceled", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen.Balance(address), nil
}

func (a *Adapter) GetTransactions(ctx context.Context, address string, limit int) ([]*domain.Transaction, error) {
	if limit < 0 {
		limit = 0
	}
	if err := a.gen.Delay(ctx); err != nil {
		return nil, fault.Wrap(fault.CodeTimeout, "transaction request canceled", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen.Transactions(address, limit), nil
}

func (a *Adapter) BroadcastTransaction(ctx context.Context, signedTx string) (string, error) {
	if signedTx == "" {
		return "", fault.New(fault.CodeTransactionFailed, "empty signed transaction", "")
	}
	if err := a.gen.Delay(ctx); err != nil {
		return "", fault.Wrap(fault.CodeTimeout, "broadcast canceled", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen.Hash(), nil
}

func (a *Adapter) GetTransactionStatus(ctx context.Context, hash string) (*domain.Transaction, error) {
	if err := a.gen.Delay(ctx); err != nil {
		return nil, fault.Wrap(fault.CodeTimeout, "status request canceled", err)
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.gen.Status(hash), nil
}

var _ chain.Adapter = (*Adapter)(nil)
