// Package simulate generates plausible chain data for adapters that stand in
// for a real chain client. Demo infrastructure, not production logic.
package simulate

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/vietddude/walletd/internal/core/domain"
)

// Options tunes a Generator for one chain's flavor of data.
type Options struct {
	Chain      domain.Chain
	HashPrefix string  // e.g. "0x" or ""
	MaxBalance float64 // upper bound for generated balances
	MaxAmount  float64 // upper bound for generated transaction amounts
	Latency    time.Duration
	// Seed makes output deterministic. Zero keeps the demo behavior of a
	// fresh random stream per process.
	Seed int64
}

// Generator produces random balances and transactions for one chain.
// Not safe for concurrent use by itself; its owning adapter serializes calls.
type Generator struct {
	opts Options
	rng  *rand.Rand
}

func NewGenerator(opts Options) *Generator {
	if opts.Latency == 0 {
		opts.Latency = 500 * time.Millisecond
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{
		opts: opts,
		rng:  rand.New(rand.NewSource(seed)),
	}
}

// Delay simulates network latency, honoring cancellation.
func (g *Generator) Delay(ctx context.Context) error {
	select {
	case <-time.After(g.opts.Latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Balance returns a fresh random balance snapshot for the address.
func (g *Generator) Balance(address string) *domain.Balance {
	amount := g.rng.Float64() * g.opts.MaxBalance
	return &domain.Balance{
		Address:  address,
		Amount:   fmt.Sprintf("%.8f", amount),
		Currency: g.opts.Chain.Symbol(),
	}
}

// Hash returns a chain-flavored pseudo transaction hash.
func (g *Generator) Hash() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 64)
	for i := range buf {
		buf[i] = hexDigits[g.rng.Intn(len(hexDigits))]
	}
	return g.opts.HashPrefix + string(buf)
}

// Address returns a pseudo counterparty address.
func (g *Generator) Address() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 40)
	for i := range buf {
		buf[i] = hexDigits[g.rng.Intn(len(hexDigits))]
	}
	return g.opts.HashPrefix + string(buf)
}

// Transactions returns count generated transactions for the address,
// newest first.
func (g *Generator) Transactions(address string, count int) []*domain.Transaction {
	txs := make([]*domain.Transaction, 0, count)
	now := time.Now()
	for i := 0; i < count; i++ {
		from, to := address, g.Address()
		if g.rng.Intn(2) == 0 {
			from, to = to, from
		}
		txs = append(txs, &domain.Transaction{
			Hash:        g.Hash(),
			From:        from,
			To:          to,
			Amount:      fmt.Sprintf("%.8f", g.rng.Float64()*g.opts.MaxAmount),
			Currency:    g.opts.Chain.Symbol(),
			Timestamp:   now.Add(-time.Duration(i) * 6 * time.Hour).UnixMilli(),
			Status:      domain.TxStatusConfirmed,
			BlockNumber: uint64(1_000_000 + g.rng.Intn(1_000_000)),
		})
	}
	return txs
}

// Status returns a single generated transaction for the hash. Roughly one in
// five comes back still pending, without a block reference.
func (g *Generator) Status(hash string) *domain.Transaction {
	tx := &domain.Transaction{
		Hash:      hash,
		From:      g.Address(),
		To:        g.Address(),
		Amount:    fmt.Sprintf("%.8f", g.rng.Float64()*g.opts.MaxAmount),
		Currency:  g.opts.Chain.Symbol(),
		Timestamp: time.Now().UnixMilli(),
		Status:    domain.TxStatusPending,
	}
	if g.rng.Intn(5) != 0 {
		tx.BlockNumber = uint64(1_000_000 + g.rng.Intn(1_000_000))
		tx.Status = domain.TxStatusConfirmed
	}
	return tx
}
