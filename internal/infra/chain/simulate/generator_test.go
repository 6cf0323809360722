package simulate

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/vietddude/walletd/internal/core/domain"
)

func testOptions(seed int64) Options {
	return Options{
		Chain:      domain.ChainBitcoin,
		MaxBalance: 2,
		MaxAmount:  0.5,
		Latency:    time.Millisecond,
		Seed:       seed,
	}
}

func TestBalanceWithinBounds(t *testing.T) {
	gen := NewGenerator(testOptions(1))

	for i := 0; i < 50; i++ {
		balance := gen.Balance("addr")
		if balance.Address != "addr" {
			t.Fatalf("expected address echoed back, got %q", balance.Address)
		}
		if balance.Currency != "BTC" {
			t.Fatalf("expected BTC, got %q", balance.Currency)
		}
		amount, err := strconv.ParseFloat(balance.Amount, 64)
		if err != nil {
			t.Fatalf("balance is not a decimal string: %q", balance.Amount)
		}
		if amount < 0 || amount > 2 {
			t.Errorf("balance out of bounds: %f", amount)
		}
	}
}

func TestSeededGeneratorIsDeterministic(t *testing.T) {
	a := NewGenerator(testOptions(42))
	b := NewGenerator(testOptions(42))

	if a.Balance("x").Amount != b.Balance("x").Amount {
		t.Errorf("same seed must produce the same balance")
	}
	if a.Hash() != b.Hash() {
		t.Errorf("same seed must produce the same hash")
	}
}

func TestTransactionsNewestFirst(t *testing.T) {
	gen := NewGenerator(testOptions(7))

	txs := gen.Transactions("addr", 5)
	if len(txs) != 5 {
		t.Fatalf("expected 5 transactions, got %d", len(txs))
	}
	for i := 1; i < len(txs); i++ {
		if txs[i].Timestamp > txs[i-1].Timestamp {
			t.Errorf("transactions not newest-first at index %d", i)
		}
	}
	for _, tx := range txs {
		if tx.From != "addr" && tx.To != "addr" {
			t.Errorf("transaction does not involve the address: %+v", tx)
		}
	}
}

func TestStatusBlockReferenceImpliesConfirmed(t *testing.T) {
	gen := NewGenerator(testOptions(3))

	for i := 0; i < 30; i++ {
		tx := gen.Status("somehash")
		if tx.Hash != "somehash" {
			t.Fatalf("expected hash echoed back, got %q", tx.Hash)
		}
		switch tx.Status {
		case domain.TxStatusConfirmed:
			if tx.BlockNumber == 0 {
				t.Errorf("confirmed transaction must carry a block reference")
			}
		case domain.TxStatusPending:
			if tx.BlockNumber != 0 {
				t.Errorf("pending transaction must not carry a block reference")
			}
		default:
			t.Errorf("unexpected status %s", tx.Status)
		}
	}
}

func TestDelayHonorsCancellation(t *testing.T) {
	gen := NewGenerator(Options{
		Chain:   domain.ChainBitcoin,
		Latency: time.Minute,
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := gen.Delay(ctx); err == nil {
		t.Errorf("expected cancellation error")
	}
}
