package algorand

import (
	"context"
	"strconv"
	"testing"

	"github.com/vietddude/walletd/internal/core/domain"
)

func TestGetBalanceShape(t *testing.T) {
	adapter := NewAdapter(1)

	balance, err := adapter.GetBalance(context.Background(), "ALGOADDR")
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.Address != "ALGOADDR" {
		t.Errorf("expected address echoed back, got %q", balance.Address)
	}
	if balance.Currency != "ALGO" {
		t.Errorf("expected ALGO, got %q", balance.Currency)
	}
	if amount, err := strconv.ParseFloat(balance.Amount, 64); err != nil || amount < 0 {
		t.Errorf("expected non-negative decimal string, got %q", balance.Amount)
	}
}

func TestGetTransactionsZeroLimit(t *testing.T) {
	adapter := NewAdapter(1)

	txs, err := adapter.GetTransactions(context.Background(), "ALGOADDR", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected empty slice for zero limit, got %d", len(txs))
	}
}

func TestGetTransactionStatus(t *testing.T) {
	adapter := NewAdapter(1)

	tx, err := adapter.GetTransactionStatus(context.Background(), "HASH123")
	if err != nil {
		t.Fatalf("status fetch failed: %v", err)
	}
	if tx.Hash != "HASH123" {
		t.Errorf("expected hash echoed back, got %q", tx.Hash)
	}
	if tx.Status != domain.TxStatusConfirmed && tx.Status != domain.TxStatusPending {
		t.Errorf("unexpected status %s", tx.Status)
	}
}

func TestChain(t *testing.T) {
	if got := NewAdapter(0).Chain(); got != domain.ChainAlgorand {
		t.Errorf("expected %s, got %s", domain.ChainAlgorand, got)
	}
}
