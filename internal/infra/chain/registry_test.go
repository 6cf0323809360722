package chain

import (
	"context"
	"testing"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
)

// stubAdapter implements Adapter for registry tests.
type stubAdapter struct {
	chain domain.Chain
}

func (s *stubAdapter) GetBalance(ctx context.Context, address string) (*domain.Balance, error) {
	return &domain.Balance{Address: address, Amount: "0", Currency: s.chain.Symbol()}, nil
}

func (s *stubAdapter) GetTransactions(ctx context.Context, address string, limit int) ([]*domain.Transaction, error) {
	return []*domain.Transaction{}, nil
}

func (s *stubAdapter) BroadcastTransaction(ctx context.Context, signedTx string) (string, error) {
	return "hash", nil
}

func (s *stubAdapter) GetTransactionStatus(ctx context.Context, hash string) (*domain.Transaction, error) {
	return &domain.Transaction{Hash: hash}, nil
}

func (s *stubAdapter) Chain() domain.Chain {
	return s.chain
}

func TestRegistryGet(t *testing.T) {
	registry := NewRegistry(
		&stubAdapter{chain: domain.ChainBitcoin},
		&stubAdapter{chain: domain.ChainEthereum},
		&stubAdapter{chain: domain.ChainAlgorand},
	)

	for _, c := range domain.Chains() {
		adapter, err := registry.Get(c)
		if err != nil {
			t.Fatalf("get %s failed: %v", c, err)
		}
		if adapter.Chain() != c {
			t.Errorf("expected adapter for %s, got %s", c, adapter.Chain())
		}
	}
}

func TestRegistryUnknownChain(t *testing.T) {
	registry := NewRegistry(&stubAdapter{chain: domain.ChainBitcoin})

	_, err := registry.Get(domain.Chain("dogecoin"))
	if fault.CodeOf(err) != fault.CodeValidation {
		t.Errorf("expected %s, got %v", fault.CodeValidation, err)
	}
}

func TestRegistryChainsCanonicalOrder(t *testing.T) {
	registry := NewRegistry(
		&stubAdapter{chain: domain.ChainAlgorand},
		&stubAdapter{chain: domain.ChainBitcoin},
	)

	chains := registry.Chains()
	if len(chains) != 2 {
		t.Fatalf("expected 2 chains, got %d", len(chains))
	}
	if chains[0] != domain.ChainBitcoin || chains[1] != domain.ChainAlgorand {
		t.Errorf("expected canonical order, got %v", chains)
	}
}
