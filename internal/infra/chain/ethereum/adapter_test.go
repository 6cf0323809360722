package ethereum

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
)

func newExplorer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Adapter) {
	t.Helper()
	server := httptest.NewServer(handler)
	adapter := NewAdapter(Config{APIURL: server.URL, APIKey: "test-key"})
	return server, adapter
}

func TestGetBalanceConvertsWei(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("module"); got != "account" {
			t.Errorf("expected module=account, got %q", got)
		}
		if got := r.URL.Query().Get("apikey"); got != "test-key" {
			t.Errorf("expected api key to be sent, got %q", got)
		}
		// 1.5 ETH in Wei
		fmt.Fprint(w, `{"status":"1","message":"OK","result":"1500000000000000000"}`)
	})
	defer server.Close()

	balance, err := adapter.GetBalance(context.Background(), "0xabc")
	if err != nil {
		t.Fatalf("get balance failed: %v", err)
	}
	if balance.Address != "0xabc" {
		t.Errorf("expected address echoed back, got %q", balance.Address)
	}
	if balance.Amount != "1.5" {
		t.Errorf("expected 1.5 ETH, got %q", balance.Amount)
	}
	if balance.Currency != "ETH" {
		t.Errorf("expected currency ETH, got %q", balance.Currency)
	}
}

func TestGetBalanceAPIFailure(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"0","message":"NOTOK","result":"Invalid API Key"}`)
	})
	defer server.Close()

	_, err := adapter.GetBalance(context.Background(), "0xabc")
	if fault.CodeOf(err) != fault.CodeAPI {
		t.Errorf("expected %s, got %v", fault.CodeAPI, err)
	}
}

func TestGetBalanceNetworkFailure(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close() // force a connection error

	_, err := adapter.GetBalance(context.Background(), "0xabc")
	if fault.CodeOf(err) != fault.CodeNetwork {
		t.Errorf("expected %s, got %v", fault.CodeNetwork, err)
	}
}

func TestGetTransactionsMapsFields(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"1","message":"OK","result":[
			{"hash":"0x1","from":"0xa","to":"0xb","value":"2000000000000000000",
			 "timeStamp":"1700000000","blockNumber":"18500000","gasUsed":"21000",
			 "gasPrice":"50000000000","isError":"0","txreceipt_status":"1"},
			{"hash":"0x2","from":"0xb","to":"0xa","value":"1000000000000000000",
			 "timeStamp":"1699990000","blockNumber":"18499000","gasUsed":"21000",
			 "gasPrice":"40000000000","isError":"1","txreceipt_status":"0"}
		]}`)
	})
	defer server.Close()

	txs, err := adapter.GetTransactions(context.Background(), "0xa", 10)
	if err != nil {
		t.Fatalf("get transactions failed: %v", err)
	}
	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}

	first := txs[0]
	if first.Amount != "2" {
		t.Errorf("expected 2 ETH, got %q", first.Amount)
	}
	if first.Timestamp != 1700000000_000 {
		t.Errorf("expected epoch-ms timestamp, got %d", first.Timestamp)
	}
	if first.Status != domain.TxStatusConfirmed {
		t.Errorf("expected confirmed, got %s", first.Status)
	}
	// fee = 21000 * 50 gwei = 0.00105 ETH
	if first.Fee != "0.00105" {
		t.Errorf("expected fee 0.00105, got %q", first.Fee)
	}
	if txs[1].Status != domain.TxStatusFailed {
		t.Errorf("expected failed for isError=1, got %s", txs[1].Status)
	}
}

func TestGetTransactionsEmpty(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"status":"0","message":"No transactions found","result":[]}`)
	})
	defer server.Close()

	txs, err := adapter.GetTransactions(context.Background(), "0xfresh", 10)
	if err != nil {
		t.Fatalf("an empty account must not be an error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected empty slice, got %d", len(txs))
	}
}

func TestGetTransactionsZeroLimit(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("zero limit must not hit the network")
	})
	defer server.Close()

	txs, err := adapter.GetTransactions(context.Background(), "0xa", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(txs) != 0 {
		t.Errorf("expected empty slice, got %d", len(txs))
	}
}

func TestBroadcastTransaction(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("action"); got != "eth_sendRawTransaction" {
			t.Errorf("expected proxy broadcast action, got %q", got)
		}
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":"0xdeadbeef"}`)
	})
	defer server.Close()

	hash, err := adapter.BroadcastTransaction(context.Background(), "0xsigned")
	if err != nil {
		t.Fatalf("broadcast failed: %v", err)
	}
	if hash != "0xdeadbeef" {
		t.Errorf("expected tx hash, got %q", hash)
	}
}

func TestBroadcastTransactionRejected(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"error":{"code":-32000,"message":"nonce too low"}}`)
	})
	defer server.Close()

	_, err := adapter.BroadcastTransaction(context.Background(), "0xsigned")
	if fault.CodeOf(err) != fault.CodeTransactionFailed {
		t.Errorf("expected %s, got %v", fault.CodeTransactionFailed, err)
	}
}

func TestGetTransactionStatusConfirmed(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{
			"hash":"0x1","from":"0xa","to":"0xb","value":"0x29a2241af62c0000",
			"blockNumber":"0x11a4b20","gas":"0x5208","gasPrice":"0xba43b7400"}}`)
	})
	defer server.Close()

	tx, err := adapter.GetTransactionStatus(context.Background(), "0x1")
	if err != nil {
		t.Fatalf("status fetch failed: %v", err)
	}
	if tx.Status != domain.TxStatusConfirmed {
		t.Errorf("expected confirmed with a block reference, got %s", tx.Status)
	}
	if tx.BlockNumber == 0 {
		t.Errorf("expected parsed block number")
	}
	// 0x29a2241af62c0000 = 3 ETH
	if tx.Amount != "3" {
		t.Errorf("expected 3 ETH, got %q", tx.Amount)
	}
}

func TestGetTransactionStatusPending(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":{
			"hash":"0x1","from":"0xa","to":"0xb","value":"0x0","blockNumber":null}}`)
	})
	defer server.Close()

	tx, err := adapter.GetTransactionStatus(context.Background(), "0x1")
	if err != nil {
		t.Fatalf("status fetch failed: %v", err)
	}
	if tx.Status != domain.TxStatusPending {
		t.Errorf("expected pending without a block reference, got %s", tx.Status)
	}
}

func TestGetTransactionStatusNotFound(t *testing.T) {
	server, adapter := newExplorer(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"jsonrpc":"2.0","id":1,"result":null}`)
	})
	defer server.Close()

	_, err := adapter.GetTransactionStatus(context.Background(), "0xmissing")
	if fault.CodeOf(err) != fault.CodeAPI {
		t.Errorf("expected %s, got %v", fault.CodeAPI, err)
	}
}
