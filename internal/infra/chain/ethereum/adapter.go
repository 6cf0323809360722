// Package ethereum implements the chain adapter against an Etherscan-style
// JSON API.
package ethereum

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	logger "log/slog"

	"github.com/shopspring/decimal"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
	"github.com/vietddude/walletd/internal/infra/chain"
	"github.com/vietddude/walletd/internal/metrics"
)

const weiDecimals = 18

// Config holds the explorer API settings.
type Config struct {
	APIURL  string        `yaml:"api_url"`
	APIKey  string        `yaml:"api_key"`
	Timeout time.Duration `yaml:"timeout"`
}

// Adapter talks to an Etherscan-style explorer API.
type Adapter struct {
	cfg        Config
	httpClient *http.Client
	log        *logger.Logger
}

// NewAdapter creates the Ethereum adapter. A zero timeout defaults to 8s.
func NewAdapter(cfg Config) *Adapter {
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}
	return &Adapter{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		log: logger.With("component", "ethereum-adapter"),
	}
}

func (a *Adapter) Chain() domain.Chain {
	return domain.ChainEthereum
}

// envelope is the explorer's standard response wrapper.
type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Result  json.RawMessage `json:"result"`
}

// proxyEnvelope wraps the explorer's JSON-RPC passthrough endpoints.
type proxyEnvelope struct {
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (a *Adapter) get(ctx context.Context, method string, params url.Values) ([]byte, error) {
	start := time.Now()
	metrics.ChainCallsTotal.WithLabelValues("ethereum", method).Inc()

	params.Set("apikey", a.cfg.APIKey)
	endpoint := a.cfg.APIURL + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fault.Wrap(fault.CodeNetwork, "failed to build explorer request", err)
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		metrics.ChainErrorsTotal.WithLabelValues("ethereum", method).Inc()
		if ctx.Err() != nil || strings.Contains(err.Error(), "Timeout") {
			return nil, fault.Wrap(fault.CodeTimeout, "explorer request timed out", err)
		}
		return nil, fault.Wrap(fault.CodeNetwork, "explorer request failed", err)
	}
	defer resp.Body.Close()

	metrics.ChainCallLatency.WithLabelValues("ethereum", method).
		Observe(time.Since(start).Seconds())

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.ChainErrorsTotal.WithLabelValues("ethereum", method).Inc()
		return nil, fault.Wrap(fault.CodeNetwork, "failed to read explorer response", err)
	}
	if resp.StatusCode != http.StatusOK {
		metrics.ChainErrorsTotal.WithLabelValues("ethereum", method).Inc()
		return nil, fault.New(fault.CodeAPI,
			fmt.Sprintf("explorer returned HTTP %d", resp.StatusCode), string(body))
	}
	return body, nil
}

// call performs a standard module/action request and unwraps the envelope.
// The explorer reports "no records" as status 0 with a NOTOK-free message;
// that case yields a nil result, not an error.
func (a *Adapter) call(ctx context.Context, module, action string, params url.Values) (json.RawMessage, error) {
	params.Set("module", module)
	params.Set("action", action)

	body, err := a.get(ctx, action, params)
	if err != nil {
		return nil, err
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fault.Wrap(fault.CodeAPI, "invalid explorer response", err)
	}
	if env.Status != "1" {
		if strings.Contains(strings.ToLower(env.Message), "no transactions found") {
			return nil, nil
		}
		return nil, fault.New(fault.CodeAPI, "explorer reported failure", env.Message)
	}
	return env.Result, nil
}

// GetBalance fetches the address balance and converts Wei to ETH.
func (a *Adapter) GetBalance(ctx context.Context, address string) (*domain.Balance, error) {
	params := url.Values{}
	params.Set("address", address)
	params.Set("tag", "latest")

	result, err := a.call(ctx, "account", "balance", params)
	if err != nil {
		return nil, err
	}

	var wei string
	if err := json.Unmarshal(result, &wei); err != nil {
		return nil, fault.Wrap(fault.CodeAPI, "invalid balance format", err)
	}
	amount, err := weiToEth(wei)
	if err != nil {
		return nil, err
	}

	return &domain.Balance{
		Address:  address,
		Amount:   amount,
		Currency: domain.ChainEthereum.Symbol(),
	}, nil
}

// explorerTx is the txlist record shape.
type explorerTx struct {
	Hash            string `json:"hash"`
	From            string `json:"from"`
	To              string `json:"to"`
	Value           string `json:"value"`
	TimeStamp       string `json:"timeStamp"`
	BlockNumber     string `json:"blockNumber"`
	GasUsed         string `json:"gasUsed"`
	GasPrice        string `json:"gasPrice"`
	IsError         string `json:"isError"`
	TxReceiptStatus string `json:"txreceipt_status"`
}

// GetTransactions lists transactions for the address, newest first.
func (a *Adapter) GetTransactions(ctx context.Context, address string, limit int) ([]*domain.Transaction, error) {
	if limit < 0 {
		limit = 0
	}
	if limit == 0 {
		return []*domain.Transaction{}, nil
	}

	params := url.Values{}
	params.Set("address", address)
	params.Set("page", "1")
	params.Set("offset", strconv.Itoa(limit))
	params.Set("sort", "desc")

	result, err := a.call(ctx, "account", "txlist", params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return []*domain.Transaction{}, nil
	}

	var raw []explorerTx
	if err := json.Unmarshal(result, &raw); err != nil {
		return nil, fault.Wrap(fault.CodeAPI, "invalid transaction list format", err)
	}

	txs := make([]*domain.Transaction, 0, len(raw))
	for _, r := range raw {
		tx, err := a.mapTransaction(r)
		if err != nil {
			a.log.Warn("skipping unparsable transaction", "hash", r.Hash, "error", err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

func (a *Adapter) mapTransaction(r explorerTx) (*domain.Transaction, error) {
	amount, err := weiToEth(r.Value)
	if err != nil {
		return nil, err
	}

	timestamp, _ := strconv.ParseInt(r.TimeStamp, 10, 64)
	blockNumber, _ := strconv.ParseUint(r.BlockNumber, 10, 64)
	gasUsed, _ := strconv.ParseUint(r.GasUsed, 10, 64)

	status := domain.TxStatusConfirmed
	if r.IsError == "1" || r.TxReceiptStatus == "0" {
		status = domain.TxStatusFailed
	}

	return &domain.Transaction{
		Hash:        r.Hash,
		From:        r.From,
		To:          r.To,
		Amount:      amount,
		Currency:    domain.ChainEthereum.Symbol(),
		Timestamp:   timestamp * 1000,
		Status:      status,
		BlockNumber: blockNumber,
		GasUsed:     gasUsed,
		Fee:         computeFee(r.GasUsed, r.GasPrice),
	}, nil
}

// BroadcastTransaction submits a signed raw transaction through the
// explorer's JSON-RPC proxy.
func (a *Adapter) BroadcastTransaction(ctx context.Context, signedTx string) (string, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_sendRawTransaction")
	params.Set("hex", signedTx)

	body, err := a.get(ctx, "eth_sendRawTransaction", params)
	if err != nil {
		return "", err
	}

	var env proxyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return "", fault.Wrap(fault.CodeAPI, "invalid broadcast response", err)
	}
	if env.Error != nil {
		return "", fault.New(fault.CodeTransactionFailed,
			"transaction rejected by the network", env.Error.Message)
	}

	var hash string
	if err := json.Unmarshal(env.Result, &hash); err != nil || hash == "" {
		return "", fault.New(fault.CodeTransactionFailed,
			"transaction rejected by the network", string(env.Result))
	}
	return hash, nil
}

// proxyTx is the eth_getTransactionByHash result shape (hex encoded fields).
type proxyTx struct {
	Hash        string `json:"hash"`
	From        string `json:"from"`
	To          string `json:"to"`
	Value       string `json:"value"`
	BlockNumber string `json:"blockNumber"`
	Gas         string `json:"gas"`
	GasPrice    string `json:"gasPrice"`
}

// GetTransactionStatus fetches a single transaction through the proxy.
// A transaction without a block reference is still pending.
func (a *Adapter) GetTransactionStatus(ctx context.Context, hash string) (*domain.Transaction, error) {
	params := url.Values{}
	params.Set("module", "proxy")
	params.Set("action", "eth_getTransactionByHash")
	params.Set("txhash", hash)

	body, err := a.get(ctx, "eth_getTransactionByHash", params)
	if err != nil {
		return nil, err
	}

	var env proxyEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fault.Wrap(fault.CodeAPI, "invalid transaction response", err)
	}
	if len(env.Result) == 0 || string(env.Result) == "null" {
		return nil, fault.New(fault.CodeAPI, "transaction not found", hash)
	}

	var raw proxyTx
	if err := json.Unmarshal(env.Result, &raw); err != nil {
		return nil, fault.Wrap(fault.CodeAPI, "invalid transaction format", err)
	}

	amount, err := hexWeiToEth(raw.Value)
	if err != nil {
		return nil, err
	}

	tx := &domain.Transaction{
		Hash:      raw.Hash,
		From:      raw.From,
		To:        raw.To,
		Amount:    amount,
		Currency:  domain.ChainEthereum.Symbol(),
		Timestamp: time.Now().UnixMilli(),
		Status:    domain.TxStatusPending,
	}
	if raw.BlockNumber != "" && raw.BlockNumber != "null" {
		if n, err := strconv.ParseUint(strings.TrimPrefix(raw.BlockNumber, "0x"), 16, 64); err == nil {
			tx.BlockNumber = n
			tx.Status = domain.TxStatusConfirmed
		}
	}
	return tx, nil
}

// weiToEth converts a decimal Wei string to an ETH decimal string.
func weiToEth(wei string) (string, error) {
	d, err := decimal.NewFromString(wei)
	if err != nil {
		return "", fault.Wrap(fault.CodeAPI, "invalid wei amount", err)
	}
	return d.Shift(-weiDecimals).String(), nil
}

// hexWeiToEth converts a 0x-prefixed hex Wei amount to an ETH decimal string.
func hexWeiToEth(hexWei string) (string, error) {
	if hexWei == "" {
		return "0", nil
	}
	n, ok := new(big.Int).SetString(strings.TrimPrefix(hexWei, "0x"), 16)
	if !ok {
		return "", fault.New(fault.CodeAPI, "invalid hex amount", hexWei)
	}
	return decimal.NewFromBigInt(n, -weiDecimals).String(), nil
}

// computeFee returns gasUsed * gasPrice in ETH, or empty when unparsable.
func computeFee(gasUsed, gasPrice string) string {
	used, err1 := decimal.NewFromString(gasUsed)
	price, err2 := decimal.NewFromString(gasPrice)
	if err1 != nil || err2 != nil {
		return ""
	}
	return used.Mul(price).Shift(-weiDecimals).String()
}

var _ chain.Adapter = (*Adapter)(nil)
