// Package rates fetches, caches and gracefully degrades price and exchange
// rate data. Live fetch failures are swallowed and replaced with
// deterministic fallback data; callers never see a price-fetch error.
package rates

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	logger "log/slog"

	"github.com/sethvargo/go-retry"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
)

// CacheTTL is how long a price or rate entry stays valid.
const CacheTTL = 60 * time.Second

// Closed membership sets driving pair routing. No dynamic discovery.
var (
	cryptoCurrencies = map[string]bool{"BTC": true, "ETH": true, "ALGO": true}
	fiatCurrencies   = map[string]bool{"USD": true, "EUR": true, "CHF": true, "GBP": true, "JPY": true}
)

// Config holds the live provider settings.
type Config struct {
	PriceURL string        `yaml:"price_url"`
	FiatURL  string        `yaml:"fiat_url"`
	Timeout  time.Duration `yaml:"timeout"`
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// Service is the process-wide rate source. The cache and breaker are owned
// and exclusively mutated by the service; it is safe for concurrent use.
type Service struct {
	cfg        Config
	httpClient *http.Client
	cache      *ttlCache
	breaker    *gobreaker.CircuitBreaker
	log        *logger.Logger
}

// NewService creates the rate service. Zero timeout defaults to 8s, zero
// cache TTL to CacheTTL.
func NewService(cfg Config) *Service {
	if cfg.Timeout == 0 {
		cfg.Timeout = 8 * time.Second
	}
	if cfg.CacheTTL == 0 {
		cfg.CacheTTL = CacheTTL
	}
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		cache: newTTLCache(cfg.CacheTTL),
		breaker: gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name: "rates",
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				ratio := float64(counts.TotalFailures) / float64(counts.Requests)
				return counts.Requests > 10 && ratio >= 0.6
			},
		}),
		log: logger.With("component", "rates"),
	}
}

// fetchLive runs fn behind the circuit breaker with bounded retry. Once the
// breaker opens, calls fail fast and the caller degrades to fallback data.
func (s *Service) fetchLive(ctx context.Context, fn func(context.Context) (any, error)) (any, error) {
	backoff := retry.WithMaxRetries(2, retry.NewExponential(200*time.Millisecond))

	var result any
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		out, err := s.breaker.Execute(func() (any, error) {
			return fn(ctx)
		})
		if err != nil {
			if fault.IsNetwork(err) {
				return retry.RetryableError(err)
			}
			return err
		}
		result = out
		return nil
	})
	return result, err
}

// CryptoPrice returns the USD quote for a crypto symbol. Results are cached
// for the TTL; on any live failure the deterministic fallback table answers
// instead. This method does not fail on fetch errors.
func (s *Service) CryptoPrice(ctx context.Context, symbol string) (*domain.CryptoPrice, error) {
	symbol = strings.ToUpper(symbol)
	coinID, ok := domain.CoinID[symbol]
	if !ok {
		return nil, fault.New(fault.CodeValidation, "unsupported crypto symbol", symbol)
	}

	cacheKey := "price_" + strings.ToLower(symbol)
	if cached, ok := s.cache.get(cacheKey); ok {
		return cached.(*domain.CryptoPrice), nil
	}

	result, err := s.fetchLive(ctx, func(ctx context.Context) (any, error) {
		return s.fetchPrice(ctx, symbol, coinID)
	})
	if err != nil {
		s.log.Warn("live price fetch failed, serving fallback",
			"symbol", symbol, "error", err)
		price := fallbackPrice(symbol)
		s.cache.set(cacheKey, price)
		return price, nil
	}

	price := result.(*domain.CryptoPrice)
	s.cache.set(cacheKey, price)
	return price, nil
}

// ExchangeRate returns the conversion rate between two currencies.
// Crypto→fiat resolves through CryptoPrice; fiat→fiat through the live rate
// API with an identity short-circuit. Any other pair combination is an API
// fault naming the pair; it is never silently an identity rate.
func (s *Service) ExchangeRate(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	from = strings.ToUpper(from)
	to = strings.ToUpper(to)

	switch {
	case cryptoCurrencies[from] && fiatCurrencies[to]:
		return s.cryptoToFiat(ctx, from, to)
	case fiatCurrencies[from] && fiatCurrencies[to]:
		return s.fiatToFiat(ctx, from, to)
	}
	return nil, fault.New(fault.CodeAPI, "unsupported exchange rate",
		fmt.Sprintf("%s to %s", from, to))
}

func (s *Service) cryptoToFiat(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	price, err := s.CryptoPrice(ctx, from)
	if err != nil {
		return nil, err
	}

	rate := price.Price
	if to != "USD" {
		usdRate, err := s.fiatToFiat(ctx, "USD", to)
		if err != nil {
			return nil, err
		}
		rate *= usdRate.Rate
	}

	return &domain.ExchangeRate{
		From:      from,
		To:        to,
		Rate:      rate,
		Timestamp: time.Now().UnixMilli(),
	}, nil
}

func (s *Service) fiatToFiat(ctx context.Context, from, to string) (*domain.ExchangeRate, error) {
	now := time.Now().UnixMilli()
	if from == to {
		return &domain.ExchangeRate{From: from, To: to, Rate: 1, Timestamp: now}, nil
	}

	cacheKey := fmt.Sprintf("rate_%s_%s", from, to)
	if cached, ok := s.cache.get(cacheKey); ok {
		return cached.(*domain.ExchangeRate), nil
	}

	result, err := s.fetchLive(ctx, func(ctx context.Context) (any, error) {
		return s.fetchFiatRate(ctx, from, to)
	})

	var rate float64
	if err != nil {
		s.log.Warn("live rate fetch failed, serving fallback",
			"from", from, "to", to, "error", err)
		rate = fallbackFiatRate(from, to)
	} else {
		rate = result.(float64)
	}

	entry := &domain.ExchangeRate{From: from, To: to, Rate: rate, Timestamp: now}
	s.cache.set(cacheKey, entry)
	return entry, nil
}

// ConvertAmount converts amount between two currencies using ExchangeRate.
// Identity when the currencies match.
func (s *Service) ConvertAmount(ctx context.Context, amount float64, from, to string) (float64, error) {
	if strings.EqualFold(from, to) {
		return amount, nil
	}

	rate, err := s.ExchangeRate(ctx, from, to)
	if err != nil {
		return 0, err
	}

	converted, _ := decimal.NewFromFloat(amount).
		Mul(decimal.NewFromFloat(rate.Rate)).
		Float64()
	return converted, nil
}

// MultiplePrices fans out CryptoPrice for every symbol in parallel and
// waits for all of them.
func (s *Service) MultiplePrices(ctx context.Context, symbols []string) (map[string]*domain.CryptoPrice, error) {
	type outcome struct {
		symbol string
		price  *domain.CryptoPrice
		err    error
	}

	results := make([]outcome, len(symbols))
	var wg sync.WaitGroup
	for i, symbol := range symbols {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			price, err := s.CryptoPrice(ctx, symbol)
			results[i] = outcome{symbol: strings.ToUpper(symbol), price: price, err: err}
		}(i, symbol)
	}
	wg.Wait()

	out := make(map[string]*domain.CryptoPrice, len(symbols))
	for _, r := range results {
		if r.err != nil {
			return nil, r.err
		}
		out[r.symbol] = r.price
	}
	return out, nil
}
