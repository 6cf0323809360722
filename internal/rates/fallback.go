package rates

import (
	"time"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/metrics"
)

// Deterministic stand-in quotes served when every live fetch fails. Price
// data is an enhancement, never essential correctness, so callers get these
// instead of an error.
var fallbackPrices = map[string]domain.CryptoPrice{
	"BTC": {
		Symbol:    "BTC",
		Name:      "Bitcoin",
		Price:     43250.50,
		Change24h: 2.45,
	},
	"ETH": {
		Symbol:    "ETH",
		Name:      "Ethereum",
		Price:     2650.75,
		Change24h: -1.23,
	},
	"ALGO": {
		Symbol:    "ALGO",
		Name:      "Algorand",
		Price:     0.245,
		Change24h: 0.87,
	},
}

// Fallback fiat rates, keyed from→to. Unknown pairs default to identity.
var fallbackFiatRates = map[string]map[string]float64{
	"USD": {"EUR": 0.85, "CHF": 0.92, "GBP": 0.73, "JPY": 110.0},
	"EUR": {"USD": 1.18, "CHF": 1.08, "GBP": 0.86, "JPY": 129.5},
	"CHF": {"USD": 1.09, "EUR": 0.93, "GBP": 0.79, "JPY": 119.8},
	"GBP": {"USD": 1.37, "EUR": 1.16, "CHF": 1.26, "JPY": 150.7},
	"JPY": {"USD": 0.0091, "EUR": 0.0077, "CHF": 0.0083, "GBP": 0.0066},
}

func fallbackPrice(symbol string) *domain.CryptoPrice {
	metrics.FallbacksServed.WithLabelValues("price").Inc()

	price, ok := fallbackPrices[symbol]
	if !ok {
		price = domain.CryptoPrice{Symbol: symbol, Name: symbol, Price: 1.0}
	}
	price.LastUpdated = time.Now().UnixMilli()
	return &price
}

func fallbackFiatRate(from, to string) float64 {
	metrics.FallbacksServed.WithLabelValues("rate").Inc()

	if rates, ok := fallbackFiatRates[from]; ok {
		if rate, ok := rates[to]; ok {
			return rate
		}
	}
	return 1.0
}
