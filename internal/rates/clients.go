package rates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/vietddude/walletd/internal/core/domain"
	"github.com/vietddude/walletd/internal/core/fault"
	"github.com/vietddude/walletd/internal/metrics"
)

// coinNames maps provider coin ids to display names.
var coinNames = map[string]string{
	"bitcoin":  "Bitcoin",
	"ethereum": "Ethereum",
	"algorand": "Algorand",
}

func (s *Service) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return fault.Wrap(fault.CodeNetwork, "failed to build request", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fault.Wrap(fault.CodeNetwork, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fault.Wrap(fault.CodeNetwork, "failed to read response", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fault.New(fault.CodeAPI,
			fmt.Sprintf("provider returned HTTP %d", resp.StatusCode), string(body))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fault.Wrap(fault.CodeAPI, "invalid provider response", err)
	}
	return nil
}

// priceQuote is the per-coin shape of the price provider response.
type priceQuote struct {
	USD          float64 `json:"usd"`
	USD24hChange float64 `json:"usd_24h_change"`
	USDMarketCap float64 `json:"usd_market_cap"`
	USD24hVol    float64 `json:"usd_24h_vol"`
}

// fetchPrice hits the live price API for one symbol.
func (s *Service) fetchPrice(ctx context.Context, symbol, coinID string) (*domain.CryptoPrice, error) {
	params := url.Values{}
	params.Set("ids", coinID)
	params.Set("vs_currencies", "usd")
	params.Set("include_24hr_change", "true")
	params.Set("include_market_cap", "true")
	params.Set("include_24hr_vol", "true")

	var quotes map[string]priceQuote
	if err := s.getJSON(ctx, s.cfg.PriceURL+"?"+params.Encode(), &quotes); err != nil {
		metrics.PriceFetchesTotal.WithLabelValues("price", "error").Inc()
		return nil, err
	}

	quote, ok := quotes[coinID]
	if !ok {
		metrics.PriceFetchesTotal.WithLabelValues("price", "error").Inc()
		return nil, fault.New(fault.CodeAPI, "price provider returned no quote", coinID)
	}

	metrics.PriceFetchesTotal.WithLabelValues("price", "ok").Inc()
	name := coinNames[coinID]
	if name == "" {
		name = symbol
	}
	return &domain.CryptoPrice{
		Symbol:      symbol,
		Name:        name,
		Price:       quote.USD,
		Change24h:   quote.USD24hChange,
		MarketCap:   quote.USDMarketCap,
		Volume24h:   quote.USD24hVol,
		LastUpdated: time.Now().UnixMilli(),
	}, nil
}

// fetchFiatRate hits the live fiat rate API for one pair.
func (s *Service) fetchFiatRate(ctx context.Context, from, to string) (float64, error) {
	var payload struct {
		Rates map[string]float64 `json:"rates"`
	}
	if err := s.getJSON(ctx, s.cfg.FiatURL+"/"+from, &payload); err != nil {
		metrics.PriceFetchesTotal.WithLabelValues("rate", "error").Inc()
		return 0, err
	}

	rate, ok := payload.Rates[to]
	if !ok {
		metrics.PriceFetchesTotal.WithLabelValues("rate", "error").Inc()
		return 0, fault.New(fault.CodeAPI, "rate provider has no rate for currency", to)
	}

	metrics.PriceFetchesTotal.WithLabelValues("rate", "ok").Inc()
	return rate, nil
}
