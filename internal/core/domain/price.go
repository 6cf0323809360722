package domain

// CryptoPrice is a point-in-time market quote for a crypto asset, in USD.
type CryptoPrice struct {
	Symbol      string  `json:"symbol"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Change24h   float64 `json:"change_24h"`
	MarketCap   float64 `json:"market_cap,omitempty"`
	Volume24h   float64 `json:"volume_24h,omitempty"`
	LastUpdated int64   `json:"last_updated"` // epoch milliseconds
}

// ExchangeRate is a point-in-time conversion rate between two currencies.
type ExchangeRate struct {
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Timestamp int64   `json:"timestamp"` // epoch milliseconds
}
