package domain

// Transaction represents a chain-level transaction as seen by the wallet.
// Instances are read-only snapshots; a status change produces a new value.
type Transaction struct {
	Hash        string   `json:"hash"`
	From        string   `json:"from"`
	To          string   `json:"to"`
	Amount      string   `json:"amount"`
	Currency    string   `json:"currency"`
	Timestamp   int64    `json:"timestamp"` // epoch milliseconds
	Status      TxStatus `json:"status"`
	BlockNumber uint64   `json:"block_number,omitempty"`
	GasUsed     uint64   `json:"gas_used,omitempty"`
	Fee         string   `json:"fee,omitempty"`
}

type TxStatus string

const (
	TxStatusPending   TxStatus = "pending"
	TxStatusConfirmed TxStatus = "confirmed"
	TxStatusFailed    TxStatus = "failed"
)

// Balance is an immutable balance snapshot produced by a chain adapter.
// Adapters never cache these; caching, if any, belongs to the caller.
type Balance struct {
	Address  string  `json:"address"`
	Amount   string  `json:"balance"` // decimal string in native units
	Currency string  `json:"currency"`
	USDValue float64 `json:"usd_value,omitempty"`
}
