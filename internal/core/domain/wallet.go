package domain

import (
	"time"
)

// SchemaVersion is the current wallet envelope schema version. Envelopes
// persisted under an older version are migrated on load.
const SchemaVersion = "1.0"

// MaxStoredTransactions bounds the persisted history so the serialized
// envelope stays small. Oldest entries are evicted first.
const MaxStoredTransactions = 100

// WalletData is the persisted wallet envelope.
type WalletData struct {
	Addresses    map[Chain]string `json:"addresses"`
	Balances     map[Chain]string `json:"balances"`
	Transactions []Transaction    `json:"transactions"`
	Settings     Settings         `json:"settings"`
	Clients      []Client         `json:"clients"`
	Version      string           `json:"version"`
}

// Settings holds user preferences carried inside the envelope.
type Settings struct {
	Currency      string `json:"currency"`
	Language      string `json:"language"`
	Notifications bool   `json:"notifications"`
	Biometric     bool   `json:"biometric"`
}

// Client is a merchant-mode customer record, unique by ID.
type Client struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   string    `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultSettings returns the settings of a fresh wallet.
func DefaultSettings() Settings {
	return Settings{
		Currency:      "USD",
		Language:      "en",
		Notifications: true,
		Biometric:     false,
	}
}

// Normalize re-defaults any nil map or slice field. Decoding JSON with an
// explicit null field zeroes a pre-populated map, so every envelope decoded
// from external input must be normalized before use.
func (d *WalletData) Normalize() {
	if d.Addresses == nil {
		d.Addresses = make(map[Chain]string, len(ChainSymbol))
		for _, c := range Chains() {
			d.Addresses[c] = ""
		}
	}
	if d.Balances == nil {
		d.Balances = make(map[Chain]string, len(ChainSymbol))
		for _, c := range Chains() {
			d.Balances[c] = "0"
		}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.Clients == nil {
		d.Clients = []Client{}
	}
}

// DefaultWalletData returns a structurally complete empty envelope.
// Every load path is guaranteed to yield at least this shape.
func DefaultWalletData() *WalletData {
	addresses := make(map[Chain]string, len(ChainSymbol))
	balances := make(map[Chain]string, len(ChainSymbol))
	for _, c := range Chains() {
		addresses[c] = ""
		balances[c] = "0"
	}
	return &WalletData{
		Addresses:    addresses,
		Balances:     balances,
		Transactions: []Transaction{},
		Settings:     DefaultSettings(),
		Clients:      []Client{},
		Version:      SchemaVersion,
	}
}
