package domain

// Chain identifies a supported blockchain.
type Chain string

const (
	ChainBitcoin  Chain = "bitcoin"
	ChainEthereum Chain = "ethereum"
	ChainAlgorand Chain = "algorand"
)

// ChainSymbol maps a chain to its native currency symbol.
var ChainSymbol = map[Chain]string{
	ChainBitcoin:  "BTC",
	ChainEthereum: "ETH",
	ChainAlgorand: "ALGO",
}

// SymbolChain maps a currency symbol back to its chain.
var SymbolChain = map[string]Chain{
	"BTC":  ChainBitcoin,
	"ETH":  ChainEthereum,
	"ALGO": ChainAlgorand,
}

// CoinID maps a currency symbol to the price provider's internal coin id.
var CoinID = map[string]string{
	"BTC":  "bitcoin",
	"ETH":  "ethereum",
	"ALGO": "algorand",
}

// Chains returns all supported chains in a stable order.
func Chains() []Chain {
	return []Chain{ChainBitcoin, ChainEthereum, ChainAlgorand}
}

func (c Chain) Symbol() string {
	return ChainSymbol[c]
}

// Valid reports whether c is one of the supported chains.
func (c Chain) Valid() bool {
	_, ok := ChainSymbol[c]
	return ok
}
