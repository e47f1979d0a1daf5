package models

import "strings"

// AssetClass identifies the kind of asset a holding represents.
type AssetClass string

const (
	AssetClassStock    AssetClass = "STOCK"
	AssetClassETF      AssetClass = "ETF"
	AssetClassGold     AssetClass = "GOLD"
	AssetClassSilver   AssetClass = "SILVER"
	AssetClassBitcoin  AssetClass = "BITCOIN"
	AssetClassEthereum AssetClass = "ETHEREUM"
	AssetClassCashUSD  AssetClass = "CASH_USD"
	AssetClassCashEUR  AssetClass = "CASH_EUR"
	AssetClassCashCNY  AssetClass = "CASH_CNY"
)

// assetClassInfo holds everything that varies per asset class. Adding a class
// means adding one row here.
type assetClassInfo struct {
	label          string
	priced         bool
	requiresSymbol bool
	defaultSymbol  string
	nativeCurrency string
}

var assetClasses = map[AssetClass]assetClassInfo{
	AssetClassStock:    {label: "Stock", priced: true, requiresSymbol: true},
	AssetClassETF:      {label: "ETF", priced: true, requiresSymbol: true},
	AssetClassGold:     {label: "Gold", priced: true, defaultSymbol: "GC=F"},
	AssetClassSilver:   {label: "Silver", priced: true, defaultSymbol: "SI=F"},
	AssetClassBitcoin:  {label: "Bitcoin", priced: true, defaultSymbol: "BTC-USD"},
	AssetClassEthereum: {label: "Ethereum", priced: true, defaultSymbol: "ETH-USD"},
	AssetClassCashUSD:  {label: "Cash (USD)", nativeCurrency: "USD"},
	AssetClassCashEUR:  {label: "Cash (EUR)", nativeCurrency: "EUR"},
	AssetClassCashCNY:  {label: "Cash (CNY)", nativeCurrency: "CNY"},
}

// AssetClasses returns all known asset classes in a stable order.
func AssetClasses() []AssetClass {
	return []AssetClass{
		AssetClassStock, AssetClassETF, AssetClassGold, AssetClassSilver,
		AssetClassBitcoin, AssetClassEthereum,
		AssetClassCashUSD, AssetClassCashEUR, AssetClassCashCNY,
	}
}

// ParseAssetClass normalizes s and reports whether it names a known class.
func ParseAssetClass(s string) (AssetClass, bool) {
	c := AssetClass(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := assetClasses[c]
	return c, ok
}

// IsValid reports whether c is a known asset class.
func (c AssetClass) IsValid() bool {
	_, ok := assetClasses[c]
	return ok
}

// Label is a human-readable name for c.
func (c AssetClass) Label() string {
	if info, ok := assetClasses[c]; ok {
		return info.label
	}
	return string(c)
}

// Priced reports whether holdings of c are valued from a price snapshot.
func (c AssetClass) Priced() bool { return assetClasses[c].priced }

// RequiresSymbol reports whether the user must supply a symbol for c.
func (c AssetClass) RequiresSymbol() bool { return assetClasses[c].requiresSymbol }

// DefaultSymbol is the feed symbol used when the user gives none.
func (c AssetClass) DefaultSymbol() string { return assetClasses[c].defaultSymbol }

// NativeCurrency is the fixed settlement currency of c, or "" when it
// depends on the quote.
func (c AssetClass) NativeCurrency() string { return assetClasses[c].nativeCurrency }

// AllowsZeroUnits reports whether a holding of c may be recorded with zero
// units. Only cash balances may be empty.
func (c AssetClass) AllowsZeroUnits() bool { return !assetClasses[c].priced }

// NormalizeSymbol trims and uppercases a feed symbol.
func NormalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

// ResolveSymbol maps an asset class and an optional user-supplied symbol to
// the canonical feed symbol. It returns false for classes that need no price.
func ResolveSymbol(class AssetClass, raw string) (string, bool) {
	if s := NormalizeSymbol(raw); s != "" {
		return s, true
	}
	if s := class.DefaultSymbol(); s != "" {
		return s, true
	}
	return "", false
}
