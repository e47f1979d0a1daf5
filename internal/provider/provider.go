// Package provider fetches quotes and exchange rates from external market
// data sources.
package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoPrice is returned when a source answers but has no usable price.
var ErrNoPrice = errors.New("no usable price")

// Quote is the latest market price of one symbol.
type Quote struct {
	Symbol        string
	Price         decimal.Decimal
	Currency      string
	Change        decimal.NullDecimal
	ChangePercent decimal.NullDecimal
	Source        string
}

// QuoteSource fetches the latest quote for a single symbol.
type QuoteSource interface {
	// Name is stored as the snapshot's source.
	Name() string
	// Supports reports whether this source can quote symbol.
	Supports(symbol string) bool
	// FetchQuote returns the latest quote. Implementations return an error
	// wrapping ErrNoPrice when the price is missing or not positive.
	FetchQuote(ctx context.Context, symbol string) (*Quote, error)
}

// RateTable is a set of rates quoted against one base currency:
// 1 Base = Rates[code] code.
type RateTable struct {
	Base   string
	Rates  map[string]decimal.Decimal
	AsOf   time.Time
	Source string
}

// RateSource fetches exchange rates from a base currency.
type RateSource interface {
	Name() string
	FetchRates(ctx context.Context, base string, quotes []string) (*RateTable, error)
}

// FetchError records a failed fetch for one symbol.
type FetchError struct {
	Symbol string
	Source string
	Err    error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	return fmt.Sprintf("%s: failed to fetch %s: %v", e.Source, e.Symbol, e.Err)
}

// Unwrap returns the underlying error.
func (e *FetchError) Unwrap() error { return e.Err }

// NewHTTPClient returns the client shared by all HTTP sources.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// validPrice rejects missing, zero and negative prices.
func validPrice(symbol string, price decimal.Decimal) error {
	if !price.IsPositive() {
		return fmt.Errorf("%w for %s: %s", ErrNoPrice, symbol, price)
	}
	return nil
}

// changeFromPrevious derives the absolute and percent change from the
// previous close. Both are null when there is no previous close.
func changeFromPrevious(price, previous decimal.Decimal) (decimal.NullDecimal, decimal.NullDecimal) {
	if !previous.IsPositive() {
		return decimal.NullDecimal{}, decimal.NullDecimal{}
	}
	change := price.Sub(previous)
	pct := change.Div(previous).Mul(decimal.NewFromInt(100)).Round(6)
	return decimal.NewNullDecimal(change), decimal.NewNullDecimal(pct)
}

// minorUnits maps the sub-unit codes Yahoo quotes some listings in to their
// ISO currency. Codes are case sensitive: GBp is pence, GBP is pounds.
var minorUnits = map[string]string{
	"GBp": "GBP",
	"GBX": "GBP",
	"ZAc": "ZAR",
	"ILA": "ILS",
}

// toMajorUnits rewrites a quote in a minor-unit currency into its ISO
// currency, scaling price and change by 1/100. Other codes are uppercased.
func (q *Quote) toMajorUnits() {
	code := strings.TrimSpace(q.Currency)
	major, ok := minorUnits[code]
	if !ok {
		q.Currency = strings.ToUpper(code)
		return
	}
	hundred := decimal.NewFromInt(100)
	q.Currency = major
	q.Price = q.Price.Div(hundred)
	if q.Change.Valid {
		q.Change = decimal.NewNullDecimal(q.Change.Decimal.Div(hundred))
	}
}
