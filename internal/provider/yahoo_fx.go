package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

// YahooFXSource fetches exchange rates from Yahoo Finance currency tickers
// such as EURUSD=X. Pairs that fail are left out of the table.
type YahooFXSource struct {
	yahoo *YahooProvider
}

// NewYahooFXSource creates a rate source backed by the Yahoo chart API.
func NewYahooFXSource(httpClient *http.Client) *YahooFXSource {
	return &YahooFXSource{yahoo: NewYahooProvider(httpClient)}
}

// Name returns the source recorded on FX snapshots.
func (s *YahooFXSource) Name() string { return "yahoo" }

// FetchRates fetches base→quote for each quote currency.
func (s *YahooFXSource) FetchRates(ctx context.Context, base string, quotes []string) (*RateTable, error) {
	base = strings.ToUpper(base)
	table := &RateTable{
		Base:   base,
		Rates:  make(map[string]decimal.Decimal, len(quotes)),
		Source: s.Name(),
	}

	var firstErr error
	for _, quote := range quotes {
		quote = strings.ToUpper(quote)
		if quote == base {
			continue
		}
		ticker := base + quote + "=X"
		meta, err := s.yahoo.fetchMeta(ctx, ticker)
		if err != nil {
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		rate := decimal.NewFromFloat(meta.RegularMarketPrice)
		if !rate.IsPositive() {
			if firstErr == nil {
				firstErr = fmt.Errorf("invalid forex rate for %s: %s", ticker, rate)
			}
			continue
		}
		table.Rates[quote] = rate
	}

	if len(table.Rates) == 0 {
		if firstErr == nil {
			firstErr = fmt.Errorf("no quote currencies requested")
		}
		return nil, fmt.Errorf("fetching %s rates: %w", base, firstErr)
	}
	return table, nil
}
