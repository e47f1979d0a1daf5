package provider

import (
	"fmt"
	"net/http"
)

// NewQuoteSource builds the quote source named by QUOTE_SOURCE. Crypto
// symbols go to CoinGecko first; everything else falls through to the
// named equity feed.
func NewQuoteSource(name string, client *http.Client) (QuoteSource, error) {
	crypto := NewCoinGeckoProvider(client)
	switch name {
	case "", "yahoo":
		return NewChain(crypto, NewYahooProvider(client)), nil
	case "finance-go":
		return NewChain(crypto, NewFinanceGoProvider(), NewYahooProvider(client)), nil
	default:
		return nil, fmt.Errorf("unknown quote source %q", name)
	}
}

// NewRateSource builds the FX source named by FX_SOURCE.
func NewRateSource(name string, client *http.Client) (RateSource, error) {
	switch name {
	case "", "frankfurter":
		return NewFrankfurterSource(client), nil
	case "yahoo":
		return NewYahooFXSource(client), nil
	default:
		return nil, fmt.Errorf("unknown fx source %q", name)
	}
}
