package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/shopspring/decimal"
)

const coinGeckoURL = "https://api.coingecko.com/api/v3/simple/price"

// coinGeckoIDs maps Yahoo-style crypto pairs to CoinGecko coin IDs.
var coinGeckoIDs = map[string]string{
	"BTC-USD": "bitcoin",
	"ETH-USD": "ethereum",
	"SOL-USD": "solana",
}

// LookupCoinGeckoID returns the CoinGecko coin ID for a crypto pair.
func LookupCoinGeckoID(symbol string) (string, bool) {
	id, ok := coinGeckoIDs[strings.ToUpper(symbol)]
	return id, ok
}

// CoinGeckoProvider quotes the USD crypto pairs it knows from CoinGecko.
type CoinGeckoProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewCoinGeckoProvider creates a new CoinGecko quote source.
func NewCoinGeckoProvider(httpClient *http.Client) *CoinGeckoProvider {
	return &CoinGeckoProvider{httpClient: httpClient, baseURL: coinGeckoURL}
}

// Name returns the source recorded on snapshots.
func (p *CoinGeckoProvider) Name() string { return "coingecko" }

// Supports returns true for crypto pairs with a known coin ID.
func (p *CoinGeckoProvider) Supports(symbol string) bool {
	_, ok := LookupCoinGeckoID(symbol)
	return ok
}

// FetchQuote fetches the USD price and 24h change of a crypto pair.
func (p *CoinGeckoProvider) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	id, ok := LookupCoinGeckoID(symbol)
	if !ok {
		return nil, fmt.Errorf("no CoinGecko mapping for %s", symbol)
	}

	reqURL := p.baseURL + "?ids=" + id + "&vs_currencies=usd&include_24hr_change=true"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", symbol, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request for %s: %w", symbol, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request for %s: unexpected status %d", symbol, resp.StatusCode)
	}

	var body map[string]map[string]float64
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding response for %s: %w", symbol, err)
	}

	fields, ok := body[id]
	if !ok {
		return nil, fmt.Errorf("%w for %s: %s missing from response", ErrNoPrice, symbol, id)
	}
	price := decimal.NewFromFloat(fields["usd"])
	if err := validPrice(symbol, price); err != nil {
		return nil, err
	}

	q := &Quote{Symbol: symbol, Price: price, Currency: "USD", Source: p.Name()}
	if pct, ok := fields["usd_24h_change"]; ok {
		d := decimal.NewFromFloat(pct)
		q.ChangePercent = decimal.NewNullDecimal(d.Round(6))
		// price = previous * (1 + pct/100); no previous exists at -100% or below.
		if d.GreaterThan(decimal.NewFromInt(-100)) {
			previous := price.Div(decimal.NewFromInt(1).Add(d.Div(decimal.NewFromInt(100))))
			q.Change = decimal.NewNullDecimal(price.Sub(previous).Round(8))
		}
	}
	return q, nil
}
