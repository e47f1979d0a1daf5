package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/shopspring/decimal"
)

const (
	yahooChartURL = "https://query1.finance.yahoo.com/v8/finance/chart"
	yahooUA       = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7)"
)

// yahooChartResponse is the subset of the v8 chart API that we read.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Meta yahooChartMeta `json:"meta"`
		} `json:"result"`
		Error *yahooChartError `json:"error"`
	} `json:"chart"`
}

type yahooChartMeta struct {
	Symbol             string  `json:"symbol"`
	Currency           string  `json:"currency"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	PreviousClose      float64 `json:"previousClose"`
}

type yahooChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// YahooProvider quotes any Yahoo Finance symbol (equities, ETFs, futures
// such as GC=F, crypto pairs such as BTC-USD) from the v8 chart API.
type YahooProvider struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewYahooProvider creates a new Yahoo Finance quote source.
func NewYahooProvider(httpClient *http.Client) *YahooProvider {
	return &YahooProvider{httpClient: httpClient, baseURL: yahooChartURL}
}

// Name returns the source recorded on snapshots.
func (p *YahooProvider) Name() string { return "yahoo" }

// Supports returns true for every non-empty symbol.
func (p *YahooProvider) Supports(symbol string) bool { return symbol != "" }

// FetchQuote fetches the latest regular-market price for symbol.
func (p *YahooProvider) FetchQuote(ctx context.Context, symbol string) (*Quote, error) {
	meta, err := p.fetchMeta(ctx, symbol)
	if err != nil {
		return nil, err
	}

	price := decimal.NewFromFloat(meta.RegularMarketPrice)
	if err := validPrice(symbol, price); err != nil {
		return nil, err
	}

	previous := meta.PreviousClose
	if previous == 0 {
		previous = meta.ChartPreviousClose
	}
	change, pct := changeFromPrevious(price, decimal.NewFromFloat(previous))

	q := &Quote{
		Symbol:        symbol,
		Price:         price,
		Currency:      meta.Currency,
		Change:        change,
		ChangePercent: pct,
		Source:        p.Name(),
	}
	q.toMajorUnits()
	return q, nil
}

// fetchMeta requests the chart metadata for one ticker.
func (p *YahooProvider) fetchMeta(ctx context.Context, ticker string) (*yahooChartMeta, error) {
	reqURL := p.baseURL + "/" + url.PathEscape(ticker) + "?interval=1d&range=5d"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", ticker, err)
	}
	req.Header.Set("User-Agent", yahooUA)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request for %s: %w", ticker, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("request for %s: unexpected status %d", ticker, resp.StatusCode)
	}

	var chartResp yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chartResp); err != nil {
		return nil, fmt.Errorf("decoding response for %s: %w", ticker, err)
	}
	if chartResp.Chart.Error != nil {
		return nil, fmt.Errorf("chart error for %s: %s: %s", ticker, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}
	if len(chartResp.Chart.Result) == 0 {
		return nil, fmt.Errorf("%w for %s: empty chart result", ErrNoPrice, ticker)
	}
	return &chartResp.Chart.Result[0].Meta, nil
}
