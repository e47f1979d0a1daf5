package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const frankfurterURL = "https://api.frankfurter.app/latest"

// FrankfurterSource fetches ECB reference rates from the Frankfurter API.
type FrankfurterSource struct {
	httpClient *http.Client
	baseURL    string // overridable for tests
}

// NewFrankfurterSource creates a new Frankfurter rate source.
func NewFrankfurterSource(httpClient *http.Client) *FrankfurterSource {
	return &FrankfurterSource{httpClient: httpClient, baseURL: frankfurterURL}
}

// Name returns the source recorded on FX snapshots.
func (s *FrankfurterSource) Name() string { return "frankfurter" }

type frankfurterResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// FetchRates fetches the latest rates from base into each quote currency.
func (s *FrankfurterSource) FetchRates(ctx context.Context, base string, quotes []string) (*RateTable, error) {
	q := url.Values{}
	q.Set("from", strings.ToUpper(base))
	q.Set("to", strings.ToUpper(strings.Join(quotes, ",")))
	reqURL := s.baseURL + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("building fx request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fx http request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fx request: unexpected status %d", resp.StatusCode)
	}

	var body frankfurterResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decoding fx response: %w", err)
	}

	table := &RateTable{
		Base:   strings.ToUpper(body.Base),
		Rates:  make(map[string]decimal.Decimal, len(body.Rates)),
		Source: s.Name(),
	}
	if table.Base == "" {
		table.Base = strings.ToUpper(base)
	}
	if d, err := time.Parse("2006-01-02", body.Date); err == nil {
		table.AsOf = d
	}
	for code, rate := range body.Rates {
		if rate > 0 {
			table.Rates[strings.ToUpper(code)] = decimal.NewFromFloat(rate)
		}
	}
	if len(table.Rates) == 0 {
		return nil, fmt.Errorf("fx response for %s has no rates", table.Base)
	}
	return table, nil
}
