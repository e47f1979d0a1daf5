package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestCoinGeckoProvider_Supports(t *testing.T) {
	p := NewCoinGeckoProvider(http.DefaultClient)

	for _, s := range []string{"BTC-USD", "eth-usd"} {
		if !p.Supports(s) {
			t.Errorf("expected Supports(%q) = true", s)
		}
	}
	for _, s := range []string{"AAPL", "GC=F", "BTC-EUR", ""} {
		if p.Supports(s) {
			t.Errorf("expected Supports(%q) = false", s)
		}
	}
}

func TestCoinGeckoProvider_FetchQuote_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ids"); got != "bitcoin" {
			t.Errorf("ids = %q, want bitcoin", got)
		}
		resp := map[string]map[string]float64{
			"bitcoin": {"usd": 66000, "usd_24h_change": 10},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
	q, err := p.FetchQuote(context.Background(), "BTC-USD")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Price.String() != "66000" || q.Currency != "USD" || q.Source != "coingecko" {
		t.Errorf("unexpected quote: %+v", q)
	}
	// previous = 66000 / 1.1 = 60000
	if !q.Change.Valid || q.Change.Decimal.String() != "6000" {
		t.Errorf("change = %v, want 6000", q.Change)
	}
	if !q.ChangePercent.Valid || q.ChangePercent.Decimal.String() != "10" {
		t.Errorf("change percent = %v, want 10", q.ChangePercent)
	}
}

func TestCoinGeckoProvider_FetchQuote_TotalLoss(t *testing.T) {
	for _, pct := range []float64{-100, -150} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			resp := map[string]map[string]float64{
				"bitcoin": {"usd": 0.0001, "usd_24h_change": pct},
			}
			_ = json.NewEncoder(w).Encode(resp)
		}))

		p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
		q, err := p.FetchQuote(context.Background(), "BTC-USD")
		server.Close()
		if err != nil {
			t.Fatalf("unexpected error at %v%%: %v", pct, err)
		}
		if q.Change.Valid {
			t.Errorf("change at %v%% = %v, want unset", pct, q.Change)
		}
		if !q.ChangePercent.Valid || !q.ChangePercent.Decimal.Equal(decimal.NewFromFloat(pct)) {
			t.Errorf("change percent = %v, want %v", q.ChangePercent, pct)
		}
	}
}

func TestCoinGeckoProvider_FetchQuote_Failures(t *testing.T) {
	t.Run("unknown_symbol", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
			t.Error("should not make HTTP request for unknown symbol")
		}))
		defer server.Close()

		p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
		_, err := p.FetchQuote(context.Background(), "OBSCURE-USD")
		if err == nil || !strings.Contains(err.Error(), "no CoinGecko mapping") {
			t.Errorf("expected mapping error, got %v", err)
		}
	})

	t.Run("missing_coin", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer server.Close()

		p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
		if _, err := p.FetchQuote(context.Background(), "ETH-USD"); err == nil {
			t.Error("expected error for missing coin")
		}
	})

	t.Run("rate_limited", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer server.Close()

		p := &CoinGeckoProvider{httpClient: server.Client(), baseURL: server.URL}
		_, err := p.FetchQuote(context.Background(), "BTC-USD")
		if err == nil || !strings.Contains(err.Error(), "429") {
			t.Errorf("expected error mentioning 429, got %v", err)
		}
	})
}
