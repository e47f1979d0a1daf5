package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/provider"
	"tally/internal/repository"
)

var captureDay = time.Date(2026, 3, 6, 14, 30, 0, 0, time.UTC)

// fakeQuotes serves canned quotes; symbols without one fail.
type fakeQuotes struct {
	mu         sync.Mutex
	prices     map[string]string
	currencies map[string]string
	calls      map[string]int
}

func newFakeQuotes(prices map[string]string) *fakeQuotes {
	return &fakeQuotes{prices: prices, currencies: make(map[string]string), calls: make(map[string]int)}
}

func (f *fakeQuotes) Name() string { return "fake" }

func (f *fakeQuotes) Supports(_ string) bool { return true }

func (f *fakeQuotes) set(symbol, price string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prices[symbol] = price
}

func (f *fakeQuotes) FetchQuote(_ context.Context, symbol string) (*provider.Quote, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[symbol]++
	p, ok := f.prices[symbol]
	if !ok {
		return nil, fmt.Errorf("%w for %s", provider.ErrNoPrice, symbol)
	}
	currency, ok := f.currencies[symbol]
	if !ok {
		currency = "USD"
	}
	return &provider.Quote{Symbol: symbol, Price: decimal.RequireFromString(p), Currency: currency}, nil
}

// fakeRates returns a fixed table or an error.
type fakeRates struct {
	table *provider.RateTable
	err   error
}

func (f *fakeRates) Name() string { return "fake-fx" }

func (f *fakeRates) FetchRates(_ context.Context, base string, _ []string) (*provider.RateTable, error) {
	if f.err != nil {
		return nil, f.err
	}
	t := *f.table
	if t.Base == "" {
		t.Base = base
	}
	return &t, nil
}

func eurRates() *fakeRates {
	return &fakeRates{table: &provider.RateTable{
		Rates: map[string]decimal.Decimal{
			"USD": decimal.RequireFromString("1.1"),
			"CNY": decimal.RequireFromString("7.8"),
		},
		Source: "frankfurter",
	}}
}

// failingStore fails price upserts for one symbol.
type failingStore struct {
	repository.SnapshotStore
	failSymbol string
}

func (f *failingStore) UpsertPrice(ctx context.Context, snap *models.PriceSnapshot) (*models.PriceSnapshot, error) {
	if snap.Symbol == f.failSymbol {
		return nil, errors.New("disk full")
	}
	return f.SnapshotStore.UpsertPrice(ctx, snap)
}

func newTestCaptureService(store repository.SnapshotStore, quotes provider.QuoteSource, rates provider.RateSource, concurrency int) *captureService {
	svc := NewCaptureService(store, quotes, rates, CaptureOptions{
		PivotCurrency:     "EUR",
		FxQuoteCurrencies: []string{"USD", "CNY"},
		Concurrency:       concurrency,
	}, zap.NewNop().Sugar()).(*captureService)
	svc.now = func() time.Time { return captureDay }
	return svc
}

func snapshotSymbols(snaps []models.PriceSnapshot) []string {
	out := make([]string, len(snaps))
	for i, s := range snaps {
		out[i] = s.Symbol
	}
	return out
}

func TestCapturePrices(t *testing.T) {
	t.Run("normalizes_dedupes_and_skips_failures", func(t *testing.T) {
		quotes := newFakeQuotes(map[string]string{"AAPL": "190.5", "VOO": "480"})
		svc := newTestCaptureService(repository.NewMemoryStore(), quotes, eurRates(), 1)

		snaps := svc.CapturePrices(context.Background(), []string{" aapl", "MISSING", "VOO", "AAPL", ""})

		require.Equal(t, []string{"AAPL", "VOO"}, snapshotSymbols(snaps))
		require.Equal(t, 1, quotes.calls["AAPL"])
		require.Equal(t, 1, quotes.calls["MISSING"])
		require.Equal(t, "USD", *snaps[0].Currency)
		require.Equal(t, "fake", snaps[0].Source)
		require.True(t, snaps[0].AsOfDate.Equal(models.DayKey(captureDay)))
	})

	t.Run("keeps_sub_unit_currency_code_as_reported", func(t *testing.T) {
		quotes := newFakeQuotes(map[string]string{"VOD.L": "72.5", "AAPL": "190"})
		quotes.currencies["VOD.L"] = "GBp"
		quotes.currencies["AAPL"] = " USD "
		svc := newTestCaptureService(repository.NewMemoryStore(), quotes, eurRates(), 1)

		snaps := svc.CapturePrices(context.Background(), []string{"VOD.L", "AAPL"})

		require.Len(t, snaps, 2)
		bySymbol := make(map[string]models.PriceSnapshot)
		for _, s := range snaps {
			bySymbol[s.Symbol] = s
		}
		require.Equal(t, "GBp", *bySymbol["VOD.L"].Currency, "pence must not be relabelled as pounds")
		require.Equal(t, "72.5", bySymbol["VOD.L"].Price.String())
		require.Equal(t, "USD", *bySymbol["AAPL"].Currency)
	})

	t.Run("same_day_recapture_keeps_one_row_with_latest_price", func(t *testing.T) {
		store := repository.NewMemoryStore()
		quotes := newFakeQuotes(map[string]string{"GC=F": "2300"})
		svc := newTestCaptureService(store, quotes, eurRates(), 1)

		first := svc.CapturePrices(context.Background(), []string{"GC=F"})
		quotes.set("GC=F", "2310")
		second := svc.CapturePrices(context.Background(), []string{"GC=F"})

		require.Len(t, first, 1)
		require.Len(t, second, 1)
		require.Equal(t, first[0].ID, second[0].ID)

		page, err := store.PriceHistory(context.Background(), "GC=F", pagination.PageRequest{})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.TotalItems)
		require.True(t, page.Data[0].Price.Equal(decimal.RequireFromString("2310")))
	})

	t.Run("zero_price_is_skipped", func(t *testing.T) {
		quotes := newFakeQuotes(map[string]string{"ZERO": "0"})
		svc := newTestCaptureService(repository.NewMemoryStore(), quotes, eurRates(), 1)

		require.Empty(t, svc.CapturePrices(context.Background(), []string{"ZERO"}))
	})

	t.Run("store_failure_skips_only_that_symbol", func(t *testing.T) {
		store := &failingStore{SnapshotStore: repository.NewMemoryStore(), failSymbol: "AAPL"}
		quotes := newFakeQuotes(map[string]string{"AAPL": "190", "VOO": "480"})
		svc := newTestCaptureService(store, quotes, eurRates(), 1)

		snaps := svc.CapturePrices(context.Background(), []string{"AAPL", "VOO"})
		require.Equal(t, []string{"VOO"}, snapshotSymbols(snaps))
	})

	t.Run("concurrent_fetches_keep_input_order", func(t *testing.T) {
		prices := make(map[string]string)
		var symbols []string
		for i := 0; i < 12; i++ {
			sym := fmt.Sprintf("SYM%02d", i)
			symbols = append(symbols, sym)
			prices[sym] = fmt.Sprintf("%d", 10+i)
		}
		svc := newTestCaptureService(repository.NewMemoryStore(), newFakeQuotes(prices), eurRates(), 4)

		snaps := svc.CapturePrices(context.Background(), symbols)
		require.Equal(t, symbols, snapshotSymbols(snaps))
	})
}

func TestCaptureFx(t *testing.T) {
	t.Run("writes_identity_and_pivot_rates", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestCaptureService(store, newFakeQuotes(nil), eurRates(), 1)

		result := svc.CaptureFx(context.Background())
		require.Equal(t, 3, result.Count)
		require.True(t, result.AsOfDate.Equal(models.DayKey(captureDay)))

		rows, newest, err := store.LatestFxRates(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 3)
		require.True(t, newest.Equal(models.DayKey(captureDay)))

		byQuote := make(map[string]models.FxRateSnapshot)
		for _, r := range rows {
			require.Equal(t, "EUR", r.BaseCurrency)
			require.Equal(t, "frankfurter", r.Source)
			byQuote[r.QuoteCurrency] = r
		}
		require.True(t, byQuote["EUR"].Rate.Equal(decimal.NewFromInt(1)))
		require.True(t, byQuote["CNY"].Rate.Equal(decimal.RequireFromString("7.8")))
	})

	t.Run("rerun_same_day_is_idempotent", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestCaptureService(store, newFakeQuotes(nil), eurRates(), 1)

		svc.CaptureFx(context.Background())
		svc.CaptureFx(context.Background())

		rows, _, err := store.LatestFxRates(context.Background())
		require.NoError(t, err)
		require.Len(t, rows, 3)
	})

	t.Run("fetch_failure_reports_zero", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestCaptureService(store, newFakeQuotes(nil), &fakeRates{err: errors.New("upstream down")}, 1)

		result := svc.CaptureFx(context.Background())
		require.Zero(t, result.Count)
		require.True(t, result.AsOfDate.Equal(models.DayKey(captureDay)))

		rows, newest, err := store.LatestFxRates(context.Background())
		require.NoError(t, err)
		require.Empty(t, rows)
		require.Nil(t, newest)
	})
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("explicit_symbols_are_tracked_and_captured", func(t *testing.T) {
		store := repository.NewMemoryStore()
		quotes := newFakeQuotes(map[string]string{"AAPL": "190"})
		svc := newTestCaptureService(store, quotes, eurRates(), 1)

		result, err := svc.Run(ctx, CaptureRequest{Symbols: []string{"aapl", "nope"}, SeedSymbols: []string{"VOO"}})
		require.NoError(t, err)
		require.Equal(t, 1, result.Captured)
		require.Equal(t, 2, result.Requested)
		require.Equal(t, []string{"AAPL", "NOPE"}, result.Symbols)
		require.Equal(t, []string{"NOPE"}, result.Skipped)
		require.Equal(t, 3, result.FxCount)
		require.NotNil(t, result.FxAsOf)

		tickers, err := store.ListTickers(ctx)
		require.NoError(t, err)
		require.Len(t, tickers, 2, "seed symbols are ignored when symbols are explicit")
	})

	t.Run("seeds_empty_registry", func(t *testing.T) {
		store := repository.NewMemoryStore()
		quotes := newFakeQuotes(map[string]string{"VOO": "480", "BTC-USD": "66000"})
		svc := newTestCaptureService(store, quotes, eurRates(), 1)

		result, err := svc.Run(ctx, CaptureRequest{SeedSymbols: []string{"voo", "BTC-USD"}, SkipFx: true})
		require.NoError(t, err)
		require.Equal(t, 2, result.Captured)
		require.Zero(t, result.FxCount)
		require.Nil(t, result.FxAsOf)
	})

	t.Run("seed_ignored_when_registry_has_tickers", func(t *testing.T) {
		store := repository.NewMemoryStore()
		_, err := store.TrackTicker(ctx, "AAPL")
		require.NoError(t, err)
		quotes := newFakeQuotes(map[string]string{"AAPL": "190", "VOO": "480"})
		svc := newTestCaptureService(store, quotes, eurRates(), 1)

		result, err := svc.Run(ctx, CaptureRequest{SeedSymbols: []string{"VOO"}, SkipFx: true})
		require.NoError(t, err)
		require.Equal(t, []string{"AAPL"}, result.Symbols)
		require.Zero(t, quotes.calls["VOO"])
	})

	t.Run("no_tickers_still_captures_fx", func(t *testing.T) {
		svc := newTestCaptureService(repository.NewMemoryStore(), newFakeQuotes(nil), eurRates(), 1)

		result, err := svc.Run(ctx, CaptureRequest{})
		require.NoError(t, err)
		require.Zero(t, result.Captured)
		require.Empty(t, result.Symbols)
		require.NotNil(t, result.Symbols)
		require.Equal(t, noTickersNote, result.Note)
		require.Equal(t, 3, result.FxCount)
	})

	t.Run("total_outage_reports_zero", func(t *testing.T) {
		store := repository.NewMemoryStore()
		svc := newTestCaptureService(store, newFakeQuotes(nil), &fakeRates{err: errors.New("down")}, 1)

		result, err := svc.Run(ctx, CaptureRequest{Symbols: []string{"AAPL"}})
		require.NoError(t, err)
		require.Zero(t, result.Captured)
		require.Zero(t, result.FxCount)
		require.Equal(t, captureDay, result.At)
	})
}
