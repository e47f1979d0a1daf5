package services

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/provider"
	"tally/internal/repository"
)

const noTickersNote = "No tickers configured. Set TICKERS or track tickers via the API."

// CaptureOptions configures FX capture and fetch concurrency.
type CaptureOptions struct {
	PivotCurrency     string
	FxQuoteCurrencies []string
	Concurrency       int
}

// captureService fetches quotes and rates and stores them as daily snapshots.
type captureService struct {
	store  repository.SnapshotStore
	quotes provider.QuoteSource
	rates  provider.RateSource
	opts   CaptureOptions
	logger *zap.SugaredLogger
	now    func() time.Time
}

// NewCaptureService creates a new CaptureServicer.
func NewCaptureService(
	store repository.SnapshotStore,
	quotes provider.QuoteSource,
	rates provider.RateSource,
	opts CaptureOptions,
	logger *zap.SugaredLogger,
) CaptureServicer {
	if opts.Concurrency < 1 {
		opts.Concurrency = 1
	}
	opts.PivotCurrency = strings.ToUpper(opts.PivotCurrency)
	if opts.PivotCurrency == "" {
		opts.PivotCurrency = "EUR"
	}
	return &captureService{
		store:  store,
		quotes: quotes,
		rates:  rates,
		opts:   opts,
		logger: logger,
		now:    time.Now,
	}
}

// CapturePrices stores one snapshot per symbol for the current UTC day and
// returns the stored snapshots in input order. Symbols whose quote cannot be
// fetched or stored are logged and skipped.
func (s *captureService) CapturePrices(ctx context.Context, symbols []string) []models.PriceSnapshot {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		return []models.PriceSnapshot{}
	}
	day := models.DayKey(s.now())

	results := make([]*models.PriceSnapshot, len(symbols))
	var g errgroup.Group
	g.SetLimit(s.opts.Concurrency)
	for i, symbol := range symbols {
		g.Go(func() error {
			results[i] = s.captureOne(ctx, symbol, day)
			return nil
		})
	}
	_ = g.Wait()

	captured := make([]models.PriceSnapshot, 0, len(symbols))
	for _, r := range results {
		if r != nil {
			captured = append(captured, *r)
		}
	}
	return captured
}

func (s *captureService) captureOne(ctx context.Context, symbol string, day time.Time) *models.PriceSnapshot {
	quote, err := s.quotes.FetchQuote(ctx, symbol)
	if err != nil {
		s.logger.Warnw("quote fetch failed", "symbol", symbol, "error", err)
		return nil
	}
	if quote == nil || !quote.Price.IsPositive() {
		s.logger.Warnw("quote has no usable price", "symbol", symbol)
		return nil
	}

	source := quote.Source
	if source == "" {
		source = s.quotes.Name()
	}
	snap := &models.PriceSnapshot{
		Symbol:        symbol,
		Price:         quote.Price,
		Change:        quote.Change,
		ChangePercent: quote.ChangePercent,
		Source:        source,
		AsOfDate:      day,
	}
	// Codes are stored as the source reports them. Sources convert sub-unit
	// codes such as GBp themselves, so an unknown one stays unconvertible.
	if c := strings.TrimSpace(quote.Currency); c != "" {
		snap.Currency = &c
	}

	stored, err := s.store.UpsertPrice(ctx, snap)
	if err != nil {
		s.logger.Errorw("storing price snapshot failed", "symbol", symbol, "error", err)
		return nil
	}
	return stored
}

// CaptureFx stores the pivot's rates for the current UTC day plus the
// identity row. A fetch failure yields a zero count.
func (s *captureService) CaptureFx(ctx context.Context) FxCaptureResult {
	day := models.DayKey(s.now())
	result := FxCaptureResult{AsOfDate: day}
	pivot := s.opts.PivotCurrency

	table, err := s.rates.FetchRates(ctx, pivot, s.opts.FxQuoteCurrencies)
	if err != nil {
		s.logger.Warnw("fx fetch failed", "pivot", pivot, "error", err)
		return result
	}

	base := strings.ToUpper(table.Base)
	if base == "" {
		base = pivot
	}
	source := table.Source
	if source == "" {
		source = s.rates.Name()
	}

	rows := []models.FxRateSnapshot{{BaseCurrency: base, QuoteCurrency: base, Rate: decimal.NewFromInt(1)}}
	quotes := make([]string, 0, len(table.Rates))
	for code := range table.Rates {
		quotes = append(quotes, code)
	}
	sort.Strings(quotes)
	for _, code := range quotes {
		if code == base {
			continue
		}
		rows = append(rows, models.FxRateSnapshot{BaseCurrency: base, QuoteCurrency: code, Rate: table.Rates[code]})
	}

	for i := range rows {
		rows[i].Source = source
		rows[i].AsOfDate = day
		if _, err := s.store.UpsertFxRate(ctx, &rows[i]); err != nil {
			s.logger.Errorw("storing fx snapshot failed",
				"base", rows[i].BaseCurrency, "quote", rows[i].QuoteCurrency, "error", err)
			continue
		}
		result.Count++
	}
	return result
}

// Run performs one capture: track or seed tickers, capture prices, then
// capture FX unless skipped.
func (s *captureService) Run(ctx context.Context, req CaptureRequest) (*CaptureResult, error) {
	start := s.now()
	result := &CaptureResult{At: start.UTC(), Symbols: []string{}, Skipped: []string{}}

	symbols, err := s.resolveRunSymbols(ctx, req)
	if err != nil {
		return nil, err
	}
	result.Requested = len(symbols)

	if len(symbols) == 0 {
		result.Note = noTickersNote
		s.logger.Infow("no tickers to capture")
	} else {
		result.Symbols = symbols
		snaps := s.CapturePrices(ctx, symbols)
		result.Captured = len(snaps)

		got := make(map[string]bool, len(snaps))
		for _, snap := range snaps {
			got[snap.Symbol] = true
		}
		for _, sym := range symbols {
			if !got[sym] {
				result.Skipped = append(result.Skipped, sym)
			}
		}
	}

	if !req.SkipFx {
		fx := s.CaptureFx(ctx)
		result.FxCount = fx.Count
		asOf := fx.AsOfDate
		result.FxAsOf = &asOf
	}

	result.Duration = s.now().Sub(start).String()
	s.logger.Infow("capture completed",
		"requested", result.Requested,
		"captured", result.Captured,
		"skipped", len(result.Skipped),
		"fx_count", result.FxCount,
		"duration", result.Duration,
	)
	return result, nil
}

// resolveRunSymbols returns explicit symbols after tracking them, or the
// tracked registry seeded from req.SeedSymbols when empty.
func (s *captureService) resolveRunSymbols(ctx context.Context, req CaptureRequest) ([]string, error) {
	if explicit := normalizeSymbols(req.Symbols); len(explicit) > 0 {
		for _, sym := range explicit {
			if _, err := s.store.TrackTicker(ctx, sym); err != nil {
				s.logger.Warnw("tracking ticker failed", "symbol", sym, "error", err)
			}
		}
		return explicit, nil
	}

	if _, err := seedTickers(ctx, s.store, req.SeedSymbols); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tickers, err := s.store.ListTickers(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	symbols := make([]string, len(tickers))
	for i, t := range tickers {
		symbols[i] = t.Symbol
	}
	return symbols, nil
}

// seedTickers registers seed symbols when the registry is empty and reports
// how many were added.
func seedTickers(ctx context.Context, store repository.SnapshotStore, seed []string) (int, error) {
	seed = normalizeSymbols(seed)
	if len(seed) == 0 {
		return 0, nil
	}
	n, err := store.CountTickers(ctx)
	if err != nil {
		return 0, err
	}
	if n > 0 {
		return 0, nil
	}
	for _, sym := range seed {
		if _, err := store.TrackTicker(ctx, sym); err != nil {
			return 0, err
		}
	}
	return len(seed), nil
}

// normalizeSymbols trims, uppercases and dedupes symbols, keeping the first
// occurrence order.
func normalizeSymbols(symbols []string) []string {
	seen := make(map[string]bool, len(symbols))
	out := make([]string, 0, len(symbols))
	for _, raw := range symbols {
		s := models.NormalizeSymbol(raw)
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
