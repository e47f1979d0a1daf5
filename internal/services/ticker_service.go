package services

import (
	"context"

	"tally/internal/config"
	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/repository"
)

// commonSymbols are offered in the symbol picker before any ticker is tracked.
var commonSymbols = []SymbolOption{
	{Value: "AAPL", Label: "Apple (AAPL)"},
	{Value: "MSFT", Label: "Microsoft (MSFT)"},
	{Value: "GOOGL", Label: "Alphabet (GOOGL)"},
	{Value: "AMZN", Label: "Amazon (AMZN)"},
	{Value: "NVDA", Label: "NVIDIA (NVDA)"},
	{Value: "META", Label: "Meta (META)"},
	{Value: "TSLA", Label: "Tesla (TSLA)"},
	{Value: "JPM", Label: "JPMorgan Chase (JPM)"},
	{Value: "V", Label: "Visa (V)"},
	{Value: "VOO", Label: "Vanguard S&P 500 ETF (VOO)"},
	{Value: "SPY", Label: "SPDR S&P 500 ETF (SPY)"},
	{Value: "QQQ", Label: "Invesco QQQ (QQQ)"},
}

// tickerService manages the tracked-ticker registry.
type tickerService struct {
	store repository.SnapshotStore
}

// NewTickerService creates a new TickerServicer.
func NewTickerService(store repository.SnapshotStore) TickerServicer {
	return &tickerService{store: store}
}

// Track registers a symbol. Tracking an existing symbol is a no-op.
func (s *tickerService) Track(ctx context.Context, symbol string) (*models.Ticker, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}
	t, err := s.store.TrackTicker(ctx, symbol)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return t, nil
}

// List returns every tracked ticker.
func (s *tickerService) List(ctx context.Context) ([]models.Ticker, error) {
	tickers, err := s.store.ListTickers(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return tickers, nil
}

// EnsureSeeded fills an empty registry from seed and returns the tracked
// symbols.
func (s *tickerService) EnsureSeeded(ctx context.Context, seed []string) ([]string, error) {
	if _, err := seedTickers(ctx, s.store, seed); err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	tickers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, len(tickers))
	for i, t := range tickers {
		out[i] = t.Symbol
	}
	return out, nil
}

// SymbolOptions lists the symbols a user can pick: common equities, the
// asset-class default feeds, then tracked tickers. Catalog labels override
// the built-in ones.
func (s *tickerService) SymbolOptions(ctx context.Context, catalog []config.CatalogEntry) ([]SymbolOption, error) {
	tickers, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	labels := make(map[string]string, len(catalog))
	for _, e := range catalog {
		if e.Label != "" {
			labels[models.NormalizeSymbol(e.Symbol)] = e.Label
		}
	}

	seen := make(map[string]bool)
	var out []SymbolOption
	add := func(value, label string) {
		value = models.NormalizeSymbol(value)
		if value == "" || seen[value] {
			return
		}
		seen[value] = true
		if l, ok := labels[value]; ok {
			label = l + " (" + value + ")"
		}
		if label == "" {
			label = value
		}
		out = append(out, SymbolOption{Value: value, Label: label})
	}

	for _, o := range commonSymbols {
		add(o.Value, o.Label)
	}
	for _, c := range models.AssetClasses() {
		if sym := c.DefaultSymbol(); sym != "" {
			add(sym, c.Label()+" ("+sym+")")
		}
	}
	for _, e := range catalog {
		add(e.Symbol, "")
	}
	for _, t := range tickers {
		add(t.Symbol, "")
	}
	return out, nil
}
