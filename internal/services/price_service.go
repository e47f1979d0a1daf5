package services

import (
	"context"

	"github.com/montanaflynn/stats"

	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/repository"
)

// priceService reads captured price snapshots.
type priceService struct {
	store repository.SnapshotStore
}

// NewPriceService creates a new PriceServicer.
func NewPriceService(store repository.SnapshotStore) PriceServicer {
	return &priceService{store: store}
}

// LatestPrices returns the newest snapshot of each symbol, or of every
// tracked ticker when symbols is empty. Results follow the input order;
// symbols without snapshots are left out.
func (s *priceService) LatestPrices(ctx context.Context, symbols []string) ([]models.PriceSnapshot, error) {
	symbols = normalizeSymbols(symbols)
	if len(symbols) == 0 {
		tickers, err := s.store.ListTickers(ctx)
		if err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		for _, t := range tickers {
			symbols = append(symbols, t.Symbol)
		}
	}
	if len(symbols) == 0 {
		return []models.PriceSnapshot{}, nil
	}

	latest, err := s.store.LatestPrices(ctx, symbols)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	out := make([]models.PriceSnapshot, 0, len(latest))
	for _, sym := range symbols {
		if snap, ok := latest[sym]; ok {
			out = append(out, snap)
		}
	}
	return out, nil
}

// PriceHistory returns one page of a symbol's snapshots, newest first, with
// statistics over that page.
func (s *priceService) PriceHistory(ctx context.Context, symbol string, page pagination.PageRequest) (*PriceHistory, error) {
	symbol = models.NormalizeSymbol(symbol)
	if symbol == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Symbol is required")
	}
	page.Defaults()

	rows, err := s.store.PriceHistory(ctx, symbol, page)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &PriceHistory{
		Symbol:  symbol,
		Page:    rows,
		Summary: summarize(rows.Data),
	}, nil
}

// summarize computes statistics over newest-first snapshots. ChangePct runs
// from the oldest to the newest price. It returns nil for no rows.
func summarize(rows []models.PriceSnapshot) *PriceSummary {
	if len(rows) == 0 {
		return nil
	}
	data := make(stats.Float64Data, len(rows))
	for i, r := range rows {
		data[i] = r.Price.InexactFloat64()
	}

	summary := &PriceSummary{Count: len(data)}
	summary.Min, _ = stats.Min(data)
	summary.Max, _ = stats.Max(data)
	summary.Mean, _ = stats.Mean(data)
	summary.StdDev, _ = stats.StandardDeviationPopulation(data)

	newest, oldest := data[0], data[len(data)-1]
	if oldest != 0 {
		pct, _ := stats.Round((newest-oldest)/oldest*100, 4)
		summary.ChangePct = pct
	}
	return summary
}
