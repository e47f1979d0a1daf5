// Package repository persists price snapshots, FX snapshots and the ticker
// registry. Services depend on SnapshotStore so capture and valuation can be
// exercised without a database.
package repository

import (
	"context"
	"sort"
	"time"

	"tally/internal/models"
	"tally/internal/pagination"
)

// SnapshotStore is the persistence boundary for captured market data.
type SnapshotStore interface {
	// UpsertPrice writes the snapshot keyed by (symbol, as_of_date). A second
	// write for the same key overwrites price, currency, change fields,
	// source and updated_at.
	UpsertPrice(ctx context.Context, snap *models.PriceSnapshot) (*models.PriceSnapshot, error)
	// UpsertFxRate writes the rate keyed by (base, quote, as_of_date).
	UpsertFxRate(ctx context.Context, rate *models.FxRateSnapshot) (*models.FxRateSnapshot, error)
	// LatestPrices returns the newest snapshot per symbol, ordered by
	// (as_of_date, updated_at). Symbols with no snapshot are absent.
	LatestPrices(ctx context.Context, symbols []string) (map[string]models.PriceSnapshot, error)
	// LatestFxRates returns the newest row per currency pair and the newest
	// as_of_date among them, or nil when there are no rows.
	LatestFxRates(ctx context.Context) ([]models.FxRateSnapshot, *time.Time, error)
	// PriceHistory pages the snapshots of one symbol, newest first.
	PriceHistory(ctx context.Context, symbol string, page pagination.PageRequest) (pagination.Page[models.PriceSnapshot], error)

	// TrackTicker registers symbol, returning the existing row if present.
	TrackTicker(ctx context.Context, symbol string) (*models.Ticker, error)
	ListTickers(ctx context.Context) ([]models.Ticker, error)
	CountTickers(ctx context.Context) (int64, error)
}

// newerPrice reports whether a sorts before b in latest-first order.
func newerPrice(a, b *models.PriceSnapshot) bool {
	if !a.AsOfDate.Equal(b.AsOfDate) {
		return a.AsOfDate.After(b.AsOfDate)
	}
	return a.CapturedAt().After(b.CapturedAt())
}

// latestPerSymbol keeps the newest snapshot of each symbol.
func latestPerSymbol(rows []models.PriceSnapshot) map[string]models.PriceSnapshot {
	out := make(map[string]models.PriceSnapshot, len(rows))
	for i := range rows {
		cur, ok := out[rows[i].Symbol]
		if !ok || newerPrice(&rows[i], &cur) {
			out[rows[i].Symbol] = rows[i]
		}
	}
	return out
}

type fxPair struct{ base, quote string }

// latestPerPair keeps the newest row of each currency pair, sorted by pair.
func latestPerPair(rows []models.FxRateSnapshot) ([]models.FxRateSnapshot, *time.Time) {
	latest := make(map[fxPair]models.FxRateSnapshot)
	for _, r := range rows {
		k := fxPair{r.BaseCurrency, r.QuoteCurrency}
		if cur, ok := latest[k]; !ok || r.AsOfDate.After(cur.AsOfDate) {
			latest[k] = r
		}
	}
	if len(latest) == 0 {
		return nil, nil
	}

	out := make([]models.FxRateSnapshot, 0, len(latest))
	var newest time.Time
	for _, r := range latest {
		out = append(out, r)
		if r.AsOfDate.After(newest) {
			newest = r.AsOfDate
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].BaseCurrency != out[j].BaseCurrency {
			return out[i].BaseCurrency < out[j].BaseCurrency
		}
		return out[i].QuoteCurrency < out[j].QuoteCurrency
	})
	return out, &newest
}
