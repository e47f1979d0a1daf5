package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"tally/internal/models"
	"tally/internal/pagination"
)

type priceKey struct {
	symbol string
	day    time.Time
}

type fxKey struct {
	base, quote string
	day         time.Time
}

// MemoryStore is an in-process SnapshotStore. It backs unit tests and
// one-shot dry runs that should not touch a database.
type MemoryStore struct {
	mu      sync.RWMutex
	prices  map[priceKey]models.PriceSnapshot
	fx      map[fxKey]models.FxRateSnapshot
	tickers map[string]models.Ticker

	// Now stamps created_at/updated_at. Defaults to time.Now.
	Now func() time.Time
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		prices:  make(map[priceKey]models.PriceSnapshot),
		fx:      make(map[fxKey]models.FxRateSnapshot),
		tickers: make(map[string]models.Ticker),
		Now:     time.Now,
	}
}

var _ SnapshotStore = (*MemoryStore)(nil)

func (m *MemoryStore) now() time.Time {
	if m.Now == nil {
		return time.Now()
	}
	return m.Now()
}

func (m *MemoryStore) UpsertPrice(_ context.Context, snap *models.PriceSnapshot) (*models.PriceSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	k := priceKey{snap.Symbol, models.DayKey(snap.AsOfDate)}
	row := *snap
	row.AsOfDate = k.day
	row.UpdatedAt = now
	if existing, ok := m.prices[k]; ok {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	} else {
		row.ID = models.NewID()
		row.CreatedAt = now
	}
	m.prices[k] = row
	return &row, nil
}

func (m *MemoryStore) UpsertFxRate(_ context.Context, rate *models.FxRateSnapshot) (*models.FxRateSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	k := fxKey{rate.BaseCurrency, rate.QuoteCurrency, models.DayKey(rate.AsOfDate)}
	row := *rate
	row.AsOfDate = k.day
	if existing, ok := m.fx[k]; ok {
		row.ID = existing.ID
		row.CreatedAt = existing.CreatedAt
	} else {
		row.ID = models.NewID()
		row.CreatedAt = m.now()
	}
	m.fx[k] = row
	return &row, nil
}

func (m *MemoryStore) LatestPrices(_ context.Context, symbols []string) (map[string]models.PriceSnapshot, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	want := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		want[s] = true
	}
	var rows []models.PriceSnapshot
	for k, row := range m.prices {
		if want[k.symbol] {
			rows = append(rows, row)
		}
	}
	return latestPerSymbol(rows), nil
}

func (m *MemoryStore) LatestFxRates(_ context.Context) ([]models.FxRateSnapshot, *time.Time, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	rows := make([]models.FxRateSnapshot, 0, len(m.fx))
	for _, row := range m.fx {
		rows = append(rows, row)
	}
	latest, newest := latestPerPair(rows)
	return latest, newest, nil
}

func (m *MemoryStore) PriceHistory(_ context.Context, symbol string, page pagination.PageRequest) (pagination.Page[models.PriceSnapshot], error) {
	m.mu.RLock()
	var rows []models.PriceSnapshot
	for k, row := range m.prices {
		if k.symbol == symbol {
			rows = append(rows, row)
		}
	}
	m.mu.RUnlock()

	sort.Slice(rows, func(i, j int) bool { return newerPrice(&rows[i], &rows[j]) })
	return pagination.Slice(rows, page), nil
}

func (m *MemoryStore) TrackTicker(_ context.Context, symbol string) (*models.Ticker, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	symbol = models.NormalizeSymbol(symbol)
	if t, ok := m.tickers[symbol]; ok {
		return &t, nil
	}
	t := models.Ticker{ID: models.NewID(), Symbol: symbol, CreatedAt: m.now()}
	m.tickers[symbol] = t
	return &t, nil
}

func (m *MemoryStore) ListTickers(_ context.Context) ([]models.Ticker, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]models.Ticker, 0, len(m.tickers))
	for _, t := range m.tickers {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Symbol < out[j].Symbol })
	return out, nil
}

func (m *MemoryStore) CountTickers(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.tickers)), nil
}
