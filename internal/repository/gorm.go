package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tally/internal/models"
	"tally/internal/pagination"
)

// GormStore is the SnapshotStore backed by Postgres or SQLite.
type GormStore struct {
	db *gorm.DB
}

// NewGormStore creates a SnapshotStore on db. Pass a transaction handle to
// run store operations inside it.
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ SnapshotStore = (*GormStore)(nil)

// UpsertPrice inserts or refines the day's snapshot for a symbol.
func (s *GormStore) UpsertPrice(ctx context.Context, snap *models.PriceSnapshot) (*models.PriceSnapshot, error) {
	row := *snap
	row.ID = ""
	row.AsOfDate = models.DayKey(snap.AsOfDate)

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "symbol"}, {Name: "as_of_date"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"price", "currency", "change", "change_percent", "source", "updated_at",
		}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upserting price %s: %w", row.Symbol, err)
	}

	var stored models.PriceSnapshot
	if err := s.db.WithContext(ctx).
		Where("symbol = ? AND as_of_date = ?", row.Symbol, row.AsOfDate).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reading price %s: %w", row.Symbol, err)
	}
	return &stored, nil
}

// UpsertFxRate inserts or overwrites the day's rate for a currency pair.
func (s *GormStore) UpsertFxRate(ctx context.Context, rate *models.FxRateSnapshot) (*models.FxRateSnapshot, error) {
	row := *rate
	row.ID = ""
	row.AsOfDate = models.DayKey(rate.AsOfDate)

	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "base_currency"}, {Name: "quote_currency"}, {Name: "as_of_date"}},
		DoUpdates: clause.AssignmentColumns([]string{"rate", "source"}),
	}).Create(&row).Error
	if err != nil {
		return nil, fmt.Errorf("upserting fx %s/%s: %w", row.BaseCurrency, row.QuoteCurrency, err)
	}

	var stored models.FxRateSnapshot
	if err := s.db.WithContext(ctx).
		Where("base_currency = ? AND quote_currency = ? AND as_of_date = ?", row.BaseCurrency, row.QuoteCurrency, row.AsOfDate).
		First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reading fx %s/%s: %w", row.BaseCurrency, row.QuoteCurrency, err)
	}
	return &stored, nil
}

// LatestPrices returns the newest snapshot per requested symbol.
func (s *GormStore) LatestPrices(ctx context.Context, symbols []string) (map[string]models.PriceSnapshot, error) {
	if len(symbols) == 0 {
		return map[string]models.PriceSnapshot{}, nil
	}

	// Only each symbol's newest day can hold its latest snapshot.
	newestDay := s.db.Model(&models.PriceSnapshot{}).
		Select("symbol, MAX(as_of_date) AS as_of_date").
		Where("symbol IN ?", symbols).
		Group("symbol")

	var rows []models.PriceSnapshot
	if err := s.db.WithContext(ctx).
		Joins("JOIN (?) AS newest ON newest.symbol = price_snapshots.symbol AND newest.as_of_date = price_snapshots.as_of_date", newestDay).
		Order("price_snapshots.updated_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("loading latest prices: %w", err)
	}
	return latestPerSymbol(rows), nil
}

// LatestFxRates returns the newest row per currency pair.
func (s *GormStore) LatestFxRates(ctx context.Context) ([]models.FxRateSnapshot, *time.Time, error) {
	newestDay := s.db.Model(&models.FxRateSnapshot{}).
		Select("base_currency, quote_currency, MAX(as_of_date) AS as_of_date").
		Group("base_currency, quote_currency")

	var rows []models.FxRateSnapshot
	if err := s.db.WithContext(ctx).
		Joins("JOIN (?) AS newest ON newest.base_currency = fx_rate_snapshots.base_currency"+
			" AND newest.quote_currency = fx_rate_snapshots.quote_currency"+
			" AND newest.as_of_date = fx_rate_snapshots.as_of_date", newestDay).
		Find(&rows).Error; err != nil {
		return nil, nil, fmt.Errorf("loading latest fx rates: %w", err)
	}
	latest, newest := latestPerPair(rows)
	return latest, newest, nil
}

// PriceHistory pages one symbol's snapshots, newest first.
func (s *GormStore) PriceHistory(ctx context.Context, symbol string, page pagination.PageRequest) (pagination.Page[models.PriceSnapshot], error) {
	page.Defaults()

	var totalItems int64
	base := s.db.WithContext(ctx).Model(&models.PriceSnapshot{}).Where("symbol = ?", symbol)
	if err := base.Count(&totalItems).Error; err != nil {
		return pagination.Page[models.PriceSnapshot]{}, fmt.Errorf("counting history of %s: %w", symbol, err)
	}

	var rows []models.PriceSnapshot
	if err := base.Order("as_of_date DESC").Order("updated_at DESC").
		Scopes(pagination.Paginate(page)).Find(&rows).Error; err != nil {
		return pagination.Page[models.PriceSnapshot]{}, fmt.Errorf("loading history of %s: %w", symbol, err)
	}
	return pagination.NewPage(rows, page, totalItems), nil
}

// TrackTicker registers symbol; existing rows are left untouched.
func (s *GormStore) TrackTicker(ctx context.Context, symbol string) (*models.Ticker, error) {
	symbol = models.NormalizeSymbol(symbol)
	row := models.Ticker{Symbol: symbol}
	if err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}},
		DoNothing: true,
	}).Create(&row).Error; err != nil {
		return nil, fmt.Errorf("tracking ticker %s: %w", symbol, err)
	}

	var stored models.Ticker
	if err := s.db.WithContext(ctx).Where("symbol = ?", symbol).First(&stored).Error; err != nil {
		return nil, fmt.Errorf("reading ticker %s: %w", symbol, err)
	}
	return &stored, nil
}

// ListTickers returns every tracked ticker ordered by symbol.
func (s *GormStore) ListTickers(ctx context.Context) ([]models.Ticker, error) {
	var tickers []models.Ticker
	if err := s.db.WithContext(ctx).Order("symbol ASC").Find(&tickers).Error; err != nil {
		return nil, fmt.Errorf("listing tickers: %w", err)
	}
	return tickers, nil
}

// CountTickers returns the size of the ticker registry.
func (s *GormStore) CountTickers(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.Ticker{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("counting tickers: %w", err)
	}
	return n, nil
}
