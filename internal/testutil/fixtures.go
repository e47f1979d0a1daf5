package testutil

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tally/internal/models"
)

// CreateTestPortfolio creates the portfolio with the given display currency.
func CreateTestPortfolio(t *testing.T, db *gorm.DB, displayCurrency string) *models.Portfolio {
	t.Helper()

	p := &models.Portfolio{DisplayCurrency: displayCurrency}
	if err := db.Create(p).Error; err != nil {
		t.Fatalf("failed to create test portfolio: %v", err)
	}
	return p
}

// CreateTestHolding creates a holding. An empty symbol is stored as NULL.
func CreateTestHolding(t *testing.T, db *gorm.DB, portfolioID string, class models.AssetClass, symbol string, units string) *models.Holding {
	t.Helper()

	h := &models.Holding{
		PortfolioID: portfolioID,
		AssetClass:  class,
		Units:       decimal.RequireFromString(units),
	}
	if symbol != "" {
		h.Symbol = &symbol
	}
	if err := db.Create(h).Error; err != nil {
		t.Fatalf("failed to create test holding: %v", err)
	}
	return h
}

// CreateTestPriceSnapshot inserts a price snapshot for symbol on the given day.
// An empty currency is stored as NULL.
func CreateTestPriceSnapshot(t *testing.T, db *gorm.DB, symbol, price, currency string, day time.Time) *models.PriceSnapshot {
	t.Helper()

	s := &models.PriceSnapshot{
		Symbol:   symbol,
		Price:    decimal.RequireFromString(price),
		Source:   "test",
		AsOfDate: models.DayKey(day),
	}
	if currency != "" {
		s.Currency = &currency
	}
	if err := db.Create(s).Error; err != nil {
		t.Fatalf("failed to create test price snapshot: %v", err)
	}
	return s
}

// CreateTestFxRate inserts an FX snapshot meaning 1 base = rate quote.
func CreateTestFxRate(t *testing.T, db *gorm.DB, base, quote, rate string, day time.Time) *models.FxRateSnapshot {
	t.Helper()

	f := &models.FxRateSnapshot{
		BaseCurrency:  base,
		QuoteCurrency: quote,
		Rate:          decimal.RequireFromString(rate),
		Source:        "test",
		AsOfDate:      models.DayKey(day),
	}
	if err := db.Create(f).Error; err != nil {
		t.Fatalf("failed to create test fx rate: %v", err)
	}
	return f
}

// CreateTestTicker registers a tracked ticker.
func CreateTestTicker(t *testing.T, db *gorm.DB, symbol string) *models.Ticker {
	t.Helper()

	tk := &models.Ticker{Symbol: symbol}
	if err := db.Create(tk).Error; err != nil {
		t.Fatalf("failed to create test ticker: %v", err)
	}
	return tk
}
