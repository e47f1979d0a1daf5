package services

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"tally/internal/currency"
	apperrors "tally/internal/errors"
	"tally/internal/fx"
	"tally/internal/models"
	"tally/internal/repository"
)

const (
	noteNoPrice  = "No price yet"
	noteNoFxRate = "No FX rate"
)

// portfolioService manages holdings and values the portfolio.
type portfolioService struct {
	db    *gorm.DB
	store repository.SnapshotStore
	pivot string
}

// NewPortfolioService creates a new PortfolioServicer. Holdings live in db;
// prices and rates are read through store. An empty pivot is inferred from
// the stored rates.
func NewPortfolioService(db *gorm.DB, store repository.SnapshotStore, pivot string) PortfolioServicer {
	return &portfolioService{db: db, store: store, pivot: pivot}
}

// GetOrCreatePortfolio returns the single portfolio, creating it with the
// default display currency on first use.
func (s *portfolioService) GetOrCreatePortfolio(ctx context.Context) (*models.Portfolio, error) {
	var p models.Portfolio
	err := s.db.WithContext(ctx).Order("created_at ASC").First(&p).Error
	if err == nil {
		return &p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	p = models.Portfolio{DisplayCurrency: currency.Default}
	if err := s.db.WithContext(ctx).Create(&p).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return &p, nil
}

// SetDisplayCurrency persists the preferred display currency. Unsupported
// codes fall back to the default.
func (s *portfolioService) SetDisplayCurrency(ctx context.Context, code string) (*models.Portfolio, error) {
	p, err := s.GetOrCreatePortfolio(ctx)
	if err != nil {
		return nil, err
	}
	p.DisplayCurrency = currency.ResolveDisplay(code)
	if err := s.db.WithContext(ctx).Model(p).Update("display_currency", p.DisplayCurrency).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return p, nil
}

// AddHolding validates and stores a holding, registering its price symbol
// as a tracked ticker in the same transaction.
func (s *portfolioService) AddHolding(ctx context.Context, input AddHoldingInput) (*models.Holding, error) {
	class, ok := models.ParseAssetClass(input.AssetClass)
	if !ok {
		return nil, apperrors.ErrInvalidAssetClass
	}
	if math.IsNaN(input.Units) || math.IsInf(input.Units, 0) || input.Units < 0 {
		return nil, apperrors.ErrInvalidUnits
	}
	if input.Units == 0 && !class.AllowsZeroUnits() {
		return nil, apperrors.ErrInvalidUnits
	}
	symbol := models.NormalizeSymbol(input.Symbol)
	if class.RequiresSymbol() && symbol == "" {
		return nil, apperrors.ErrSymbolRequired
	}

	portfolio, err := s.GetOrCreatePortfolio(ctx)
	if err != nil {
		return nil, err
	}

	holding := &models.Holding{
		PortfolioID: portfolio.ID,
		AssetClass:  class,
		Units:       decimal.NewFromFloat(input.Units),
	}
	if class.Priced() && symbol != "" {
		holding.Symbol = &symbol
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(holding).Error; err != nil {
			return err
		}
		if resolved, ok := holding.ResolvedSymbol(); ok && class.Priced() {
			if _, err := repository.NewGormStore(tx).TrackTicker(ctx, resolved); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return holding, nil
}

// RemoveHolding deletes a holding. Unknown or malformed IDs are a no-op.
func (s *portfolioService) RemoveHolding(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return nil
	}
	if err := s.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Holding{}).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// GetSnapshot values every holding in the display currency from the latest
// captured prices and rates. Holdings that cannot be converted are reported
// with a nil value and excluded from the total.
func (s *portfolioService) GetSnapshot(ctx context.Context, preferredCurrency string) (*PortfolioSnapshot, error) {
	portfolio, err := s.GetOrCreatePortfolio(ctx)
	if err != nil {
		return nil, err
	}
	display := currency.ResolveDisplay(portfolio.DisplayCurrency)
	if preferredCurrency != "" {
		display = currency.ResolveDisplay(preferredCurrency)
	}

	var holdings []models.Holding
	if err := s.db.WithContext(ctx).
		Where("portfolio_id = ?", portfolio.ID).
		Order("created_at ASC").Order("id ASC").
		Find(&holdings).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var symbols []string
	for i := range holdings {
		if sym, ok := holdings[i].ResolvedSymbol(); ok && holdings[i].AssetClass.Priced() {
			symbols = append(symbols, sym)
		}
	}
	symbols = normalizeSymbols(symbols)

	prices, err := s.store.LatestPrices(ctx, symbols)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	fxRows, fxNewest, err := s.store.LatestFxRates(ctx)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	table := fx.NewTable(fx.RatesFromSnapshots(fxRows), s.pivot)

	snapshot := &PortfolioSnapshot{
		Holdings:        make([]HoldingView, 0, len(holdings)),
		DisplayCurrency: display,
		FxLastUpdated:   fxNewest,
	}
	total := decimal.Zero
	for i := range holdings {
		view, value, priceAt := valueHolding(&holdings[i], prices, table, display)
		if value != nil {
			total = total.Add(*value)
		} else {
			snapshot.UnvaluedHoldings++
		}
		if priceAt != nil && (snapshot.PriceLastUpdated == nil || priceAt.After(*snapshot.PriceLastUpdated)) {
			snapshot.PriceLastUpdated = priceAt
		}
		snapshot.Holdings = append(snapshot.Holdings, view)
	}

	snapshot.TotalValue = total.InexactFloat64()
	snapshot.FormattedTotal = currency.Format(total, display)
	return snapshot, nil
}

// valueHolding computes one holding's view, its value in the display
// currency (nil when unconvertible) and the time of the price used.
func valueHolding(
	h *models.Holding,
	prices map[string]models.PriceSnapshot,
	table *fx.Table,
	display string,
) (HoldingView, *decimal.Decimal, *time.Time) {
	view := HoldingView{
		ID:         h.ID,
		AssetClass: h.AssetClass,
		Label:      h.AssetClass.Label(),
		Symbol:     h.Symbol,
		Units:      h.Units.InexactFloat64(),
	}

	var raw decimal.Decimal
	var priceAt *time.Time
	valueCurrency := h.AssetClass.NativeCurrency()

	if h.AssetClass.Priced() {
		sym, ok := h.ResolvedSymbol()
		if ok {
			view.ResolvedSymbol = &sym
		}
		snap, found := prices[sym]
		if ok && found {
			raw = h.Units.Mul(snap.Price)
			if snap.Currency != nil && *snap.Currency != "" {
				valueCurrency = *snap.Currency
			}
			p := snap.Price.InexactFloat64()
			view.PricePerUnit = &p
			at := snap.CapturedAt()
			priceAt = &at
			view.PriceAt = &at
		} else {
			raw = decimal.Zero
			view.Note = noteNoPrice
		}
		if valueCurrency == "" {
			valueCurrency = currency.Default
		}
	} else {
		raw = h.Units
	}

	view.ValueCurrency = valueCurrency
	view.RawValue = raw.InexactFloat64()

	converted, ok := table.Convert(raw, valueCurrency, display)
	if !ok {
		if view.Note == "" {
			view.Note = noteNoFxRate
		}
		return view, nil, priceAt
	}
	v := converted.InexactFloat64()
	view.ValueInDisplay = &v
	return view, &converted, priceAt
}
