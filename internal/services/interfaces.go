package services

import (
	"context"
	"time"

	"tally/internal/config"
	"tally/internal/models"
	"tally/internal/pagination"
)

// CaptureServicer defines the contract for capturing price and FX snapshots.
type CaptureServicer interface {
	CapturePrices(ctx context.Context, symbols []string) []models.PriceSnapshot
	CaptureFx(ctx context.Context) FxCaptureResult
	Run(ctx context.Context, req CaptureRequest) (*CaptureResult, error)
}

// PortfolioServicer defines the contract for holdings and valuation.
type PortfolioServicer interface {
	GetSnapshot(ctx context.Context, preferredCurrency string) (*PortfolioSnapshot, error)
	AddHolding(ctx context.Context, input AddHoldingInput) (*models.Holding, error)
	RemoveHolding(ctx context.Context, id string) error
	SetDisplayCurrency(ctx context.Context, code string) (*models.Portfolio, error)
	GetOrCreatePortfolio(ctx context.Context) (*models.Portfolio, error)
}

// PriceServicer defines the contract for reading captured prices.
type PriceServicer interface {
	LatestPrices(ctx context.Context, symbols []string) ([]models.PriceSnapshot, error)
	PriceHistory(ctx context.Context, symbol string, page pagination.PageRequest) (*PriceHistory, error)
}

// TickerServicer defines the contract for the tracked-ticker registry.
type TickerServicer interface {
	Track(ctx context.Context, symbol string) (*models.Ticker, error)
	List(ctx context.Context) ([]models.Ticker, error)
	EnsureSeeded(ctx context.Context, seed []string) ([]string, error)
	SymbolOptions(ctx context.Context, catalog []config.CatalogEntry) ([]SymbolOption, error)
}

// FxCaptureResult reports how many FX rows a capture wrote.
type FxCaptureResult struct {
	Count    int       `json:"count"`
	AsOfDate time.Time `json:"as_of_date"`
}

// CaptureRequest selects what a capture run covers. SeedSymbols populate an
// empty ticker registry and are ignored when Symbols is set.
type CaptureRequest struct {
	Symbols     []string
	SeedSymbols []string
	SkipFx      bool
}

// CaptureResult summarizes one capture run.
type CaptureResult struct {
	Captured  int        `json:"captured"`
	Requested int        `json:"requested"`
	Symbols   []string   `json:"symbols"`
	Skipped   []string   `json:"skipped"`
	FxCount   int        `json:"fx_count"`
	FxAsOf    *time.Time `json:"fx_as_of,omitempty"`
	At        time.Time  `json:"at"`
	Duration  string     `json:"duration"`
	Note      string     `json:"note,omitempty"`
}

// AddHoldingInput is the payload for creating a holding.
type AddHoldingInput struct {
	AssetClass string
	Symbol     string
	Units      float64
}

// HoldingView is one valued holding of a portfolio snapshot.
type HoldingView struct {
	ID             string            `json:"id"`
	AssetClass     models.AssetClass `json:"asset_class"`
	Label          string            `json:"label"`
	Symbol         *string           `json:"symbol"`
	ResolvedSymbol *string           `json:"resolved_symbol"`
	Units          float64           `json:"units"`
	ValueCurrency  string            `json:"value_currency"`
	RawValue       float64           `json:"raw_value"`
	ValueInDisplay *float64          `json:"value_in_display"`
	PricePerUnit   *float64          `json:"price_per_unit"`
	PriceAt        *time.Time        `json:"price_at"`
	Note           string            `json:"note,omitempty"`
}

// PortfolioSnapshot is the valuation of every holding in one display currency.
type PortfolioSnapshot struct {
	Holdings         []HoldingView `json:"holdings"`
	TotalValue       float64       `json:"total_value"`
	FormattedTotal   string        `json:"formatted_total"`
	DisplayCurrency  string        `json:"display_currency"`
	PriceLastUpdated *time.Time    `json:"price_last_updated"`
	FxLastUpdated    *time.Time    `json:"fx_last_updated"`
	UnvaluedHoldings int           `json:"unvalued_holdings"`
}

// PriceSummary describes the prices on one history page.
type PriceSummary struct {
	Count     int     `json:"count"`
	Min       float64 `json:"min"`
	Max       float64 `json:"max"`
	Mean      float64 `json:"mean"`
	StdDev    float64 `json:"stddev"`
	ChangePct float64 `json:"change_pct"`
}

// PriceHistory is a page of snapshots for one symbol with summary statistics.
type PriceHistory struct {
	Symbol  string                                `json:"symbol"`
	Page    pagination.Page[models.PriceSnapshot] `json:"page"`
	Summary *PriceSummary                         `json:"summary"`
}

// SymbolOption is one entry of the symbol picker.
type SymbolOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}
