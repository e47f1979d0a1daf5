package handlers

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"tally/internal/config"
	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/services"
	tallyvalidator "tally/internal/validator"
)

func init() {
	gin.SetMode(gin.TestMode)
	tallyvalidator.Register()
}

// --- mock portfolio service ---

type mockPortfolioService struct {
	getSnapshotFn          func(ctx context.Context, preferred string) (*services.PortfolioSnapshot, error)
	addHoldingFn           func(ctx context.Context, input services.AddHoldingInput) (*models.Holding, error)
	removeHoldingFn        func(ctx context.Context, id string) error
	setDisplayCurrencyFn   func(ctx context.Context, code string) (*models.Portfolio, error)
	getOrCreatePortfolioFn func(ctx context.Context) (*models.Portfolio, error)
}

var _ services.PortfolioServicer = (*mockPortfolioService)(nil)

func (m *mockPortfolioService) GetSnapshot(ctx context.Context, preferred string) (*services.PortfolioSnapshot, error) {
	if m.getSnapshotFn != nil {
		return m.getSnapshotFn(ctx, preferred)
	}
	return &services.PortfolioSnapshot{Holdings: []services.HoldingView{}, DisplayCurrency: "USD", FormattedTotal: "$0.00"}, nil
}

func (m *mockPortfolioService) AddHolding(ctx context.Context, input services.AddHoldingInput) (*models.Holding, error) {
	if m.addHoldingFn != nil {
		return m.addHoldingFn(ctx, input)
	}
	return &models.Holding{Base: models.Base{ID: "holding-1"}}, nil
}

func (m *mockPortfolioService) RemoveHolding(ctx context.Context, id string) error {
	if m.removeHoldingFn != nil {
		return m.removeHoldingFn(ctx, id)
	}
	return nil
}

func (m *mockPortfolioService) SetDisplayCurrency(ctx context.Context, code string) (*models.Portfolio, error) {
	if m.setDisplayCurrencyFn != nil {
		return m.setDisplayCurrencyFn(ctx, code)
	}
	return &models.Portfolio{DisplayCurrency: code}, nil
}

func (m *mockPortfolioService) GetOrCreatePortfolio(ctx context.Context) (*models.Portfolio, error) {
	if m.getOrCreatePortfolioFn != nil {
		return m.getOrCreatePortfolioFn(ctx)
	}
	return &models.Portfolio{DisplayCurrency: "USD"}, nil
}

// --- mock price service ---

type mockPriceService struct {
	latestPricesFn func(ctx context.Context, symbols []string) ([]models.PriceSnapshot, error)
	priceHistoryFn func(ctx context.Context, symbol string, page pagination.PageRequest) (*services.PriceHistory, error)
}

var _ services.PriceServicer = (*mockPriceService)(nil)

func (m *mockPriceService) LatestPrices(ctx context.Context, symbols []string) ([]models.PriceSnapshot, error) {
	if m.latestPricesFn != nil {
		return m.latestPricesFn(ctx, symbols)
	}
	return nil, nil
}

func (m *mockPriceService) PriceHistory(ctx context.Context, symbol string, page pagination.PageRequest) (*services.PriceHistory, error) {
	if m.priceHistoryFn != nil {
		return m.priceHistoryFn(ctx, symbol, page)
	}
	return &services.PriceHistory{Symbol: symbol, Page: pagination.NewPage[models.PriceSnapshot](nil, page, 0)}, nil
}

// --- mock ticker service ---

type mockTickerService struct {
	trackFn         func(ctx context.Context, symbol string) (*models.Ticker, error)
	listFn          func(ctx context.Context) ([]models.Ticker, error)
	ensureSeededFn  func(ctx context.Context, seed []string) ([]string, error)
	symbolOptionsFn func(ctx context.Context, catalog []config.CatalogEntry) ([]services.SymbolOption, error)
}

var _ services.TickerServicer = (*mockTickerService)(nil)

func (m *mockTickerService) Track(ctx context.Context, symbol string) (*models.Ticker, error) {
	if m.trackFn != nil {
		return m.trackFn(ctx, symbol)
	}
	return &models.Ticker{ID: "ticker-1", Symbol: models.NormalizeSymbol(symbol)}, nil
}

func (m *mockTickerService) List(ctx context.Context) ([]models.Ticker, error) {
	if m.listFn != nil {
		return m.listFn(ctx)
	}
	return nil, nil
}

func (m *mockTickerService) EnsureSeeded(ctx context.Context, seed []string) ([]string, error) {
	if m.ensureSeededFn != nil {
		return m.ensureSeededFn(ctx, seed)
	}
	return nil, nil
}

func (m *mockTickerService) SymbolOptions(ctx context.Context, catalog []config.CatalogEntry) ([]services.SymbolOption, error) {
	if m.symbolOptionsFn != nil {
		return m.symbolOptionsFn(ctx, catalog)
	}
	return []services.SymbolOption{}, nil
}

// --- mock capture service ---

type mockCaptureService struct {
	capturePricesFn func(ctx context.Context, symbols []string) []models.PriceSnapshot
	captureFxFn     func(ctx context.Context) services.FxCaptureResult
	runFn           func(ctx context.Context, req services.CaptureRequest) (*services.CaptureResult, error)
}

var _ services.CaptureServicer = (*mockCaptureService)(nil)

func (m *mockCaptureService) CapturePrices(ctx context.Context, symbols []string) []models.PriceSnapshot {
	if m.capturePricesFn != nil {
		return m.capturePricesFn(ctx, symbols)
	}
	return nil
}

func (m *mockCaptureService) CaptureFx(ctx context.Context) services.FxCaptureResult {
	if m.captureFxFn != nil {
		return m.captureFxFn(ctx)
	}
	return services.FxCaptureResult{}
}

func (m *mockCaptureService) Run(ctx context.Context, req services.CaptureRequest) (*services.CaptureResult, error) {
	if m.runFn != nil {
		return m.runFn(ctx, req)
	}
	return &services.CaptureResult{Symbols: req.Symbols, Skipped: []string{}}, nil
}

// --- helpers ---

func doRequest(r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func assertErrorCode(t *testing.T, result map[string]interface{}, code string) {
	t.Helper()
	errObj, ok := result["error"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected error object in response, got: %v", result)
	}
	if errObj["code"] != code {
		t.Errorf("expected error code %q, got %q", code, errObj["code"])
	}
}
