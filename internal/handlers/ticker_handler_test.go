package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"tally/internal/config"
	"tally/internal/models"
	"tally/internal/services"
)

func setupTickerRouter(handler *TickerHandler) *gin.Engine {
	r := gin.New()
	r.GET("/tickers", handler.ListTickers)
	r.POST("/tickers", handler.TrackTicker)
	r.GET("/symbols", handler.ListSymbols)
	return r
}

func TestTickerHandler_ListTickers(t *testing.T) {
	t.Run("returns_tracked_tickers", func(t *testing.T) {
		svc := &mockTickerService{
			listFn: func(_ context.Context) ([]models.Ticker, error) {
				return []models.Ticker{{Symbol: "AAPL"}, {Symbol: "GC=F"}}, nil
			},
		}
		r := setupTickerRouter(NewTickerHandler(svc, nil))

		rec := doRequest(r, "GET", "/tickers", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if data := parseJSON(t, rec)["data"].([]interface{}); len(data) != 2 {
			t.Errorf("expected 2 tickers, got %d", len(data))
		}
	})

	t.Run("returns_500_on_service_error", func(t *testing.T) {
		svc := &mockTickerService{
			listFn: func(_ context.Context) ([]models.Ticker, error) {
				return nil, fmt.Errorf("database error")
			},
		}
		r := setupTickerRouter(NewTickerHandler(svc, nil))

		rec := doRequest(r, "GET", "/tickers", "")

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestTickerHandler_TrackTicker(t *testing.T) {
	t.Run("returns_201", func(t *testing.T) {
		r := setupTickerRouter(NewTickerHandler(&mockTickerService{}, nil))

		rec := doRequest(r, "POST", "/tickers", `{"symbol":"btc-usd"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if parseJSON(t, rec)["symbol"] != "BTC-USD" {
			t.Errorf("expected normalized symbol, got %s", rec.Body.String())
		}
	})

	t.Run("returns_400_invalid_symbol", func(t *testing.T) {
		r := setupTickerRouter(NewTickerHandler(&mockTickerService{}, nil))

		rec := doRequest(r, "POST", "/tickers", `{"symbol":"not a symbol"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})
}

func TestTickerHandler_ListSymbols(t *testing.T) {
	catalog := []config.CatalogEntry{{Symbol: "VOO", Label: "Vanguard S&P 500 ETF"}}
	var gotCatalog []config.CatalogEntry
	svc := &mockTickerService{
		symbolOptionsFn: func(_ context.Context, c []config.CatalogEntry) ([]services.SymbolOption, error) {
			gotCatalog = c
			return []services.SymbolOption{{Value: "VOO", Label: "Vanguard S&P 500 ETF (VOO)"}}, nil
		},
	}
	r := setupTickerRouter(NewTickerHandler(svc, catalog))

	rec := doRequest(r, "GET", "/symbols", "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(gotCatalog) != 1 {
		t.Errorf("expected catalog to be passed to the service, got %v", gotCatalog)
	}
	data := parseJSON(t, rec)["data"].([]interface{})
	if len(data) != 1 || data[0].(map[string]interface{})["value"] != "VOO" {
		t.Errorf("unexpected options: %v", data)
	}
}
