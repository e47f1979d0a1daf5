package handlers

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/go-cmp/cmp"

	"tally/internal/services"
)

func setupPipelineRouter(handler *PipelineHandler) *gin.Engine {
	r := gin.New()
	r.POST("/pipeline/capture", handler.Capture)
	return r
}

func TestPipelineHandler_Capture(t *testing.T) {
	t.Run("empty_body_uses_seed_symbols", func(t *testing.T) {
		var got services.CaptureRequest
		svc := &mockCaptureService{
			runFn: func(_ context.Context, req services.CaptureRequest) (*services.CaptureResult, error) {
				got = req
				return &services.CaptureResult{
					Captured: 2, Requested: 2, Symbols: []string{"AAPL", "VOO"}, Skipped: []string{},
					FxCount: 3, At: time.Date(2026, 3, 2, 6, 0, 0, 0, time.UTC), Duration: "1.2s",
				}, nil
			},
		}
		seed := func() ([]string, error) { return []string{"AAPL", "VOO"}, nil }
		r := setupPipelineRouter(NewPipelineHandler(svc, seed))

		rec := doRequest(r, "POST", "/pipeline/capture", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if diff := cmp.Diff([]string{"AAPL", "VOO"}, got.SeedSymbols); diff != "" {
			t.Errorf("seed mismatch (-want +got):\n%s", diff)
		}
		if got.SkipFx {
			t.Error("expected FX capture to run")
		}
		result := parseJSON(t, rec)
		if result["captured"].(float64) != 2 || result["fx_count"].(float64) != 3 {
			t.Errorf("unexpected result: %v", result)
		}
	})

	t.Run("explicit_symbols_skip_seed", func(t *testing.T) {
		var got services.CaptureRequest
		svc := &mockCaptureService{
			runFn: func(_ context.Context, req services.CaptureRequest) (*services.CaptureResult, error) {
				got = req
				return &services.CaptureResult{Symbols: req.Symbols, Skipped: []string{}}, nil
			},
		}
		seed := func() ([]string, error) {
			t.Fatal("seed must not be read when symbols are given")
			return nil, nil
		}
		r := setupPipelineRouter(NewPipelineHandler(svc, seed))

		rec := doRequest(r, "POST", "/pipeline/capture", `{"symbols":["MSFT"],"skip_fx":true}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if diff := cmp.Diff([]string{"MSFT"}, got.Symbols); diff != "" {
			t.Errorf("symbols mismatch (-want +got):\n%s", diff)
		}
		if !got.SkipFx {
			t.Error("expected skip_fx to be passed through")
		}
	})

	t.Run("returns_400_invalid_symbol", func(t *testing.T) {
		r := setupPipelineRouter(NewPipelineHandler(&mockCaptureService{}, nil))

		rec := doRequest(r, "POST", "/pipeline/capture", `{"symbols":["bad symbol"]}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_500_when_seed_fails", func(t *testing.T) {
		seed := func() ([]string, error) { return nil, fmt.Errorf("catalog missing") }
		r := setupPipelineRouter(NewPipelineHandler(&mockCaptureService{}, seed))

		rec := doRequest(r, "POST", "/pipeline/capture", `{}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INTERNAL_ERROR")
	})
}
