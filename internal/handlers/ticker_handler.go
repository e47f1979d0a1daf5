package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/config"
	"tally/internal/models"
	"tally/internal/services"
)

// TickerHandler handles the tracked-ticker registry and the symbol picker.
type TickerHandler struct {
	tickerService services.TickerServicer
	catalog       []config.CatalogEntry
}

// NewTickerHandler creates a new TickerHandler. catalog supplies labels for
// symbol options and may be empty.
func NewTickerHandler(tickerService services.TickerServicer, catalog []config.CatalogEntry) *TickerHandler {
	return &TickerHandler{tickerService: tickerService, catalog: catalog}
}

// TrackTickerRequest represents the request payload for tracking a ticker.
type TrackTickerRequest struct {
	Symbol string `json:"symbol" binding:"required,ticker_symbol"`
}

// ListTickers handles listing tracked tickers.
// @Summary     List tracked tickers
// @Tags        tickers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]models.Ticker "Tracked tickers"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /tickers [get]
func (h *TickerHandler) ListTickers(c *gin.Context) {
	tickers, err := h.tickerService.List(c.Request.Context())
	if err != nil {
		respondWithError(c, err)
		return
	}
	if tickers == nil {
		tickers = []models.Ticker{}
	}
	c.JSON(http.StatusOK, gin.H{"data": tickers})
}

// TrackTicker handles adding a symbol to the capture registry.
// @Summary     Track ticker
// @Description Add a symbol to the set captured on every run. Tracking twice is a no-op.
// @Tags        tickers
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     TrackTickerRequest true "Ticker"
// @Success     201     {object} models.Ticker "Tracked ticker"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /tickers [post]
func (h *TickerHandler) TrackTicker(c *gin.Context) {
	var req TrackTickerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	ticker, err := h.tickerService.Track(c.Request.Context(), req.Symbol)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, ticker)
}

// ListSymbols handles listing options for the holding symbol picker.
// @Summary     Symbol options
// @Description Common symbols, asset-class defaults and tracked tickers, deduplicated
// @Tags        tickers
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} map[string][]services.SymbolOption "Symbol options"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /symbols [get]
func (h *TickerHandler) ListSymbols(c *gin.Context) {
	options, err := h.tickerService.SymbolOptions(c.Request.Context(), h.catalog)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": options})
}
