package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/config"
	apperrors "tally/internal/errors"
	"tally/internal/models"
	"tally/internal/pagination"
	"tally/internal/services"
)

// PriceHandler handles reads of captured prices.
type PriceHandler struct {
	priceService services.PriceServicer
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceService services.PriceServicer) *PriceHandler {
	return &PriceHandler{priceService: priceService}
}

// LatestPrices handles listing the latest snapshot per symbol.
// @Summary     Latest prices
// @Description Latest captured price per symbol. Defaults to all tracked tickers.
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       symbols query    string false "Comma-separated symbols"
// @Success     200     {object} map[string][]models.PriceSnapshot "Latest prices"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /prices [get]
func (h *PriceHandler) LatestPrices(c *gin.Context) {
	prices, err := h.priceService.LatestPrices(c.Request.Context(), config.SplitSymbols(c.Query("symbols")))
	if err != nil {
		respondWithError(c, err)
		return
	}
	if prices == nil {
		prices = []models.PriceSnapshot{}
	}
	c.JSON(http.StatusOK, gin.H{"data": prices})
}

// PriceHistory handles paging through one symbol's snapshots.
// @Summary     Price history
// @Description Snapshots for one symbol, newest first, with summary statistics for the page
// @Tags        prices
// @Produce     json
// @Security    BearerAuth
// @Param       symbol    path     string true  "Symbol"
// @Param       page      query    int    false "Page number (default 1)"
// @Param       page_size query    int    false "Items per page (default 50, max 100)"
// @Success     200       {object} services.PriceHistory "Price history"
// @Failure     400       {object} ErrorResponse "Invalid input"
// @Failure     401       {object} ErrorResponse "Unauthorized"
// @Failure     500       {object} ErrorResponse "Server error"
// @Router      /prices/{symbol}/history [get]
func (h *PriceHandler) PriceHistory(c *gin.Context) {
	symbol := models.NormalizeSymbol(c.Param("symbol"))
	if symbol == "" {
		respondWithError(c, apperrors.ErrSymbolRequired)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, bindingError(err))
		return
	}
	page.Defaults()

	history, err := h.priceService.PriceHistory(c.Request.Context(), symbol, page)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, history)
}
