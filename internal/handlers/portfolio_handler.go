package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"tally/internal/services"
)

// PortfolioHandler handles portfolio valuation and holding requests.
type PortfolioHandler struct {
	portfolioService services.PortfolioServicer
}

// NewPortfolioHandler creates a new PortfolioHandler.
func NewPortfolioHandler(portfolioService services.PortfolioServicer) *PortfolioHandler {
	return &PortfolioHandler{portfolioService: portfolioService}
}

// SetDisplayCurrencyRequest represents the request payload for changing the display currency.
type SetDisplayCurrencyRequest struct {
	DisplayCurrency string `json:"display_currency" binding:"required,max=8"`
}

// AddHoldingRequest represents the request payload for adding a holding.
type AddHoldingRequest struct {
	AssetClass string   `json:"asset_class" binding:"required,asset_class"`
	Symbol     string   `json:"symbol" binding:"omitempty,ticker_symbol"`
	Units      *float64 `json:"units" binding:"required,gte=0"`
}

// AddHoldingResponse is returned after a holding is created.
type AddHoldingResponse struct {
	OK        bool   `json:"ok"`
	HoldingID string `json:"holding_id"`
}

// GetPortfolio handles valuing the portfolio.
// @Summary     Get portfolio valuation
// @Description Value every holding from the latest captured prices and FX rates
// @Tags        portfolio
// @Produce     json
// @Security    BearerAuth
// @Param       currency query    string false "Display currency override (USD, EUR, CNY)"
// @Success     200      {object} services.PortfolioSnapshot "Portfolio snapshot"
// @Failure     401      {object} ErrorResponse "Unauthorized"
// @Failure     500      {object} ErrorResponse "Server error"
// @Router      /portfolio [get]
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	snapshot, err := h.portfolioService.GetSnapshot(c.Request.Context(), c.Query("currency"))
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// SetDisplayCurrency handles updating the display currency preference.
// @Summary     Set display currency
// @Description Persist the display currency. Unsupported codes fall back to USD.
// @Tags        portfolio
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     SetDisplayCurrencyRequest true "Display currency"
// @Success     200     {object} services.PortfolioSnapshot "Updated portfolio snapshot"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /portfolio [put]
func (h *PortfolioHandler) SetDisplayCurrency(c *gin.Context) {
	var req SetDisplayCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	ctx := c.Request.Context()
	if _, err := h.portfolioService.SetDisplayCurrency(ctx, req.DisplayCurrency); err != nil {
		respondWithError(c, err)
		return
	}
	snapshot, err := h.portfolioService.GetSnapshot(ctx, "")
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}

// AddHolding handles adding a holding to the portfolio.
// @Summary     Add holding
// @Description Add a holding. Stocks and ETFs need a symbol; cash may have zero units.
// @Tags        holdings
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body     AddHoldingRequest true "Holding details"
// @Success     201     {object} AddHoldingResponse "Holding created"
// @Failure     400     {object} ErrorResponse "Invalid asset class, units or symbol"
// @Failure     401     {object} ErrorResponse "Unauthorized"
// @Failure     500     {object} ErrorResponse "Server error"
// @Router      /holdings [post]
func (h *PortfolioHandler) AddHolding(c *gin.Context) {
	var req AddHoldingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, bindingError(err))
		return
	}

	holding, err := h.portfolioService.AddHolding(c.Request.Context(), services.AddHoldingInput{
		AssetClass: req.AssetClass,
		Symbol:     req.Symbol,
		Units:      *req.Units,
	})
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, AddHoldingResponse{OK: true, HoldingID: holding.ID})
}

// RemoveHolding handles removing a holding. Unknown IDs are not an error.
// @Summary     Remove holding
// @Description Delete a holding and return the updated valuation
// @Tags        holdings
// @Produce     json
// @Security    BearerAuth
// @Param       id  path     string true "Holding ID"
// @Success     200 {object} services.PortfolioSnapshot "Updated portfolio snapshot"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /holdings/{id} [delete]
func (h *PortfolioHandler) RemoveHolding(c *gin.Context) {
	ctx := c.Request.Context()
	if err := h.portfolioService.RemoveHolding(ctx, c.Param("id")); err != nil {
		respondWithError(c, err)
		return
	}
	snapshot, err := h.portfolioService.GetSnapshot(ctx, "")
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
