package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "tally/internal/errors"
	"tally/internal/services"
)

// PipelineHandler handles capture runs triggered by a scheduler.
type PipelineHandler struct {
	captureService services.CaptureServicer
	seedSymbols    func() ([]string, error)
}

// NewPipelineHandler creates a new PipelineHandler. seedSymbols is consulted
// on every run so an empty registry picks up the current configuration.
func NewPipelineHandler(captureService services.CaptureServicer, seedSymbols func() ([]string, error)) *PipelineHandler {
	return &PipelineHandler{captureService: captureService, seedSymbols: seedSymbols}
}

// CaptureRequest represents the optional request payload for a capture run.
type CaptureRequest struct {
	Symbols []string `json:"symbols" binding:"omitempty,dive,ticker_symbol"`
	SkipFx  bool     `json:"skip_fx"`
}

// Capture handles one capture run.
// @Summary     Trigger capture
// @Description Capture today's prices for the given or tracked symbols, then FX rates
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Security    ApiKeyAuth
// @Param       request body     CaptureRequest false "Symbols to capture and FX switch"
// @Success     200     {object} services.CaptureResult "Capture summary"
// @Failure     400     {object} ErrorResponse "Invalid input"
// @Failure     401     {object} ErrorResponse "Invalid API key"
// @Failure     403     {object} ErrorResponse "Capture disabled"
// @Failure     500     {object} ErrorResponse "Server error"
// @Failure     503     {object} ErrorResponse "Pipeline not configured"
// @Router      /pipeline/capture [post]
func (h *PipelineHandler) Capture(c *gin.Context) {
	var req CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		respondWithError(c, bindingError(err))
		return
	}

	run := services.CaptureRequest{Symbols: req.Symbols, SkipFx: req.SkipFx}
	if len(req.Symbols) == 0 && h.seedSymbols != nil {
		seed, err := h.seedSymbols()
		if err != nil {
			respondWithError(c, apperrors.Wrap(apperrors.ErrInternalServer, err))
			return
		}
		run.SeedSymbols = seed
	}

	result, err := h.captureService.Run(c.Request.Context(), run)
	if err != nil {
		respondWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
