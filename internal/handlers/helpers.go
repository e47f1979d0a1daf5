package handlers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	apperrors "tally/internal/errors"
	"tally/internal/logger"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}

// bindingError maps a request binding failure to the AppError a caller
// would get from the service for the same input.
func bindingError(err error) *apperrors.AppError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, err.Error())
	}
	fe := verrs[0]
	switch {
	case fe.Tag() == "asset_class" || fe.Field() == "AssetClass":
		return apperrors.ErrInvalidAssetClass
	case fe.Field() == "Units" && fe.Tag() != "required":
		return apperrors.ErrInvalidUnits
	case fe.Tag() == "ticker_symbol":
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("Invalid symbol %q", fe.Value()))
	default:
		return apperrors.WithMessage(apperrors.ErrInvalidInput, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
}
