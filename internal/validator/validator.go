// Package validator provides custom validation functions for Gin's binding engine.
package validator

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"tally/internal/models"
)

// tickerSymbolRegex accepts quote-feed symbols such as AAPL, BRK.B, GC=F,
// BTC-USD and ^GSPC.
var tickerSymbolRegex = regexp.MustCompile(`^\^?[A-Za-z0-9][A-Za-z0-9.=\-]{0,19}$`)

// Register registers all custom validators with the Gin binding engine.
func Register() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		RegisterOn(v)
	}
}

// RegisterOn registers the custom validators on v.
func RegisterOn(v *validator.Validate) {
	_ = v.RegisterValidation("asset_class", validateAssetClass)
	_ = v.RegisterValidation("ticker_symbol", validateTickerSymbol)
}

func validateAssetClass(fl validator.FieldLevel) bool {
	_, ok := models.ParseAssetClass(fl.Field().String())
	return ok
}

func validateTickerSymbol(fl validator.FieldLevel) bool {
	return tickerSymbolRegex.MatchString(fl.Field().String())
}
