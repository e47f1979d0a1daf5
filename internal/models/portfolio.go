package models

import "github.com/shopspring/decimal"

// Portfolio is the single portfolio of a deployment.
type Portfolio struct {
	Base
	DisplayCurrency string    `gorm:"size:3;not null;default:'USD'" json:"display_currency"`
	Holdings        []Holding `gorm:"foreignKey:PortfolioID" json:"holdings,omitempty"`
}

// Holding is a position in one asset. Units and symbol are fixed at creation.
type Holding struct {
	Base
	PortfolioID string          `gorm:"type:uuid;not null;index" json:"portfolio_id"`
	AssetClass  AssetClass      `gorm:"size:20;not null" json:"asset_class"`
	Symbol      *string         `gorm:"size:32" json:"symbol"`
	Units       decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"units"`
}

// ResolvedSymbol returns the canonical feed symbol for the holding, if any.
func (h *Holding) ResolvedSymbol() (string, bool) {
	raw := ""
	if h.Symbol != nil {
		raw = *h.Symbol
	}
	return ResolveSymbol(h.AssetClass, raw)
}
