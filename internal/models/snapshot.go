package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// PriceSnapshot is the captured quote of one symbol for one UTC day.
// This is time-series data: no Base embed, no soft deletes. Same-day
// captures overwrite the row in place.
type PriceSnapshot struct {
	ID            string              `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol        string              `gorm:"size:32;not null;uniqueIndex:uq_price_snapshots_symbol_day,priority:1" json:"symbol"`
	Price         decimal.Decimal     `gorm:"type:numeric(30,10);not null" json:"price"`
	Currency      *string             `gorm:"size:3" json:"currency"`
	Change        decimal.NullDecimal `gorm:"type:numeric(30,10)" json:"change"`
	ChangePercent decimal.NullDecimal `gorm:"type:numeric(30,10)" json:"change_percent"`
	Source        string              `gorm:"size:32;not null" json:"source"`
	AsOfDate      time.Time           `gorm:"not null;uniqueIndex:uq_price_snapshots_symbol_day,priority:2" json:"as_of_date"`
	CreatedAt     time.Time           `json:"created_at"`
	UpdatedAt     time.Time           `json:"updated_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (p *PriceSnapshot) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}
	return nil
}

// CapturedAt is the time of the last write to the snapshot.
func (p *PriceSnapshot) CapturedAt() time.Time {
	if p.UpdatedAt.After(p.CreatedAt) {
		return p.UpdatedAt
	}
	return p.CreatedAt
}

// FxRateSnapshot records that 1 BaseCurrency = Rate QuoteCurrency on AsOfDate.
type FxRateSnapshot struct {
	ID            string          `gorm:"type:uuid;primaryKey" json:"id"`
	BaseCurrency  string          `gorm:"size:3;not null;uniqueIndex:uq_fx_rate_snapshots_pair_day,priority:1" json:"base_currency"`
	QuoteCurrency string          `gorm:"size:3;not null;uniqueIndex:uq_fx_rate_snapshots_pair_day,priority:2" json:"quote_currency"`
	Rate          decimal.Decimal `gorm:"type:numeric(30,10);not null" json:"rate"`
	Source        string          `gorm:"size:32;not null" json:"source"`
	AsOfDate      time.Time       `gorm:"not null;uniqueIndex:uq_fx_rate_snapshots_pair_day,priority:3" json:"as_of_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (f *FxRateSnapshot) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = NewID()
	}
	return nil
}

// Ticker is a tracked symbol. The registry is append-only.
type Ticker struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Symbol    string    `gorm:"size:32;not null;uniqueIndex" json:"symbol"`
	CreatedAt time.Time `json:"created_at"`
}

// BeforeCreate hook generates a UUIDv7 for new records
func (t *Ticker) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = NewID()
	}
	return nil
}
