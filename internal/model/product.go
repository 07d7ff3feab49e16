package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func init() {
	// Prices travel as plain JSON numbers, matching the remote API.
	decimal.MarshalJSONWithoutQuotes = true
}

type Product struct {
	ID           string          `gorm:"type:varchar(64);primaryKey" json:"id"`
	Name         string          `gorm:"type:varchar(255);not null" json:"name" validate:"required"`
	SKU          string          `gorm:"type:varchar(50);uniqueIndex;not null" json:"sku" validate:"required"`
	Category     string          `gorm:"type:varchar(100);index" json:"category"`
	Company      string          `gorm:"type:varchar(100)" json:"company"` // brand
	CostPrice    decimal.Decimal `gorm:"type:numeric;not null" json:"costPrice" validate:"gte=0"`
	SellingPrice decimal.Decimal `gorm:"type:numeric;not null" json:"sellingPrice" validate:"gte=0"`
	StockQty     int             `gorm:"not null" json:"stockQty" validate:"gte=0"`
	ReorderLevel int             `gorm:"not null" json:"reorderLevel" validate:"gte=0"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}

// BeforeCreate assigns an ID when the caller did not provide one.
func (p *Product) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// StockStatus is the display flag derived from the reorder level.
type StockStatus string

const (
	StockHealthy  StockStatus = "Healthy"
	StockCritical StockStatus = "Critical"
)

// Status reports Critical once stock is at or below the reorder level.
func (p Product) Status() StockStatus {
	if p.StockQty <= p.ReorderLevel {
		return StockCritical
	}
	return StockHealthy
}

// IsLowStock is a shorthand used by the dashboard alerts.
func (p Product) IsLowStock() bool {
	return p.Status() == StockCritical
}
