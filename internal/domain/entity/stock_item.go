package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type StockItem struct {
	ObjectID        string          `json:"_id"`
	Name            string          `json:"name"`
	Category        string          `json:"category"`
	Quantity        int             `json:"quantity"`
	Unit            string          `json:"unit"`
	MinimumQuantity int             `json:"minimumQuantity"`
	Price           decimal.Decimal `json:"price"`
	Supplier        string          `json:"supplier"`
	Location        string          `json:"location"`
	ExpiryDate      *time.Time      `json:"expiryDate,omitempty"`
	Notes           string          `json:"notes"`
}

// LowStock reports whether the quantity has reached the reorder threshold.
func (s *StockItem) LowStock() bool {
	return s.Quantity <= s.MinimumQuantity
}

// Expired reports whether the expiry date lies before now.
func (s *StockItem) Expired(now time.Time) bool {
	return s.ExpiryDate != nil && s.ExpiryDate.Before(now)
}
