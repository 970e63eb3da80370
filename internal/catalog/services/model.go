package services

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service is an ancillary catalog entry (transport, visa handling, guided
// tours) sold alongside hotel bookings. SellingPrice is derived from
// CostPrice and MarkupPercentage and never written independently.
type Service struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
