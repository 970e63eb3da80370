package expenses

import (
	"time"

	"github.com/shopspring/decimal"
)

// Expense is a cost record, either standalone or tied to a booking.
type Expense struct {
	ID        int64           `json:"id"`
	BookingID *int64          `json:"booking_id,omitempty"`
	Name      string          `json:"name"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}
