package currency

import (
	"time"

	"github.com/shopspring/decimal"
)

// Conversion maps a currency name to its rate against the base currency
// (SAR). Rates are kept at 4 decimal places.
type Conversion struct {
	ID             int64           `json:"id"`
	CurrencyName   string          `json:"currency_name"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}
