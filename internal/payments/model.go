package payments

import (
	"time"

	"github.com/shopspring/decimal"
)

// Currency enumerates the currencies payments may be taken in. SAR is the
// base currency; everything else converts through the rate table.
type Currency string

const (
	CurrencySAR Currency = "SAR"
	CurrencyUSD Currency = "USD"
	CurrencyIDR Currency = "IDR"
)

// Method enumerates how a payment was received.
type Method string

const (
	MethodCash         Method = "Cash"
	MethodBankTransfer Method = "Bank Transfer"
	MethodCreditCard   Method = "Credit Card"
	MethodOther        Method = "Other"
)

// Payment records money received against a booking. AmountInSAR is fixed at
// insert time using the conversion rate read in the same operation.
type Payment struct {
	ID            int64           `json:"id"`
	BookingID     int64           `json:"booking_id"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      Currency        `json:"currency"`
	AmountInSAR   decimal.Decimal `json:"amount_in_sar"`
	PaymentMethod Method          `json:"payment_method"`
	PaymentDate   time.Time       `json:"payment_date"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Status is the derived paid/unpaid view of a booking. It is computed on
// demand, never stored, so it cannot go stale.
type Status struct {
	BookingID          int64           `json:"booking_id"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	TotalPaid          decimal.Decimal `json:"total_paid"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	IsFullyPaid        bool            `json:"is_fully_paid"`
}
