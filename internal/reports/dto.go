package reports

import (
	"time"

	"github.com/shopspring/decimal"
)

// DateRange filters report rows by booking creation time. End is exclusive:
// handlers extend a requested end date by one day so the whole day counts.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

type DashboardStats struct {
	TotalCustomers int64           `json:"total_customers"`
	TotalBookings  int64           `json:"total_bookings"`
	TotalProfit    decimal.Decimal `json:"total_profit"`
	UnpaidBookings int64           `json:"unpaid_bookings"`
}

type ProfitLossRow struct {
	InvoiceNumber string          `json:"invoice_number"`
	CustomerName  string          `json:"customer_name"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Profit        decimal.Decimal `json:"profit"`
	BookingDate   time.Time       `json:"booking_date"`
}

type BookingsSummaryRow struct {
	Date          time.Time       `json:"date"`
	TotalBookings int64           `json:"total_bookings"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalRooms    int64           `json:"total_rooms"`
}

type UnpaidInvoiceRow struct {
	InvoiceNumber      string          `json:"invoice_number"`
	CustomerName       string          `json:"customer_name"`
	TotalAmount        decimal.Decimal `json:"total_amount"`
	PaidAmount         decimal.Decimal `json:"paid_amount"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	BookingDate        time.Time       `json:"booking_date"`
}
