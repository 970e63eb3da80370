package bookings

import (
	"time"

	"github.com/shopspring/decimal"
)

// Booking is an invoice: a customer staying at a hotel for a date range,
// optionally with ancillary service lines. The monetary fields are always
// derived: HotelSubtotal = hotel selling price x room quantity x nights,
// ServicesTotal = sum of line totals, TotalAmount = HotelSubtotal +
// ServicesTotal. They are never hand-edited.
type Booking struct {
	ID            int64           `json:"id"`
	InvoiceNumber string          `json:"invoice_number"`
	CustomerID    int64           `json:"customer_id"`
	HotelID       int64           `json:"hotel_id"`
	CheckInDate   time.Time       `json:"check_in_date"`
	CheckOutDate  time.Time       `json:"check_out_date"`
	RoomQuantity  int             `json:"room_quantity"`
	HotelSubtotal decimal.Decimal `json:"hotel_subtotal"`
	ServicesTotal decimal.Decimal `json:"services_total"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// BookingService is a junction line holding the price snapshot taken when
// the service was added. Lines are replaced wholesale on update, never
// patched.
type BookingService struct {
	ID         int64           `json:"id"`
	BookingID  int64           `json:"booking_id"`
	ServiceID  int64           `json:"service_id"`
	Quantity   int             `json:"quantity"`
	UnitPrice  decimal.Decimal `json:"unit_price"`
	TotalPrice decimal.Decimal `json:"total_price"`
}

// BookingWithServices pairs a booking with its service lines for detail views.
type BookingWithServices struct {
	Booking
	Services []BookingService `json:"services"`
}
