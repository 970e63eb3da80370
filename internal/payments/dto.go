package payments

type CreatePaymentRequest struct {
	BookingID     int64   `json:"booking_id" validate:"required,gt=0"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	Currency      string  `json:"currency" validate:"required,oneof=SAR USD IDR"`
	PaymentMethod string  `json:"payment_method" validate:"required,oneof=Cash 'Bank Transfer' 'Credit Card' Other"`
}
