package bookings

// ServiceLineInput selects a catalog service and a quantity. The unit price
// is snapshotted from the catalog at booking time, not supplied by callers.
type ServiceLineInput struct {
	ServiceID int64 `json:"service_id" validate:"required,gt=0"`
	Quantity  int   `json:"quantity" validate:"required,gt=0"`
}

type CreateBookingRequest struct {
	CustomerID   int64              `json:"customer_id" validate:"required,gt=0"`
	HotelID      int64              `json:"hotel_id" validate:"required,gt=0"`
	CheckInDate  string             `json:"check_in_date" validate:"required,datetime=2006-01-02"`
	CheckOutDate string             `json:"check_out_date" validate:"required,datetime=2006-01-02"`
	RoomQuantity int                `json:"room_quantity" validate:"required,gt=0"`
	Services     []ServiceLineInput `json:"services,omitempty" validate:"omitempty,dive"`
}

type UpdateBookingRequest struct {
	CustomerID   *int64              `json:"customer_id,omitempty" validate:"omitempty,gt=0"`
	HotelID      *int64              `json:"hotel_id,omitempty" validate:"omitempty,gt=0"`
	CheckInDate  *string             `json:"check_in_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	CheckOutDate *string             `json:"check_out_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RoomQuantity *int                `json:"room_quantity,omitempty" validate:"omitempty,gt=0"`
	Services     *[]ServiceLineInput `json:"services,omitempty" validate:"omitempty,dive"`
}

type ListBookingsRequest struct {
	CustomerID *int64 `json:"customer_id,omitempty"`
	Limit      int    `json:"limit" validate:"gte=0,lte=1000"`
	Offset     int    `json:"offset" validate:"gte=0"`
}
