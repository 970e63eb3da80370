package expenses

import "encoding/json"

type CreateExpenseRequest struct {
	BookingID *int64  `json:"booking_id,omitempty" validate:"omitempty,gt=0"`
	Name      string  `json:"name" validate:"required,max=200"`
	Amount    float64 `json:"amount" validate:"required,gt=0"`
}

// BookingRef is an optional booking link on update requests. It keeps the
// difference between an omitted booking_id (leave the link alone) and an
// explicit null (detach the expense from its booking).
type BookingRef struct {
	Set bool
	ID  *int64
}

func (b *BookingRef) UnmarshalJSON(data []byte) error {
	b.Set = true
	if string(data) == "null" {
		b.ID = nil
		return nil
	}
	return json.Unmarshal(data, &b.ID)
}

type UpdateExpenseRequest struct {
	BookingID BookingRef `json:"booking_id"`
	Name      *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Amount    *float64   `json:"amount,omitempty" validate:"omitempty,gt=0"`
}

type ListExpensesRequest struct {
	BookingID *int64 `json:"booking_id,omitempty"`
	Limit     int    `json:"limit" validate:"gte=0,lte=1000"`
	Offset    int    `json:"offset" validate:"gte=0"`
}
