package hotels

type CreateHotelRequest struct {
	Name             string  `json:"name" validate:"required,max=200"`
	Location         string  `json:"location" validate:"required,max=200"`
	RoomType         string  `json:"room_type" validate:"required,oneof=Double Triple Quad"`
	MealPackage      string  `json:"meal_package" validate:"required,oneof='Full Board' 'Half Board'"`
	CostPrice        float64 `json:"cost_price" validate:"required,gt=0"`
	MarkupPercentage float64 `json:"markup_percentage" validate:"gte=0"`
}

type UpdateHotelRequest struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Location         *string  `json:"location,omitempty" validate:"omitempty,min=1,max=200"`
	RoomType         *string  `json:"room_type,omitempty" validate:"omitempty,oneof=Double Triple Quad"`
	MealPackage      *string  `json:"meal_package,omitempty" validate:"omitempty,oneof='Full Board' 'Half Board'"`
	CostPrice        *float64 `json:"cost_price,omitempty" validate:"omitempty,gt=0"`
	MarkupPercentage *float64 `json:"markup_percentage,omitempty" validate:"omitempty,gte=0"`
}

type ListHotelsRequest struct {
	Search *string `json:"search,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}
