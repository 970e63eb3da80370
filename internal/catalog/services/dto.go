package services

type CreateServiceRequest struct {
	Name             string  `json:"name" validate:"required,max=200"`
	CostPrice        float64 `json:"cost_price" validate:"required,gt=0"`
	MarkupPercentage float64 `json:"markup_percentage" validate:"gte=0"`
}

type UpdateServiceRequest struct {
	Name             *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	CostPrice        *float64 `json:"cost_price,omitempty" validate:"omitempty,gt=0"`
	MarkupPercentage *float64 `json:"markup_percentage,omitempty" validate:"omitempty,gte=0"`
}

type ListServicesRequest struct {
	Search *string `json:"search,omitempty"`
	Limit  int     `json:"limit" validate:"gte=0,lte=1000"`
	Offset int     `json:"offset" validate:"gte=0"`
}
