package currency

type CreateConversionRequest struct {
	CurrencyName   string  `json:"currency_name" validate:"required,max=10"`
	ConversionRate float64 `json:"conversion_rate" validate:"required,gt=0"`
}

type UpdateConversionRequest struct {
	CurrencyName   *string  `json:"currency_name,omitempty" validate:"omitempty,min=1,max=10"`
	ConversionRate *float64 `json:"conversion_rate,omitempty" validate:"omitempty,gt=0"`
}
