// Package catalog holds pricing rules shared by the hotel and service catalogs.
package catalog

import "github.com/shopspring/decimal"

var hundred = decimal.NewFromInt(100)

// SellingPrice derives the quoted price from a cost price and a markup
// percentage: cost + cost * markup / 100, rounded to 2 decimal places.
// The derived value is persisted alongside the source fields and must be
// recomputed whenever either of them changes.
func SellingPrice(costPrice, markupPercentage decimal.Decimal) decimal.Decimal {
	return costPrice.Add(costPrice.Mul(markupPercentage).Div(hundred)).Round(2)
}
