package hotels

import (
	"time"

	"github.com/shopspring/decimal"
)

// RoomType enumerates supported room configurations.
type RoomType string

const (
	RoomTypeDouble RoomType = "Double"
	RoomTypeTriple RoomType = "Triple"
	RoomTypeQuad   RoomType = "Quad"
)

// MealPackage enumerates supported board arrangements.
type MealPackage string

const (
	MealPackageFullBoard MealPackage = "Full Board"
	MealPackageHalfBoard MealPackage = "Half Board"
)

// Hotel is a catalog entry with a derived selling price.
// SellingPrice always equals cost_price + cost_price * markup / 100 and is
// never written independently of the source fields.
type Hotel struct {
	ID               int64           `json:"id"`
	Name             string          `json:"name"`
	Location         string          `json:"location"`
	RoomType         RoomType        `json:"room_type"`
	MealPackage      MealPackage     `json:"meal_package"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	MarkupPercentage decimal.Decimal `json:"markup_percentage"`
	SellingPrice     decimal.Decimal `json:"selling_price"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}
