package hotels

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/catalog"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateHotelRequest) (*Hotel, error) {
	cost := decimal.NewFromFloat(req.CostPrice).Round(2)
	markup := decimal.NewFromFloat(req.MarkupPercentage).Round(2)
	if err := validatePricing(cost, markup); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, Hotel{
		Name:             req.Name,
		Location:         req.Location,
		RoomType:         RoomType(req.RoomType),
		MealPackage:      MealPackage(req.MealPackage),
		CostPrice:        cost,
		MarkupPercentage: markup,
		SellingPrice:     catalog.SellingPrice(cost, markup),
	})
	if err != nil {
		return nil, fmt.Errorf("create hotel: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateHotelRequest) (*Hotel, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("hotel: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.RoomType != nil {
		updates["room_type"] = *req.RoomType
	}
	if req.MealPackage != nil {
		updates["meal_package"] = *req.MealPackage
	}

	// Selling price is recomputed whenever either source field is touched,
	// falling back to the stored value for the one not supplied.
	if req.CostPrice != nil || req.MarkupPercentage != nil {
		cost := existing.CostPrice
		markup := existing.MarkupPercentage
		if req.CostPrice != nil {
			cost = decimal.NewFromFloat(*req.CostPrice).Round(2)
			updates["cost_price"] = cost
		}
		if req.MarkupPercentage != nil {
			markup = decimal.NewFromFloat(*req.MarkupPercentage).Round(2)
			updates["markup_percentage"] = markup
		}
		if err := validatePricing(cost, markup); err != nil {
			return nil, err
		}
		updates["selling_price"] = catalog.SellingPrice(cost, markup)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update hotel: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("hotel: %w", err)
	}
	inUse, err := s.repo.HasBookings(ctx, id)
	if err != nil {
		return fmt.Errorf("check hotel bookings: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: hotel has existing bookings", httpx.ErrConflict)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Hotel, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListHotelsRequest) ([]Hotel, int, error) {
	return s.repo.List(ctx, req)
}

func validatePricing(cost, markup decimal.Decimal) error {
	if cost.LessThanOrEqual(decimal.Zero) {
		return fmt.Errorf("%w: cost price must be positive", httpx.ErrValidation)
	}
	if markup.IsNegative() {
		return fmt.Errorf("%w: markup percentage cannot be negative", httpx.ErrValidation)
	}
	return nil
}
