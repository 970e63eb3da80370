package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/catalog"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

// Svc applies catalog pricing rules to ancillary services.
type Svc struct {
	repo Repository
}

func NewService(repo Repository) *Svc {
	return &Svc{repo: repo}
}

func (s *Svc) Create(ctx context.Context, req CreateServiceRequest) (*Service, error) {
	cost := decimal.NewFromFloat(req.CostPrice).Round(2)
	markup := decimal.NewFromFloat(req.MarkupPercentage).Round(2)
	if err := validatePricing(cost, markup); err != nil {
		return nil, err
	}

	id, err := s.repo.Create(ctx, Service{
		Name:             req.Name,
		CostPrice:        cost,
		MarkupPercentage: markup,
		SellingPrice:     catalog.SellingPrice(cost, markup),
	})
	if err != nil {
		return nil, fmt.Errorf("create service: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Svc) Update(ctx context.Context, id int64, req UpdateServiceRequest) (*Service, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: %w", err)
	}

	updates := make(map[string]interface{})
	if req.Name != nil {
		updates["name"] = *req.Name
	}

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
			return nil, fmt.Errorf("update service: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Svc) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("service: %w", err)
	}
	inUse, err := s.repo.HasBookingLines(ctx, id)
	if err != nil {
		return fmt.Errorf("check service usage: %w", err)
	}
	if inUse {
		return fmt.Errorf("%w: service is used in existing bookings", httpx.ErrConflict)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Svc) Get(ctx context.Context, id int64) (*Service, error) {
	return s.repo.Get(ctx, id)
}

func (s *Svc) List(ctx context.Context, req ListServicesRequest) ([]Service, int, error) {
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
