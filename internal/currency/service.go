package currency

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) Create(ctx context.Context, req CreateConversionRequest) (*Conversion, error) {
	rate := decimal.NewFromFloat(req.ConversionRate).Round(4)
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: conversion rate must be positive", httpx.ErrValidation)
	}

	id, err := s.repo.Create(ctx, Conversion{
		CurrencyName:   req.CurrencyName,
		ConversionRate: rate,
	})
	if err != nil {
		return nil, fmt.Errorf("create currency conversion: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateConversionRequest) (*Conversion, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("currency conversion: %w", err)
	}

	updates := make(map[string]interface{})
	if req.CurrencyName != nil {
		updates["currency_name"] = *req.CurrencyName
	}
	if req.ConversionRate != nil {
		rate := decimal.NewFromFloat(*req.ConversionRate).Round(4)
		if rate.LessThanOrEqual(decimal.Zero) {
			return nil, fmt.Errorf("%w: conversion rate must be positive", httpx.ErrValidation)
		}
		updates["conversion_rate"] = rate
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update currency conversion: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("currency conversion: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Conversion, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Conversion, error) {
	return s.repo.List(ctx)
}

// RateFor returns the conversion rate for a currency name. The rate is read
// within the calling operation; it is never cached across requests.
func (s *Service) RateFor(ctx context.Context, currencyName string) (decimal.Decimal, error) {
	conv, err := s.repo.GetByName(ctx, currencyName)
	if err != nil {
		return decimal.Zero, fmt.Errorf("currency conversion rate for %s: %w", currencyName, err)
	}
	return conv.ConversionRate, nil
}
