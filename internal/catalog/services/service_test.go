package services

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memoryServiceRepo struct {
	services map[int64]*Service
	inUse    map[int64]bool
	nextID   int64
}

func newMemoryServiceRepo() *memoryServiceRepo {
	return &memoryServiceRepo{
		services: make(map[int64]*Service),
		inUse:    make(map[int64]bool),
	}
}

func (r *memoryServiceRepo) Get(ctx context.Context, id int64) (*Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *memoryServiceRepo) List(ctx context.Context, req ListServicesRequest) ([]Service, int, error) {
	var out []Service
	for _, s := range r.services {
		out = append(out, *s)
	}
	return out, len(out), nil
}

func (r *memoryServiceRepo) Create(ctx context.Context, s Service) (int64, error) {
	r.nextID++
	s.ID = r.nextID
	s.CreatedAt = time.Now()
	s.UpdatedAt = s.CreatedAt
	r.services[s.ID] = &s
	return s.ID, nil
}

func (r *memoryServiceRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	s, ok := r.services[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		s.Name = v.(string)
	}
	if v, ok := updates["cost_price"]; ok {
		s.CostPrice = v.(decimal.Decimal)
	}
	if v, ok := updates["markup_percentage"]; ok {
		s.MarkupPercentage = v.(decimal.Decimal)
	}
	if v, ok := updates["selling_price"]; ok {
		s.SellingPrice = v.(decimal.Decimal)
	}
	s.UpdatedAt = time.Now()
	return nil
}

func (r *memoryServiceRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.services[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.services, id)
	return nil
}

func (r *memoryServiceRepo) HasBookingLines(ctx context.Context, id int64) (bool, error) {
	return r.inUse[id], nil
}

func TestCreateServiceDerivesSellingPrice(t *testing.T) {
	svc := NewService(newMemoryServiceRepo())

	created, err := svc.Create(context.Background(), CreateServiceRequest{
		Name:             "Airport Transfer",
		CostPrice:        80,
		MarkupPercentage: 25,
	})
	require.NoError(t, err)
	require.True(t, created.SellingPrice.Equal(decimal.RequireFromString("100")),
		"got %s", created.SellingPrice)
}

func TestDeleteServiceBlockedByBookingLines(t *testing.T) {
	repo := newMemoryServiceRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateServiceRequest{
		Name:             "Ziyarah Tour",
		CostPrice:        150,
		MarkupPercentage: 30,
	})
	require.NoError(t, err)

	repo.inUse[created.ID] = true
	require.ErrorIs(t, svc.Delete(ctx, created.ID), httpx.ErrConflict)

	repo.inUse[created.ID] = false
	require.NoError(t, svc.Delete(ctx, created.ID))
}
