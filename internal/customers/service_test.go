package customers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memoryCustomerRepo struct {
	customers map[int64]*Customer
	booked    map[int64]bool
	nextID    int64
}

func newMemoryCustomerRepo() *memoryCustomerRepo {
	return &memoryCustomerRepo{
		customers: make(map[int64]*Customer),
		booked:    make(map[int64]bool),
	}
}

func (r *memoryCustomerRepo) Get(ctx context.Context, id int64) (*Customer, error) {
	c, ok := r.customers[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memoryCustomerRepo) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var out []Customer
	for _, c := range r.customers {
		out = append(out, *c)
	}
	return out, len(out), nil
}

func (r *memoryCustomerRepo) Create(ctx context.Context, c Customer) (int64, error) {
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.customers[c.ID] = &c
	return c.ID, nil
}

func (r *memoryCustomerRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, ok := r.customers[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["name"]; ok {
		c.Name = v.(string)
	}
	if v, ok := updates["address"]; ok {
		c.Address = v.(string)
	}
	if v, ok := updates["phone"]; ok {
		c.Phone = v.(string)
	}
	if v, ok := updates["email"]; ok {
		c.Email = v.(string)
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memoryCustomerRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.customers[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.customers, id)
	return nil
}

func (r *memoryCustomerRepo) HasBookings(ctx context.Context, id int64) (bool, error) {
	return r.booked[id], nil
}

func TestCreateAndUpdateCustomer(t *testing.T) {
	repo := newMemoryCustomerRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerRequest{
		Name:    "Ahmed Al-Farsi",
		Address: "Jeddah",
		Phone:   "+966500000001",
		Email:   "ahmed@example.com",
	})
	require.NoError(t, err)
	require.Equal(t, "Ahmed Al-Farsi", created.Name)

	phone := "+966500000099"
	updated, err := svc.Update(ctx, created.ID, UpdateCustomerRequest{Phone: &phone})
	require.NoError(t, err)
	require.Equal(t, phone, updated.Phone)
	require.Equal(t, "ahmed@example.com", updated.Email)
}

func TestUpdateMissingCustomer(t *testing.T) {
	svc := NewService(newMemoryCustomerRepo())

	name := "Nobody"
	_, err := svc.Update(context.Background(), 42, UpdateCustomerRequest{Name: &name})
	require.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestDeleteCustomerBlockedByBookings(t *testing.T) {
	repo := newMemoryCustomerRepo()
	svc := NewService(repo)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateCustomerRequest{
		Name:    "Fatimah",
		Address: "Riyadh",
		Phone:   "+966500000002",
		Email:   "fatimah@example.com",
	})
	require.NoError(t, err)

	repo.booked[created.ID] = true
	err = svc.Delete(ctx, created.ID)
	require.ErrorIs(t, err, httpx.ErrConflict)

	repo.booked[created.ID] = false
	require.NoError(t, svc.Delete(ctx, created.ID))
	_, err = svc.Get(ctx, created.ID)
	require.ErrorIs(t, err, httpx.ErrNotFound)
}
