package expenses

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rihlah-erp/rihlah-erp/internal/bookings"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memoryExpenseRepo struct {
	expenses map[int64]*Expense
	nextID   int64
}

func newMemoryExpenseRepo() *memoryExpenseRepo {
	return &memoryExpenseRepo{expenses: make(map[int64]*Expense)}
}

func (r *memoryExpenseRepo) Get(ctx context.Context, id int64) (*Expense, error) {
	e, ok := r.expenses[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *e
	return &copied, nil
}

func (r *memoryExpenseRepo) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	var out []Expense
	for _, e := range r.expenses {
		if req.BookingID != nil && (e.BookingID == nil || *e.BookingID != *req.BookingID) {
			continue
		}
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (r *memoryExpenseRepo) Create(ctx context.Context, e Expense) (int64, error) {
	r.nextID++
	e.ID = r.nextID
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.expenses[e.ID] = &e
	return e.ID, nil
}

func (r *memoryExpenseRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	e, ok := r.expenses[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["booking_id"]; ok {
		if v == nil {
			e.BookingID = nil
		} else {
			bookingID := v.(int64)
			e.BookingID = &bookingID
		}
	}
	if v, ok := updates["name"]; ok {
		e.Name = v.(string)
	}
	if v, ok := updates["amount"]; ok {
		e.Amount = v.(decimal.Decimal)
	}
	e.UpdatedAt = time.Now()
	return nil
}

func (r *memoryExpenseRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.expenses[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.expenses, id)
	return nil
}

type stubBookingRepo struct {
	ids map[int64]bool
}

func (r stubBookingRepo) WithTx(ctx context.Context, fn func(context.Context, bookings.Repository) error) error {
	return fn(ctx, r)
}

func (r stubBookingRepo) Get(ctx context.Context, id int64) (*bookings.Booking, error) {
	if !r.ids[id] {
		return nil, httpx.ErrNotFound
	}
	return &bookings.Booking{ID: id}, nil
}

func (r stubBookingRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*bookings.Booking, error) {
	return nil, httpx.ErrNotFound
}

func (r stubBookingRepo) List(ctx context.Context, req bookings.ListBookingsRequest) ([]bookings.Booking, int, error) {
	return nil, 0, nil
}

func (r stubBookingRepo) Create(ctx context.Context, b bookings.Booking) (int64, error) {
	return 0, nil
}

func (r stubBookingRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r stubBookingRepo) InsertLine(ctx context.Context, line bookings.BookingService) (int64, error) {
	return 0, nil
}

func (r stubBookingRepo) ListLines(ctx context.Context, bookingID int64) ([]bookings.BookingService, error) {
	return nil, nil
}

func (r stubBookingRepo) DeleteLines(ctx context.Context, bookingID int64) error    { return nil }
func (r stubBookingRepo) DeletePayments(ctx context.Context, bookingID int64) error { return nil }
func (r stubBookingRepo) DeleteExpenses(ctx context.Context, bookingID int64) error { return nil }

func (r stubBookingRepo) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

func TestCreateStandaloneExpense(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), stubBookingRepo{ids: map[int64]bool{1: true}})

	expense, err := svc.Create(context.Background(), CreateExpenseRequest{
		Name:   "Office rent",
		Amount: 2500.505,
	})
	require.NoError(t, err)
	require.Nil(t, expense.BookingID)
	require.Equal(t, "2500.51", expense.Amount.StringFixed(2))
}

func TestCreateExpenseValidatesBooking(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), stubBookingRepo{ids: map[int64]bool{1: true}})
	ctx := context.Background()

	bookingID := int64(1)
	expense, err := svc.Create(ctx, CreateExpenseRequest{
		BookingID: &bookingID,
		Name:      "Guide fee",
		Amount:    300,
	})
	require.NoError(t, err)
	require.NotNil(t, expense.BookingID)
	require.Equal(t, int64(1), *expense.BookingID)

	missing := int64(9)
	_, err = svc.Create(ctx, CreateExpenseRequest{
		BookingID: &missing,
		Name:      "Guide fee",
		Amount:    300,
	})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Contains(t, err.Error(), "booking 9")
}

func TestUpdateExpenseValidatesBooking(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), stubBookingRepo{ids: map[int64]bool{1: true}})
	ctx := context.Background()

	expense, err := svc.Create(ctx, CreateExpenseRequest{Name: "Printing", Amount: 40})
	require.NoError(t, err)

	missing := int64(9)
	_, err = svc.Update(ctx, expense.ID, UpdateExpenseRequest{BookingID: BookingRef{Set: true, ID: &missing}})
	require.ErrorIs(t, err, httpx.ErrNotFound)

	valid := int64(1)
	updated, err := svc.Update(ctx, expense.ID, UpdateExpenseRequest{BookingID: BookingRef{Set: true, ID: &valid}})
	require.NoError(t, err)
	require.Equal(t, int64(1), *updated.BookingID)
}

func TestUpdateExpenseDetachesBooking(t *testing.T) {
	svc := NewService(newMemoryExpenseRepo(), stubBookingRepo{ids: map[int64]bool{1: true}})
	ctx := context.Background()

	bookingID := int64(1)
	expense, err := svc.Create(ctx, CreateExpenseRequest{
		BookingID: &bookingID,
		Name:      "Airport transfer",
		Amount:    120,
	})
	require.NoError(t, err)
	require.NotNil(t, expense.BookingID)

	// An omitted booking_id leaves the link alone.
	var noChange UpdateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"amount": 140}`), &noChange))
	require.False(t, noChange.BookingID.Set)
	updated, err := svc.Update(ctx, expense.ID, noChange)
	require.NoError(t, err)
	require.NotNil(t, updated.BookingID)

	// An explicit null clears it.
	var detach UpdateExpenseRequest
	require.NoError(t, json.Unmarshal([]byte(`{"booking_id": null}`), &detach))
	require.True(t, detach.BookingID.Set)
	require.Nil(t, detach.BookingID.ID)
	updated, err = svc.Update(ctx, expense.ID, detach)
	require.NoError(t, err)
	require.Nil(t, updated.BookingID)
}
