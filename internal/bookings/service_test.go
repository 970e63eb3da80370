package bookings

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rihlah-erp/rihlah-erp/internal/catalog/hotels"
	svccatalog "github.com/rihlah-erp/rihlah-erp/internal/catalog/services"
	"github.com/rihlah-erp/rihlah-erp/internal/customers"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memoryBookingRepo struct {
	bookings map[int64]*Booking
	lines    map[int64][]BookingService
	payments map[int64]int
	expenses map[int64]int
	nextID   int64

	createAttempts int
	failCreates    int
}

func newMemoryBookingRepo() *memoryBookingRepo {
	return &memoryBookingRepo{
		bookings: make(map[int64]*Booking),
		lines:    make(map[int64][]BookingService),
		payments: make(map[int64]int),
		expenses: make(map[int64]int),
	}
}

func (r *memoryBookingRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, r)
}

func (r *memoryBookingRepo) Get(ctx context.Context, id int64) (*Booking, error) {
	b, ok := r.bookings[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *b
	return &copied, nil
}

func (r *memoryBookingRepo) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Booking, error) {
	for _, b := range r.bookings {
		if b.InvoiceNumber == invoiceNumber {
			copied := *b
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryBookingRepo) List(ctx context.Context, req ListBookingsRequest) ([]Booking, int, error) {
	var out []Booking
	for _, b := range r.bookings {
		out = append(out, *b)
	}
	return out, len(out), nil
}

func (r *memoryBookingRepo) Create(ctx context.Context, b Booking) (int64, error) {
	r.createAttempts++
	if r.createAttempts <= r.failCreates {
		return 0, httpx.ErrDuplicate
	}
	r.nextID++
	b.ID = r.nextID
	b.CreatedAt = time.Now()
	b.UpdatedAt = b.CreatedAt
	r.bookings[b.ID] = &b
	return b.ID, nil
}

func (r *memoryBookingRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	b, ok := r.bookings[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["customer_id"]; ok {
		b.CustomerID = v.(int64)
	}
	if v, ok := updates["hotel_id"]; ok {
		b.HotelID = v.(int64)
	}
	if v, ok := updates["check_in_date"]; ok {
		b.CheckInDate = v.(time.Time)
	}
	if v, ok := updates["check_out_date"]; ok {
		b.CheckOutDate = v.(time.Time)
	}
	if v, ok := updates["room_quantity"]; ok {
		b.RoomQuantity = v.(int)
	}
	if v, ok := updates["hotel_subtotal"]; ok {
		b.HotelSubtotal = v.(decimal.Decimal)
	}
	if v, ok := updates["services_total"]; ok {
		b.ServicesTotal = v.(decimal.Decimal)
	}
	if v, ok := updates["total_amount"]; ok {
		b.TotalAmount = v.(decimal.Decimal)
	}
	b.UpdatedAt = time.Now()
	return nil
}

func (r *memoryBookingRepo) InsertLine(ctx context.Context, line BookingService) (int64, error) {
	r.nextID++
	line.ID = r.nextID
	r.lines[line.BookingID] = append(r.lines[line.BookingID], line)
	return line.ID, nil
}

func (r *memoryBookingRepo) ListLines(ctx context.Context, bookingID int64) ([]BookingService, error) {
	return r.lines[bookingID], nil
}

func (r *memoryBookingRepo) DeleteLines(ctx context.Context, bookingID int64) error {
	delete(r.lines, bookingID)
	return nil
}

func (r *memoryBookingRepo) DeletePayments(ctx context.Context, bookingID int64) error {
	delete(r.payments, bookingID)
	return nil
}

func (r *memoryBookingRepo) DeleteExpenses(ctx context.Context, bookingID int64) error {
	delete(r.expenses, bookingID)
	return nil
}

func (r *memoryBookingRepo) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	if _, ok := r.bookings[id]; !ok {
		return false, nil
	}
	delete(r.bookings, id)
	return true, nil
}

type stubCustomerRepo struct {
	ids map[int64]bool
}

func (r stubCustomerRepo) Get(ctx context.Context, id int64) (*customers.Customer, error) {
	if !r.ids[id] {
		return nil, httpx.ErrNotFound
	}
	return &customers.Customer{ID: id, Name: "Customer"}, nil
}

func (r stubCustomerRepo) List(ctx context.Context, req customers.ListCustomersRequest) ([]customers.Customer, int, error) {
	return nil, 0, nil
}

func (r stubCustomerRepo) Create(ctx context.Context, c customers.Customer) (int64, error) {
	return 0, nil
}

func (r stubCustomerRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r stubCustomerRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r stubCustomerRepo) HasBookings(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

type stubHotelRepo struct {
	hotels map[int64]*hotels.Hotel
}

func (r stubHotelRepo) Get(ctx context.Context, id int64) (*hotels.Hotel, error) {
	h, ok := r.hotels[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *h
	return &copied, nil
}

func (r stubHotelRepo) List(ctx context.Context, req hotels.ListHotelsRequest) ([]hotels.Hotel, int, error) {
	return nil, 0, nil
}

func (r stubHotelRepo) Create(ctx context.Context, h hotels.Hotel) (int64, error) { return 0, nil }

func (r stubHotelRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r stubHotelRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r stubHotelRepo) HasBookings(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

type stubServiceRepo struct {
	services map[int64]*svccatalog.Service
}

func (r stubServiceRepo) Get(ctx context.Context, id int64) (*svccatalog.Service, error) {
	s, ok := r.services[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *s
	return &copied, nil
}

func (r stubServiceRepo) List(ctx context.Context, req svccatalog.ListServicesRequest) ([]svccatalog.Service, int, error) {
	return nil, 0, nil
}

func (r stubServiceRepo) Create(ctx context.Context, s svccatalog.Service) (int64, error) {
	return 0, nil
}

func (r stubServiceRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	return nil
}

func (r stubServiceRepo) Delete(ctx context.Context, id int64) error { return nil }

func (r stubServiceRepo) HasBookingLines(ctx context.Context, id int64) (bool, error) {
	return false, nil
}

type countingStats struct {
	bumps int
}

func (c *countingStats) Bump(ctx context.Context) error {
	c.bumps++
	return nil
}

func newTestService(repo *memoryBookingRepo, stats *countingStats) *Service {
	return NewService(
		repo,
		stubCustomerRepo{ids: map[int64]bool{1: true}},
		stubHotelRepo{hotels: map[int64]*hotels.Hotel{
			10: {ID: 10, Name: "Al Safwah", SellingPrice: decimal.RequireFromString("540")},
		}},
		stubServiceRepo{services: map[int64]*svccatalog.Service{
			20: {ID: 20, Name: "Airport Transfer", SellingPrice: decimal.RequireFromString("100")},
		}},
		stats,
	)
}

func TestNights(t *testing.T) {
	day := func(s string) time.Time {
		parsed, err := time.Parse("2006-01-02", s)
		require.NoError(t, err)
		return parsed
	}

	require.Equal(t, 5, Nights(day("2026-03-01"), day("2026-03-06")))
	require.Equal(t, 1, Nights(day("2026-03-01"), day("2026-03-02")))
	require.Equal(t, 0, Nights(day("2026-03-01"), day("2026-03-01")))
	require.Equal(t, -2, Nights(day("2026-03-03"), day("2026-03-01")))

	// Partial days round up.
	in := day("2026-03-01")
	require.Equal(t, 1, Nights(in, in.Add(12*time.Hour)))
}

func TestCreateBookingComputesTotals(t *testing.T) {
	repo := newMemoryBookingRepo()
	stats := &countingStats{}
	svc := newTestService(repo, stats)

	booking, err := svc.Create(context.Background(), CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-06",
		RoomQuantity: 2,
		Services:     []ServiceLineInput{{ServiceID: 20, Quantity: 2}},
	})
	require.NoError(t, err)

	// 540 x 2 rooms x 5 nights = 5400, plus 100 x 2 services.
	require.True(t, booking.HotelSubtotal.Equal(decimal.RequireFromString("5400")),
		"got %s", booking.HotelSubtotal)
	require.True(t, booking.ServicesTotal.Equal(decimal.RequireFromString("200")))
	require.True(t, booking.TotalAmount.Equal(decimal.RequireFromString("5600")))
	require.True(t, strings.HasPrefix(booking.InvoiceNumber, "INV-"))

	lines := repo.lines[booking.ID]
	require.Len(t, lines, 1)
	require.True(t, lines[0].UnitPrice.Equal(decimal.RequireFromString("100")))
	require.True(t, lines[0].TotalPrice.Equal(decimal.RequireFromString("200")))
	require.Equal(t, 1, stats.bumps)
}

func TestCreateBookingRejectsInvertedDates(t *testing.T) {
	svc := newTestService(newMemoryBookingRepo(), &countingStats{})

	_, err := svc.Create(context.Background(), CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-06",
		CheckOutDate: "2026-03-06",
		RoomQuantity: 1,
	})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestCreateBookingUnknownReferences(t *testing.T) {
	svc := newTestService(newMemoryBookingRepo(), &countingStats{})
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateBookingRequest{
		CustomerID:   99,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-02",
		RoomQuantity: 1,
	})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Contains(t, err.Error(), "customer 99")

	_, err = svc.Create(ctx, CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-02",
		RoomQuantity: 1,
		Services:     []ServiceLineInput{{ServiceID: 77, Quantity: 1}},
	})
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Contains(t, err.Error(), "service 77")
}

func TestCreateBookingRetriesInvoiceCollision(t *testing.T) {
	repo := newMemoryBookingRepo()
	repo.failCreates = 2
	svc := newTestService(repo, &countingStats{})

	booking, err := svc.Create(context.Background(), CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-02",
		RoomQuantity: 1,
	})
	require.NoError(t, err)
	require.Equal(t, 3, repo.createAttempts)
	require.NotEmpty(t, booking.InvoiceNumber)
}

func TestUpdateBookingRecomputesSubtotal(t *testing.T) {
	repo := newMemoryBookingRepo()
	svc := newTestService(repo, &countingStats{})
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-06",
		RoomQuantity: 2,
	})
	require.NoError(t, err)

	rooms := 3
	updated, err := svc.Update(ctx, booking.ID, UpdateBookingRequest{RoomQuantity: &rooms})
	require.NoError(t, err)
	require.True(t, updated.HotelSubtotal.Equal(decimal.RequireFromString("8100")),
		"got %s", updated.HotelSubtotal)
	require.True(t, updated.TotalAmount.Equal(decimal.RequireFromString("8100")))
}

func TestUpdateBookingReplacesServiceLines(t *testing.T) {
	repo := newMemoryBookingRepo()
	svc := newTestService(repo, &countingStats{})
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-02",
		RoomQuantity: 1,
		Services:     []ServiceLineInput{{ServiceID: 20, Quantity: 1}},
	})
	require.NoError(t, err)

	// Omitting services leaves the lines alone.
	rooms := 2
	_, err = svc.Update(ctx, booking.ID, UpdateBookingRequest{RoomQuantity: &rooms})
	require.NoError(t, err)
	require.Len(t, repo.lines[booking.ID], 1)

	// Supplying services replaces them wholesale.
	newLines := []ServiceLineInput{{ServiceID: 20, Quantity: 3}}
	updated, err := svc.Update(ctx, booking.ID, UpdateBookingRequest{Services: &newLines})
	require.NoError(t, err)
	require.Len(t, repo.lines[booking.ID], 1)
	require.Equal(t, 3, repo.lines[booking.ID][0].Quantity)
	require.True(t, updated.ServicesTotal.Equal(decimal.RequireFromString("300")))

	// An empty slice clears every line.
	empty := []ServiceLineInput{}
	updated, err = svc.Update(ctx, booking.ID, UpdateBookingRequest{Services: &empty})
	require.NoError(t, err)
	require.Empty(t, repo.lines[booking.ID])
	require.True(t, updated.ServicesTotal.Equal(decimal.Zero))
}

func TestDeleteBookingCascades(t *testing.T) {
	repo := newMemoryBookingRepo()
	stats := &countingStats{}
	svc := newTestService(repo, stats)
	ctx := context.Background()

	booking, err := svc.Create(ctx, CreateBookingRequest{
		CustomerID:   1,
		HotelID:      10,
		CheckInDate:  "2026-03-01",
		CheckOutDate: "2026-03-02",
		RoomQuantity: 1,
		Services:     []ServiceLineInput{{ServiceID: 20, Quantity: 1}},
	})
	require.NoError(t, err)
	repo.payments[booking.ID] = 2
	repo.expenses[booking.ID] = 1

	existed, err := svc.Delete(ctx, booking.ID)
	require.NoError(t, err)
	require.True(t, existed)
	require.Empty(t, repo.lines[booking.ID])
	require.Zero(t, repo.payments[booking.ID])
	require.Zero(t, repo.expenses[booking.ID])

	// A second delete of the same id reports false without failing.
	existed, err = svc.Delete(ctx, booking.ID)
	require.NoError(t, err)
	require.False(t, existed)
}
