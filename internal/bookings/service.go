package bookings

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/catalog/hotels"
	svccatalog "github.com/rihlah-erp/rihlah-erp/internal/catalog/services"
	"github.com/rihlah-erp/rihlah-erp/internal/customers"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

const dateLayout = "2006-01-02"

// invoice numbers carry enough entropy that a collision is almost
// impossible; the retry loop covers the database unique constraint anyway.
const maxInvoiceAttempts = 3

// StatsInvalidator is bumped after any write that changes report inputs.
type StatsInvalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo         Repository
	customerRepo customers.Repository
	hotelRepo    hotels.Repository
	serviceRepo  svccatalog.Repository
	stats        StatsInvalidator
}

func NewService(
	repo Repository,
	customerRepo customers.Repository,
	hotelRepo hotels.Repository,
	serviceRepo svccatalog.Repository,
	stats StatsInvalidator,
) *Service {
	return &Service{
		repo:         repo,
		customerRepo: customerRepo,
		hotelRepo:    hotelRepo,
		serviceRepo:  serviceRepo,
		stats:        stats,
	}
}

// Nights is the ceiling of the whole-day span between check-in and
// check-out. A span of zero or less is rejected at booking time.
func Nights(checkIn, checkOut time.Time) int {
	return int(math.Ceil(checkOut.Sub(checkIn).Hours() / 24))
}

func (s *Service) Create(ctx context.Context, req CreateBookingRequest) (*Booking, error) {
	if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
		return nil, fmt.Errorf("customer %d: %w", req.CustomerID, err)
	}
	hotel, err := s.hotelRepo.Get(ctx, req.HotelID)
	if err != nil {
		return nil, fmt.Errorf("hotel %d: %w", req.HotelID, err)
	}

	checkIn, err := time.Parse(dateLayout, req.CheckInDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-in date", httpx.ErrValidation)
	}
	checkOut, err := time.Parse(dateLayout, req.CheckOutDate)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid check-out date", httpx.ErrValidation)
	}

	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", httpx.ErrValidation)
	}

	hotelSubtotal := hotel.SellingPrice.
		Mul(decimal.NewFromInt(int64(req.RoomQuantity))).
		Mul(decimal.NewFromInt(int64(nights)))

	lines, servicesTotal, err := s.priceServiceLines(ctx, req.Services)
	if err != nil {
		return nil, err
	}

	booking := Booking{
		CustomerID:    req.CustomerID,
		HotelID:       req.HotelID,
		CheckInDate:   checkIn,
		CheckOutDate:  checkOut,
		RoomQuantity:  req.RoomQuantity,
		HotelSubtotal: hotelSubtotal,
		ServicesTotal: servicesTotal,
		TotalAmount:   hotelSubtotal.Add(servicesTotal),
	}

	var bookingID int64
	for attempt := 0; attempt < maxInvoiceAttempts; attempt++ {
		booking.InvoiceNumber = newInvoiceNumber()
		err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
			id, err := repo.Create(ctx, booking)
			if err != nil {
				return err
			}
			bookingID = id
			for _, line := range lines {
				line.BookingID = id
				if _, err := repo.InsertLine(ctx, line); err != nil {
					return fmt.Errorf("insert booking service: %w", err)
				}
			}
			return nil
		})
		if !errors.Is(err, httpx.ErrDuplicate) {
			break
		}
	}
	if err != nil {
		return nil, fmt.Errorf("create booking: %w", err)
	}

	s.bump(ctx)
	return s.repo.Get(ctx, bookingID)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateBookingRequest) (*Booking, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", id, err)
	}

	if req.CustomerID != nil {
		if _, err := s.customerRepo.Get(ctx, *req.CustomerID); err != nil {
			return nil, fmt.Errorf("customer %d: %w", *req.CustomerID, err)
		}
	}
	if req.HotelID != nil {
		if _, err := s.hotelRepo.Get(ctx, *req.HotelID); err != nil {
			return nil, fmt.Errorf("hotel %d: %w", *req.HotelID, err)
		}
	}

	// The hotel subtotal is recomputed unconditionally from the effective
	// hotel, dates and room quantity, so a catalog price change between
	// create and update is reflected.
	hotelID := existing.HotelID
	if req.HotelID != nil {
		hotelID = *req.HotelID
	}
	hotel, err := s.hotelRepo.Get(ctx, hotelID)
	if err != nil {
		return nil, fmt.Errorf("hotel %d: %w", hotelID, err)
	}

	checkIn := existing.CheckInDate
	if req.CheckInDate != nil {
		if checkIn, err = time.Parse(dateLayout, *req.CheckInDate); err != nil {
			return nil, fmt.Errorf("%w: invalid check-in date", httpx.ErrValidation)
		}
	}
	checkOut := existing.CheckOutDate
	if req.CheckOutDate != nil {
		if checkOut, err = time.Parse(dateLayout, *req.CheckOutDate); err != nil {
			return nil, fmt.Errorf("%w: invalid check-out date", httpx.ErrValidation)
		}
	}
	roomQuantity := existing.RoomQuantity
	if req.RoomQuantity != nil {
		roomQuantity = *req.RoomQuantity
	}

	nights := Nights(checkIn, checkOut)
	if nights <= 0 {
		return nil, fmt.Errorf("%w: check-out date must be after check-in date", httpx.ErrValidation)
	}

	hotelSubtotal := hotel.SellingPrice.
		Mul(decimal.NewFromInt(int64(roomQuantity))).
		Mul(decimal.NewFromInt(int64(nights)))

	servicesTotal := existing.ServicesTotal
	var newLines []BookingService
	if req.Services != nil {
		newLines, servicesTotal, err = s.priceServiceLines(ctx, *req.Services)
		if err != nil {
			return nil, err
		}
	}

	updates := map[string]interface{}{
		"hotel_subtotal": hotelSubtotal,
		"services_total": servicesTotal,
		"total_amount":   hotelSubtotal.Add(servicesTotal),
	}
	if req.CustomerID != nil {
		updates["customer_id"] = *req.CustomerID
	}
	if req.HotelID != nil {
		updates["hotel_id"] = *req.HotelID
	}
	if req.CheckInDate != nil {
		updates["check_in_date"] = checkIn
	}
	if req.CheckOutDate != nil {
		updates["check_out_date"] = checkOut
	}
	if req.RoomQuantity != nil {
		updates["room_quantity"] = roomQuantity
	}

	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.Update(ctx, id, updates); err != nil {
			return err
		}
		if req.Services != nil {
			if err := repo.DeleteLines(ctx, id); err != nil {
				return err
			}
			for _, line := range newLines {
				line.BookingID = id
				if _, err := repo.InsertLine(ctx, line); err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("update booking: %w", err)
	}

	s.bump(ctx)
	return s.repo.Get(ctx, id)
}

// Delete removes the booking together with its service lines, payments and
// expenses in one transaction. It reports false, nil for an unknown id; the
// asymmetry with the other delete paths mirrors how invoices are voided
// from the UI, where a second click on a gone booking is not an error.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	var existed bool
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if err := repo.DeleteLines(ctx, id); err != nil {
			return err
		}
		if err := repo.DeletePayments(ctx, id); err != nil {
			return err
		}
		if err := repo.DeleteExpenses(ctx, id); err != nil {
			return err
		}
		var err error
		existed, err = repo.DeleteBooking(ctx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("delete booking: %w", err)
	}

	if existed {
		s.bump(ctx)
	}
	return existed, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*BookingWithServices, error) {
	booking, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", id, err)
	}
	lines, err := s.repo.ListLines(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking services: %w", err)
	}
	return &BookingWithServices{Booking: *booking, Services: lines}, nil
}

func (s *Service) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*BookingWithServices, error) {
	booking, err := s.repo.GetByInvoiceNumber(ctx, invoiceNumber)
	if err != nil {
		return nil, fmt.Errorf("invoice %s: %w", invoiceNumber, err)
	}
	lines, err := s.repo.ListLines(ctx, booking.ID)
	if err != nil {
		return nil, fmt.Errorf("booking services: %w", err)
	}
	return &BookingWithServices{Booking: *booking, Services: lines}, nil
}

func (s *Service) List(ctx context.Context, req ListBookingsRequest) ([]Booking, int, error) {
	return s.repo.List(ctx, req)
}

// priceServiceLines validates each requested service and snapshots its
// current selling price into a line.
func (s *Service) priceServiceLines(ctx context.Context, inputs []ServiceLineInput) ([]BookingService, decimal.Decimal, error) {
	total := decimal.Zero
	lines := make([]BookingService, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, decimal.Zero, fmt.Errorf("%w: service quantity must be positive", httpx.ErrValidation)
		}
		svc, err := s.serviceRepo.Get(ctx, in.ServiceID)
		if err != nil {
			return nil, decimal.Zero, fmt.Errorf("service %d: %w", in.ServiceID, err)
		}
		lineTotal := svc.SellingPrice.Mul(decimal.NewFromInt(int64(in.Quantity)))
		lines = append(lines, BookingService{
			ServiceID:  in.ServiceID,
			Quantity:   in.Quantity,
			UnitPrice:  svc.SellingPrice,
			TotalPrice: lineTotal,
		})
		total = total.Add(lineTotal)
	}
	return lines, total, nil
}

func (s *Service) bump(ctx context.Context) {
	if s.stats == nil {
		return
	}
	_ = s.stats.Bump(ctx)
}
