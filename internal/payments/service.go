package payments

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/bookings"
	"github.com/rihlah-erp/rihlah-erp/internal/currency"
)

// StatsInvalidator is bumped after a payment changes report inputs.
type StatsInvalidator interface {
	Bump(ctx context.Context) error
}

type Service struct {
	repo         Repository
	bookingRepo  bookings.Repository
	currencyRepo currency.Repository
	baseCurrency Currency
	stats        StatsInvalidator
}

func NewService(
	repo Repository,
	bookingRepo bookings.Repository,
	currencyRepo currency.Repository,
	baseCurrency string,
	stats StatsInvalidator,
) *Service {
	if baseCurrency == "" {
		baseCurrency = string(CurrencySAR)
	}
	return &Service{
		repo:         repo,
		bookingRepo:  bookingRepo,
		currencyRepo: currencyRepo,
		baseCurrency: Currency(baseCurrency),
		stats:        stats,
	}
}

// Create records a payment against a booking. The amount is not capped to
// the outstanding balance; overpayment is permitted and surfaces as a
// negative balance in Status.
func (s *Service) Create(ctx context.Context, req CreatePaymentRequest) (*Payment, error) {
	if _, err := s.bookingRepo.Get(ctx, req.BookingID); err != nil {
		return nil, fmt.Errorf("booking %d: %w", req.BookingID, err)
	}

	amount := decimal.NewFromFloat(req.Amount).Round(2)
	cur := Currency(req.Currency)

	// The conversion rate is read inside this operation so a rate change
	// never applies retroactively to an in-flight payment.
	amountInSAR := amount
	if cur != s.baseCurrency {
		conv, err := s.currencyRepo.GetByName(ctx, req.Currency)
		if err != nil {
			return nil, fmt.Errorf("currency conversion rate for %s: %w", req.Currency, err)
		}
		amountInSAR = amount.Mul(conv.ConversionRate).Round(2)
	}

	id, err := s.repo.Create(ctx, Payment{
		BookingID:     req.BookingID,
		Amount:        amount,
		Currency:      cur,
		AmountInSAR:   amountInSAR,
		PaymentMethod: Method(req.PaymentMethod),
		PaymentDate:   time.Now(),
	})
	if err != nil {
		return nil, fmt.Errorf("create payment: %w", err)
	}

	if s.stats != nil {
		_ = s.stats.Bump(ctx)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListByBooking(ctx context.Context, bookingID int64) ([]Payment, error) {
	if _, err := s.bookingRepo.Get(ctx, bookingID); err != nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, err)
	}
	return s.repo.ListByBooking(ctx, bookingID)
}

// Status derives the payment state of a booking from its total and the sum
// of converted payments. The balance is not clamped at zero.
func (s *Service) Status(ctx context.Context, bookingID int64) (*Status, error) {
	booking, err := s.bookingRepo.Get(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %d: %w", bookingID, err)
	}

	totalPaid, err := s.repo.SumInSARByBooking(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("sum payments: %w", err)
	}

	outstanding := booking.TotalAmount.Sub(totalPaid)
	return &Status{
		BookingID:          bookingID,
		TotalAmount:        booking.TotalAmount,
		TotalPaid:          totalPaid,
		OutstandingBalance: outstanding,
		IsFullyPaid:        outstanding.LessThanOrEqual(decimal.Zero),
	}, nil
}
