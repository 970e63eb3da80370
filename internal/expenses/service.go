package expenses

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/bookings"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Service struct {
	repo        Repository
	bookingRepo bookings.Repository
}

func NewService(repo Repository, bookingRepo bookings.Repository) *Service {
	return &Service{repo: repo, bookingRepo: bookingRepo}
}

func (s *Service) Create(ctx context.Context, req CreateExpenseRequest) (*Expense, error) {
	if req.BookingID != nil {
		if _, err := s.bookingRepo.Get(ctx, *req.BookingID); err != nil {
			return nil, fmt.Errorf("booking %d: %w", *req.BookingID, err)
		}
	}

	id, err := s.repo.Create(ctx, Expense{
		BookingID: req.BookingID,
		Name:      req.Name,
		Amount:    decimal.NewFromFloat(req.Amount).Round(2),
	})
	if err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateExpenseRequest) (*Expense, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return nil, fmt.Errorf("expense: %w", err)
	}

	updates := make(map[string]interface{})
	if req.BookingID.Set {
		if req.BookingID.ID == nil {
			updates["booking_id"] = nil
		} else {
			if *req.BookingID.ID <= 0 {
				return nil, fmt.Errorf("%w: booking_id must be positive", httpx.ErrValidation)
			}
			if _, err := s.bookingRepo.Get(ctx, *req.BookingID.ID); err != nil {
				return nil, fmt.Errorf("booking %d: %w", *req.BookingID.ID, err)
			}
			updates["booking_id"] = *req.BookingID.ID
		}
	}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Amount != nil {
		updates["amount"] = decimal.NewFromFloat(*req.Amount).Round(2)
	}

	if len(updates) > 0 {
		if err := s.repo.Update(ctx, id, updates); err != nil {
			return nil, fmt.Errorf("update expense: %w", err)
		}
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return fmt.Errorf("expense: %w", err)
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (*Expense, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListExpensesRequest) ([]Expense, int, error) {
	return s.repo.List(ctx, req)
}
