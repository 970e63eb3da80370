package reports

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/sync/singleflight"
)

type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

func rangeKey(r DateRange) string {
	format := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.Format("20060102T150405")
	}
	return fmt.Sprintf("%s_%s", format(r.Start), format(r.End))
}

// fetch collapses concurrent identical report builds through singleflight
// before consulting the cache, so a stampede after a version bump runs the
// aggregation query once. The winning call returns the JSON payload through
// Do, and each caller decodes it into its own dest.
func (s *Service) fetch(ctx context.Context, name string, r DateRange, dest interface{}, loader func(context.Context) (interface{}, error)) error {
	key, err := s.cache.BuildKey(ctx, "reports", name, rangeKey(r))
	if err != nil {
		return err
	}
	payload, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.cache.FetchJSON(ctx, key, loader)
	})
	if err != nil {
		return err
	}
	return json.Unmarshal(payload.([]byte), dest)
}

func (s *Service) Dashboard(ctx context.Context, r DateRange) (*DashboardStats, error) {
	var stats DashboardStats
	err := s.fetch(ctx, "dashboard", r, &stats, func(ctx context.Context) (interface{}, error) {
		return s.repo.Dashboard(ctx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("dashboard stats: %w", err)
	}
	return &stats, nil
}

func (s *Service) ProfitLoss(ctx context.Context, r DateRange) ([]ProfitLossRow, error) {
	var rows []ProfitLossRow
	err := s.fetch(ctx, "profit-loss", r, &rows, func(ctx context.Context) (interface{}, error) {
		return s.repo.ProfitLoss(ctx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("profit-loss report: %w", err)
	}
	return rows, nil
}

func (s *Service) BookingsSummary(ctx context.Context, r DateRange) ([]BookingsSummaryRow, error) {
	var rows []BookingsSummaryRow
	err := s.fetch(ctx, "bookings-summary", r, &rows, func(ctx context.Context) (interface{}, error) {
		return s.repo.BookingsSummary(ctx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("bookings summary report: %w", err)
	}
	return rows, nil
}

func (s *Service) UnpaidInvoices(ctx context.Context, r DateRange) ([]UnpaidInvoiceRow, error) {
	var rows []UnpaidInvoiceRow
	err := s.fetch(ctx, "unpaid-invoices", r, &rows, func(ctx context.Context) (interface{}, error) {
		return s.repo.UnpaidInvoices(ctx, r)
	})
	if err != nil {
		return nil, fmt.Errorf("unpaid invoices report: %w", err)
	}
	return rows, nil
}
