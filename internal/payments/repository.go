package payments

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Repository interface {
	Create(ctx context.Context, p Payment) (int64, error)
	Get(ctx context.Context, id int64) (*Payment, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]Payment, error)
	SumInSARByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

const paymentColumns = "id, booking_id, amount, currency, amount_in_sar, payment_method, payment_date, created_at"

func (r *repository) Create(ctx context.Context, p Payment) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO payments (booking_id, amount, currency, amount_in_sar, payment_method, payment_date)
		 VALUES ($1, $2, $3, $4, $5, $6) RETURNING id`,
		p.BookingID, p.Amount, p.Currency, p.AmountInSAR, p.PaymentMethod, p.PaymentDate,
	).Scan(&id)
	return id, err
}

func (r *repository) Get(ctx context.Context, id int64) (*Payment, error) {
	var p Payment
	err := r.db.QueryRow(ctx, "SELECT "+paymentColumns+" FROM payments WHERE id = $1", id).
		Scan(&p.ID, &p.BookingID, &p.Amount, &p.Currency, &p.AmountInSAR, &p.PaymentMethod, &p.PaymentDate, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

func (r *repository) ListByBooking(ctx context.Context, bookingID int64) ([]Payment, error) {
	rows, err := r.db.Query(ctx,
		"SELECT "+paymentColumns+" FROM payments WHERE booking_id = $1 ORDER BY payment_date", bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.BookingID, &p.Amount, &p.Currency, &p.AmountInSAR,
			&p.PaymentMethod, &p.PaymentDate, &p.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) SumInSARByBooking(ctx context.Context, bookingID int64) (decimal.Decimal, error) {
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(amount_in_sar), 0) FROM payments WHERE booking_id = $1", bookingID).Scan(&sum)
	return sum, err
}
