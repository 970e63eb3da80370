package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/db"
	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

const uniqueViolation = "23505"

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error
	Get(ctx context.Context, id int64) (*Booking, error)
	GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Booking, error)
	List(ctx context.Context, req ListBookingsRequest) ([]Booking, int, error)
	Create(ctx context.Context, b Booking) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	InsertLine(ctx context.Context, line BookingService) (int64, error)
	ListLines(ctx context.Context, bookingID int64) ([]BookingService, error)
	DeleteLines(ctx context.Context, bookingID int64) error
	DeletePayments(ctx context.Context, bookingID int64) error
	DeleteExpenses(ctx context.Context, bookingID int64) error
	DeleteBooking(ctx context.Context, id int64) (bool, error)
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	Query(context.Context, string, ...interface{}) (pgx.Rows, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const bookingColumns = `id, invoice_number, customer_id, hotel_id, check_in_date, check_out_date,
	room_quantity, hotel_subtotal, services_total, total_amount, created_at, updated_at`

func scanBooking(row pgx.Row) (*Booking, error) {
	var b Booking
	err := row.Scan(&b.ID, &b.InvoiceNumber, &b.CustomerID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
		&b.RoomQuantity, &b.HotelSubtotal, &b.ServicesTotal, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Booking, error) {
	row := r.db.QueryRow(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE id = $1", id)
	return scanBooking(row)
}

func (r *repository) GetByInvoiceNumber(ctx context.Context, invoiceNumber string) (*Booking, error) {
	row := r.db.QueryRow(ctx, "SELECT "+bookingColumns+" FROM bookings WHERE invoice_number = $1", invoiceNumber)
	return scanBooking(row)
}

func (r *repository) List(ctx context.Context, req ListBookingsRequest) ([]Booking, int, error) {
	whereClause := ""
	var args []interface{}
	argPos := 1

	if req.CustomerID != nil {
		whereClause = fmt.Sprintf("WHERE customer_id = $%d", argPos)
		args = append(args, *req.CustomerID)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM bookings %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT "+bookingColumns+" FROM bookings %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d",
		whereClause, argPos, argPos+1,
	)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Booking
	for rows.Next() {
		var b Booking
		if err := rows.Scan(&b.ID, &b.InvoiceNumber, &b.CustomerID, &b.HotelID, &b.CheckInDate, &b.CheckOutDate,
			&b.RoomQuantity, &b.HotelSubtotal, &b.ServicesTotal, &b.TotalAmount, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, b Booking) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO bookings (invoice_number, customer_id, hotel_id, check_in_date, check_out_date,
			room_quantity, hotel_subtotal, services_total, total_amount)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9) RETURNING id`,
		b.InvoiceNumber, b.CustomerID, b.HotelID, b.CheckInDate, b.CheckOutDate,
		b.RoomQuantity, b.HotelSubtotal, b.ServicesTotal, b.TotalAmount,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%w: invoice number %s", httpx.ErrDuplicate, b.InvoiceNumber)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE bookings SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"customer_id", "hotel_id", "check_in_date", "check_out_date",
		"room_quantity", "hotel_subtotal", "services_total", "total_amount"} {
		if v, ok := updates[col]; ok {
			query += fmt.Sprintf(", %s = $%d", col, argPos)
			args = append(args, v)
			argPos++
		}
	}

	query += fmt.Sprintf(" WHERE id = $%d", argPos)
	args = append(args, id)

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) InsertLine(ctx context.Context, line BookingService) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO booking_services (booking_id, service_id, quantity, unit_price, total_price)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		line.BookingID, line.ServiceID, line.Quantity, line.UnitPrice, line.TotalPrice,
	).Scan(&id)
	return id, err
}

func (r *repository) ListLines(ctx context.Context, bookingID int64) ([]BookingService, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, booking_id, service_id, quantity, unit_price, total_price
		 FROM booking_services WHERE booking_id = $1 ORDER BY id`, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingService
	for rows.Next() {
		var l BookingService
		if err := rows.Scan(&l.ID, &l.BookingID, &l.ServiceID, &l.Quantity, &l.UnitPrice, &l.TotalPrice); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}

func (r *repository) DeleteLines(ctx context.Context, bookingID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM booking_services WHERE booking_id = $1", bookingID)
	return err
}

func (r *repository) DeletePayments(ctx context.Context, bookingID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM payments WHERE booking_id = $1", bookingID)
	return err
}

func (r *repository) DeleteExpenses(ctx context.Context, bookingID int64) error {
	_, err := r.db.Exec(ctx, "DELETE FROM expenses WHERE booking_id = $1", bookingID)
	return err
}

func (r *repository) DeleteBooking(ctx context.Context, id int64) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM bookings WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
