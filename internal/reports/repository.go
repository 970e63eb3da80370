package reports

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type Repository interface {
	Dashboard(ctx context.Context, r DateRange) (*DashboardStats, error)
	ProfitLoss(ctx context.Context, r DateRange) ([]ProfitLossRow, error)
	BookingsSummary(ctx context.Context, r DateRange) ([]BookingsSummaryRow, error)
	UnpaidInvoices(ctx context.Context, r DateRange) ([]UnpaidInvoiceRow, error)
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

// dateFilter appends created_at bounds for the bookings alias b. End is
// already exclusive when set (handlers extend it past the requested day).
func dateFilter(r DateRange, args []interface{}) (string, []interface{}) {
	clause := ""
	if r.Start != nil {
		args = append(args, *r.Start)
		clause += fmt.Sprintf(" AND b.created_at >= $%d", len(args))
	}
	if r.End != nil {
		args = append(args, *r.End)
		clause += fmt.Sprintf(" AND b.created_at < $%d", len(args))
	}
	return clause, args
}

// Cost basis reconstructs what the agency paid: hotel cost price times rooms
// times nights, plus each service line's catalog cost times quantity. Selling
// prices snapshotted on the booking are deliberately not used here.
const costBasisExpr = `h.cost_price * b.room_quantity * GREATEST(b.check_out_date - b.check_in_date, 0)`

func (rp *repository) Dashboard(ctx context.Context, r DateRange) (*DashboardStats, error) {
	clause, args := dateFilter(r, nil)
	query := `
		SELECT
			(SELECT COUNT(*) FROM customers) AS total_customers,
			COUNT(b.id) AS total_bookings,
			COALESCE(SUM(b.total_amount), 0) AS total_revenue,
			COALESCE(SUM(` + costBasisExpr + `), 0) AS hotel_cost,
			COALESCE(SUM(sc.cost), 0) AS services_cost,
			COUNT(b.id) FILTER (WHERE COALESCE(p.paid, 0) < b.total_amount) AS unpaid_bookings
		FROM bookings b
		JOIN hotels h ON h.id = b.hotel_id
		LEFT JOIN LATERAL (
			SELECT SUM(s.cost_price * bs.quantity) AS cost
			FROM booking_services bs
			JOIN services s ON s.id = bs.service_id
			WHERE bs.booking_id = b.id
		) sc ON TRUE
		LEFT JOIN LATERAL (
			SELECT SUM(amount_in_sar) AS paid FROM payments WHERE booking_id = b.id
		) p ON TRUE
		WHERE TRUE` + clause

	var (
		stats        DashboardStats
		revenue      decimal.Decimal
		hotelCost    decimal.Decimal
		servicesCost decimal.Decimal
	)
	err := rp.db.QueryRow(ctx, query, args...).Scan(
		&stats.TotalCustomers, &stats.TotalBookings, &revenue, &hotelCost, &servicesCost, &stats.UnpaidBookings,
	)
	if err != nil {
		return nil, err
	}
	stats.TotalProfit = revenue.Sub(hotelCost).Sub(servicesCost).Round(2)
	return &stats, nil
}

func (rp *repository) ProfitLoss(ctx context.Context, r DateRange) ([]ProfitLossRow, error) {
	clause, args := dateFilter(r, nil)
	query := `
		SELECT
			b.invoice_number,
			c.name,
			b.total_amount,
			` + costBasisExpr + ` + COALESCE(sc.cost, 0) AS total_cost,
			b.created_at
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		JOIN hotels h ON h.id = b.hotel_id
		LEFT JOIN LATERAL (
			SELECT SUM(s.cost_price * bs.quantity) AS cost
			FROM booking_services bs
			JOIN services s ON s.id = bs.service_id
			WHERE bs.booking_id = b.id
		) sc ON TRUE
		WHERE TRUE` + clause + `
		ORDER BY b.created_at DESC`

	rows, err := rp.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ProfitLossRow
	for rows.Next() {
		var row ProfitLossRow
		if err := rows.Scan(&row.InvoiceNumber, &row.CustomerName, &row.TotalRevenue, &row.TotalCost, &row.BookingDate); err != nil {
			return nil, err
		}
		row.TotalCost = row.TotalCost.Round(2)
		row.Profit = row.TotalRevenue.Sub(row.TotalCost).Round(2)
		out = append(out, row)
	}
	return out, rows.Err()
}

func (rp *repository) BookingsSummary(ctx context.Context, r DateRange) ([]BookingsSummaryRow, error) {
	clause, args := dateFilter(r, nil)
	query := `
		SELECT
			DATE(b.created_at) AS day,
			COUNT(b.id),
			COALESCE(SUM(b.total_amount), 0),
			COALESCE(SUM(b.room_quantity), 0)
		FROM bookings b
		WHERE TRUE` + clause + `
		GROUP BY DATE(b.created_at)
		ORDER BY day ASC`

	rows, err := rp.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []BookingsSummaryRow
	for rows.Next() {
		var row BookingsSummaryRow
		if err := rows.Scan(&row.Date, &row.TotalBookings, &row.TotalRevenue, &row.TotalRooms); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (rp *repository) UnpaidInvoices(ctx context.Context, r DateRange) ([]UnpaidInvoiceRow, error) {
	clause, args := dateFilter(r, nil)
	query := `
		SELECT
			b.invoice_number,
			c.name,
			b.total_amount,
			COALESCE(p.paid, 0) AS paid_amount,
			b.created_at
		FROM bookings b
		JOIN customers c ON c.id = b.customer_id
		LEFT JOIN LATERAL (
			SELECT SUM(amount_in_sar) AS paid FROM payments WHERE booking_id = b.id
		) p ON TRUE
		WHERE b.total_amount - COALESCE(p.paid, 0) > 0` + clause + `
		ORDER BY b.created_at DESC`

	rows, err := rp.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []UnpaidInvoiceRow
	for rows.Next() {
		var row UnpaidInvoiceRow
		if err := rows.Scan(&row.InvoiceNumber, &row.CustomerName, &row.TotalAmount, &row.PaidAmount, &row.BookingDate); err != nil {
			return nil, err
		}
		row.OutstandingBalance = row.TotalAmount.Sub(row.PaidAmount).Round(2)
		out = append(out, row)
	}
	return out, rows.Err()
}
