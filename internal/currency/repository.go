package currency

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

const uniqueViolation = "23505"

type Repository interface {
	Get(ctx context.Context, id int64) (*Conversion, error)
	GetByName(ctx context.Context, currencyName string) (*Conversion, error)
	List(ctx context.Context) ([]Conversion, error)
	Create(ctx context.Context, c Conversion) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
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

const conversionColumns = "id, currency_name, conversion_rate, created_at, updated_at"

func scanConversion(row pgx.Row) (*Conversion, error) {
	var c Conversion
	err := row.Scan(&c.ID, &c.CurrencyName, &c.ConversionRate, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Conversion, error) {
	row := r.db.QueryRow(ctx, "SELECT "+conversionColumns+" FROM currency_conversions WHERE id = $1", id)
	return scanConversion(row)
}

func (r *repository) GetByName(ctx context.Context, currencyName string) (*Conversion, error) {
	row := r.db.QueryRow(ctx, "SELECT "+conversionColumns+" FROM currency_conversions WHERE currency_name = $1", currencyName)
	return scanConversion(row)
}

func (r *repository) List(ctx context.Context) ([]Conversion, error) {
	rows, err := r.db.Query(ctx, "SELECT "+conversionColumns+" FROM currency_conversions ORDER BY currency_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Conversion
	for rows.Next() {
		var c Conversion
		if err := rows.Scan(&c.ID, &c.CurrencyName, &c.ConversionRate, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Create(ctx context.Context, c Conversion) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO currency_conversions (currency_name, conversion_rate) VALUES ($1, $2) RETURNING id`,
		c.CurrencyName, c.ConversionRate,
	).Scan(&id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return 0, fmt.Errorf("%w: currency %s already configured", httpx.ErrDuplicate, c.CurrencyName)
		}
		return 0, err
	}
	return id, nil
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE currency_conversions SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"currency_name", "conversion_rate"} {
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

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, "DELETE FROM currency_conversions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}
