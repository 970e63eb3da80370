package hotels

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Repository interface {
	Get(ctx context.Context, id int64) (*Hotel, error)
	List(ctx context.Context, req ListHotelsRequest) ([]Hotel, int, error)
	Create(ctx context.Context, h Hotel) (int64, error)
	Update(ctx context.Context, id int64, updates map[string]interface{}) error
	Delete(ctx context.Context, id int64) error
	HasBookings(ctx context.Context, id int64) (bool, error)
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

const hotelColumns = "id, name, location, room_type, meal_package, cost_price, markup_percentage, selling_price, created_at, updated_at"

func scanHotel(row pgx.Row) (*Hotel, error) {
	var h Hotel
	err := row.Scan(&h.ID, &h.Name, &h.Location, &h.RoomType, &h.MealPackage,
		&h.CostPrice, &h.MarkupPercentage, &h.SellingPrice, &h.CreatedAt, &h.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &h, nil
}

func (r *repository) Get(ctx context.Context, id int64) (*Hotel, error) {
	row := r.db.QueryRow(ctx, "SELECT "+hotelColumns+" FROM hotels WHERE id = $1", id)
	return scanHotel(row)
}

func (r *repository) List(ctx context.Context, req ListHotelsRequest) ([]Hotel, int, error) {
	whereClause := ""
	var args []interface{}
	argPos := 1

	if req.Search != nil && *req.Search != "" {
		whereClause = fmt.Sprintf("WHERE (name ILIKE $%d OR location ILIKE $%d)", argPos, argPos)
		args = append(args, "%"+*req.Search+"%")
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, fmt.Sprintf("SELECT COUNT(*) FROM hotels %s", whereClause), args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	limit := req.Limit
	if limit <= 0 {
		limit = 50
	}
	query := fmt.Sprintf(
		"SELECT "+hotelColumns+" FROM hotels %s ORDER BY name LIMIT $%d OFFSET $%d",
		whereClause, argPos, argPos+1,
	)
	args = append(args, limit, req.Offset)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Hotel
	for rows.Next() {
		var h Hotel
		if err := rows.Scan(&h.ID, &h.Name, &h.Location, &h.RoomType, &h.MealPackage,
			&h.CostPrice, &h.MarkupPercentage, &h.SellingPrice, &h.CreatedAt, &h.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, h)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, h Hotel) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO hotels (name, location, room_type, meal_package, cost_price, markup_percentage, selling_price)
		 VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`,
		h.Name, h.Location, h.RoomType, h.MealPackage, h.CostPrice, h.MarkupPercentage, h.SellingPrice,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	query := "UPDATE hotels SET updated_at = NOW()"
	var args []interface{}
	argPos := 1

	for _, col := range []string{"name", "location", "room_type", "meal_package", "cost_price", "markup_percentage", "selling_price"} {
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
	tag, err := r.db.Exec(ctx, "DELETE FROM hotels WHERE id = $1", id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return httpx.ErrNotFound
	}
	return nil
}

func (r *repository) HasBookings(ctx context.Context, id int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM bookings WHERE hotel_id = $1)", id).Scan(&exists)
	return exists, err
}
