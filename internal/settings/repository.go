package settings

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type Repository interface {
	Get(ctx context.Context) (*Settings, error)
	Put(ctx context.Context, s Settings) error
}

type dbtx interface {
	Exec(context.Context, string, ...interface{}) (pgconn.CommandTag, error)
	QueryRow(context.Context, string, ...interface{}) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func (r *repository) Get(ctx context.Context) (*Settings, error) {
	var s Settings
	err := r.db.QueryRow(ctx,
		"SELECT name, address, created_at, updated_at FROM travel_agency_settings WHERE singleton").
		Scan(&s.Name, &s.Address, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, httpx.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

func (r *repository) Put(ctx context.Context, s Settings) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO travel_agency_settings (singleton, name, address)
		 VALUES (TRUE, $1, $2)
		 ON CONFLICT (singleton) DO UPDATE
		 SET name = EXCLUDED.name, address = EXCLUDED.address, updated_at = NOW()`,
		s.Name, s.Address)
	return err
}
