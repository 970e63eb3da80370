package settings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memorySettingsRepo struct {
	current *Settings
}

func (r *memorySettingsRepo) Get(ctx context.Context) (*Settings, error) {
	if r.current == nil {
		return nil, httpx.ErrNotFound
	}
	copied := *r.current
	return &copied, nil
}

func (r *memorySettingsRepo) Put(ctx context.Context, s Settings) error {
	now := time.Now()
	if r.current == nil {
		s.CreatedAt = now
		s.UpdatedAt = now
		r.current = &s
		return nil
	}
	r.current.Name = s.Name
	r.current.Address = s.Address
	r.current.UpdatedAt = now
	return nil
}

func TestSettingsUpsert(t *testing.T) {
	repo := &memorySettingsRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	_, err := svc.Get(ctx)
	require.ErrorIs(t, err, httpx.ErrNotFound)

	stored, err := svc.Put(ctx, PutSettingsRequest{Name: "Rihlah Travel", Address: "Riyadh"})
	require.NoError(t, err)
	require.Equal(t, "Rihlah Travel", stored.Name)

	// A second put updates the same row instead of inserting another.
	stored, err = svc.Put(ctx, PutSettingsRequest{Name: "Rihlah Travel & Tours", Address: "Jeddah"})
	require.NoError(t, err)
	require.Equal(t, "Rihlah Travel & Tours", stored.Name)
	require.Equal(t, "Jeddah", stored.Address)
}
