package currency

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/rihlah-erp/rihlah-erp/internal/platform/httpx"
)

type memoryConversionRepo struct {
	conversions map[int64]*Conversion
	nextID      int64
}

func newMemoryConversionRepo() *memoryConversionRepo {
	return &memoryConversionRepo{conversions: make(map[int64]*Conversion)}
}

func (r *memoryConversionRepo) Get(ctx context.Context, id int64) (*Conversion, error) {
	c, ok := r.conversions[id]
	if !ok {
		return nil, httpx.ErrNotFound
	}
	copied := *c
	return &copied, nil
}

func (r *memoryConversionRepo) GetByName(ctx context.Context, currencyName string) (*Conversion, error) {
	for _, c := range r.conversions {
		if c.CurrencyName == currencyName {
			copied := *c
			return &copied, nil
		}
	}
	return nil, httpx.ErrNotFound
}

func (r *memoryConversionRepo) List(ctx context.Context) ([]Conversion, error) {
	var out []Conversion
	for _, c := range r.conversions {
		out = append(out, *c)
	}
	return out, nil
}

func (r *memoryConversionRepo) Create(ctx context.Context, c Conversion) (int64, error) {
	if _, err := r.GetByName(ctx, c.CurrencyName); err == nil {
		return 0, fmt.Errorf("%w: currency %s already configured", httpx.ErrDuplicate, c.CurrencyName)
	}
	r.nextID++
	c.ID = r.nextID
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	r.conversions[c.ID] = &c
	return c.ID, nil
}

func (r *memoryConversionRepo) Update(ctx context.Context, id int64, updates map[string]interface{}) error {
	c, ok := r.conversions[id]
	if !ok {
		return httpx.ErrNotFound
	}
	if v, ok := updates["currency_name"]; ok {
		c.CurrencyName = v.(string)
	}
	if v, ok := updates["conversion_rate"]; ok {
		c.ConversionRate = v.(decimal.Decimal)
	}
	c.UpdatedAt = time.Now()
	return nil
}

func (r *memoryConversionRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := r.conversions[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(r.conversions, id)
	return nil
}

func TestCreateConversionRejectsDuplicates(t *testing.T) {
	svc := NewService(newMemoryConversionRepo())
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateConversionRequest{CurrencyName: "USD", ConversionRate: 3.75})
	require.NoError(t, err)
	require.Equal(t, "USD", created.CurrencyName)

	_, err = svc.Create(ctx, CreateConversionRequest{CurrencyName: "USD", ConversionRate: 3.70})
	require.ErrorIs(t, err, httpx.ErrDuplicate)
}

func TestCreateConversionRejectsNonPositiveRate(t *testing.T) {
	svc := NewService(newMemoryConversionRepo())

	_, err := svc.Create(context.Background(), CreateConversionRequest{CurrencyName: "IDR", ConversionRate: 0})
	require.ErrorIs(t, err, httpx.ErrValidation)
}

func TestRateFor(t *testing.T) {
	svc := NewService(newMemoryConversionRepo())
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateConversionRequest{CurrencyName: "USD", ConversionRate: 3.75})
	require.NoError(t, err)

	rate, err := svc.RateFor(ctx, "USD")
	require.NoError(t, err)
	require.Equal(t, "3.75", rate.String())

	_, err = svc.RateFor(ctx, "EUR")
	require.ErrorIs(t, err, httpx.ErrNotFound)
	require.Contains(t, err.Error(), "currency conversion rate for EUR")
}
