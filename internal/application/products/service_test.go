package products

import (
	"context"
	"testing"

	"github.com/hugohenrick/erp-vendas/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	svc := NewService(memory.NewStore(), logger.NewNop())

	p, err := svc.Create(ctx, "t1", Input{Name: "Leite", Price: decimal.RequireFromString("4.99"), InitialStock: 24})
	require.NoError(t, err)
	assert.False(t, p.Cost.Valid)

	_, err = svc.Create(ctx, "t1", Input{Name: "Pão", Price: decimal.RequireFromString("0.80"), Cost: decimal.NewNullDecimal(decimal.RequireFromString("0.50"))})
	require.NoError(t, err)

	got, err := svc.Get(ctx, "t1", p.ID)
	require.NoError(t, err)
	assert.Equal(t, 24, got.Stock)

	_, err = svc.Get(ctx, "t2", p.ID)
	assert.ErrorIs(t, err, product.ErrNotFound)

	list, err := svc.List(ctx, "t1", 1, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Leite", list[0].Name)

	_, err = svc.Create(ctx, "t1", Input{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, product.ErrNegativePrice)

	_, err = svc.Create(ctx, "t1", Input{Name: "X", Price: decimal.NewFromInt(1), InitialStock: -1})
	assert.ErrorIs(t, err, product.ErrNegativeStock)
}
