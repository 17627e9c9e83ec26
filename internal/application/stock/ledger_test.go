package stock

import (
	"context"
	"errors"
	"testing"

	"github.com/hugohenrick/erp-vendas/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedProduct(t *testing.T, s *memory.Store, tenantID string, stock int) *product.Product {
	t.Helper()
	p, err := product.NewProduct(tenantID, "Arroz 5kg", decimal.RequireFromString("25.90"), decimal.NullDecimal{}, stock)
	require.NoError(t, err)
	require.NoError(t, s.Transaction(context.Background(), func(ctx context.Context, repos store.Repositories) error {
		return repos.Products().Create(ctx, p)
	}))
	return p
}

func TestAdjust(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	l := NewLedger(s, logger.NewNop())
	p := seedProduct(t, s, "t1", 3)

	t.Run("baixa dentro do disponível", func(t *testing.T) {
		err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
			got, err := l.Adjust(ctx, repos, "t1", p.ID, -2, product.ReasonSale, "venda-1")
			require.NoError(t, err)
			assert.Equal(t, 1, got.Stock)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("baixa acima do disponível", func(t *testing.T) {
		err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
			_, err := l.Adjust(ctx, repos, "t1", p.ID, -2, product.ReasonSale, "venda-2")
			return err
		})
		require.Error(t, err)
		assert.True(t, errors.Is(err, apperror.ErrInsufficientStock))

		var stockErr *product.InsufficientStockError
		require.True(t, errors.As(err, &stockErr))
		assert.Equal(t, 2, stockErr.Requested)
		assert.Equal(t, 1, stockErr.Available)
	})

	t.Run("delta zero não gera movimentação", func(t *testing.T) {
		err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
			got, err := l.Adjust(ctx, repos, "t1", p.ID, 0, product.ReasonSale, "venda-3")
			require.NoError(t, err)
			assert.Equal(t, 1, got.Stock)
			return nil
		})
		require.NoError(t, err)

		movements, err := l.Movements(ctx, "t1", p.ID, 0)
		require.NoError(t, err)
		assert.Len(t, movements, 1)
	})

	t.Run("produto de outro tenant", func(t *testing.T) {
		err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
			_, err := l.Adjust(ctx, repos, "t2", p.ID, -1, product.ReasonSale, "venda-4")
			return err
		})
		assert.ErrorIs(t, err, product.ErrNotFound)
	})

	t.Run("produto não informado", func(t *testing.T) {
		err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
			_, err := l.Adjust(ctx, repos, "t1", "", -1, product.ReasonSale, "venda-5")
			return err
		})
		assert.ErrorIs(t, err, ErrEmptyProductID)
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestRestock(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	l := NewLedger(s, logger.NewNop())
	p := seedProduct(t, s, "t1", 0)

	got, err := l.Restock(ctx, "t1", p.ID, 12, "nf-100")
	require.NoError(t, err)
	assert.Equal(t, 12, got.Stock)

	_, err = l.Restock(ctx, "t1", p.ID, 0, "nf-101")
	assert.ErrorIs(t, err, product.ErrInvalidQuantity)

	_, err = l.Restock(ctx, "t1", "inexistente", 1, "nf-102")
	assert.ErrorIs(t, err, product.ErrNotFound)

	movements, err := l.Movements(ctx, "t1", p.ID, 10)
	require.NoError(t, err)
	require.Len(t, movements, 1)
	assert.Equal(t, 12, movements[0].Delta)
	assert.Equal(t, 12, movements[0].StockAfter)
	assert.Equal(t, product.ReasonRestock, movements[0].Reason)
	assert.Equal(t, "nf-100", movements[0].ReferenceID)

	_, err = l.Movements(ctx, "t2", p.ID, 10)
	assert.ErrorIs(t, err, product.ErrNotFound)
}

func TestAdjustRollsBackWithTransaction(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	l := NewLedger(s, logger.NewNop())
	p := seedProduct(t, s, "t1", 5)

	boom := errors.New("falha posterior")
	err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := l.Adjust(ctx, repos, "t1", p.ID, -5, product.ReasonSale, "venda-1"); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	movements, err := l.Movements(ctx, "t1", p.ID, 10)
	require.NoError(t, err)
	assert.Empty(t, movements)

	require.NoError(t, s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		got, err := repos.Products().FindByID(ctx, "t1", p.ID)
		require.NoError(t, err)
		assert.Equal(t, 5, got.Stock)
		return nil
	}))
}

// lockRecorder registra a ordem das leituras com bloqueio
type lockRecorder struct {
	store.Repositories
	locked *[]string
}

func (r lockRecorder) Products() product.Repository {
	return lockRecordingProducts{Repository: r.Repositories.Products(), locked: r.locked}
}

type lockRecordingProducts struct {
	product.Repository
	locked *[]string
}

func (p lockRecordingProducts) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*product.Product, error) {
	*p.locked = append(*p.locked, id)
	return p.Repository.FindByIDForUpdate(ctx, tenantID, id)
}

func TestLockSortsAndDeduplicates(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	l := NewLedger(s, logger.NewNop())
	a := seedProduct(t, s, "t1", 1)
	b := seedProduct(t, s, "t1", 1)

	first, second := a.ID, b.ID
	if second < first {
		first, second = second, first
	}

	var locked []string
	err := s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		return l.Lock(ctx, lockRecorder{Repositories: repos, locked: &locked}, "t1", second, "", first, second)
	})
	require.NoError(t, err)
	assert.Equal(t, []string{first, second}, locked)

	err = s.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		return l.Lock(ctx, repos, "t2", a.ID)
	})
	assert.ErrorIs(t, err, product.ErrNotFound)
}
