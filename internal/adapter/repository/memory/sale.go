package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/shopspring/decimal"
)

type saleRepository struct {
	state *state
}

func (r *saleRepository) Create(_ context.Context, s *sale.Sale) error {
	stored := *s
	stored.Items = append([]sale.Item(nil), s.Items...)
	r.state.sales[s.ID] = stored
	return nil
}

func (r *saleRepository) FindByID(_ context.Context, tenantID, id string) (*sale.Sale, error) {
	s, ok := r.state.sales[id]
	if !ok || s.TenantID != tenantID {
		return nil, sale.ErrNotFound
	}
	s.Items = append([]sale.Item(nil), s.Items...)
	return &s, nil
}

func (r *saleRepository) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	return r.FindByID(ctx, tenantID, id)
}

func (r *saleRepository) ReplaceItems(_ context.Context, s *sale.Sale) error {
	stored, ok := r.state.sales[s.ID]
	if !ok || stored.TenantID != s.TenantID {
		return sale.ErrNotFound
	}
	stored.Items = append([]sale.Item(nil), s.Items...)
	stored.TotalAmount = s.TotalAmount
	stored.UpdatedAt = s.UpdatedAt
	r.state.sales[s.ID] = stored
	return nil
}

func (r *saleRepository) UpdateStatus(_ context.Context, s *sale.Sale) error {
	stored, ok := r.state.sales[s.ID]
	if !ok || stored.TenantID != s.TenantID {
		return sale.ErrNotFound
	}
	stored.Status = s.Status
	stored.CancelledAt = s.CancelledAt
	stored.UpdatedAt = s.UpdatedAt
	r.state.sales[s.ID] = stored
	return nil
}

func (r *saleRepository) SumActiveByCustomer(_ context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.state.sales {
		if s.TenantID == tenantID && s.CustomerID == customerID && s.Status != sale.StatusCancelled {
			total = total.Add(s.TotalAmount)
		}
	}
	return total, nil
}

func (r *saleRepository) ListActiveByCustomer(_ context.Context, tenantID, customerID string) ([]*sale.Sale, error) {
	var out []*sale.Sale
	for _, s := range r.state.sales {
		if s.TenantID == tenantID && s.CustomerID == customerID && s.Status != sale.StatusCancelled {
			s := s
			s.Items = append([]sale.Item(nil), s.Items...)
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
