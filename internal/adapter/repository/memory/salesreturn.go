package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/shopspring/decimal"
)

type returnRepository struct {
	state *state
}

func (r *returnRepository) Create(_ context.Context, ret *salesreturn.Return) error {
	stored := *ret
	stored.Items = append([]salesreturn.Item(nil), ret.Items...)
	r.state.returns[ret.ID] = stored
	return nil
}

func (r *returnRepository) FindByID(_ context.Context, tenantID, id string) (*salesreturn.Return, error) {
	ret, ok := r.state.returns[id]
	if !ok || ret.TenantID != tenantID {
		return nil, salesreturn.ErrNotFound
	}
	ret.Items = append([]salesreturn.Item(nil), ret.Items...)
	return &ret, nil
}

func (r *returnRepository) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*salesreturn.Return, error) {
	return r.FindByID(ctx, tenantID, id)
}

func (r *returnRepository) ReplaceItems(_ context.Context, ret *salesreturn.Return) error {
	stored, ok := r.state.returns[ret.ID]
	if !ok || stored.TenantID != ret.TenantID {
		return salesreturn.ErrNotFound
	}
	stored.Items = append([]salesreturn.Item(nil), ret.Items...)
	stored.TotalAmount = ret.TotalAmount
	stored.UpdatedAt = ret.UpdatedAt
	r.state.returns[ret.ID] = stored
	return nil
}

func (r *returnRepository) Delete(_ context.Context, tenantID, id string) error {
	stored, ok := r.state.returns[id]
	if !ok || stored.TenantID != tenantID {
		return salesreturn.ErrNotFound
	}
	delete(r.state.returns, id)
	return nil
}

func (r *returnRepository) SumByCustomer(_ context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, ret := range r.state.returns {
		if ret.TenantID == tenantID && ret.CustomerID == customerID {
			total = total.Add(ret.TotalAmount)
		}
	}
	return total, nil
}

func (r *returnRepository) ListByCustomer(_ context.Context, tenantID, customerID string) ([]*salesreturn.Return, error) {
	var out []*salesreturn.Return
	for _, ret := range r.state.returns {
		if ret.TenantID == tenantID && ret.CustomerID == customerID {
			ret := ret
			ret.Items = append([]salesreturn.Item(nil), ret.Items...)
			out = append(out, &ret)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
