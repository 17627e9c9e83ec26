package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/shopspring/decimal"
)

type collectionRepository struct {
	state *state
}

func (r *collectionRepository) Create(_ context.Context, c *collection.Collection) error {
	r.state.collections[c.ID] = *c
	return nil
}

func (r *collectionRepository) FindByID(_ context.Context, tenantID, id string) (*collection.Collection, error) {
	c, ok := r.state.collections[id]
	if !ok || c.TenantID != tenantID {
		return nil, collection.ErrNotFound
	}
	return &c, nil
}

func (r *collectionRepository) Delete(_ context.Context, tenantID, id string) error {
	c, ok := r.state.collections[id]
	if !ok || c.TenantID != tenantID {
		return collection.ErrNotFound
	}
	delete(r.state.collections, id)
	return nil
}

func (r *collectionRepository) SumByCustomer(_ context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, c := range r.state.collections {
		if c.TenantID == tenantID && c.CustomerID == customerID {
			total = total.Add(c.Amount)
		}
	}
	return total, nil
}

func (r *collectionRepository) ListByCustomer(_ context.Context, tenantID, customerID string) ([]*collection.Collection, error) {
	var out []*collection.Collection
	for _, c := range r.state.collections {
		if c.TenantID == tenantID && c.CustomerID == customerID {
			c := c
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}
