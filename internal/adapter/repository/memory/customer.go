package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
)

type customerRepository struct {
	state *state
}

func (r *customerRepository) Create(_ context.Context, c *customer.Customer) error {
	if c.TaxNumber != "" {
		for _, existing := range r.state.customers {
			if existing.TenantID == c.TenantID && existing.TaxNumber == c.TaxNumber {
				return customer.ErrDuplicateTaxNumber
			}
		}
	}
	r.state.customers[c.ID] = *c
	return nil
}

func (r *customerRepository) FindByID(_ context.Context, tenantID, id string) (*customer.Customer, error) {
	c, ok := r.state.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, customer.ErrNotFound
	}
	return &c, nil
}

func (r *customerRepository) List(_ context.Context, tenantID string, limit, offset int) ([]*customer.Customer, error) {
	var all []*customer.Customer
	for _, c := range r.state.customers {
		if c.TenantID == tenantID {
			c := c
			all = append(all, &c)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *customerRepository) Update(_ context.Context, c *customer.Customer) error {
	existing, ok := r.state.customers[c.ID]
	if !ok || existing.TenantID != c.TenantID {
		return customer.ErrNotFound
	}
	if c.TaxNumber != "" {
		for id, other := range r.state.customers {
			if id != c.ID && other.TenantID == c.TenantID && other.TaxNumber == c.TaxNumber {
				return customer.ErrDuplicateTaxNumber
			}
		}
	}
	r.state.customers[c.ID] = *c
	return nil
}

func paginate[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return all[offset:end]
}
