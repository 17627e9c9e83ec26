package memory

import (
	"context"
	"sort"

	"github.com/hugohenrick/erp-vendas/internal/domain/product"
)

type productRepository struct {
	state *state
}

func (r *productRepository) Create(_ context.Context, p *product.Product) error {
	r.state.products[p.ID] = *p
	return nil
}

func (r *productRepository) FindByID(_ context.Context, tenantID, id string) (*product.Product, error) {
	p, ok := r.state.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, product.ErrNotFound
	}
	return &p, nil
}

// FindByIDForUpdate não precisa bloquear: a transação já tem acesso exclusivo
func (r *productRepository) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*product.Product, error) {
	return r.FindByID(ctx, tenantID, id)
}

func (r *productRepository) List(_ context.Context, tenantID string, limit, offset int) ([]*product.Product, error) {
	var all []*product.Product
	for _, p := range r.state.products {
		if p.TenantID == tenantID {
			p := p
			all = append(all, &p)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Name < all[j].Name })
	return paginate(all, limit, offset), nil
}

func (r *productRepository) UpdateStock(_ context.Context, tenantID, id string, stock int) error {
	p, ok := r.state.products[id]
	if !ok || p.TenantID != tenantID {
		return product.ErrNotFound
	}
	p.Stock = stock
	r.state.products[id] = p
	return nil
}

func (r *productRepository) AddMovement(_ context.Context, m *product.Movement) error {
	r.state.movements = append(r.state.movements, *m)
	return nil
}

func (r *productRepository) ListMovements(_ context.Context, tenantID, productID string, limit int) ([]*product.Movement, error) {
	var out []*product.Movement
	for i := len(r.state.movements) - 1; i >= 0; i-- {
		m := r.state.movements[i]
		if m.TenantID != tenantID || m.ProductID != productID {
			continue
		}
		out = append(out, &m)
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
