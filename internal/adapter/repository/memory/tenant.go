package memory

import (
	"context"

	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
)

type tenantRepository struct {
	store *Store
}

func (r *tenantRepository) Create(_ context.Context, t *tenant.Tenant) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, existing := range r.store.state.tenants {
		if existing.Document == t.Document {
			return tenant.ErrDuplicateDocument
		}
	}
	r.store.state.tenants[t.ID] = *t
	return nil
}

func (r *tenantRepository) FindByID(_ context.Context, id string) (*tenant.Tenant, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	t, ok := r.store.state.tenants[id]
	if !ok {
		return nil, tenant.ErrTenantNotFound
	}
	return &t, nil
}
