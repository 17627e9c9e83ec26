package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
	"github.com/jackc/pgx/v5/pgxpool"
)

// TenantRepository implementa a interface tenant.Repository
type TenantRepository struct {
	db *pgxpool.Pool
}

// NewTenantRepository cria uma nova instância de TenantRepository
func NewTenantRepository(db *pgxpool.Pool) tenant.Repository {
	return &TenantRepository{
		db: db,
	}
}

// Create implementa tenant.Repository.Create
func (r *TenantRepository) Create(ctx context.Context, t *tenant.Tenant) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO tenants (id, name, document, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID, t.Name, t.Document, t.Status, t.CreatedAt, t.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return tenant.ErrDuplicateDocument
		}
		return fmt.Errorf("erro ao criar tenant: %w", err)
	}
	return nil
}

// FindByID implementa tenant.Repository.FindByID
func (r *TenantRepository) FindByID(ctx context.Context, id string) (*tenant.Tenant, error) {
	var t tenant.Tenant
	err := r.db.QueryRow(ctx,
		`SELECT id, name, document, status, created_at, updated_at
		FROM tenants WHERE id = $1`,
		id).Scan(&t.ID, &t.Name, &t.Document, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if isNotFound(err) {
			return nil, tenant.ErrTenantNotFound
		}
		return nil, fmt.Errorf("erro ao buscar tenant: %w", err)
	}
	return &t, nil
}
