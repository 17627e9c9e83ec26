package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const collectionColumns = `id, tenant_id, customer_id, method, gross_amount, commission, amount,
	note, collection_date, created_at`

// CollectionRepository implementa a interface collection.Repository
type CollectionRepository struct {
	db querier
}

// Create implementa collection.Repository.Create
func (r *CollectionRepository) Create(ctx context.Context, c *collection.Collection) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO collections (`+collectionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.TenantID, c.CustomerID, c.Method, c.GrossAmount, c.Commission, c.Amount,
		c.Note, c.Date, c.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar recebimento: %w", err)
	}
	return nil
}

// FindByID implementa collection.Repository.FindByID
func (r *CollectionRepository) FindByID(ctx context.Context, tenantID, id string) (*collection.Collection, error) {
	c, err := scanCollection(r.db.QueryRow(ctx,
		`SELECT `+collectionColumns+` FROM collections WHERE tenant_id = $1 AND id = $2`,
		tenantID, id))
	if err != nil {
		if isNotFound(err) {
			return nil, collection.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar recebimento: %w", err)
	}
	return c, nil
}

// Delete implementa collection.Repository.Delete
func (r *CollectionRepository) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover recebimento: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return collection.ErrNotFound
	}
	return nil
}

// SumByCustomer implementa collection.Repository.SumByCustomer
func (r *CollectionRepository) SumByCustomer(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM collections WHERE tenant_id = $1 AND customer_id = $2`,
		tenantID, customerID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao somar recebimentos: %w", err)
	}
	return total, nil
}

// ListByCustomer implementa collection.Repository.ListByCustomer
func (r *CollectionRepository) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*collection.Collection, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+collectionColumns+` FROM collections
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY collection_date, created_at`,
		tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar recebimentos: %w", err)
	}
	defer rows.Close()

	var collections []*collection.Collection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler recebimento: %w", err)
		}
		collections = append(collections, c)
	}
	return collections, rows.Err()
}

func scanCollection(row pgx.Row) (*collection.Collection, error) {
	var c collection.Collection
	err := row.Scan(&c.ID, &c.TenantID, &c.CustomerID, &c.Method, &c.GrossAmount, &c.Commission, &c.Amount,
		&c.Note, &c.Date, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
