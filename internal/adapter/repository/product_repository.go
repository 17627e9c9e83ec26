package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/jackc/pgx/v5"
)

const productColumns = `id, tenant_id, name, price, cost, stock, created_at, updated_at`

// ProductRepository implementa a interface product.Repository
type ProductRepository struct {
	db querier
}

// Create implementa product.Repository.Create
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		p.ID, p.TenantID, p.Name, p.Price, p.Cost, p.Stock, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar produto: %w", err)
	}
	return nil
}

// FindByID implementa product.Repository.FindByID
func (r *ProductRepository) FindByID(ctx context.Context, tenantID, id string) (*product.Product, error) {
	return r.findOne(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
}

// FindByIDForUpdate implementa product.Repository.FindByIDForUpdate. A linha
// fica bloqueada até o fim da transação, serializando ajustes concorrentes de
// estoque do mesmo produto.
func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*product.Product, error) {
	return r.findOne(ctx,
		`SELECT `+productColumns+` FROM products WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, id)
}

func (r *ProductRepository) findOne(ctx context.Context, query string, tenantID, id string) (*product.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if isNotFound(err) {
			return nil, product.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar produto: %w", err)
	}
	return p, nil
}

// List implementa product.Repository.List
func (r *ProductRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*product.Product, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+productColumns+` FROM products
		WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar produtos: %w", err)
	}
	defer rows.Close()

	var products []*product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler produto: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar produtos: %w", err)
	}
	return products, nil
}

// UpdateStock implementa product.Repository.UpdateStock
func (r *ProductRepository) UpdateStock(ctx context.Context, tenantID, id string, stock int) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE products SET stock = $3, updated_at = NOW() WHERE tenant_id = $1 AND id = $2`,
		tenantID, id, stock)
	if err != nil {
		return fmt.Errorf("erro ao atualizar estoque: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// AddMovement implementa product.Repository.AddMovement
func (r *ProductRepository) AddMovement(ctx context.Context, m *product.Movement) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO stock_movements (id, tenant_id, product_id, delta, reason, reference_id, stock_after, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.TenantID, m.ProductID, m.Delta, m.Reason, m.ReferenceID, m.StockAfter, m.CreatedAt)
	if err != nil {
		return fmt.Errorf("erro ao registrar movimentação: %w", err)
	}
	return nil
}

// ListMovements implementa product.Repository.ListMovements
func (r *ProductRepository) ListMovements(ctx context.Context, tenantID, productID string, limit int) ([]*product.Movement, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, tenant_id, product_id, delta, reason, reference_id, stock_after, created_at
		FROM stock_movements
		WHERE tenant_id = $1 AND product_id = $2
		ORDER BY created_at DESC, id
		LIMIT $3`,
		tenantID, productID, limit)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar movimentações: %w", err)
	}
	defer rows.Close()

	var movements []*product.Movement
	for rows.Next() {
		var m product.Movement
		if err := rows.Scan(&m.ID, &m.TenantID, &m.ProductID, &m.Delta, &m.Reason, &m.ReferenceID, &m.StockAfter, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("erro ao ler movimentação: %w", err)
		}
		movements = append(movements, &m)
	}
	return movements, rows.Err()
}

func scanProduct(row pgx.Row) (*product.Product, error) {
	var p product.Product
	if err := row.Scan(&p.ID, &p.TenantID, &p.Name, &p.Price, &p.Cost, &p.Stock, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
