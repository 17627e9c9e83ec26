package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const saleColumns = `id, tenant_id, customer_id, sale_date, total_amount, segment_at_time,
	discount_rate_at_time, status, cancelled_at, created_at, updated_at`

const saleItemColumns = `id, sale_id, position, product_id, product_name, quantity,
	unit_price, list_unit_price, applied_discount_rate, line_total`

// SaleRepository implementa a interface sale.Repository
type SaleRepository struct {
	db querier
}

// Create implementa sale.Repository.Create
func (r *SaleRepository) Create(ctx context.Context, s *sale.Sale) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sales (`+saleColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		s.ID, s.TenantID, s.CustomerID, s.Date, s.TotalAmount, s.SegmentAtTime,
		s.DiscountRateAtTime, s.Status, s.CancelledAt, s.CreatedAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar venda: %w", err)
	}
	return r.insertItems(ctx, s.Items)
}

// FindByID implementa sale.Repository.FindByID
func (r *SaleRepository) FindByID(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	return r.findOne(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
}

// FindByIDForUpdate implementa sale.Repository.FindByIDForUpdate
func (r *SaleRepository) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*sale.Sale, error) {
	return r.findOne(ctx,
		`SELECT `+saleColumns+` FROM sales WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, id)
}

func (r *SaleRepository) findOne(ctx context.Context, query, tenantID, id string) (*sale.Sale, error) {
	s, err := scanSale(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if isNotFound(err) {
			return nil, sale.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar venda: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+saleItemColumns+` FROM sale_items WHERE sale_id = $1 ORDER BY position`,
		s.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da venda: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanSaleItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		s.Items = append(s.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens da venda: %w", err)
	}
	return s, nil
}

// ReplaceItems implementa sale.Repository.ReplaceItems
func (r *SaleRepository) ReplaceItems(ctx context.Context, s *sale.Sale) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales SET total_amount = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, s.TotalAmount, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrNotFound
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM sale_items WHERE sale_id = $1`, s.ID); err != nil {
		return fmt.Errorf("erro ao remover itens da venda: %w", err)
	}
	return r.insertItems(ctx, s.Items)
}

// UpdateStatus implementa sale.Repository.UpdateStatus
func (r *SaleRepository) UpdateStatus(ctx context.Context, s *sale.Sale) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE sales SET status = $3, cancelled_at = $4, updated_at = $5 WHERE tenant_id = $1 AND id = $2`,
		s.TenantID, s.ID, s.Status, s.CancelledAt, s.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar status da venda: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return sale.ErrNotFound
	}
	return nil
}

// SumActiveByCustomer implementa sale.Repository.SumActiveByCustomer
func (r *SaleRepository) SumActiveByCustomer(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM sales
		WHERE tenant_id = $1 AND customer_id = $2 AND status = $3`,
		tenantID, customerID, sale.StatusActive).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao somar vendas: %w", err)
	}
	return total, nil
}

// ListActiveByCustomer implementa sale.Repository.ListActiveByCustomer
func (r *SaleRepository) ListActiveByCustomer(ctx context.Context, tenantID, customerID string) ([]*sale.Sale, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+saleColumns+` FROM sales
		WHERE tenant_id = $1 AND customer_id = $2 AND status = $3
		ORDER BY sale_date, created_at`,
		tenantID, customerID, sale.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar vendas: %w", err)
	}

	var sales []*sale.Sale
	byID := map[string]*sale.Sale{}
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("erro ao ler venda: %w", err)
		}
		sales = append(sales, s)
		byID[s.ID] = s
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar vendas: %w", err)
	}
	if len(sales) == 0 {
		return sales, nil
	}

	itemRows, err := r.db.Query(ctx,
		`SELECT i.id, i.sale_id, i.position, i.product_id, i.product_name, i.quantity,
			i.unit_price, i.list_unit_price, i.applied_discount_rate, i.line_total
		FROM sale_items i
		JOIN sales s ON s.id = i.sale_id
		WHERE s.tenant_id = $1 AND s.customer_id = $2 AND s.status = $3
		ORDER BY i.sale_id, i.position`,
		tenantID, customerID, sale.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens das vendas: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		it, err := scanSaleItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item da venda: %w", err)
		}
		if s, ok := byID[it.SaleID]; ok {
			s.Items = append(s.Items, it)
		}
	}
	return sales, itemRows.Err()
}

func (r *SaleRepository) insertItems(ctx context.Context, items []sale.Item) error {
	for _, it := range items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO sale_items (`+saleItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, it.SaleID, it.Position, it.ProductID, it.ProductName, it.Quantity,
			it.UnitPrice, it.ListUnitPrice, it.AppliedDiscountRate, it.LineTotal)
		if err != nil {
			return fmt.Errorf("erro ao gravar item da venda: %w", err)
		}
	}
	return nil
}

func scanSale(row pgx.Row) (*sale.Sale, error) {
	var s sale.Sale
	err := row.Scan(
		&s.ID, &s.TenantID, &s.CustomerID, &s.Date, &s.TotalAmount, &s.SegmentAtTime,
		&s.DiscountRateAtTime, &s.Status, &s.CancelledAt, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanSaleItem(row pgx.Row) (sale.Item, error) {
	var it sale.Item
	err := row.Scan(
		&it.ID, &it.SaleID, &it.Position, &it.ProductID, &it.ProductName, &it.Quantity,
		&it.UnitPrice, &it.ListUnitPrice, &it.AppliedDiscountRate, &it.LineTotal)
	return it, err
}
