package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

const returnColumns = `id, tenant_id, customer_id, return_date, total_amount, note, created_at, updated_at`

const returnItemColumns = `id, return_id, position, product_name, quantity, unit_price, line_total`

// ReturnRepository implementa a interface salesreturn.Repository
type ReturnRepository struct {
	db querier
}

// Create implementa salesreturn.Repository.Create
func (r *ReturnRepository) Create(ctx context.Context, ret *salesreturn.Return) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO returns (`+returnColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ret.ID, ret.TenantID, ret.CustomerID, ret.Date, ret.TotalAmount, ret.Note, ret.CreatedAt, ret.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao criar devolução: %w", err)
	}
	return r.insertItems(ctx, ret.Items)
}

// FindByID implementa salesreturn.Repository.FindByID
func (r *ReturnRepository) FindByID(ctx context.Context, tenantID, id string) (*salesreturn.Return, error) {
	return r.findOne(ctx,
		`SELECT `+returnColumns+` FROM returns WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)
}

// FindByIDForUpdate implementa salesreturn.Repository.FindByIDForUpdate
func (r *ReturnRepository) FindByIDForUpdate(ctx context.Context, tenantID, id string) (*salesreturn.Return, error) {
	return r.findOne(ctx,
		`SELECT `+returnColumns+` FROM returns WHERE tenant_id = $1 AND id = $2 FOR UPDATE`,
		tenantID, id)
}

func (r *ReturnRepository) findOne(ctx context.Context, query, tenantID, id string) (*salesreturn.Return, error) {
	ret, err := scanReturn(r.db.QueryRow(ctx, query, tenantID, id))
	if err != nil {
		if isNotFound(err) {
			return nil, salesreturn.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar devolução: %w", err)
	}

	rows, err := r.db.Query(ctx,
		`SELECT `+returnItemColumns+` FROM return_items WHERE return_id = $1 ORDER BY position`,
		ret.ID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar itens da devolução: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		it, err := scanReturnItem(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item da devolução: %w", err)
		}
		ret.Items = append(ret.Items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar itens da devolução: %w", err)
	}
	return ret, nil
}

// ReplaceItems implementa salesreturn.Repository.ReplaceItems
func (r *ReturnRepository) ReplaceItems(ctx context.Context, ret *salesreturn.Return) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE returns SET total_amount = $3, updated_at = $4 WHERE tenant_id = $1 AND id = $2`,
		ret.TenantID, ret.ID, ret.TotalAmount, ret.UpdatedAt)
	if err != nil {
		return fmt.Errorf("erro ao atualizar devolução: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salesreturn.ErrNotFound
	}

	if _, err := r.db.Exec(ctx, `DELETE FROM return_items WHERE return_id = $1`, ret.ID); err != nil {
		return fmt.Errorf("erro ao remover itens da devolução: %w", err)
	}
	return r.insertItems(ctx, ret.Items)
}

// Delete implementa salesreturn.Repository.Delete; as linhas são removidas em cascata
func (r *ReturnRepository) Delete(ctx context.Context, tenantID, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM returns WHERE tenant_id = $1 AND id = $2`, tenantID, id)
	if err != nil {
		return fmt.Errorf("erro ao remover devolução: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return salesreturn.ErrNotFound
	}
	return nil
}

// SumByCustomer implementa salesreturn.Repository.SumByCustomer
func (r *ReturnRepository) SumByCustomer(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.db.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM returns WHERE tenant_id = $1 AND customer_id = $2`,
		tenantID, customerID).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("erro ao somar devoluções: %w", err)
	}
	return total, nil
}

// ListByCustomer implementa salesreturn.Repository.ListByCustomer
func (r *ReturnRepository) ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*salesreturn.Return, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+returnColumns+` FROM returns
		WHERE tenant_id = $1 AND customer_id = $2
		ORDER BY return_date, created_at`,
		tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar devoluções: %w", err)
	}

	var returns []*salesreturn.Return
	byID := map[string]*salesreturn.Return{}
	for rows.Next() {
		ret, err := scanReturn(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("erro ao ler devolução: %w", err)
		}
		returns = append(returns, ret)
		byID[ret.ID] = ret
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar devoluções: %w", err)
	}
	if len(returns) == 0 {
		return returns, nil
	}

	itemRows, err := r.db.Query(ctx,
		`SELECT i.id, i.return_id, i.position, i.product_name, i.quantity, i.unit_price, i.line_total
		FROM return_items i
		JOIN returns r ON r.id = i.return_id
		WHERE r.tenant_id = $1 AND r.customer_id = $2
		ORDER BY i.return_id, i.position`,
		tenantID, customerID)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar itens das devoluções: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		it, err := scanReturnItem(itemRows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler item da devolução: %w", err)
		}
		if ret, ok := byID[it.ReturnID]; ok {
			ret.Items = append(ret.Items, it)
		}
	}
	return returns, itemRows.Err()
}

func (r *ReturnRepository) insertItems(ctx context.Context, items []salesreturn.Item) error {
	for _, it := range items {
		_, err := r.db.Exec(ctx,
			`INSERT INTO return_items (`+returnItemColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7)`,
			it.ID, it.ReturnID, it.Position, it.ProductName, it.Quantity, it.UnitPrice, it.LineTotal)
		if err != nil {
			return fmt.Errorf("erro ao gravar item da devolução: %w", err)
		}
	}
	return nil
}

func scanReturn(row pgx.Row) (*salesreturn.Return, error) {
	var ret salesreturn.Return
	err := row.Scan(&ret.ID, &ret.TenantID, &ret.CustomerID, &ret.Date, &ret.TotalAmount, &ret.Note, &ret.CreatedAt, &ret.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &ret, nil
}

func scanReturnItem(row pgx.Row) (salesreturn.Item, error) {
	var it salesreturn.Item
	err := row.Scan(&it.ID, &it.ReturnID, &it.Position, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.LineTotal)
	return it, err
}
