package repository

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/jackc/pgx/v5"
)

const customerColumns = `id, tenant_id, name, phone, address, tax_number, risk_limit,
	segment, segment_updated_at, active, created_at, updated_at`

// CustomerRepository implementa a interface customer.Repository
type CustomerRepository struct {
	db querier
}

// Create implementa customer.Repository.Create
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO customers (`+customerColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		c.ID, c.TenantID, c.Name, c.Phone, c.Address, c.TaxNumber, c.RiskLimit,
		c.Segment, c.SegmentUpdatedAt, c.Active, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return customer.ErrDuplicateTaxNumber
		}
		return fmt.Errorf("erro ao criar cliente: %w", err)
	}
	return nil
}

// FindByID implementa customer.Repository.FindByID
func (r *CustomerRepository) FindByID(ctx context.Context, tenantID, id string) (*customer.Customer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+customerColumns+` FROM customers WHERE tenant_id = $1 AND id = $2`,
		tenantID, id)

	c, err := scanCustomer(row)
	if err != nil {
		if isNotFound(err) {
			return nil, customer.ErrNotFound
		}
		return nil, fmt.Errorf("erro ao buscar cliente: %w", err)
	}
	return c, nil
}

// List implementa customer.Repository.List
func (r *CustomerRepository) List(ctx context.Context, tenantID string, limit, offset int) ([]*customer.Customer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+customerColumns+` FROM customers
		WHERE tenant_id = $1
		ORDER BY name, id
		LIMIT $2 OFFSET $3`,
		tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("erro ao listar clientes: %w", err)
	}
	defer rows.Close()

	var customers []*customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("erro ao ler cliente: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erro ao iterar clientes: %w", err)
	}
	return customers, nil
}

// Update implementa customer.Repository.Update
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE customers SET
			name = $3, phone = $4, address = $5, tax_number = $6, risk_limit = $7,
			segment = $8, segment_updated_at = $9, active = $10, updated_at = $11
		WHERE tenant_id = $1 AND id = $2`,
		c.TenantID, c.ID, c.Name, c.Phone, c.Address, c.TaxNumber, c.RiskLimit,
		c.Segment, c.SegmentUpdatedAt, c.Active, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return customer.ErrDuplicateTaxNumber
		}
		return fmt.Errorf("erro ao atualizar cliente: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (*customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &c.Phone, &c.Address, &c.TaxNumber, &c.RiskLimit,
		&c.Segment, &c.SegmentUpdatedAt, &c.Active, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}
