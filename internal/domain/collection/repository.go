package collection

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de recebimentos.
// Recebimentos são imutáveis: só podem ser criados ou removidos.
type Repository interface {
	// Create grava um recebimento
	Create(ctx context.Context, c *Collection) error

	// FindByID busca um recebimento do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Collection, error)

	// Delete remove um recebimento
	Delete(ctx context.Context, tenantID, id string) error

	// SumByCustomer soma o valor líquido dos recebimentos do cliente
	SumByCustomer(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error)

	// ListByCustomer lista todos os recebimentos do cliente
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*Collection, error)
}
