package salesreturn

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de devoluções
type Repository interface {
	// Create grava o cabeçalho e as linhas da devolução
	Create(ctx context.Context, r *Return) error

	// FindByID busca a devolução com suas linhas
	FindByID(ctx context.Context, tenantID, id string) (*Return, error)

	// FindByIDForUpdate busca a devolução e bloqueia o cabeçalho
	FindByIDForUpdate(ctx context.Context, tenantID, id string) (*Return, error)

	// ReplaceItems remove todas as linhas, grava r.Items e atualiza o total
	ReplaceItems(ctx context.Context, r *Return) error

	// Delete remove a devolução e suas linhas
	Delete(ctx context.Context, tenantID, id string) error

	// SumByCustomer soma o total das devoluções do cliente
	SumByCustomer(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error)

	// ListByCustomer lista todas as devoluções do cliente, com linhas
	ListByCustomer(ctx context.Context, tenantID, customerID string) ([]*Return, error)
}
