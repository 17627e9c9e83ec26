package sale

import (
	"context"

	"github.com/shopspring/decimal"
)

// Repository define a interface para operações de repositório de vendas.
// Toda consulta é filtrada pelo tenant informado.
type Repository interface {
	// Create grava o cabeçalho e as linhas da venda
	Create(ctx context.Context, s *Sale) error

	// FindByID busca a venda com suas linhas
	FindByID(ctx context.Context, tenantID, id string) (*Sale, error)

	// FindByIDForUpdate busca a venda com suas linhas e bloqueia o cabeçalho
	FindByIDForUpdate(ctx context.Context, tenantID, id string) (*Sale, error)

	// ReplaceItems remove todas as linhas, grava s.Items e atualiza o total
	ReplaceItems(ctx context.Context, s *Sale) error

	// UpdateStatus grava o status da venda
	UpdateStatus(ctx context.Context, s *Sale) error

	// SumActiveByCustomer soma o total das vendas não canceladas do cliente
	SumActiveByCustomer(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error)

	// ListActiveByCustomer lista todas as vendas não canceladas do cliente, com linhas
	ListActiveByCustomer(ctx context.Context, tenantID, customerID string) ([]*Sale, error)
}
