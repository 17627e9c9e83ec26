package product

import (
	"context"
)

// Repository define a interface para operações de repositório de produtos.
// Toda consulta é filtrada pelo tenant informado.
type Repository interface {
	// Create cria um novo produto
	Create(ctx context.Context, p *Product) error

	// FindByID busca um produto do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Product, error)

	// FindByIDForUpdate busca o produto e bloqueia a linha até o fim da transação
	FindByIDForUpdate(ctx context.Context, tenantID, id string) (*Product, error)

	// List lista os produtos de um tenant com paginação
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Product, error)

	// UpdateStock grava o novo estoque do produto
	UpdateStock(ctx context.Context, tenantID, id string, stock int) error

	// AddMovement registra uma movimentação de estoque
	AddMovement(ctx context.Context, m *Movement) error

	// ListMovements lista as movimentações de um produto, mais recentes primeiro
	ListMovements(ctx context.Context, tenantID, productID string, limit int) ([]*Movement, error)
}
