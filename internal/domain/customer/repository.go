package customer

import (
	"context"
)

// Repository define a interface para operações de repositório de clientes.
// Toda consulta é filtrada pelo tenant informado.
type Repository interface {
	// Create cria um novo cliente
	Create(ctx context.Context, c *Customer) error

	// FindByID busca um cliente do tenant pelo ID
	FindByID(ctx context.Context, tenantID, id string) (*Customer, error)

	// List lista os clientes de um tenant com paginação
	List(ctx context.Context, tenantID string, limit, offset int) ([]*Customer, error)

	// Update atualiza os dados de um cliente existente
	Update(ctx context.Context, c *Customer) error
}
