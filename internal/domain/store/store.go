// Package store define o contrato transacional que o núcleo exige da camada de persistência.
package store

import (
	"context"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
)

// Repositories agrupa os repositórios ligados a uma mesma transação
type Repositories interface {
	Customers() customer.Repository
	Products() product.Repository
	Sales() sale.Repository
	Returns() salesreturn.Repository
	Collections() collection.Repository
}

// TxManager executa fn dentro de uma transação atômica: se fn retornar erro,
// nenhuma escrita feita pelos repositórios recebidos é persistida.
type TxManager interface {
	Transaction(ctx context.Context, fn func(ctx context.Context, repos Repositories) error) error
}
