// Package products mantém o cadastro de produtos. O estoque só muda pelo
// pacote stock.
package products

import (
	"context"

	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
)

// Input contém os dados de um novo produto
type Input struct {
	Name         string
	Price        decimal.Decimal
	Cost         decimal.NullDecimal
	InitialStock int
}

// Service é o serviço de cadastro de produtos
type Service struct {
	tx     store.TxManager
	logger logger.Logger
}

// NewService cria uma nova instância de Service
func NewService(tx store.TxManager, log logger.Logger) *Service {
	return &Service{tx: tx, logger: log}
}

// Create cadastra um produto com estoque inicial
func (s *Service) Create(ctx context.Context, tenantID string, in Input) (*product.Product, error) {
	p, err := product.NewProduct(tenantID, in.Name, in.Price, in.Cost, in.InitialStock)
	if err != nil {
		return nil, err
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Products().Create(ctx, p)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("produto criado", "tenant_id", tenantID, "product_id", p.ID, "stock", p.Stock)
	return p, nil
}

// Get busca um produto
func (s *Service) Get(ctx context.Context, tenantID, id string) (*product.Product, error) {
	var p *product.Product
	err := s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		p, err = repos.Products().FindByID(ctx, tenantID, id)
		return err
	})
	return p, err
}

// List lista os produtos do tenant
func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]*product.Product, error) {
	var list []*product.Product
	err := s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		list, err = repos.Products().List(ctx, tenantID, limit, offset)
		return err
	})
	return list, err
}
