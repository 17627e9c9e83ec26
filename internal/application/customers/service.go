// Package customers mantém o cadastro de clientes de cada tenant.
package customers

import (
	"context"

	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
)

// Input contém os dados cadastrais de um cliente
type Input struct {
	Name      string
	Phone     string
	Address   string
	TaxNumber string
	RiskLimit decimal.Decimal
	Segment   customer.Segment // vazio mantém o segmento atual (bronze na criação)
}

// Service é o serviço de cadastro de clientes
type Service struct {
	tx     store.TxManager
	logger logger.Logger
}

// NewService cria uma nova instância de Service
func NewService(tx store.TxManager, log logger.Logger) *Service {
	return &Service{tx: tx, logger: log}
}

// Create cadastra um novo cliente
func (s *Service) Create(ctx context.Context, tenantID string, in Input) (*customer.Customer, error) {
	c, err := customer.NewCustomer(tenantID, in.Name)
	if err != nil {
		return nil, err
	}
	if err := c.Update(in.Name, in.Phone, in.Address, in.TaxNumber, in.RiskLimit); err != nil {
		return nil, err
	}
	if in.Segment != "" {
		if err := c.ChangeSegment(in.Segment); err != nil {
			return nil, err
		}
	}

	err = s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Customers().Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cliente criado", "tenant_id", tenantID, "customer_id", c.ID)
	return c, nil
}

// Get busca um cliente
func (s *Service) Get(ctx context.Context, tenantID, id string) (*customer.Customer, error) {
	var c *customer.Customer
	err := s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		c, err = repos.Customers().FindByID(ctx, tenantID, id)
		return err
	})
	return c, err
}

// List lista os clientes do tenant
func (s *Service) List(ctx context.Context, tenantID string, limit, offset int) ([]*customer.Customer, error) {
	var list []*customer.Customer
	err := s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		list, err = repos.Customers().List(ctx, tenantID, limit, offset)
		return err
	})
	return list, err
}

// Update atualiza os dados cadastrais. O segmento, se informado, é alterado
// junto; vendas já registradas mantêm o segmento da época.
func (s *Service) Update(ctx context.Context, tenantID, id string, in Input) (*customer.Customer, error) {
	return s.modify(ctx, tenantID, id, func(c *customer.Customer) error {
		if err := c.Update(in.Name, in.Phone, in.Address, in.TaxNumber, in.RiskLimit); err != nil {
			return err
		}
		if in.Segment != "" {
			return c.ChangeSegment(in.Segment)
		}
		return nil
	})
}

// ChangeSegment altera apenas o segmento do cliente
func (s *Service) ChangeSegment(ctx context.Context, tenantID, id string, segment customer.Segment) (*customer.Customer, error) {
	return s.modify(ctx, tenantID, id, func(c *customer.Customer) error {
		return c.ChangeSegment(segment)
	})
}

// SetActive ativa ou desativa o cliente. Clientes inativos não recebem novas
// vendas, mas continuam com saldo e extrato.
func (s *Service) SetActive(ctx context.Context, tenantID, id string, active bool) (*customer.Customer, error) {
	return s.modify(ctx, tenantID, id, func(c *customer.Customer) error {
		if active {
			c.Activate()
		} else {
			c.Deactivate()
		}
		return nil
	})
}

func (s *Service) modify(ctx context.Context, tenantID, id string, fn func(c *customer.Customer) error) (*customer.Customer, error) {
	var updated *customer.Customer
	err := s.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		c, err := repos.Customers().FindByID(ctx, tenantID, id)
		if err != nil {
			return err
		}
		if err := fn(c); err != nil {
			return err
		}
		if err := repos.Customers().Update(ctx, c); err != nil {
			return err
		}
		updated = c
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("cliente atualizado", "tenant_id", tenantID, "customer_id", id)
	return updated, nil
}
