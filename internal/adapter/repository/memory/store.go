// Package memory implementa a persistência em memória. Cada transação trabalha
// sobre uma cópia do estado, que substitui o estado atual apenas quando a
// função da transação termina sem erro. Transações são serializadas por um
// mutex e não podem ser aninhadas.
package memory

import (
	"context"
	"sync"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
)

type state struct {
	tenants     map[string]tenant.Tenant
	customers   map[string]customer.Customer
	products    map[string]product.Product
	movements   []product.Movement
	sales       map[string]sale.Sale
	returns     map[string]salesreturn.Return
	collections map[string]collection.Collection
}

func newState() *state {
	return &state{
		tenants:     map[string]tenant.Tenant{},
		customers:   map[string]customer.Customer{},
		products:    map[string]product.Product{},
		sales:       map[string]sale.Sale{},
		returns:     map[string]salesreturn.Return{},
		collections: map[string]collection.Collection{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.tenants {
		c.tenants[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	c.movements = append([]product.Movement(nil), s.movements...)
	for k, v := range s.sales {
		v.Items = append([]sale.Item(nil), v.Items...)
		c.sales[k] = v
	}
	for k, v := range s.returns {
		v.Items = append([]salesreturn.Item(nil), v.Items...)
		c.returns[k] = v
	}
	for k, v := range s.collections {
		c.collections[k] = v
	}
	return c
}

// Store é o armazenamento em memória
type Store struct {
	mu    sync.Mutex
	state *state
}

// NewStore cria um armazenamento vazio
func NewStore() *Store {
	return &Store{state: newState()}
}

// Transaction implementa store.TxManager
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.state.clone()
	if err := fn(ctx, &repositories{state: work}); err != nil {
		return err
	}

	s.state = work
	return nil
}

// Tenants retorna o repositório de tenants, fora de transação
func (s *Store) Tenants() tenant.Repository {
	return &tenantRepository{store: s}
}

type repositories struct {
	state *state
}

func (r *repositories) Customers() customer.Repository {
	return &customerRepository{state: r.state}
}

func (r *repositories) Products() product.Repository {
	return &productRepository{state: r.state}
}

func (r *repositories) Sales() sale.Repository {
	return &saleRepository{state: r.state}
}

func (r *repositories) Returns() salesreturn.Repository {
	return &returnRepository{state: r.state}
}

func (r *repositories) Collections() collection.Repository {
	return &collectionRepository{state: r.state}
}
