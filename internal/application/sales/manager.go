// Package sales orquestra a criação, edição e cancelamento de vendas,
// devoluções e recebimentos, cada operação como uma única transação atômica.
package sales

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/application/stock"
	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/pricing"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
)

// Config contém os parâmetros de negócio do Manager
type Config struct {
	// CardCommissionRate é a comissão descontada de recebimentos em cartão
	CardCommissionRate decimal.Decimal
}

// Manager é o gerenciador de transações de vendas, devoluções e recebimentos
type Manager struct {
	tx      store.TxManager
	ledger  *stock.Ledger
	pricing *pricing.Engine
	config  Config
	logger  logger.Logger
}

// NewManager cria uma nova instância de Manager
func NewManager(tx store.TxManager, ledger *stock.Ledger, engine *pricing.Engine, config Config, log logger.Logger) *Manager {
	return &Manager{
		tx:      tx,
		ledger:  ledger,
		pricing: engine,
		config:  config,
		logger:  log,
	}
}

// CreateSale cria uma venda e baixa o estoque de cada linha com produto.
// Qualquer falha desfaz o cabeçalho, as linhas e todas as baixas já aplicadas.
func (m *Manager) CreateSale(ctx context.Context, tenantID string, in SaleInput) (*sale.Sale, error) {
	if len(in.Items) == 0 {
		return nil, sale.ErrEmptyItems
	}

	var created *sale.Sale
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		c, err := repos.Customers().FindByID(ctx, tenantID, in.CustomerID)
		if err != nil {
			return err
		}
		if !c.Active {
			return customer.ErrInactive
		}

		segment := in.Segment
		if segment == "" {
			segment = c.Segment
		}
		rate, err := pricing.DiscountRate(segment)
		if err != nil {
			return err
		}

		s := sale.NewSale(tenantID, c.ID, in.Date, segment, rate)

		items, err := m.applyItems(ctx, repos, tenantID, s, in.Items)
		if err != nil {
			return err
		}
		if err := s.SetItems(items); err != nil {
			return err
		}

		if err := repos.Sales().Create(ctx, s); err != nil {
			return fmt.Errorf("erro ao gravar venda: %w", err)
		}

		created = s
		return nil
	})
	if err != nil {
		m.logger.Warn("venda não criada", "tenant_id", tenantID, "customer_id", in.CustomerID, "error", err)
		return nil, err
	}

	m.logger.Info("venda criada", "tenant_id", tenantID, "sale_id", created.ID, "total", created.TotalAmount.String())
	return created, nil
}

// UpdateSale substitui todas as linhas da venda. Primeiro o estoque das linhas
// antigas é devolvido, depois as linhas antigas são removidas e só então as
// novas linhas baixam o estoque, de modo que alterar a quantidade de um mesmo
// produto é verificado contra a disponibilidade real.
func (m *Manager) UpdateSale(ctx context.Context, tenantID, saleID string, items []ItemInput) (*sale.Sale, error) {
	if len(items) == 0 {
		return nil, sale.ErrEmptyItems
	}

	var updated *sale.Sale
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		s, err := repos.Sales().FindByIDForUpdate(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if !s.IsActive() {
			return sale.ErrSaleAlreadyCancelled
		}

		// linhas antigas e novas num único passo ordenado
		locked := append(itemProductIDs(s.Items), inputProductIDs(items)...)
		if err := m.ledger.Lock(ctx, repos, tenantID, locked...); err != nil {
			return err
		}

		if err := m.reverseItems(ctx, repos, tenantID, s, product.ReasonSaleReversal); err != nil {
			return err
		}

		newItems, err := m.applyItems(ctx, repos, tenantID, s, items)
		if err != nil {
			return err
		}
		if err := s.SetItems(newItems); err != nil {
			return err
		}

		if err := repos.Sales().ReplaceItems(ctx, s); err != nil {
			return fmt.Errorf("erro ao substituir itens da venda: %w", err)
		}

		updated = s
		return nil
	})
	if err != nil {
		m.logger.Warn("venda não atualizada", "tenant_id", tenantID, "sale_id", saleID, "error", err)
		return nil, err
	}

	m.logger.Info("venda atualizada", "tenant_id", tenantID, "sale_id", saleID, "total", updated.TotalAmount.String())
	return updated, nil
}

// CancelSale cancela a venda e devolve ao estoque todas as linhas com produto.
// A venda e suas linhas continuam gravadas. Cancelar uma venda já cancelada
// retorna sale.ErrSaleAlreadyCancelled.
func (m *Manager) CancelSale(ctx context.Context, tenantID, saleID string) error {
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		s, err := repos.Sales().FindByIDForUpdate(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if err := s.Cancel(); err != nil {
			return err
		}

		if err := m.reverseItems(ctx, repos, tenantID, s, product.ReasonSaleCancel); err != nil {
			return err
		}

		if err := repos.Sales().UpdateStatus(ctx, s); err != nil {
			return fmt.Errorf("erro ao cancelar venda: %w", err)
		}
		return nil
	})
	if err != nil {
		m.logger.Warn("venda não cancelada", "tenant_id", tenantID, "sale_id", saleID, "error", err)
		return err
	}

	m.logger.Info("venda cancelada", "tenant_id", tenantID, "sale_id", saleID)
	return nil
}

// GetSale busca uma venda com suas linhas
func (m *Manager) GetSale(ctx context.Context, tenantID, saleID string) (*sale.Sale, error) {
	var found *sale.Sale
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		found, err = repos.Sales().FindByID(ctx, tenantID, saleID)
		return err
	})
	return found, err
}

// Quote precifica um pedido em composição sem gravar nada. Deve ser chamado
// novamente sempre que o segmento mudar durante a composição.
func (m *Manager) Quote(ctx context.Context, tenantID string, in QuoteInput) (*Quote, error) {
	var q *Quote
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		segment := in.Segment
		if in.CustomerID != "" {
			c, err := repos.Customers().FindByID(ctx, tenantID, in.CustomerID)
			if err != nil {
				return err
			}
			if segment == "" {
				segment = c.Segment
			}
		}
		if segment == "" {
			segment = customer.SegmentBronze
		}

		rate, err := pricing.DiscountRate(segment)
		if err != nil {
			return err
		}

		q = &Quote{Segment: segment, DiscountRate: rate, Total: decimal.Zero}
		for _, item := range in.Items {
			if item.Quantity <= 0 {
				return sale.ErrInvalidQuantity
			}

			line := QuotedLine{ProductName: item.ProductName, Quantity: item.Quantity}
			if item.ProductID != "" {
				p, err := repos.Products().FindByID(ctx, tenantID, item.ProductID)
				if err != nil {
					return fmt.Errorf("erro ao buscar produto %s: %w", item.ProductID, err)
				}
				pq, err := m.pricing.Price(p.Price, p.Cost, rate)
				if err != nil {
					return err
				}
				available := p.Stock
				line.ProductID = p.ID
				line.ProductName = p.Name
				line.UnitPrice = pq.UnitPrice
				line.ListUnitPrice = pq.ListUnitPrice
				line.AppliedDiscountRate = pq.AppliedDiscountRate
				line.CostFloorApplied = pq.CostFloorApplied
				line.Available = &available
			} else {
				if !item.UnitPrice.Valid {
					return sale.ErrMissingUnitPrice
				}
				if item.UnitPrice.Decimal.IsNegative() {
					return sale.ErrNegativeUnitPrice
				}
				line.UnitPrice = item.UnitPrice.Decimal
				line.ListUnitPrice = item.UnitPrice.Decimal
				line.AppliedDiscountRate = decimal.Zero
			}
			line.LineTotal = line.UnitPrice.Mul(decimal.NewFromInt(int64(item.Quantity)))
			q.Lines = append(q.Lines, line)
			q.Total = q.Total.Add(line.LineTotal)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return q, nil
}

// applyItems baixa o estoque e precifica cada linha nova usando a taxa de
// desconto gravada na venda
func (m *Manager) applyItems(ctx context.Context, repos store.Repositories, tenantID string, s *sale.Sale, inputs []ItemInput) ([]sale.Item, error) {
	if err := m.ledger.Lock(ctx, repos, tenantID, inputProductIDs(inputs)...); err != nil {
		return nil, err
	}

	items := make([]sale.Item, 0, len(inputs))
	for _, in := range inputs {
		if in.Quantity <= 0 {
			return nil, sale.ErrInvalidQuantity
		}

		if in.ProductID == "" {
			if !in.UnitPrice.Valid {
				return nil, sale.ErrMissingUnitPrice
			}
			it, err := sale.NewItem(nil, in.ProductName, in.Quantity, in.UnitPrice.Decimal, in.UnitPrice.Decimal, decimal.Zero)
			if err != nil {
				return nil, err
			}
			items = append(items, it)
			continue
		}

		p, err := m.ledger.Adjust(ctx, repos, tenantID, in.ProductID, -in.Quantity, product.ReasonSale, s.ID)
		if err != nil {
			return nil, err
		}

		q, err := m.pricing.Price(p.Price, p.Cost, s.DiscountRateAtTime)
		if err != nil {
			return nil, err
		}

		productID := p.ID
		it, err := sale.NewItem(&productID, p.Name, in.Quantity, q.UnitPrice, q.ListUnitPrice, q.AppliedDiscountRate)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// reverseItems devolve ao estoque as quantidades das linhas atuais da venda
func (m *Manager) reverseItems(ctx context.Context, repos store.Repositories, tenantID string, s *sale.Sale, reason product.MovementReason) error {
	if err := m.ledger.Lock(ctx, repos, tenantID, itemProductIDs(s.Items)...); err != nil {
		return err
	}

	for _, it := range s.Items {
		if !it.TracksStock() {
			continue
		}
		if _, err := m.ledger.Adjust(ctx, repos, tenantID, *it.ProductID, it.Quantity, reason, s.ID); err != nil {
			return err
		}
	}
	return nil
}

func inputProductIDs(inputs []ItemInput) []string {
	ids := make([]string, 0, len(inputs))
	for _, in := range inputs {
		ids = append(ids, in.ProductID)
	}
	return ids
}

func itemProductIDs(items []sale.Item) []string {
	ids := make([]string, 0, len(items))
	for _, it := range items {
		if it.TracksStock() {
			ids = append(ids, *it.ProductID)
		}
	}
	return ids
}

// CreateReturn cria uma devolução. Devoluções são apenas crédito financeiro e
// não movimentam estoque.
func (m *Manager) CreateReturn(ctx context.Context, tenantID string, in ReturnInput) (*salesreturn.Return, error) {
	if len(in.Items) == 0 {
		return nil, salesreturn.ErrEmptyItems
	}

	var created *salesreturn.Return
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		c, err := repos.Customers().FindByID(ctx, tenantID, in.CustomerID)
		if err != nil {
			return err
		}

		r := salesreturn.NewReturn(tenantID, c.ID, in.Date, in.Note)
		items, err := buildReturnItems(in.Items)
		if err != nil {
			return err
		}
		if err := r.SetItems(items); err != nil {
			return err
		}

		if err := repos.Returns().Create(ctx, r); err != nil {
			return fmt.Errorf("erro ao gravar devolução: %w", err)
		}
		created = r
		return nil
	})
	if err != nil {
		m.logger.Warn("devolução não criada", "tenant_id", tenantID, "customer_id", in.CustomerID, "error", err)
		return nil, err
	}

	m.logger.Info("devolução criada", "tenant_id", tenantID, "return_id", created.ID, "total", created.TotalAmount.String())
	return created, nil
}

// UpdateReturn substitui todas as linhas da devolução
func (m *Manager) UpdateReturn(ctx context.Context, tenantID, returnID string, items []ReturnItemInput) (*salesreturn.Return, error) {
	if len(items) == 0 {
		return nil, salesreturn.ErrEmptyItems
	}

	var updated *salesreturn.Return
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		r, err := repos.Returns().FindByIDForUpdate(ctx, tenantID, returnID)
		if err != nil {
			return err
		}

		newItems, err := buildReturnItems(items)
		if err != nil {
			return err
		}
		if err := r.SetItems(newItems); err != nil {
			return err
		}

		if err := repos.Returns().ReplaceItems(ctx, r); err != nil {
			return fmt.Errorf("erro ao substituir itens da devolução: %w", err)
		}
		updated = r
		return nil
	})
	if err != nil {
		m.logger.Warn("devolução não atualizada", "tenant_id", tenantID, "return_id", returnID, "error", err)
		return nil, err
	}

	m.logger.Info("devolução atualizada", "tenant_id", tenantID, "return_id", returnID, "total", updated.TotalAmount.String())
	return updated, nil
}

// DeleteReturn remove a devolução e suas linhas
func (m *Manager) DeleteReturn(ctx context.Context, tenantID, returnID string) error {
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := repos.Returns().FindByIDForUpdate(ctx, tenantID, returnID); err != nil {
			return err
		}
		return repos.Returns().Delete(ctx, tenantID, returnID)
	})
	if err != nil {
		m.logger.Warn("devolução não removida", "tenant_id", tenantID, "return_id", returnID, "error", err)
		return err
	}

	m.logger.Info("devolução removida", "tenant_id", tenantID, "return_id", returnID)
	return nil
}

// GetReturn busca uma devolução com suas linhas
func (m *Manager) GetReturn(ctx context.Context, tenantID, returnID string) (*salesreturn.Return, error) {
	var found *salesreturn.Return
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		found, err = repos.Returns().FindByID(ctx, tenantID, returnID)
		return err
	})
	return found, err
}

func buildReturnItems(inputs []ReturnItemInput) ([]salesreturn.Item, error) {
	items := make([]salesreturn.Item, 0, len(inputs))
	for _, in := range inputs {
		it, err := salesreturn.NewItem(in.ProductName, in.Quantity, in.UnitPrice)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, nil
}

// AddCollection registra um recebimento. O valor gravado é o líquido após a
// comissão de cartão.
func (m *Manager) AddCollection(ctx context.Context, tenantID string, in CollectionInput) (*collection.Collection, error) {
	var created *collection.Collection
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		c, err := repos.Customers().FindByID(ctx, tenantID, in.CustomerID)
		if err != nil {
			return err
		}

		col, err := collection.NewCollection(tenantID, c.ID, in.Method, in.GrossAmount, m.config.CardCommissionRate, in.Note, in.Date)
		if err != nil {
			return err
		}

		if err := repos.Collections().Create(ctx, col); err != nil {
			return fmt.Errorf("erro ao gravar recebimento: %w", err)
		}
		created = col
		return nil
	})
	if err != nil {
		m.logger.Warn("recebimento não registrado", "tenant_id", tenantID, "customer_id", in.CustomerID, "error", err)
		return nil, err
	}

	m.logger.Info("recebimento registrado", "tenant_id", tenantID, "collection_id", created.ID, "amount", created.Amount.String())
	return created, nil
}

// DeleteCollection remove um recebimento
func (m *Manager) DeleteCollection(ctx context.Context, tenantID, collectionID string) error {
	err := m.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := repos.Collections().FindByID(ctx, tenantID, collectionID); err != nil {
			return err
		}
		return repos.Collections().Delete(ctx, tenantID, collectionID)
	})
	if err != nil {
		return err
	}

	m.logger.Info("recebimento removido", "tenant_id", tenantID, "collection_id", collectionID)
	return nil
}
