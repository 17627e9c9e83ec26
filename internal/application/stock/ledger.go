// Package stock mantém o estoque disponível de cada produto aplicando deltas
// dentro da transação da operação que os originou.
package stock

import (
	"context"
	"fmt"
	"sort"

	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// ErrEmptyProductID ocorre quando um ajuste é solicitado sem produto
var ErrEmptyProductID = apperror.New(apperror.ErrInvalidInput, "produto não informado")

// Ledger aplica ajustes de estoque
type Ledger struct {
	tx     store.TxManager
	logger logger.Logger
}

// NewLedger cria uma nova instância de Ledger
func NewLedger(tx store.TxManager, log logger.Logger) *Ledger {
	return &Ledger{tx: tx, logger: log}
}

// Adjust aplica delta ao estoque do produto usando os repositórios da transação
// em curso. O produto é relido com bloqueio, então a verificação usa o estoque
// atual e não um valor em memória. Baixas maiores que o disponível falham com
// *product.InsufficientStockError; entradas não têm limite.
func (l *Ledger) Adjust(
	ctx context.Context,
	repos store.Repositories,
	tenantID string,
	productID string,
	delta int,
	reason product.MovementReason,
	referenceID string,
) (*product.Product, error) {
	if productID == "" {
		return nil, ErrEmptyProductID
	}

	p, err := repos.Products().FindByIDForUpdate(ctx, tenantID, productID)
	if err != nil {
		return nil, fmt.Errorf("erro ao buscar produto %s: %w", productID, err)
	}

	if delta == 0 {
		return p, nil
	}

	if delta < 0 && p.Stock < -delta {
		return nil, &product.InsufficientStockError{
			ProductID:   p.ID,
			ProductName: p.Name,
			Requested:   -delta,
			Available:   p.Stock,
		}
	}

	p.Stock += delta
	if err := repos.Products().UpdateStock(ctx, tenantID, p.ID, p.Stock); err != nil {
		return nil, fmt.Errorf("erro ao atualizar estoque: %w", err)
	}

	if err := repos.Products().AddMovement(ctx, product.NewMovement(tenantID, p.ID, delta, reason, referenceID, p.Stock)); err != nil {
		return nil, fmt.Errorf("erro ao registrar movimentação: %w", err)
	}

	return p, nil
}

// Lock bloqueia os produtos informados, sem repetição e em ordem crescente de
// ID, de modo que transações concorrentes adquiram as linhas sempre na mesma
// ordem. Chamadas posteriores a Adjust na mesma transação reutilizam o bloqueio.
func (l *Ledger) Lock(ctx context.Context, repos store.Repositories, tenantID string, productIDs ...string) error {
	seen := make(map[string]struct{}, len(productIDs))
	ids := make([]string, 0, len(productIDs))
	for _, id := range productIDs {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		if _, err := repos.Products().FindByIDForUpdate(ctx, tenantID, id); err != nil {
			return fmt.Errorf("erro ao buscar produto %s: %w", id, err)
		}
	}
	return nil
}

// Restock dá entrada de quantity unidades no produto em uma transação própria
func (l *Ledger) Restock(ctx context.Context, tenantID, productID string, quantity int, referenceID string) (*product.Product, error) {
	if quantity <= 0 {
		return nil, product.ErrInvalidQuantity
	}

	var restocked *product.Product
	err := l.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		p, err := l.Adjust(ctx, repos, tenantID, productID, quantity, product.ReasonRestock, referenceID)
		if err != nil {
			return err
		}
		restocked = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	l.logger.Info("entrada de estoque registrada", "tenant_id", tenantID, "product_id", productID, "quantity", quantity, "stock", restocked.Stock)
	return restocked, nil
}

// Movements lista as movimentações mais recentes do produto
func (l *Ledger) Movements(ctx context.Context, tenantID, productID string, limit int) ([]*product.Movement, error) {
	if limit <= 0 {
		limit = 50
	}

	var movements []*product.Movement
	err := l.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := repos.Products().FindByID(ctx, tenantID, productID); err != nil {
			return err
		}
		var err error
		movements, err = repos.Products().ListMovements(ctx, tenantID, productID, limit)
		return err
	})
	return movements, err
}
