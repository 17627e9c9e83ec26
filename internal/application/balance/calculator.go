// Package balance deriva o saldo do cliente a partir das vendas ativas,
// recebimentos e devoluções, e monta o extrato com saldo corrente.
package balance

import (
	"context"
	"fmt"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/risk"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/shopspring/decimal"
)

// Calculator calcula saldos e extratos; nada é armazenado em cache
type Calculator struct {
	tx store.TxManager
}

// NewCalculator cria uma nova instância de Calculator
func NewCalculator(tx store.TxManager) *Calculator {
	return &Calculator{tx: tx}
}

// Totals são as somas que compõem o saldo
type Totals struct {
	Sales       decimal.Decimal `json:"sales"`
	Collections decimal.Decimal `json:"collections"`
	Returns     decimal.Decimal `json:"returns"`
}

// Balance retorna vendas menos recebimentos e devoluções
func (t Totals) Balance() decimal.Decimal {
	return t.Sales.Sub(t.Collections).Sub(t.Returns)
}

// Summary reúne saldo e classificação de risco de um cliente
type Summary struct {
	CustomerID string          `json:"customer_id"`
	Totals     Totals          `json:"totals"`
	Balance    decimal.Decimal `json:"balance"`
	Risk       risk.Assessment `json:"risk"`
}

// Balance calcula o saldo do cliente por somas agregadas sobre todos os seus lançamentos
func (c *Calculator) Balance(ctx context.Context, tenantID, customerID string) (decimal.Decimal, error) {
	var totals Totals
	err := c.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := repos.Customers().FindByID(ctx, tenantID, customerID); err != nil {
			return err
		}
		var err error
		totals, err = sumTotals(ctx, repos, tenantID, customerID)
		return err
	})
	if err != nil {
		return decimal.Zero, err
	}
	return totals.Balance(), nil
}

// Summary calcula saldo e risco do cliente; o risco é sempre avaliado na hora
func (c *Calculator) Summary(ctx context.Context, tenantID, customerID string) (*Summary, error) {
	var (
		cust   *customer.Customer
		totals Totals
	)
	err := c.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		cust, err = repos.Customers().FindByID(ctx, tenantID, customerID)
		if err != nil {
			return err
		}
		totals, err = sumTotals(ctx, repos, tenantID, customerID)
		return err
	})
	if err != nil {
		return nil, err
	}

	balance := totals.Balance()
	return &Summary{
		CustomerID: cust.ID,
		Totals:     totals,
		Balance:    balance,
		Risk:       risk.Evaluate(balance, cust.RiskLimit),
	}, nil
}

// Ledger monta o extrato completo do cliente
func (c *Calculator) Ledger(ctx context.Context, tenantID, customerID string, order Order) ([]Entry, error) {
	var (
		sales       []*sale.Sale
		collections []*collection.Collection
		returns     []*salesreturn.Return
	)
	err := c.tx.Transaction(ctx, func(ctx context.Context, repos store.Repositories) error {
		if _, err := repos.Customers().FindByID(ctx, tenantID, customerID); err != nil {
			return err
		}

		var err error
		if sales, err = repos.Sales().ListActiveByCustomer(ctx, tenantID, customerID); err != nil {
			return fmt.Errorf("erro ao listar vendas: %w", err)
		}
		if collections, err = repos.Collections().ListByCustomer(ctx, tenantID, customerID); err != nil {
			return fmt.Errorf("erro ao listar recebimentos: %w", err)
		}
		if returns, err = repos.Returns().ListByCustomer(ctx, tenantID, customerID); err != nil {
			return fmt.Errorf("erro ao listar devoluções: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return BuildLedger(sales, collections, returns, order), nil
}

func sumTotals(ctx context.Context, repos store.Repositories, tenantID, customerID string) (Totals, error) {
	var (
		t   Totals
		err error
	)
	if t.Sales, err = repos.Sales().SumActiveByCustomer(ctx, tenantID, customerID); err != nil {
		return t, fmt.Errorf("erro ao somar vendas: %w", err)
	}
	if t.Collections, err = repos.Collections().SumByCustomer(ctx, tenantID, customerID); err != nil {
		return t, fmt.Errorf("erro ao somar recebimentos: %w", err)
	}
	if t.Returns, err = repos.Returns().SumByCustomer(ctx, tenantID, customerID); err != nil {
		return t, fmt.Errorf("erro ao somar devoluções: %w", err)
	}
	return t, nil
}
