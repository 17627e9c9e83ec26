// Package salesreturn modela devoluções: créditos financeiros ao cliente que
// não movimentam estoque.
package salesreturn

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound          = apperror.New(apperror.ErrNotFound, "devolução não encontrada")
	ErrEmptyItems        = apperror.New(apperror.ErrInvalidInput, "a devolução precisa de ao menos um item")
	ErrInvalidQuantity   = apperror.New(apperror.ErrInvalidInput, "quantidade deve ser maior que zero")
	ErrEmptyProductName  = apperror.New(apperror.ErrInvalidInput, "nome do produto não pode ser vazio")
	ErrNegativeUnitPrice = apperror.New(apperror.ErrInvalidInput, "preço unitário não pode ser negativo")
)

// Item representa uma linha da devolução
type Item struct {
	ID          string          `json:"id"`
	ReturnID    string          `json:"return_id"`
	Position    int             `json:"position"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// NewItem cria uma linha calculando o total da linha
func NewItem(productName string, quantity int, unitPrice decimal.Decimal) (Item, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return Item{}, ErrEmptyProductName
	}
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return Item{}, ErrNegativeUnitPrice
	}
	if !shared.IsMoney(unitPrice) {
		return Item{}, shared.ErrMoneyPrecision
	}

	return Item{
		ID:          uuid.New().String(),
		ProductName: productName,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		LineTotal:   unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// Return representa uma devolução
type Return struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	CustomerID  string          `json:"customer_id"`
	Date        time.Time       `json:"date"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Note        string          `json:"note"`
	Items       []Item          `json:"items"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// NewReturn cria uma devolução sem itens
func NewReturn(tenantID, customerID string, date time.Time, note string) *Return {
	now := time.Now()
	return &Return{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CustomerID:  customerID,
		Date:        shared.DateOf(date),
		TotalAmount: decimal.Zero,
		Note:        strings.TrimSpace(note),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// SetItems substitui todas as linhas e recalcula o total
func (r *Return) SetItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}

	replaced := make([]Item, len(items))
	total := decimal.Zero
	for i, it := range items {
		it.ReturnID = r.ID
		it.Position = i + 1
		replaced[i] = it
		total = total.Add(it.LineTotal)
	}

	r.Items = replaced
	r.TotalAmount = total
	r.UpdatedAt = time.Now()
	return nil
}
