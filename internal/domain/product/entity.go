package product

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound        = apperror.New(apperror.ErrNotFound, "produto não encontrado")
	ErrEmptyName       = apperror.New(apperror.ErrInvalidInput, "nome do produto não pode ser vazio")
	ErrNegativePrice   = apperror.New(apperror.ErrInvalidInput, "preço não pode ser negativo")
	ErrNegativeCost    = apperror.New(apperror.ErrInvalidInput, "custo não pode ser negativo")
	ErrNegativeStock   = apperror.New(apperror.ErrInvalidInput, "estoque inicial não pode ser negativo")
	ErrInvalidQuantity = apperror.New(apperror.ErrInvalidInput, "quantidade deve ser maior que zero")
)

// Product representa um produto com estoque controlado
type Product struct {
	ID        string              `json:"id"`
	TenantID  string              `json:"tenant_id"`
	Name      string              `json:"name"`
	Price     decimal.Decimal     `json:"price"` // Preço de tabela atual
	Cost      decimal.NullDecimal `json:"cost"`  // Piso de preço, opcional
	Stock     int                 `json:"stock"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// NewProduct cria um novo produto
func NewProduct(tenantID, name string, price decimal.Decimal, cost decimal.NullDecimal, stock int) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}
	if price.IsNegative() {
		return nil, ErrNegativePrice
	}
	if cost.Valid && cost.Decimal.IsNegative() {
		return nil, ErrNegativeCost
	}
	if !shared.IsMoney(price) || (cost.Valid && !shared.IsMoney(cost.Decimal)) {
		return nil, shared.ErrMoneyPrecision
	}
	if stock < 0 {
		return nil, ErrNegativeStock
	}

	now := time.Now()
	return &Product{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		Price:     price,
		Cost:      cost,
		Stock:     stock,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// InsufficientStockError é retornado quando uma baixa de estoque excede o disponível
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   int
	Available   int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("estoque insuficiente para o produto %q: solicitado %d, disponível %d",
		e.ProductName, e.Requested, e.Available)
}

// Unwrap permite errors.Is(err, apperror.ErrInsufficientStock)
func (e *InsufficientStockError) Unwrap() error {
	return apperror.ErrInsufficientStock
}
