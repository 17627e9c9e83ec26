// Package pricing calcula o preço unitário de uma linha de venda a partir do
// preço de tabela, do desconto do segmento do cliente e do custo do produto.
package pricing

import (
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// MoneyPlaces é o número de casas decimais dos valores monetários
const MoneyPlaces = shared.MoneyPlaces

var (
	ErrInvalidDiscountRate = apperror.New(apperror.ErrInvalidInput, "taxa de desconto deve estar entre 0 e 1")
	ErrNegativeListPrice   = apperror.New(apperror.ErrInvalidInput, "preço de tabela não pode ser negativo")
)

var segmentRates = map[customer.Segment]decimal.Decimal{
	customer.SegmentBronze: decimal.Zero,
	customer.SegmentSilver: decimal.RequireFromString("0.05"),
	customer.SegmentGold:   decimal.RequireFromString("0.10"),
}

// DiscountRate retorna a taxa de desconto fixa do segmento
func DiscountRate(segment customer.Segment) (decimal.Decimal, error) {
	rate, ok := segmentRates[segment]
	if !ok {
		return decimal.Zero, customer.ErrInvalidSegment
	}
	return rate, nil
}

// Quote é o resultado do cálculo de preço de uma linha
type Quote struct {
	UnitPrice           decimal.Decimal `json:"unit_price"`
	ListUnitPrice       decimal.Decimal `json:"list_unit_price"`
	AppliedDiscountRate decimal.Decimal `json:"applied_discount_rate"`
	CostFloorApplied    bool            `json:"cost_floor_applied"`
}

// LineTotal retorna quantidade × preço unitário
func (q Quote) LineTotal(quantity int) decimal.Decimal {
	return q.UnitPrice.Mul(decimal.NewFromInt(int64(quantity)))
}

// Engine calcula preços respeitando o piso de custo
type Engine struct{}

// NewEngine cria uma nova instância de Engine
func NewEngine() *Engine {
	return &Engine{}
}

// Price calcula o preço unitário: listPrice * (1 - rate), arredondado em
// centavos, e elevado ao custo quando o custo é positivo e maior que o
// preço com desconto. O preço nunca fica abaixo do custo.
func (e *Engine) Price(listPrice decimal.Decimal, cost decimal.NullDecimal, rate decimal.Decimal) (Quote, error) {
	if listPrice.IsNegative() {
		return Quote{}, ErrNegativeListPrice
	}
	if rate.IsNegative() || rate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return Quote{}, ErrInvalidDiscountRate
	}

	q := Quote{
		ListUnitPrice:       listPrice,
		AppliedDiscountRate: rate,
		UnitPrice:           listPrice.Mul(decimal.NewFromInt(1).Sub(rate)).Round(MoneyPlaces),
	}

	if cost.Valid && cost.Decimal.IsPositive() && q.UnitPrice.LessThan(cost.Decimal) {
		q.UnitPrice = cost.Decimal
		q.CostFloorApplied = true
	}

	return q, nil
}

// PriceForSegment calcula o preço usando a taxa do segmento
func (e *Engine) PriceForSegment(listPrice decimal.Decimal, cost decimal.NullDecimal, segment customer.Segment) (Quote, error) {
	rate, err := DiscountRate(segment)
	if err != nil {
		return Quote{}, err
	}
	return e.Price(listPrice, cost, rate)
}
