package sales

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/shopspring/decimal"
)

// ItemInput descreve uma linha de venda pedida pelo chamador.
// Com ProductID, o preço é sempre calculado pelo motor de preços e o nome é
// copiado do produto. Sem ProductID, a linha é de texto livre e exige
// ProductName e UnitPrice.
type ItemInput struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.NullDecimal
}

// SaleInput descreve uma nova venda
type SaleInput struct {
	CustomerID string
	Date       time.Time
	Segment    customer.Segment // vazio usa o segmento atual do cliente
	Items      []ItemInput
}

// ReturnItemInput descreve uma linha de devolução
type ReturnItemInput struct {
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// ReturnInput descreve uma nova devolução
type ReturnInput struct {
	CustomerID string
	Date       time.Time
	Note       string
	Items      []ReturnItemInput
}

// CollectionInput descreve um novo recebimento; GrossAmount é o valor
// informado pelo usuário antes da comissão de cartão
type CollectionInput struct {
	CustomerID  string
	Method      collection.Method
	GrossAmount decimal.Decimal
	Note        string
	Date        time.Time
}

// QuoteInput descreve um pedido em composição a ser precificado
type QuoteInput struct {
	CustomerID string
	Segment    customer.Segment
	Items      []ItemInput
}

// QuotedLine é uma linha precificada de um orçamento
type QuotedLine struct {
	ProductID           string          `json:"product_id,omitempty"`
	ProductName         string          `json:"product_name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	ListUnitPrice       decimal.Decimal `json:"list_unit_price"`
	AppliedDiscountRate decimal.Decimal `json:"applied_discount_rate"`
	CostFloorApplied    bool            `json:"cost_floor_applied"`
	LineTotal           decimal.Decimal `json:"line_total"`
	Available           *int            `json:"available,omitempty"`
}

// Quote é um orçamento sem efeito sobre estoque ou saldo
type Quote struct {
	Segment      customer.Segment `json:"segment"`
	DiscountRate decimal.Decimal  `json:"discount_rate"`
	Lines        []QuotedLine     `json:"lines"`
	Total        decimal.Decimal  `json:"total"`
}
