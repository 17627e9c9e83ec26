package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/shopspring/decimal"
)

// SaleItemRequest representa uma linha de venda. Com product_id o preço é
// calculado pelo servidor; sem ele, product_name e unit_price são obrigatórios.
type SaleItemRequest struct {
	ProductID   string           `json:"product_id" binding:"omitempty,uuid"`
	ProductName string           `json:"product_name" binding:"required_without=ProductID,max=255"`
	Quantity    int              `json:"quantity" binding:"required,gt=0"`
	UnitPrice   *decimal.Decimal `json:"unit_price" binding:"omitempty,gte=0,money"`
}

// SaleRequest representa a requisição de criação de venda
type SaleRequest struct {
	CustomerID string            `json:"customer_id" binding:"required,uuid"`
	Date       string            `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Segment    string            `json:"segment" binding:"omitempty,oneof=bronze silver gold"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateSaleRequest representa a substituição das linhas de uma venda
type UpdateSaleRequest struct {
	Items []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// QuoteRequest representa o pedido de orçamento de uma venda em composição
type QuoteRequest struct {
	CustomerID string            `json:"customer_id" binding:"omitempty,uuid"`
	Segment    string            `json:"segment" binding:"omitempty,oneof=bronze silver gold"`
	Items      []SaleItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToItemInputs converte as linhas da requisição
func ToItemInputs(items []SaleItemRequest) []sales.ItemInput {
	out := make([]sales.ItemInput, 0, len(items))
	for _, it := range items {
		in := sales.ItemInput{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
		}
		if it.UnitPrice != nil {
			in.UnitPrice = decimal.NewNullDecimal(*it.UnitPrice)
		}
		out = append(out, in)
	}
	return out
}

// ToSaleInput converte a requisição de venda; a data já foi validada pelo binding
func (r SaleRequest) ToSaleInput() (sales.SaleInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return sales.SaleInput{}, err
	}
	return sales.SaleInput{
		CustomerID: r.CustomerID,
		Date:       date,
		Segment:    customer.Segment(r.Segment),
		Items:      ToItemInputs(r.Items),
	}, nil
}

// SaleItemResponse representa uma linha de venda
type SaleItemResponse struct {
	Position            int             `json:"position"`
	ProductID           *string         `json:"product_id"`
	ProductName         string          `json:"product_name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	ListUnitPrice       decimal.Decimal `json:"list_unit_price"`
	AppliedDiscountRate decimal.Decimal `json:"applied_discount_rate"`
	LineTotal           decimal.Decimal `json:"line_total"`
}

// SaleResponse representa a resposta de venda
type SaleResponse struct {
	ID                 string             `json:"id"`
	CustomerID         string             `json:"customer_id"`
	Date               string             `json:"date"`
	Status             string             `json:"status"`
	SegmentAtTime      string             `json:"segment_at_time"`
	DiscountRateAtTime decimal.Decimal    `json:"discount_rate_at_time"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	Items              []SaleItemResponse `json:"items"`
	CancelledAt        *time.Time         `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// ToSaleResponse converte uma venda para a resposta da API
func ToSaleResponse(s *sale.Sale) SaleResponse {
	items := make([]SaleItemResponse, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, SaleItemResponse{
			Position:            it.Position,
			ProductID:           it.ProductID,
			ProductName:         it.ProductName,
			Quantity:            it.Quantity,
			UnitPrice:           it.UnitPrice,
			ListUnitPrice:       it.ListUnitPrice,
			AppliedDiscountRate: it.AppliedDiscountRate,
			LineTotal:           it.LineTotal,
		})
	}
	return SaleResponse{
		ID:                 s.ID,
		CustomerID:         s.CustomerID,
		Date:               s.Date.Format(DateLayout),
		Status:             string(s.Status),
		SegmentAtTime:      string(s.SegmentAtTime),
		DiscountRateAtTime: s.DiscountRateAtTime,
		TotalAmount:        s.TotalAmount,
		Items:              items,
		CancelledAt:        s.CancelledAt,
		CreatedAt:          s.CreatedAt,
		UpdatedAt:          s.UpdatedAt,
	}
}
