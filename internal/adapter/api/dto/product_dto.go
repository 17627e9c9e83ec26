package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/shopspring/decimal"
)

// ProductRequest representa a requisição de criação de produto
type ProductRequest struct {
	Name         string           `json:"name" binding:"required,max=255"`
	Price        decimal.Decimal  `json:"price" binding:"gte=0,money"`
	Cost         *decimal.Decimal `json:"cost" binding:"omitempty,gte=0,money"`
	InitialStock int              `json:"initial_stock" binding:"gte=0"`
}

// RestockRequest representa uma entrada de estoque
type RestockRequest struct {
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
	Reference string `json:"reference" binding:"max=64"`
}

// ProductResponse representa a resposta de produto
type ProductResponse struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Price     decimal.Decimal  `json:"price"`
	Cost      *decimal.Decimal `json:"cost,omitempty"`
	Stock     int              `json:"stock"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// ToProductResponse converte um produto para a resposta da API
func ToProductResponse(p *product.Product) ProductResponse {
	resp := ProductResponse{
		ID:        p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Stock:     p.Stock,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
	if p.Cost.Valid {
		cost := p.Cost.Decimal
		resp.Cost = &cost
	}
	return resp
}

// ToProductListResponse converte uma página de produtos
func ToProductListResponse(list []*product.Product, p Pagination) ListResponse[ProductResponse] {
	items := make([]ProductResponse, 0, len(list))
	for _, prod := range list {
		items = append(items, ToProductResponse(prod))
	}
	return ListResponse[ProductResponse]{Items: items, Page: p.Page, PageSize: p.PageSize}
}

// MovementResponse representa uma movimentação de estoque
type MovementResponse struct {
	ID          string    `json:"id"`
	Delta       int       `json:"delta"`
	Reason      string    `json:"reason"`
	ReferenceID string    `json:"reference_id,omitempty"`
	StockAfter  int       `json:"stock_after"`
	CreatedAt   time.Time `json:"created_at"`
}

// ToMovementResponses converte movimentações de estoque
func ToMovementResponses(list []*product.Movement) []MovementResponse {
	out := make([]MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, MovementResponse{
			ID:          m.ID,
			Delta:       m.Delta,
			Reason:      string(m.Reason),
			ReferenceID: m.ReferenceID,
			StockAfter:  m.StockAfter,
			CreatedAt:   m.CreatedAt,
		})
	}
	return out
}
