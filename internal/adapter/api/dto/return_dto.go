package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/shopspring/decimal"
)

// ReturnItemRequest representa uma linha de devolução
type ReturnItemRequest struct {
	ProductName string          `json:"product_name" binding:"required,max=255"`
	Quantity    int             `json:"quantity" binding:"required,gt=0"`
	UnitPrice   decimal.Decimal `json:"unit_price" binding:"gte=0,money"`
}

// ReturnRequest representa a requisição de criação de devolução
type ReturnRequest struct {
	CustomerID string              `json:"customer_id" binding:"required,uuid"`
	Date       string              `json:"date" binding:"omitempty,datetime=2006-01-02"`
	Note       string              `json:"note"`
	Items      []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateReturnRequest representa a substituição das linhas de uma devolução
type UpdateReturnRequest struct {
	Items []ReturnItemRequest `json:"items" binding:"required,min=1,dive"`
}

// ToReturnItemInputs converte as linhas da requisição
func ToReturnItemInputs(items []ReturnItemRequest) []sales.ReturnItemInput {
	out := make([]sales.ReturnItemInput, 0, len(items))
	for _, it := range items {
		out = append(out, sales.ReturnItemInput{
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return out
}

// ToReturnInput converte a requisição de devolução
func (r ReturnRequest) ToReturnInput() (sales.ReturnInput, error) {
	date, err := ParseDate(r.Date)
	if err != nil {
		return sales.ReturnInput{}, err
	}
	return sales.ReturnInput{
		CustomerID: r.CustomerID,
		Date:       date,
		Note:       r.Note,
		Items:      ToReturnItemInputs(r.Items),
	}, nil
}

// ReturnItemResponse representa uma linha de devolução
type ReturnItemResponse struct {
	Position    int             `json:"position"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// ReturnResponse representa a resposta de devolução
type ReturnResponse struct {
	ID          string               `json:"id"`
	CustomerID  string               `json:"customer_id"`
	Date        string               `json:"date"`
	Note        string               `json:"note,omitempty"`
	TotalAmount decimal.Decimal      `json:"total_amount"`
	Items       []ReturnItemResponse `json:"items"`
	CreatedAt   time.Time            `json:"created_at"`
	UpdatedAt   time.Time            `json:"updated_at"`
}

// ToReturnResponse converte uma devolução para a resposta da API
func ToReturnResponse(r *salesreturn.Return) ReturnResponse {
	items := make([]ReturnItemResponse, 0, len(r.Items))
	for _, it := range r.Items {
		items = append(items, ReturnItemResponse{
			Position:    it.Position,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			LineTotal:   it.LineTotal,
		})
	}
	return ReturnResponse{
		ID:          r.ID,
		CustomerID:  r.CustomerID,
		Date:        r.Date.Format(DateLayout),
		Note:        r.Note,
		TotalAmount: r.TotalAmount,
		Items:       items,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
