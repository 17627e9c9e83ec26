package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/shopspring/decimal"
)

// CollectionRequest representa a requisição de registro de recebimento.
// Amount é o valor bruto informado; para cartão a comissão é descontada.
type CollectionRequest struct {
	CustomerID string          `json:"customer_id" binding:"required,uuid"`
	Method     string          `json:"method" binding:"omitempty,oneof=cash transfer card"`
	Amount     decimal.Decimal `json:"amount" binding:"gt=0,money"`
	Note       string          `json:"note"`
	Date       string          `json:"date" binding:"omitempty,datetime=2006-01-02"`
}

// ToCollectionInput converte a requisição de recebimento
func (r CollectionRequest) ToCollectionInput() (sales.CollectionInput, error) {
	method, err := collection.ParseMethod(r.Method)
	if err != nil {
		return sales.CollectionInput{}, err
	}
	date, err := ParseDate(r.Date)
	if err != nil {
		return sales.CollectionInput{}, err
	}
	return sales.CollectionInput{
		CustomerID:  r.CustomerID,
		Method:      method,
		GrossAmount: r.Amount,
		Note:        r.Note,
		Date:        date,
	}, nil
}

// CollectionResponse representa a resposta de recebimento
type CollectionResponse struct {
	ID          string          `json:"id"`
	CustomerID  string          `json:"customer_id"`
	Method      string          `json:"method"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Commission  decimal.Decimal `json:"commission"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note,omitempty"`
	Date        string          `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ToCollectionResponse converte um recebimento para a resposta da API
func ToCollectionResponse(c *collection.Collection) CollectionResponse {
	return CollectionResponse{
		ID:          c.ID,
		CustomerID:  c.CustomerID,
		Method:      string(c.Method),
		GrossAmount: c.GrossAmount,
		Commission:  c.Commission,
		Amount:      c.Amount,
		Note:        c.Note,
		Date:        c.Date.Format(DateLayout),
		CreatedAt:   c.CreatedAt,
	}
}
