package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/application/balance"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/risk"
	"github.com/shopspring/decimal"
)

// CustomerRequest representa a requisição de criação ou alteração de cliente
type CustomerRequest struct {
	Name      string          `json:"name" binding:"required,max=255"`
	Phone     string          `json:"phone" binding:"max=30"`
	Address   string          `json:"address"`
	TaxNumber string          `json:"tax_number" binding:"max=20"`
	RiskLimit decimal.Decimal `json:"risk_limit" binding:"gte=0,money"`
	Segment   string          `json:"segment" binding:"omitempty,oneof=bronze silver gold"`
}

// SegmentRequest representa a troca de segmento do cliente
type SegmentRequest struct {
	Segment string `json:"segment" binding:"required,oneof=bronze silver gold"`
}

// StatusRequest representa a ativação ou desativação do cliente
type StatusRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// CustomerResponse representa a resposta de cliente
type CustomerResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	TaxNumber        string          `json:"tax_number"`
	RiskLimit        decimal.Decimal `json:"risk_limit"`
	Segment          string          `json:"segment"`
	SegmentUpdatedAt *time.Time      `json:"segment_updated_at,omitempty"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// ToCustomerResponse converte um cliente para a resposta da API
func ToCustomerResponse(c *customer.Customer) CustomerResponse {
	return CustomerResponse{
		ID:               c.ID,
		Name:             c.Name,
		Phone:            c.Phone,
		Address:          c.Address,
		TaxNumber:        c.TaxNumber,
		RiskLimit:        c.RiskLimit,
		Segment:          string(c.Segment),
		SegmentUpdatedAt: c.SegmentUpdatedAt,
		Active:           c.Active,
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
	}
}

// ToCustomerListResponse converte uma página de clientes
func ToCustomerListResponse(list []*customer.Customer, p Pagination) ListResponse[CustomerResponse] {
	items := make([]CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, ToCustomerResponse(c))
	}
	return ListResponse[CustomerResponse]{Items: items, Page: p.Page, PageSize: p.PageSize}
}

// BalanceResponse representa o saldo do cliente
type BalanceResponse struct {
	CustomerID string          `json:"customer_id"`
	Balance    decimal.Decimal `json:"balance"`
}

// RiskResponse representa a classificação de risco do cliente
type RiskResponse struct {
	CustomerID string          `json:"customer_id"`
	State      string          `json:"state"`
	Warning    bool            `json:"warning"`
	Balance    decimal.Decimal `json:"balance"`
	Limit      decimal.Decimal `json:"limit"`
	Ratio      decimal.Decimal `json:"ratio"`
}

// ToRiskResponse converte uma avaliação de risco
func ToRiskResponse(customerID string, a risk.Assessment) RiskResponse {
	return RiskResponse{
		CustomerID: customerID,
		State:      string(a.State),
		Warning:    a.IsWarning(),
		Balance:    a.Balance,
		Limit:      a.Limit,
		Ratio:      a.Ratio.Round(4),
	}
}

// SummaryResponse representa o resumo financeiro do cliente
type SummaryResponse struct {
	CustomerID  string          `json:"customer_id"`
	Sales       decimal.Decimal `json:"sales"`
	Collections decimal.Decimal `json:"collections"`
	Returns     decimal.Decimal `json:"returns"`
	Balance     decimal.Decimal `json:"balance"`
	Risk        RiskResponse    `json:"risk"`
}

// ToSummaryResponse converte um resumo do cliente
func ToSummaryResponse(s *balance.Summary) SummaryResponse {
	return SummaryResponse{
		CustomerID:  s.CustomerID,
		Sales:       s.Totals.Sales,
		Collections: s.Totals.Collections,
		Returns:     s.Totals.Returns,
		Balance:     s.Balance,
		Risk:        ToRiskResponse(s.CustomerID, s.Risk),
	}
}

// LedgerEntryResponse representa uma linha do extrato
type LedgerEntryResponse struct {
	Date           string          `json:"date"`
	Type           string          `json:"type"`
	ReferenceID    string          `json:"reference_id"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// LedgerResponse representa o extrato do cliente
type LedgerResponse struct {
	CustomerID string                `json:"customer_id"`
	Order      string                `json:"order"`
	Entries    []LedgerEntryResponse `json:"entries"`
}

// ToLedgerResponse converte o extrato do cliente
func ToLedgerResponse(customerID string, order balance.Order, entries []balance.Entry) LedgerResponse {
	out := make([]LedgerEntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, LedgerEntryResponse{
			Date:           e.Date.Format(DateLayout),
			Type:           string(e.Type),
			ReferenceID:    e.ReferenceID,
			Description:    e.Description,
			Debit:          e.Debit,
			Credit:         e.Credit,
			RunningBalance: e.RunningBalance,
		})
	}
	return LedgerResponse{CustomerID: customerID, Order: string(order), Entries: out}
}
