package customer

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound           = apperror.New(apperror.ErrNotFound, "cliente não encontrado")
	ErrEmptyName          = apperror.New(apperror.ErrInvalidInput, "nome não pode ser vazio")
	ErrInvalidSegment     = apperror.New(apperror.ErrInvalidInput, "segmento inválido")
	ErrNegativeRiskLimit  = apperror.New(apperror.ErrInvalidInput, "limite de risco não pode ser negativo")
	ErrInactive           = apperror.New(apperror.ErrInvalidInput, "cliente está inativo")
	ErrDuplicateTaxNumber = apperror.New(apperror.ErrConflict, "cliente com mesmo documento já existe")
)

// Segment representa a faixa do cliente, que determina o desconto aplicado
type Segment string

const (
	SegmentBronze Segment = "bronze"
	SegmentSilver Segment = "silver"
	SegmentGold   Segment = "gold"
)

// ParseSegment converte um texto em Segment; texto vazio resulta em bronze
func ParseSegment(s string) (Segment, error) {
	switch seg := Segment(strings.ToLower(strings.TrimSpace(s))); seg {
	case "":
		return SegmentBronze, nil
	case SegmentBronze, SegmentSilver, SegmentGold:
		return seg, nil
	default:
		return "", ErrInvalidSegment
	}
}

// Valid verifica se o segmento é conhecido
func (s Segment) Valid() bool {
	return s == SegmentBronze || s == SegmentSilver || s == SegmentGold
}

// Customer representa um cliente de um tenant.
// O saldo não é armazenado: é sempre derivado das vendas, recebimentos e devoluções.
type Customer struct {
	ID               string          `json:"id"`
	TenantID         string          `json:"tenant_id"`
	Name             string          `json:"name"`
	Phone            string          `json:"phone"`
	Address          string          `json:"address"`
	TaxNumber        string          `json:"tax_number"`
	RiskLimit        decimal.Decimal `json:"risk_limit"` // 0 desativa a análise de risco
	Segment          Segment         `json:"segment"`
	SegmentUpdatedAt *time.Time      `json:"segment_updated_at"`
	Active           bool            `json:"active"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// NewCustomer cria um novo cliente ativo no segmento bronze
func NewCustomer(tenantID, name string) (*Customer, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	now := time.Now()
	return &Customer{
		ID:        uuid.New().String(),
		TenantID:  tenantID,
		Name:      name,
		RiskLimit: decimal.Zero,
		Segment:   SegmentBronze,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// Update atualiza os dados cadastrais do cliente
func (c *Customer) Update(name, phone, address, taxNumber string, riskLimit decimal.Decimal) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	if riskLimit.IsNegative() {
		return ErrNegativeRiskLimit
	}
	if !shared.IsMoney(riskLimit) {
		return shared.ErrMoneyPrecision
	}

	c.Name = name
	c.Phone = strings.TrimSpace(phone)
	c.Address = strings.TrimSpace(address)
	c.TaxNumber = strings.TrimSpace(taxNumber)
	c.RiskLimit = riskLimit
	c.UpdatedAt = time.Now()
	return nil
}

// ChangeSegment altera o segmento do cliente. Vendas já registradas não são
// recalculadas; apenas novas vendas usam o novo segmento.
func (c *Customer) ChangeSegment(segment Segment) error {
	if !segment.Valid() {
		return ErrInvalidSegment
	}
	if segment == c.Segment {
		return nil
	}

	now := time.Now()
	c.Segment = segment
	c.SegmentUpdatedAt = &now
	c.UpdatedAt = now
	return nil
}

// Activate ativa o cliente
func (c *Customer) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}

// Deactivate desativa o cliente
func (c *Customer) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}
