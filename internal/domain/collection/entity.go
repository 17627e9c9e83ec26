package collection

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound              = apperror.New(apperror.ErrNotFound, "recebimento não encontrado")
	ErrInvalidAmount         = apperror.New(apperror.ErrInvalidInput, "valor deve ser maior que zero")
	ErrInvalidMethod         = apperror.New(apperror.ErrInvalidInput, "forma de pagamento inválida")
	ErrInvalidCommissionRate = apperror.New(apperror.ErrInvalidInput, "taxa de comissão deve estar entre 0 e 1")
)

// Method representa a forma de pagamento do recebimento
type Method string

const (
	MethodCash     Method = "cash"
	MethodTransfer Method = "transfer"
	MethodCard     Method = "card"
)

// ParseMethod converte um texto em Method; texto vazio resulta em dinheiro
func ParseMethod(s string) (Method, error) {
	switch m := Method(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return MethodCash, nil
	case MethodCash, MethodTransfer, MethodCard:
		return m, nil
	default:
		return "", ErrInvalidMethod
	}
}

// Label retorna a descrição da forma de pagamento
func (m Method) Label() string {
	switch m {
	case MethodTransfer:
		return "transferência"
	case MethodCard:
		return "cartão"
	default:
		return "dinheiro"
	}
}

// Collection representa um recebimento do cliente.
// Amount é o valor líquido (após comissão de cartão) e é o que abate o saldo.
type Collection struct {
	ID          string          `json:"id"`
	TenantID    string          `json:"tenant_id"`
	CustomerID  string          `json:"customer_id"`
	Method      Method          `json:"method"`
	GrossAmount decimal.Decimal `json:"gross_amount"`
	Commission  decimal.Decimal `json:"commission"`
	Amount      decimal.Decimal `json:"amount"`
	Note        string          `json:"note"`
	Date        time.Time       `json:"date"`
	CreatedAt   time.Time       `json:"created_at"`
}

// NewCollection cria um recebimento. Para cartão, a comissão gross × cardRate é
// descontada antes da gravação; as demais formas não têm comissão.
func NewCollection(tenantID, customerID string, method Method, gross, cardRate decimal.Decimal, note string, date time.Time) (*Collection, error) {
	switch method {
	case MethodCash, MethodTransfer, MethodCard:
	default:
		return nil, ErrInvalidMethod
	}
	if !gross.IsPositive() {
		return nil, ErrInvalidAmount
	}
	if !shared.IsMoney(gross) {
		return nil, shared.ErrMoneyPrecision
	}
	if cardRate.IsNegative() || cardRate.GreaterThanOrEqual(decimal.NewFromInt(1)) {
		return nil, ErrInvalidCommissionRate
	}

	commission := decimal.Zero
	if method == MethodCard {
		commission = gross.Mul(cardRate).Round(2)
	}
	net := gross.Sub(commission)
	if !net.IsPositive() {
		return nil, ErrInvalidAmount
	}

	return &Collection{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		CustomerID:  customerID,
		Method:      method,
		GrossAmount: gross,
		Commission:  commission,
		Amount:      net,
		Note:        strings.TrimSpace(note),
		Date:        shared.DateOf(date),
		CreatedAt:   time.Now(),
	}, nil
}
