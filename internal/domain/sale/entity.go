package sale

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/shared"
	"github.com/shopspring/decimal"
)

var (
	ErrNotFound             = apperror.New(apperror.ErrNotFound, "venda não encontrada")
	ErrEmptyItems           = apperror.New(apperror.ErrInvalidInput, "a venda precisa de ao menos um item")
	ErrInvalidQuantity      = apperror.New(apperror.ErrInvalidInput, "quantidade deve ser maior que zero")
	ErrEmptyProductName     = apperror.New(apperror.ErrInvalidInput, "nome do produto não pode ser vazio")
	ErrNegativeUnitPrice    = apperror.New(apperror.ErrInvalidInput, "preço unitário não pode ser negativo")
	ErrMissingUnitPrice     = apperror.New(apperror.ErrInvalidInput, "item sem produto precisa de preço unitário")
	ErrSaleAlreadyCancelled = apperror.New(apperror.ErrConflict, "venda já está cancelada")
)

// Status representa o estado da venda. A única transição é active → cancelled.
type Status string

const (
	StatusActive    Status = "active"
	StatusCancelled Status = "cancelled"
)

// Item representa uma linha da venda
type Item struct {
	ID                  string          `json:"id"`
	SaleID              string          `json:"sale_id"`
	Position            int             `json:"position"`
	ProductID           *string         `json:"product_id"` // nil para itens de texto livre
	ProductName         string          `json:"product_name"`
	Quantity            int             `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	ListUnitPrice       decimal.Decimal `json:"list_unit_price"`
	AppliedDiscountRate decimal.Decimal `json:"applied_discount_rate"`
	LineTotal           decimal.Decimal `json:"line_total"`
}

// NewItem cria uma linha calculando o total da linha
func NewItem(productID *string, productName string, quantity int, unitPrice, listUnitPrice, rate decimal.Decimal) (Item, error) {
	productName = strings.TrimSpace(productName)
	if productName == "" {
		return Item{}, ErrEmptyProductName
	}
	if quantity <= 0 {
		return Item{}, ErrInvalidQuantity
	}
	if unitPrice.IsNegative() {
		return Item{}, ErrNegativeUnitPrice
	}
	if !shared.IsMoney(unitPrice) {
		return Item{}, shared.ErrMoneyPrecision
	}

	return Item{
		ID:                  uuid.New().String(),
		ProductID:           productID,
		ProductName:         productName,
		Quantity:            quantity,
		UnitPrice:           unitPrice,
		ListUnitPrice:       listUnitPrice,
		AppliedDiscountRate: rate,
		LineTotal:           unitPrice.Mul(decimal.NewFromInt(int64(quantity))),
	}, nil
}

// TracksStock indica se a linha movimenta estoque
func (i Item) TracksStock() bool {
	return i.ProductID != nil && *i.ProductID != ""
}

// Sale representa uma venda com suas linhas
type Sale struct {
	ID                 string           `json:"id"`
	TenantID           string           `json:"tenant_id"`
	CustomerID         string           `json:"customer_id"`
	Date               time.Time        `json:"date"`
	TotalAmount        decimal.Decimal  `json:"total_amount"` // Sempre igual à soma das linhas
	SegmentAtTime      customer.Segment `json:"segment_at_time"`
	DiscountRateAtTime decimal.Decimal  `json:"discount_rate_at_time"`
	Status             Status           `json:"status"`
	Items              []Item           `json:"items"`
	CancelledAt        *time.Time       `json:"cancelled_at"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

// NewSale cria uma venda ativa ainda sem itens
func NewSale(tenantID, customerID string, date time.Time, segment customer.Segment, rate decimal.Decimal) *Sale {
	now := time.Now()
	return &Sale{
		ID:                 uuid.New().String(),
		TenantID:           tenantID,
		CustomerID:         customerID,
		Date:               shared.DateOf(date),
		TotalAmount:        decimal.Zero,
		SegmentAtTime:      segment,
		DiscountRateAtTime: rate,
		Status:             StatusActive,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// Total soma os totais das linhas
func Total(items []Item) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.LineTotal)
	}
	return total
}

// SetItems substitui todas as linhas e recalcula o total
func (s *Sale) SetItems(items []Item) error {
	if len(items) == 0 {
		return ErrEmptyItems
	}

	replaced := make([]Item, len(items))
	for i, it := range items {
		it.SaleID = s.ID
		it.Position = i + 1
		replaced[i] = it
	}

	s.Items = replaced
	s.TotalAmount = Total(replaced)
	s.UpdatedAt = time.Now()
	return nil
}

// IsActive verifica se a venda está ativa
func (s *Sale) IsActive() bool {
	return s.Status == StatusActive
}

// Cancel executa a transição active → cancelled
func (s *Sale) Cancel() error {
	if s.Status == StatusCancelled {
		return ErrSaleAlreadyCancelled
	}

	now := time.Now()
	s.Status = StatusCancelled
	s.CancelledAt = &now
	s.UpdatedAt = now
	return nil
}
