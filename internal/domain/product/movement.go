package product

import (
	"time"

	"github.com/google/uuid"
)

// MovementReason identifica a origem de uma movimentação de estoque
type MovementReason string

const (
	ReasonSale         MovementReason = "sale"
	ReasonSaleReversal MovementReason = "sale_reversal" // Estorno de itens antigos na edição
	ReasonSaleCancel   MovementReason = "sale_cancel"
	ReasonRestock      MovementReason = "restock"
)

// Movement registra uma alteração de estoque e o saldo resultante
type Movement struct {
	ID          string         `json:"id"`
	TenantID    string         `json:"tenant_id"`
	ProductID   string         `json:"product_id"`
	Delta       int            `json:"delta"`
	Reason      MovementReason `json:"reason"`
	ReferenceID string         `json:"reference_id"`
	StockAfter  int            `json:"stock_after"`
	CreatedAt   time.Time      `json:"created_at"`
}

// NewMovement cria uma movimentação
func NewMovement(tenantID, productID string, delta int, reason MovementReason, referenceID string, stockAfter int) *Movement {
	return &Movement{
		ID:          uuid.New().String(),
		TenantID:    tenantID,
		ProductID:   productID,
		Delta:       delta,
		Reason:      reason,
		ReferenceID: referenceID,
		StockAfter:  stockAfter,
		CreatedAt:   time.Now(),
	}
}
