package dto

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
)

// TenantRequest representa a estrutura de dados para criação de tenant
type TenantRequest struct {
	Name     string `json:"name" binding:"required,max=255"`
	Document string `json:"document" binding:"required,max=18"`
}

// TenantResponse representa a estrutura de dados de resposta para tenant
type TenantResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToTenantResponse converte um modelo de domínio em uma resposta DTO
func ToTenantResponse(t *tenant.Tenant) TenantResponse {
	return TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Document:  t.Document,
		Status:    string(t.Status),
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}
