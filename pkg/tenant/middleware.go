package tenant

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
)

// HeaderName é o cabeçalho que identifica o tenant quando não há token
const HeaderName = "tenant-id"

// TenantValidator define a interface para validação de tenant
type TenantValidator interface {
	ValidateTenant(ctx context.Context, tenantID string) (bool, error)
}

// TenantMiddleware valida o tenant da requisição. O tenant vem das claims do
// token (gravado antes pelo middleware de autenticação) ou, na falta delas,
// do cabeçalho tenant-id. Um cabeçalho divergente do token é rejeitado.
func TenantMiddleware(validator TenantValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader(HeaderName)
		tenantID := GetTenantID(c)

		switch {
		case tenantID == "" && header == "":
			c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(
				http.StatusBadRequest,
				"Tenant ID não fornecido",
				"O cabeçalho 'tenant-id' é obrigatório",
			))
			return
		case tenantID == "":
			tenantID = header
		case header != "" && header != tenantID:
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Tenant inválido",
				"O cabeçalho 'tenant-id' não corresponde ao token",
			))
			return
		}

		valid, err := validator.ValidateTenant(c.Request.Context(), tenantID)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusInternalServerError, dto.NewErrorResponse(
				http.StatusInternalServerError,
				"Erro ao validar tenant",
				err.Error(),
			))
			return
		}

		if !valid {
			c.AbortWithStatusJSON(http.StatusForbidden, dto.NewErrorResponse(
				http.StatusForbidden,
				"Tenant inválido",
				"O tenant informado não existe ou está inativo",
			))
			return
		}

		c.Set("tenant_id", tenantID)
		c.Request = c.Request.WithContext(SetTenantIDContext(c.Request.Context(), tenantID))

		c.Next()
	}
}
