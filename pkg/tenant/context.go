package tenant

import (
	"context"

	"github.com/gin-gonic/gin"
)

type contextKey string

// tenantIDKey é a chave usada para armazenar o tenant ID no contexto
const tenantIDKey contextKey = "tenant_id"

// SetTenantIDContext define o tenant ID no contexto
func SetTenantIDContext(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, tenantIDKey, tenantID)
}

// GetTenantIDFromContext obtém o tenant ID do contexto
func GetTenantIDFromContext(ctx context.Context) string {
	if tenantID, ok := ctx.Value(tenantIDKey).(string); ok {
		return tenantID
	}
	return ""
}

// GetTenantID obtém o tenant ID gravado no contexto do Gin pelos middlewares
func GetTenantID(c *gin.Context) string {
	if tenantID := c.GetString("tenant_id"); tenantID != "" {
		return tenantID
	}
	return GetTenantIDFromContext(c.Request.Context())
}
