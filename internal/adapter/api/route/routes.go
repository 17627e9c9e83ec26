package route

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// Handlers reúne os controllers expostos pela API
type Handlers struct {
	Tenant     *controller.TenantController
	Customer   *controller.CustomerController
	Product    *controller.ProductController
	Sale       *controller.SaleController
	Return     *controller.ReturnController
	Collection *controller.CollectionController

	// HealthCheck verifica as dependências externas; nil quando não há nenhuma
	HealthCheck func(ctx context.Context) error
}

// SetupRoutes configura todas as rotas da API sob basePath. As rotas de
// negócio passam pelos middlewares de proteção na ordem informada
// (autenticação antes de tenant).
func SetupRoutes(r *gin.Engine, basePath string, h Handlers, protection ...gin.HandlerFunc) {
	v1 := r.Group(basePath)

	v1.GET("/health", func(c *gin.Context) {
		if h.HealthCheck != nil {
			if err := h.HealthCheck(c.Request.Context()); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{
					"status": "unavailable",
					"error":  err.Error(),
				})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	protected := v1.Group("")
	protected.Use(protection...)

	SetupTenantRoutes(v1, protected, h.Tenant)
	SetupCustomerRoutes(protected, h.Customer)
	SetupProductRoutes(protected, h.Product)
	SetupSaleRoutes(protected, h.Sale, h.Return, h.Collection)
}
