package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// SetupTenantRoutes configura as rotas para o módulo de tenants. A criação é
// pública; a consulta exige o grupo protegido.
func SetupTenantRoutes(public, protected *gin.RouterGroup, tenantController *controller.TenantController) {
	public.POST("/tenants", tenantController.Create)
	protected.GET("/tenants/:id", tenantController.GetByID)
}
