package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// SetupCustomerRoutes registra as rotas do módulo de clientes
func SetupCustomerRoutes(router *gin.RouterGroup, customerController *controller.CustomerController) {
	customers := router.Group("/customers")
	{
		customers.POST("", customerController.Create)
		customers.GET("", customerController.List)
		customers.GET("/:id", customerController.Get)
		customers.PUT("/:id", customerController.Update)
		customers.PATCH("/:id/segment", customerController.ChangeSegment)
		customers.PATCH("/:id/status", customerController.UpdateStatus)

		// Saldo e risco são sempre calculados na hora
		customers.GET("/:id/balance", customerController.Balance)
		customers.GET("/:id/summary", customerController.Summary)
		customers.GET("/:id/risk", customerController.Risk)
		customers.GET("/:id/ledger", customerController.Ledger)
	}
}
