package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// SetupSaleRoutes registra as rotas de vendas, devoluções e recebimentos
func SetupSaleRoutes(
	router *gin.RouterGroup,
	saleController *controller.SaleController,
	returnController *controller.ReturnController,
	collectionController *controller.CollectionController,
) {
	sales := router.Group("/sales")
	{
		sales.POST("", saleController.Create)
		sales.POST("/quote", saleController.Quote)
		sales.GET("/:id", saleController.Get)
		sales.PUT("/:id", saleController.Update)
		sales.POST("/:id/cancel", saleController.Cancel)
	}

	returns := router.Group("/returns")
	{
		returns.POST("", returnController.Create)
		returns.GET("/:id", returnController.Get)
		returns.PUT("/:id", returnController.Update)
		returns.DELETE("/:id", returnController.Delete)
	}

	collections := router.Group("/collections")
	{
		collections.POST("", collectionController.Create)
		collections.DELETE("/:id", collectionController.Delete)
	}
}
