package route

import (
	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/controller"
)

// SetupProductRoutes registra as rotas de produtos e estoque
func SetupProductRoutes(router *gin.RouterGroup, productController *controller.ProductController) {
	products := router.Group("/products")
	{
		products.POST("", productController.Create)
		products.GET("", productController.List)
		products.GET("/:id", productController.Get)
		products.POST("/:id/restock", productController.Restock)
		products.GET("/:id/movements", productController.Movements)
	}
}
