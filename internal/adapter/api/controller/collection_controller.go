package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/tenant"
)

// CollectionController gerencia as requisições de recebimentos
type CollectionController struct {
	manager *sales.Manager
	logger  logger.Logger
}

// NewCollectionController cria uma nova instância de CollectionController
func NewCollectionController(manager *sales.Manager, logger logger.Logger) *CollectionController {
	return &CollectionController{
		manager: manager,
		logger:  logger,
	}
}

// Create registra um recebimento
// @Summary Registrar recebimento
// @Description Para cartão, a comissão configurada é descontada e apenas o líquido abate o saldo
// @Tags collections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param collection body dto.CollectionRequest true "Dados do recebimento"
// @Success 201 {object} dto.CollectionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /collections [post]
func (c *CollectionController) Create(ctx *gin.Context) {
	var req dto.CollectionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	in, err := req.ToCollectionInput()
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar recebimento", err)
		return
	}

	col, err := c.manager.AddCollection(ctx.Request.Context(), tenant.GetTenantID(ctx), in)
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar recebimento", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCollectionResponse(col))
}

// Delete exclui um recebimento
// @Summary Excluir recebimento
// @Tags collections
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do recebimento"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /collections/{id} [delete]
func (c *CollectionController) Delete(ctx *gin.Context) {
	if err := c.manager.DeleteCollection(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao excluir recebimento", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
