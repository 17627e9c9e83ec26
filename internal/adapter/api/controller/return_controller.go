package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/tenant"
)

// ReturnController gerencia as requisições de devoluções
type ReturnController struct {
	manager *sales.Manager
	logger  logger.Logger
}

// NewReturnController cria uma nova instância de ReturnController
func NewReturnController(manager *sales.Manager, logger logger.Logger) *ReturnController {
	return &ReturnController{
		manager: manager,
		logger:  logger,
	}
}

// Create registra uma devolução
// @Summary Criar devolução
// @Description A devolução abate o saldo do cliente e não altera o estoque
// @Tags returns
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param return body dto.ReturnRequest true "Dados da devolução"
// @Success 201 {object} dto.ReturnResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /returns [post]
func (c *ReturnController) Create(ctx *gin.Context) {
	var req dto.ReturnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	in, err := req.ToReturnInput()
	if err != nil {
		respondBindError(ctx, err)
		return
	}

	r, err := c.manager.CreateReturn(ctx.Request.Context(), tenant.GetTenantID(ctx), in)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar devolução", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToReturnResponse(r))
}

// Get busca uma devolução pelo ID
// @Summary Buscar devolução
// @Tags returns
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da devolução"
// @Success 200 {object} dto.ReturnResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /returns/{id} [get]
func (c *ReturnController) Get(ctx *gin.Context) {
	r, err := c.manager.GetReturn(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar devolução", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReturnResponse(r))
}

// Update substitui as linhas de uma devolução
// @Summary Atualizar devolução
// @Tags returns
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da devolução"
// @Param return body dto.UpdateReturnRequest true "Novas linhas"
// @Success 200 {object} dto.ReturnResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /returns/{id} [put]
func (c *ReturnController) Update(ctx *gin.Context) {
	var req dto.UpdateReturnRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	r, err := c.manager.UpdateReturn(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), dto.ToReturnItemInputs(req.Items))
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar devolução", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToReturnResponse(r))
}

// Delete exclui uma devolução
// @Summary Excluir devolução
// @Tags returns
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da devolução"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /returns/{id} [delete]
func (c *ReturnController) Delete(ctx *gin.Context) {
	if err := c.manager.DeleteReturn(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao excluir devolução", err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
