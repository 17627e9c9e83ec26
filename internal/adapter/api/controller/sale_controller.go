package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/application/sales"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/tenant"
)

// SaleController gerencia as requisições de vendas
type SaleController struct {
	manager *sales.Manager
	logger  logger.Logger
}

// NewSaleController cria uma nova instância de SaleController
func NewSaleController(manager *sales.Manager, logger logger.Logger) *SaleController {
	return &SaleController{
		manager: manager,
		logger:  logger,
	}
}

// Create registra uma venda
// @Summary Criar venda
// @Description Precifica as linhas, baixa o estoque e grava a venda numa única transação
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param sale body dto.SaleRequest true "Dados da venda"
// @Success 201 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Estoque insuficiente"
// @Failure 500 {object} dto.ErrorResponse
// @Router /sales [post]
func (c *SaleController) Create(ctx *gin.Context) {
	var req dto.SaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	in, err := req.ToSaleInput()
	if err != nil {
		respondBindError(ctx, err)
		return
	}

	s, err := c.manager.CreateSale(ctx.Request.Context(), tenant.GetTenantID(ctx), in)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar venda", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToSaleResponse(s))
}

// Get busca uma venda pelo ID
// @Summary Buscar venda
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SaleResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/{id} [get]
func (c *SaleController) Get(ctx *gin.Context) {
	s, err := c.manager.GetSale(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// Update substitui as linhas de uma venda ativa
// @Summary Atualizar venda
// @Description Estorna o estoque das linhas antigas e aplica as novas; em caso de erro nada muda
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Param sale body dto.UpdateSaleRequest true "Novas linhas"
// @Success 200 {object} dto.SaleResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /sales/{id} [put]
func (c *SaleController) Update(ctx *gin.Context) {
	var req dto.UpdateSaleRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	s, err := c.manager.UpdateSale(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), dto.ToItemInputs(req.Items))
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSaleResponse(s))
}

// Cancel cancela uma venda e devolve o estoque
// @Summary Cancelar venda
// @Tags sales
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID da venda"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse "Venda já cancelada"
// @Router /sales/{id}/cancel [post]
func (c *SaleController) Cancel(ctx *gin.Context) {
	if err := c.manager.CancelSale(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id")); err != nil {
		respondError(ctx, c.logger, "erro ao cancelar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse("venda cancelada", nil))
}

// Quote precifica uma venda em composição sem gravar nada
// @Summary Orçar venda
// @Tags sales
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param quote body dto.QuoteRequest true "Linhas a precificar"
// @Success 200 {object} sales.Quote
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /sales/quote [post]
func (c *SaleController) Quote(ctx *gin.Context) {
	var req dto.QuoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	quote, err := c.manager.Quote(ctx.Request.Context(), tenant.GetTenantID(ctx), sales.QuoteInput{
		CustomerID: req.CustomerID,
		Segment:    customer.Segment(req.Segment),
		Items:      dto.ToItemInputs(req.Items),
	})
	if err != nil {
		respondError(ctx, c.logger, "erro ao orçar venda", err)
		return
	}

	ctx.JSON(http.StatusOK, quote)
}
