package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/application/products"
	"github.com/hugohenrick/erp-vendas/internal/application/stock"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/tenant"
	"github.com/shopspring/decimal"
)

// ProductController gerencia as requisições relacionadas a produtos e estoque
type ProductController struct {
	service *products.Service
	ledger  *stock.Ledger
	logger  logger.Logger
}

// NewProductController cria uma nova instância de ProductController
func NewProductController(service *products.Service, ledger *stock.Ledger, logger logger.Logger) *ProductController {
	return &ProductController{
		service: service,
		ledger:  ledger,
		logger:  logger,
	}
}

// Create cadastra um produto
// @Summary Criar produto
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param product body dto.ProductRequest true "Dados do produto"
// @Success 201 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [post]
func (c *ProductController) Create(ctx *gin.Context) {
	var req dto.ProductRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	in := products.Input{
		Name:         req.Name,
		Price:        req.Price,
		InitialStock: req.InitialStock,
	}
	if req.Cost != nil {
		in.Cost = decimal.NewNullDecimal(*req.Cost)
	}

	p, err := c.service.Create(ctx.Request.Context(), tenant.GetTenantID(ctx), in)
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar produto", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToProductResponse(p))
}

// List lista os produtos do tenant
// @Summary Listar produtos
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[dto.ProductResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /products [get]
func (c *ProductController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	list, err := c.service.List(ctx.Request.Context(), tenant.GetTenantID(ctx), pagination.PageSize, pagination.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar produtos", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductListResponse(list, pagination))
}

// Get busca um produto pelo ID
// @Summary Buscar produto
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Success 200 {object} dto.ProductResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id} [get]
func (c *ProductController) Get(ctx *gin.Context) {
	p, err := c.service.Get(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar produto", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Restock registra uma entrada de estoque
// @Summary Entrada de estoque
// @Tags products
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param restock body dto.RestockRequest true "Quantidade recebida"
// @Success 200 {object} dto.ProductResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id}/restock [post]
func (c *ProductController) Restock(ctx *gin.Context) {
	var req dto.RestockRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	p, err := c.ledger.Restock(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), req.Quantity, req.Reference)
	if err != nil {
		respondError(ctx, c.logger, "erro ao registrar entrada de estoque", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToProductResponse(p))
}

// Movements lista as movimentações de estoque do produto
// @Summary Movimentações de estoque
// @Tags products
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do produto"
// @Param limit query int false "Quantidade máxima" default(50)
// @Success 200 {array} dto.MovementResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /products/{id}/movements [get]
func (c *ProductController) Movements(ctx *gin.Context) {
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "50"))

	movements, err := c.ledger.Movements(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), limit)
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar movimentações", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToMovementResponses(movements))
}
