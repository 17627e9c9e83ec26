package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	pkgtenant "github.com/hugohenrick/erp-vendas/pkg/tenant"
)

// TenantController gerencia as requisições relacionadas aos tenants
type TenantController struct {
	tenantRepository tenant.Repository
	logger           logger.Logger
}

// NewTenantController cria uma nova instância de TenantController
func NewTenantController(tenantRepository tenant.Repository, logger logger.Logger) *TenantController {
	return &TenantController{
		tenantRepository: tenantRepository,
		logger:           logger,
	}
}

// Create cria um novo tenant
// @Summary Cria um novo tenant
// @Description Cria um novo tenant ativo no sistema
// @Tags tenants
// @Accept json
// @Produce json
// @Param tenant body dto.TenantRequest true "Dados do tenant"
// @Success 201 {object} dto.TenantResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants [post]
func (c *TenantController) Create(ctx *gin.Context) {
	var request dto.TenantRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		respondBindError(ctx, err)
		return
	}

	t, err := tenant.NewTenant(request.Name, request.Document)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(http.StatusBadRequest, "Requisição inválida", err.Error()))
		return
	}

	if err := c.tenantRepository.Create(ctx.Request.Context(), t); err != nil {
		if errors.Is(err, tenant.ErrDuplicateDocument) {
			ctx.JSON(http.StatusConflict, dto.NewErrorResponse(http.StatusConflict, "Tenant já existe", "Um tenant com este documento já está cadastrado"))
			return
		}
		c.logger.Error("erro ao criar tenant", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao criar tenant", "erro interno"))
		return
	}

	c.logger.Info("tenant criado", "tenant_id", t.ID)
	ctx.JSON(http.StatusCreated, dto.ToTenantResponse(t))
}

// GetByID busca o tenant autenticado pelo ID
// @Summary Busca um tenant pelo ID
// @Description Só é possível consultar o próprio tenant
// @Tags tenants
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do tenant"
// @Success 200 {object} dto.TenantResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /tenants/{id} [get]
func (c *TenantController) GetByID(ctx *gin.Context) {
	id := ctx.Param("id")
	if id != pkgtenant.GetTenantID(ctx) {
		ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Tenant não encontrado", ""))
		return
	}

	t, err := c.tenantRepository.FindByID(ctx.Request.Context(), id)
	if err != nil {
		if errors.Is(err, tenant.ErrTenantNotFound) {
			ctx.JSON(http.StatusNotFound, dto.NewErrorResponse(http.StatusNotFound, "Tenant não encontrado", ""))
			return
		}
		c.logger.Error("erro ao buscar tenant", "error", err)
		ctx.JSON(http.StatusInternalServerError, dto.NewErrorResponse(http.StatusInternalServerError, "Erro ao buscar tenant", "erro interno"))
		return
	}

	ctx.JSON(http.StatusOK, dto.ToTenantResponse(t))
}
