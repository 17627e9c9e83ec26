package controller

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/application/balance"
	"github.com/hugohenrick/erp-vendas/internal/application/customers"
	customerdomain "github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/hugohenrick/erp-vendas/pkg/tenant"
)

// CustomerController gerencia as requisições relacionadas a clientes
type CustomerController struct {
	service    *customers.Service
	calculator *balance.Calculator
	logger     logger.Logger
}

// NewCustomerController cria uma nova instância de CustomerController
func NewCustomerController(service *customers.Service, calculator *balance.Calculator, logger logger.Logger) *CustomerController {
	return &CustomerController{
		service:    service,
		calculator: calculator,
		logger:     logger,
	}
}

func toCustomerInput(req dto.CustomerRequest) customers.Input {
	return customers.Input{
		Name:      req.Name,
		Phone:     req.Phone,
		Address:   req.Address,
		TaxNumber: req.TaxNumber,
		RiskLimit: req.RiskLimit,
		Segment:   customerdomain.Segment(req.Segment),
	}
}

// Create cria um novo cliente
// @Summary Criar cliente
// @Description Cria um novo cliente ativo; sem segmento informado o cliente entra como bronze
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 201 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [post]
func (c *CustomerController) Create(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	customer, err := c.service.Create(ctx.Request.Context(), tenant.GetTenantID(ctx), toCustomerInput(req))
	if err != nil {
		respondError(ctx, c.logger, "erro ao criar cliente", err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.ToCustomerResponse(customer))
}

// List lista os clientes do tenant
// @Summary Listar clientes
// @Description Lista os clientes do tenant em ordem alfabética
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param page query int false "Página" default(1)
// @Param page_size query int false "Itens por página" default(10)
// @Success 200 {object} dto.ListResponse[dto.CustomerResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers [get]
func (c *CustomerController) List(ctx *gin.Context) {
	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(ctx.DefaultQuery("page_size", "10"))
	pagination := dto.GetPagination(page, pageSize)

	list, err := c.service.List(ctx.Request.Context(), tenant.GetTenantID(ctx), pagination.PageSize, pagination.Offset())
	if err != nil {
		respondError(ctx, c.logger, "erro ao listar clientes", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerListResponse(list, pagination))
}

// Get busca um cliente pelo ID
// @Summary Buscar cliente
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [get]
func (c *CustomerController) Get(ctx *gin.Context) {
	customer, err := c.service.Get(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao buscar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Update atualiza os dados cadastrais de um cliente
// @Summary Atualizar cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param customer body dto.CustomerRequest true "Dados do cliente"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /customers/{id} [put]
func (c *CustomerController) Update(ctx *gin.Context) {
	var req dto.CustomerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	customer, err := c.service.Update(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), toCustomerInput(req))
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// ChangeSegment altera o segmento do cliente
// @Summary Alterar segmento
// @Description Novas vendas passam a usar o desconto do novo segmento; vendas anteriores não mudam
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param segment body dto.SegmentRequest true "Novo segmento"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/segment [patch]
func (c *CustomerController) ChangeSegment(ctx *gin.Context) {
	var req dto.SegmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	customer, err := c.service.ChangeSegment(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), customerdomain.Segment(req.Segment))
	if err != nil {
		respondError(ctx, c.logger, "erro ao alterar segmento", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// UpdateStatus ativa ou desativa um cliente
// @Summary Atualizar status do cliente
// @Tags customers
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param status body dto.StatusRequest true "Status"
// @Success 200 {object} dto.CustomerResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/status [patch]
func (c *CustomerController) UpdateStatus(ctx *gin.Context) {
	var req dto.StatusRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		respondBindError(ctx, err)
		return
	}

	customer, err := c.service.SetActive(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"), *req.Active)
	if err != nil {
		respondError(ctx, c.logger, "erro ao atualizar status do cliente", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToCustomerResponse(customer))
}

// Balance retorna o saldo atual do cliente
// @Summary Saldo do cliente
// @Description Saldo = vendas ativas - recebimentos - devoluções, sempre calculado
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.BalanceResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/balance [get]
func (c *CustomerController) Balance(ctx *gin.Context) {
	customerID := ctx.Param("id")
	value, err := c.calculator.Balance(ctx.Request.Context(), tenant.GetTenantID(ctx), customerID)
	if err != nil {
		respondError(ctx, c.logger, "erro ao calcular saldo", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.BalanceResponse{CustomerID: customerID, Balance: value})
}

// Summary retorna os totais, o saldo e a classificação de risco do cliente
// @Summary Resumo financeiro do cliente
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.SummaryResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/summary [get]
func (c *CustomerController) Summary(ctx *gin.Context) {
	summary, err := c.calculator.Summary(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao calcular resumo", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToSummaryResponse(summary))
}

// Risk retorna apenas a classificação de risco do cliente
// @Summary Risco do cliente
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Success 200 {object} dto.RiskResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/risk [get]
func (c *CustomerController) Risk(ctx *gin.Context) {
	summary, err := c.calculator.Summary(ctx.Request.Context(), tenant.GetTenantID(ctx), ctx.Param("id"))
	if err != nil {
		respondError(ctx, c.logger, "erro ao avaliar risco", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToRiskResponse(summary.CustomerID, summary.Risk))
}

// Ledger retorna o extrato do cliente com saldo corrente
// @Summary Extrato do cliente
// @Tags customers
// @Produce json
// @Param Authorization header string true "Bearer token"
// @Param id path string true "ID do cliente"
// @Param order query string false "asc ou desc" default(asc)
// @Success 200 {object} dto.LedgerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /customers/{id}/ledger [get]
func (c *CustomerController) Ledger(ctx *gin.Context) {
	customerID := ctx.Param("id")
	order := balance.ParseOrder(ctx.Query("order"))

	entries, err := c.calculator.Ledger(ctx.Request.Context(), tenant.GetTenantID(ctx), customerID, order)
	if err != nil {
		respondError(ctx, c.logger, "erro ao montar extrato", err)
		return
	}

	ctx.JSON(http.StatusOK, dto.ToLedgerResponse(customerID, order, entries))
}
