package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// statusFor converte a categoria do erro de domínio no status HTTP
func statusFor(err error) int {
	switch apperror.Kind(err) {
	case apperror.ErrNotFound:
		return http.StatusNotFound
	case apperror.ErrInvalidInput:
		return http.StatusBadRequest
	case apperror.ErrInsufficientStock, apperror.ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError escreve a resposta de erro de uma operação de domínio. Erros
// fora da taxonomia são registrados e respondidos sem detalhes internos.
func respondError(ctx *gin.Context, log logger.Logger, message string, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Error(message, "error", err, "path", ctx.FullPath())
		ctx.JSON(status, dto.NewErrorResponse(status, message, "erro interno"))
		return
	}

	resp := dto.NewErrorResponse(status, message, err.Error())
	var stockErr *product.InsufficientStockError
	if errors.As(err, &stockErr) {
		resp.Fields = map[string]string{"product_id": stockErr.ProductID}
	}
	ctx.JSON(status, resp)
}

// respondBindError escreve a resposta de corpo inválido
func respondBindError(ctx *gin.Context, err error) {
	resp := dto.NewErrorResponse(http.StatusBadRequest, "dados inválidos", err.Error())
	resp.Fields = dto.ValidationFields(err)
	ctx.JSON(http.StatusBadRequest, resp)
}
