package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
)

// RequestIDHeader é o cabeçalho que carrega o identificador da requisição
const RequestIDHeader = "X-Request-ID"

// RequestLogger registra cada requisição com status, duração e tenant. Um
// identificador é gerado quando o cliente não envia X-Request-ID.
func RequestLogger(log logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		requestID := c.GetHeader(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}
		c.Set("request_id", requestID)
		c.Header(RequestIDHeader, requestID)

		c.Next()

		fields := []interface{}{
			"request_id", requestID,
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
		}
		if tenantID := c.GetString("tenant_id"); tenantID != "" {
			fields = append(fields, "tenant_id", tenantID)
		}

		switch {
		case c.Writer.Status() >= 500:
			log.Error("requisição finalizada", fields...)
		case c.Writer.Status() >= 400:
			log.Warn("requisição finalizada", fields...)
		default:
			log.Info("requisição finalizada", fields...)
		}
	}
}
