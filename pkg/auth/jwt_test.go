package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/pkg/tenant"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateToken(t *testing.T) {
	svc, err := NewJWTService("segredo", time.Hour)
	require.NoError(t, err)

	token, err := svc.GenerateToken("tenant-1", "caixa-01")
	require.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "tenant-1", claims.TenantID)
	assert.Equal(t, "caixa-01", claims.Operator)

	_, err = svc.GenerateToken("", "caixa-01")
	assert.ErrorIs(t, err, ErrMissingTenant)
}

func TestValidateTokenRejects(t *testing.T) {
	svc, err := NewJWTService("segredo", time.Hour)
	require.NoError(t, err)
	other, err := NewJWTService("outro", time.Hour)
	require.NoError(t, err)
	expired, err := NewJWTService("segredo", time.Nanosecond)
	require.NoError(t, err)

	foreign, err := other.GenerateToken("tenant-1", "")
	require.NoError(t, err)
	_, err = svc.ValidateToken(foreign)
	assert.ErrorIs(t, err, ErrInvalidToken)

	old, err := expired.GenerateToken("tenant-1", "")
	require.NoError(t, err)
	time.Sleep(1100 * time.Millisecond)
	_, err = svc.ValidateToken(old)
	assert.ErrorIs(t, err, ErrExpiredToken)

	_, err = svc.ValidateToken("lixo")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = NewJWTService("", time.Hour)
	assert.ErrorIs(t, err, ErrMissingJWTKey)
}

func TestJWTAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, err := NewJWTService("segredo", time.Hour)
	require.NoError(t, err)

	r := gin.New()
	r.GET("/x", JWTAuthMiddleware(svc), func(c *gin.Context) {
		c.String(http.StatusOK, tenant.GetTenantIDFromContext(c.Request.Context()))
	})

	token, err := svc.GenerateToken("tenant-9", "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"sem cabeçalho", "", http.StatusUnauthorized, ""},
		{"formato inválido", "Token " + token, http.StatusUnauthorized, ""},
		{"token inválido", "Bearer abc", http.StatusUnauthorized, ""},
		{"token válido", "Bearer " + token, http.StatusOK, "tenant-9"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
			if tt.body != "" {
				assert.Equal(t, tt.body, w.Body.String())
			}
		})
	}
}
