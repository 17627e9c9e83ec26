package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hugohenrick/erp-vendas/internal/adapter/api/dto"
	"github.com/hugohenrick/erp-vendas/internal/adapter/repository/memory"
	"github.com/hugohenrick/erp-vendas/internal/config"
	"github.com/hugohenrick/erp-vendas/pkg/auth"
	"github.com/hugohenrick/erp-vendas/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiClient struct {
	t      *testing.T
	router *gin.Engine
	jwt    *auth.JWTService
}

func newAPIClient(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)

	jwtService, err := auth.NewJWTService("segredo-de-teste", time.Hour)
	require.NoError(t, err)

	cfg := config.Config{
		CORSAllowedOrigins: []string{"*"},
		CardCommissionRate: decimal.RequireFromString("0.03"),
	}
	return &apiClient{
		t:      t,
		router: newRouter(cfg, memory.NewStore(), jwtService, nil, logger.NewNop()),
		jwt:    jwtService,
	}
}

func (a *apiClient) token(tenantID string) string {
	a.t.Helper()
	tok, err := a.jwt.GenerateToken(tenantID, "caixa-1")
	require.NoError(a.t, err)
	return tok
}

func (a *apiClient) do(method, path, token string, body interface{}, headers ...string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(a.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (a *apiClient) createTenant(name, document string) string {
	a.t.Helper()
	w := a.do(http.MethodPost, "/tenants", "", gin.H{"name": name, "document": document})
	require.Equal(a.t, http.StatusCreated, w.Code, w.Body.String())
	return decode[dto.TenantResponse](a.t, w).ID
}

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual), "esperado %s, obtido %s", expected, actual)
}

func TestHealth(t *testing.T) {
	api := newAPIClient(t)
	w := api.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestTenantRoutes(t *testing.T) {
	api := newAPIClient(t)

	id := api.createTenant("Loja A", "11.111.111/0001-11")

	w := api.do(http.MethodPost, "/tenants", "", gin.H{"name": "Outra", "document": "11.111.111/0001-11"})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodPost, "/tenants", "", gin.H{"name": "Sem documento"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = api.do(http.MethodGet, "/tenants/"+id, api.token(id), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "active", decode[dto.TenantResponse](t, w).Status)

	other := api.createTenant("Loja B", "22.222.222/0001-22")
	w = api.do(http.MethodGet, "/tenants/"+other, api.token(id), nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRequireValidTenant(t *testing.T) {
	api := newAPIClient(t)
	a := api.createTenant("Loja A", "11.111.111/0001-11")
	b := api.createTenant("Loja B", "22.222.222/0001-22")

	tests := []struct {
		name    string
		token   string
		headers []string
		status  int
	}{
		{"sem token", "", nil, http.StatusUnauthorized},
		{"token inválido", "abc", nil, http.StatusUnauthorized},
		{"tenant inexistente", api.token("00000000-0000-0000-0000-000000000000"), nil, http.StatusForbidden},
		{"cabeçalho divergente", api.token(a), []string{"tenant-id", b}, http.StatusForbidden},
		{"válido", api.token(a), []string{"tenant-id", a}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := api.do(http.MethodGet, "/customers", tt.token, nil, tt.headers...)
			assert.Equal(t, tt.status, w.Code, w.Body.String())
		})
	}
}

func TestSalesFlow(t *testing.T) {
	api := newAPIClient(t)
	tenantA := api.createTenant("Loja A", "11.111.111/0001-11")
	tokenA := api.token(tenantA)

	w := api.do(http.MethodPost, "/customers", tokenA, gin.H{"name": "Maria", "segment": "gold", "risk_limit": 1000})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cust := decode[dto.CustomerResponse](t, w)
	assert.Equal(t, "gold", cust.Segment)

	w = api.do(http.MethodPost, "/products", tokenA, gin.H{"name": "Arroz 5kg", "price": 100, "cost": 95, "initial_stock": 5})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	prod := decode[dto.ProductResponse](t, w)

	// Ouro teria 90, mas o custo de 95 é o piso
	w = api.do(http.MethodPost, "/sales", tokenA, gin.H{
		"customer_id": cust.ID,
		"date":        "2026-03-10",
		"items":       []gin.H{{"product_id": prod.ID, "quantity": 2}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	sale := decode[dto.SaleResponse](t, w)
	assertDecimal(t, "190", sale.TotalAmount)
	assertDecimal(t, "95", sale.Items[0].UnitPrice)
	assert.Equal(t, "2026-03-10", sale.Date)

	t.Run("estoque insuficiente", func(t *testing.T) {
		w := api.do(http.MethodPost, "/sales", tokenA, gin.H{
			"customer_id": cust.ID,
			"items":       []gin.H{{"product_id": prod.ID, "quantity": 10}},
		})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, prod.ID, decode[dto.ErrorResponse](t, w).Fields["product_id"])

		w = api.do(http.MethodGet, "/products/"+prod.ID, tokenA, nil)
		assert.Equal(t, 3, decode[dto.ProductResponse](t, w).Stock)
	})

	t.Run("corpo inválido", func(t *testing.T) {
		w := api.do(http.MethodPost, "/sales", tokenA, gin.H{"customer_id": cust.ID, "items": []gin.H{}})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, decode[dto.ErrorResponse](t, w).Fields, "SaleRequest.items")

		w = api.do(http.MethodPost, "/sales", tokenA, gin.H{
			"customer_id": cust.ID,
			"date":        "10/03/2026",
			"items":       []gin.H{{"product_id": prod.ID, "quantity": 1}},
		})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("id malformado", func(t *testing.T) {
		for _, path := range []string{"/sales/abc", "/customers/abc/balance", "/products/abc", "/returns/abc"} {
			w := api.do(http.MethodGet, path, tokenA, nil)
			assert.Equal(t, http.StatusNotFound, w.Code, path)
		}

		w := api.do(http.MethodPost, "/sales", tokenA, gin.H{
			"customer_id": "abc",
			"items":       []gin.H{{"product_id": prod.ID, "quantity": 1}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "uuid", decode[dto.ErrorResponse](t, w).Fields["SaleRequest.customer_id"])
	})

	t.Run("fração de centavo", func(t *testing.T) {
		w := api.do(http.MethodPost, "/sales", tokenA, gin.H{
			"customer_id": cust.ID,
			"items":       []gin.H{{"product_name": "Serviço", "quantity": 3, "unit_price": "0.335"}},
		})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "money", decode[dto.ErrorResponse](t, w).Fields["SaleRequest.items[0].unit_price"])
	})

	w = api.do(http.MethodPost, "/collections", tokenA, gin.H{"customer_id": cust.ID, "method": "card", "amount": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assertDecimal(t, "97", decode[dto.CollectionResponse](t, w).Amount)

	w = api.do(http.MethodGet, "/customers/"+cust.ID+"/balance", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assertDecimal(t, "93", decode[dto.BalanceResponse](t, w).Balance)

	w = api.do(http.MethodGet, "/customers/"+cust.ID+"/ledger?order=desc", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	ledger := decode[dto.LedgerResponse](t, w)
	require.Len(t, ledger.Entries, 2)
	assert.Equal(t, "desc", ledger.Order)

	t.Run("outro tenant não enxerga o cliente", func(t *testing.T) {
		tenantB := api.createTenant("Loja B", "22.222.222/0001-22")
		w := api.do(http.MethodGet, "/customers/"+cust.ID, api.token(tenantB), nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	w = api.do(http.MethodPost, "/sales/"+sale.ID+"/cancel", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	w = api.do(http.MethodPost, "/sales/"+sale.ID+"/cancel", tokenA, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = api.do(http.MethodGet, "/products/"+prod.ID, tokenA, nil)
	assert.Equal(t, 5, decode[dto.ProductResponse](t, w).Stock)

	w = api.do(http.MethodGet, "/customers/"+cust.ID+"/summary", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	summary := decode[dto.SummaryResponse](t, w)
	assertDecimal(t, "-97", summary.Balance)
	assertDecimal(t, "0", summary.Sales)
	assert.Equal(t, "normal", summary.Risk.State)
}

func TestReturnsAndQuote(t *testing.T) {
	api := newAPIClient(t)
	tenantA := api.createTenant("Loja A", "11.111.111/0001-11")
	tokenA := api.token(tenantA)

	w := api.do(http.MethodPost, "/customers", tokenA, gin.H{"name": "João", "risk_limit": 100})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	cust := decode[dto.CustomerResponse](t, w)
	assert.Equal(t, "bronze", cust.Segment)

	w = api.do(http.MethodPost, "/sales", tokenA, gin.H{
		"customer_id": cust.ID,
		"items":       []gin.H{{"product_name": "Serviço de entrega", "quantity": 1, "unit_price": 90}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/customers/"+cust.ID+"/risk", tokenA, nil)
	require.Equal(t, http.StatusOK, w.Code)
	risk := decode[dto.RiskResponse](t, w)
	assert.Equal(t, "critical", risk.State)
	assert.True(t, risk.Warning)

	w = api.do(http.MethodPost, "/returns", tokenA, gin.H{
		"customer_id": cust.ID,
		"items":       []gin.H{{"product_name": "Serviço de entrega", "quantity": 1, "unit_price": 40}},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ret := decode[dto.ReturnResponse](t, w)

	w = api.do(http.MethodGet, "/customers/"+cust.ID+"/balance", tokenA, nil)
	assertDecimal(t, "50", decode[dto.BalanceResponse](t, w).Balance)

	w = api.do(http.MethodDelete, "/returns/"+ret.ID, tokenA, nil)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = api.do(http.MethodGet, "/returns/"+ret.ID, tokenA, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = api.do(http.MethodPost, "/products", tokenA, gin.H{"name": "Feijão", "price": 10, "initial_stock": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	prod := decode[dto.ProductResponse](t, w)

	w = api.do(http.MethodPost, "/sales/quote", tokenA, gin.H{
		"segment": "silver",
		"items":   []gin.H{{"product_id": prod.ID, "quantity": 3}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = api.do(http.MethodGet, "/products/"+prod.ID, tokenA, nil)
	assert.Equal(t, 1, decode[dto.ProductResponse](t, w).Stock)
}
