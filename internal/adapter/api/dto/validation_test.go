package dto

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyRule(t *testing.T) {
	RegisterValidators()

	price := decimal.RequireFromString("0.335")
	req := SaleRequest{
		CustomerID: "8f14e45f-ceea-4e67-a1e0-5f3b8d3e9c11",
		Items:      []SaleItemRequest{{ProductName: "Serviço", Quantity: 3, UnitPrice: &price}},
	}
	err := binding.Validator.ValidateStruct(req)
	require.Error(t, err)
	assert.Equal(t, "money", ValidationFields(err)["SaleRequest.items[0].unit_price"])

	price = decimal.RequireFromString("0.34")
	assert.NoError(t, binding.Validator.ValidateStruct(req))

	col := CollectionRequest{CustomerID: req.CustomerID, Amount: decimal.RequireFromString("10.001")}
	err = binding.Validator.ValidateStruct(col)
	require.Error(t, err)
	assert.Equal(t, "money", ValidationFields(err)["CollectionRequest.amount"])
}

func TestCustomerIDMustBeUUID(t *testing.T) {
	RegisterValidators()

	err := binding.Validator.ValidateStruct(CollectionRequest{CustomerID: "abc", Amount: decimal.NewFromInt(10)})
	require.Error(t, err)
	assert.Equal(t, "uuid", ValidationFields(err)["CollectionRequest.customer_id"])
}
