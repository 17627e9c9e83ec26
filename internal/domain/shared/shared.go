// Package shared reúne utilitários usados por mais de um agregado.
package shared

import (
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/shopspring/decimal"
)

// MoneyPlaces é o número de casas decimais dos valores monetários
const MoneyPlaces = 2

// ErrMoneyPrecision ocorre quando um valor monetário informado tem frações de centavo
var ErrMoneyPrecision = apperror.New(apperror.ErrInvalidInput, "valor monetário aceita no máximo 2 casas decimais")

// IsMoney indica se d cabe em MoneyPlaces casas sem arredondamento
func IsMoney(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(MoneyPlaces))
}

// DateOf retorna o dia civil de t (meia-noite UTC), usado como data contábil
func DateOf(t time.Time) time.Time {
	if t.IsZero() {
		t = time.Now()
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Sum soma os valores informados
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}
