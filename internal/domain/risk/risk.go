// Package risk classifica o risco de crédito de um cliente comparando o saldo
// atual com o limite de risco configurado.
package risk

import (
	"github.com/shopspring/decimal"
)

// State representa a classificação de risco
type State string

const (
	StateDisabled State = "disabled" // Limite não configurado
	StateNormal   State = "normal"
	StateCritical State = "critical" // Saldo a partir de 80% do limite
	StateExceeded State = "exceeded" // Saldo igual ou acima do limite
)

// CriticalRatio é a fração do limite a partir da qual o risco é crítico
var CriticalRatio = decimal.RequireFromString("0.8")

// Assessment é o resultado da avaliação; nunca é persistido
type Assessment struct {
	State   State           `json:"state"`
	Balance decimal.Decimal `json:"balance"`
	Limit   decimal.Decimal `json:"limit"`
	Ratio   decimal.Decimal `json:"ratio"` // balance / limit, zero quando desativado
}

// Evaluate classifica o saldo em relação ao limite
func Evaluate(balance, limit decimal.Decimal) Assessment {
	a := Assessment{State: StateDisabled, Balance: balance, Limit: limit, Ratio: decimal.Zero}
	if !limit.IsPositive() {
		return a
	}

	a.Ratio = balance.Div(limit)
	switch {
	case balance.GreaterThanOrEqual(limit):
		a.State = StateExceeded
	case a.Ratio.GreaterThanOrEqual(CriticalRatio):
		a.State = StateCritical
	default:
		a.State = StateNormal
	}
	return a
}

// IsWarning indica se o estado deve gerar alerta
func (a Assessment) IsWarning() bool {
	return a.State == StateCritical || a.State == StateExceeded
}
