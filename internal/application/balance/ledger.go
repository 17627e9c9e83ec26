package balance

import (
	"fmt"
	"sort"
	"time"

	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/shopspring/decimal"
)

// EntryType identifica a origem de um lançamento do extrato
type EntryType string

const (
	EntrySale       EntryType = "sale"
	EntryCollection EntryType = "collection"
	EntryReturn     EntryType = "return"
)

// Order define a ordem de exibição do extrato
type Order string

const (
	OrderAscending  Order = "asc"
	OrderDescending Order = "desc"
)

// ParseOrder converte um texto em Order; qualquer valor diferente de desc é ascendente
func ParseOrder(s string) Order {
	if Order(s) == OrderDescending {
		return OrderDescending
	}
	return OrderAscending
}

// Entry é uma linha do extrato do cliente
type Entry struct {
	Date           time.Time       `json:"date"`
	CreatedAt      time.Time       `json:"created_at"`
	Type           EntryType       `json:"type"`
	ReferenceID    string          `json:"reference_id"`
	Description    string          `json:"description"`
	Debit          decimal.Decimal `json:"debit"`
	Credit         decimal.Decimal `json:"credit"`
	RunningBalance decimal.Decimal `json:"running_balance"`
}

// BuildLedger junta vendas, recebimentos e devoluções, ordena por (data,
// criação) e acumula o saldo corrente em ordem ascendente. Vendas canceladas
// são ignoradas. Com OrderDescending a lista é invertida somente depois do
// acúmulo, preservando o saldo de cada linha.
func BuildLedger(sales []*sale.Sale, collections []*collection.Collection, returns []*salesreturn.Return, order Order) []Entry {
	entries := make([]Entry, 0, len(sales)+len(collections)+len(returns))

	for _, s := range sales {
		if !s.IsActive() {
			continue
		}
		entries = append(entries, Entry{
			Date:        s.Date,
			CreatedAt:   s.CreatedAt,
			Type:        EntrySale,
			ReferenceID: s.ID,
			Description: fmt.Sprintf("Venda (%d %s)", len(s.Items), plural(len(s.Items), "item", "itens")),
			Debit:       s.TotalAmount,
			Credit:      decimal.Zero,
		})
	}

	for _, c := range collections {
		desc := "Recebimento - " + c.Method.Label()
		if c.Note != "" {
			desc += ": " + c.Note
		}
		entries = append(entries, Entry{
			Date:        c.Date,
			CreatedAt:   c.CreatedAt,
			Type:        EntryCollection,
			ReferenceID: c.ID,
			Description: desc,
			Debit:       decimal.Zero,
			Credit:      c.Amount,
		})
	}

	for _, r := range returns {
		entries = append(entries, Entry{
			Date:        r.Date,
			CreatedAt:   r.CreatedAt,
			Type:        EntryReturn,
			ReferenceID: r.ID,
			Description: fmt.Sprintf("Devolução (%d %s)", len(r.Items), plural(len(r.Items), "item", "itens")),
			Debit:       decimal.Zero,
			Credit:      r.TotalAmount,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Date.Equal(entries[j].Date) {
			return entries[i].Date.Before(entries[j].Date)
		}
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})

	running := decimal.Zero
	for i := range entries {
		running = running.Add(entries[i].Debit).Sub(entries[i].Credit)
		entries[i].RunningBalance = running
	}

	if order == OrderDescending {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}

	return entries
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
