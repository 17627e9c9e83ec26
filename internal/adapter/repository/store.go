// Package repository implementa a persistência em PostgreSQL com pgx. Toda
// consulta filtra por tenant_id e as escritas de uma operação de negócio
// compartilham a mesma pgx.Tx.
package repository

import (
	"context"
	"errors"

	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/hugohenrick/erp-vendas/internal/domain/collection"
	"github.com/hugohenrick/erp-vendas/internal/domain/customer"
	"github.com/hugohenrick/erp-vendas/internal/domain/product"
	"github.com/hugohenrick/erp-vendas/internal/domain/sale"
	"github.com/hugohenrick/erp-vendas/internal/domain/salesreturn"
	"github.com/hugohenrick/erp-vendas/internal/domain/store"
	"github.com/hugohenrick/erp-vendas/internal/domain/tenant"
	"github.com/hugohenrick/erp-vendas/internal/infrastructure/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	// pgUniqueViolation é o código SQLSTATE de violação de unicidade
	pgUniqueViolation = "23505"
	// pgInvalidTextRepresentation ocorre, entre outros, com um UUID malformado
	pgInvalidTextRepresentation = "22P02"
	pgSerializationFailure      = "40001"
	pgDeadlockDetected          = "40P01"
)

// ErrConcurrentUpdate indica que o Postgres abortou a transação por disputa
// com outra operação; a operação pode ser repetida.
var ErrConcurrentUpdate = apperror.New(apperror.ErrConflict, "operação concorrente, tente novamente")

// querier é satisfeito por pgx.Tx e *pgxpool.Pool
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implementa store.TxManager sobre o PostgreSQL
type Store struct {
	db *database.PostgresDB
}

// NewStore cria uma nova instância de Store
func NewStore(db *database.PostgresDB) *Store {
	return &Store{db: db}
}

// Transaction implementa store.TxManager
func (s *Store) Transaction(ctx context.Context, fn func(ctx context.Context, repos store.Repositories) error) error {
	err := s.db.Transaction(ctx, func(tx pgx.Tx) error {
		return fn(ctx, &repositories{q: tx})
	})
	if isConcurrencyAbort(err) {
		return ErrConcurrentUpdate
	}
	return err
}

// Tenants retorna o repositório de tenants, que opera fora de transações
func (s *Store) Tenants() tenant.Repository {
	return NewTenantRepository(s.db.Pool())
}

type repositories struct {
	q querier
}

func (r *repositories) Customers() customer.Repository     { return &CustomerRepository{db: r.q} }
func (r *repositories) Products() product.Repository       { return &ProductRepository{db: r.q} }
func (r *repositories) Sales() sale.Repository             { return &SaleRepository{db: r.q} }
func (r *repositories) Returns() salesreturn.Repository    { return &ReturnRepository{db: r.q} }
func (r *repositories) Collections() collection.Repository { return &CollectionRepository{db: r.q} }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}

// isNotFound indica que a linha não existe. Um id que não é UUID nunca
// identifica uma linha, então o erro de conversão do Postgres conta como ausência.
func isNotFound(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation
}

func isConcurrencyAbort(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && (pgErr.Code == pgDeadlockDetected || pgErr.Code == pgSerializationFailure)
}
