package repository

import (
	"errors"
	"fmt"
	"testing"

	"github.com/hugohenrick/erp-vendas/internal/domain/apperror"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsNotFound(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"sem linhas", pgx.ErrNoRows, true},
		{"uuid malformado", fmt.Errorf("scan: %w", &pgconn.PgError{Code: "22P02"}), true},
		{"violação de unicidade", &pgconn.PgError{Code: pgUniqueViolation}, false},
		{"outro erro", errors.New("conexão perdida"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isNotFound(tt.err))
		})
	}
}

func TestIsConcurrencyAbort(t *testing.T) {
	assert.True(t, isConcurrencyAbort(fmt.Errorf("commit: %w", &pgconn.PgError{Code: "40P01"})))
	assert.True(t, isConcurrencyAbort(&pgconn.PgError{Code: "40001"}))
	assert.False(t, isConcurrencyAbort(&pgconn.PgError{Code: pgUniqueViolation}))
	assert.False(t, isConcurrencyAbort(nil))

	assert.ErrorIs(t, ErrConcurrentUpdate, apperror.ErrConflict)
}
