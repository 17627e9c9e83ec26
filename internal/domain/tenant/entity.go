package tenant

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyName      = errors.New("nome não pode ser vazio")
	ErrEmptyDocument  = errors.New("documento não pode ser vazio")
	ErrTenantNotFound = errors.New("tenant não encontrado")

	// ErrDuplicateDocument ocorre quando já existe um tenant com o mesmo documento
	ErrDuplicateDocument = errors.New("tenant com mesmo documento já existe")
)

// Status representa o estado do tenant
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusBlocked  Status = "blocked"
)

// Tenant representa uma empresa no sistema multi-tenant.
// Todos os clientes, produtos e lançamentos pertencem a exatamente um tenant.
type Tenant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Document  string    `json:"document"` // CNPJ da empresa
	Status    Status    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewTenant cria um novo tenant ativo
func NewTenant(name, document string) (*Tenant, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	document = strings.TrimSpace(document)
	if document == "" {
		return nil, ErrEmptyDocument
	}

	now := time.Now()
	return &Tenant{
		ID:        uuid.New().String(),
		Name:      name,
		Document:  document,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// IsActive verifica se o tenant está ativo
func (t *Tenant) IsActive() bool {
	return t.Status == StatusActive
}

// Deactivate desativa o tenant
func (t *Tenant) Deactivate() {
	t.Status = StatusInactive
	t.UpdatedAt = time.Now()
}

// Block bloqueia o tenant
func (t *Tenant) Block() {
	t.Status = StatusBlocked
	t.UpdatedAt = time.Now()
}
