package tenant

import "errors"

// ErrTenantNotSpecified ocorre quando um ID de tenant não é fornecido
var ErrTenantNotSpecified = errors.New("tenant ID não especificado")
