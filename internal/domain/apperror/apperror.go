// Package apperror define a taxonomia de erros do núcleo de vendas e estoque.
//
// Erros de domínio (cliente não encontrado, itens vazios, estoque insuficiente...)
// são declarados nos seus próprios pacotes e desembrulham para uma das categorias
// abaixo, permitindo que a camada de API trate apenas as categorias.
package apperror

import "errors"

// Categorias de erro
var (
	// ErrNotFound indica registro ausente ou pertencente a outro tenant
	ErrNotFound = errors.New("registro não encontrado")

	// ErrInvalidInput indica dados de entrada inválidos
	ErrInvalidInput = errors.New("dados inválidos")

	// ErrInsufficientStock indica estoque insuficiente para a operação
	ErrInsufficientStock = errors.New("estoque insuficiente")

	// ErrConflict indica uma transição de estado não permitida
	ErrConflict = errors.New("operação conflita com o estado atual")
)

// kindError associa uma mensagem específica a uma categoria
type kindError struct {
	kind error
	msg  string
}

func (e *kindError) Error() string { return e.msg }

func (e *kindError) Unwrap() error { return e.kind }

// New cria um erro de domínio com a mensagem informada que desembrulha para kind
func New(kind error, msg string) error {
	return &kindError{kind: kind, msg: msg}
}

// Kind retorna a categoria do erro, ou nil quando o erro não pertence à taxonomia
func Kind(err error) error {
	for _, kind := range []error{ErrNotFound, ErrInvalidInput, ErrInsufficientStock, ErrConflict} {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return nil
}
