package document

import "errors"

// Error taxonomy for lifecycle operations. Guards run before any write, so
// every failure below leaves the aggregate untouched.
var (
	ErrNotFound          = errors.New("documento não encontrado")
	ErrForbidden         = errors.New("acesso negado")
	ErrInvalidState      = errors.New("estado do documento inválido para esta operação")
	ErrDependencyFailure = errors.New("falha em serviço externo")
)
