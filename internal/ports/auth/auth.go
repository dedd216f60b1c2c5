package auth

import (
	"context"
	"errors"
)

// Claims representa a informação extraída do token.
type Claims struct {
	OwnerID int64
	Email   string
}

// ErrUnauthenticated cobre token ausente, inválido ou expirado.
// O core não distingue entre os três casos.
var ErrUnauthenticated = errors.New("não autenticado")

// Issuer emite um token assinado para o usuário.
type Issuer interface {
	Issue(ownerID int64, email string) (string, error)
}

// Verifier valida um token e devolve os claims ou ErrUnauthenticated.
type Verifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}
