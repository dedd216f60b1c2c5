package owners

import (
	"errors"
	"time"
)

// Funcao identifica o papel da conta.
type Funcao string

const (
	FuncaoTutor Funcao = "tutor"
	FuncaoOng   Funcao = "ong"
)

// Owner representa a conta de um tutor ou de uma ONG.
// SenhaHash guarda somente o hash bcrypt; nunca é serializado.
type Owner struct {
	ID int64

	Nome string
	Data time.Time // data de nascimento

	Rua         string
	Bairro      string
	Numero      string
	Cep         string
	Cidade      string
	Estado      string
	Complemento string

	Funcao Funcao
	Email  string

	SenhaHash string
}

var (
	ErrNotFound           = errors.New("usuário não encontrado")
	ErrForbidden          = errors.New("acesso negado")
	ErrEmailTaken         = errors.New("email já cadastrado")
	ErrInvalidCredentials = errors.New("credenciais inválidas")
)
