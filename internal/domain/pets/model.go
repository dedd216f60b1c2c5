package pets

import (
	"errors"
	"time"
)

// Pet é um animal registrado sob a guarda de um usuário.
// Nome é único por usuário (case-insensitive) e imutável depois do cadastro,
// assim como a data de nascimento.
type Pet struct {
	ID        int64
	UsuarioID int64

	Nome string

	DataNascimento *time.Time
	DataChegada    *time.Time

	Especie    string
	Porte      string
	Peso       float64
	Raca       string
	CorPelagem string

	IdadeAproximada       *string
	OutrasCaracteristicas *string

	CriadoEm time.Time
}

var (
	ErrNotFound  = errors.New("pet não encontrado")
	ErrForbidden = errors.New("pet de outro usuário")
	ErrNameTaken = errors.New("nome de pet já usado pelo usuário")
)
