package vaccinations

import (
	"errors"
	"time"
)

// Vaccination é uma dose registrada na carteira de um pet.
// Nome e data de aplicação são imutáveis depois do cadastro.
type Vaccination struct {
	ID    int64
	PetID int64

	Nome       string
	Fabricante string

	Aplicacao   time.Time
	Fabricacao  time.Time
	Vencimento  time.Time
	Revacinacao time.Time

	Lote        string
	DoseTamanho string
	Observacoes *string
}

var (
	ErrNotFound  = errors.New("vacina não encontrada")
	ErrForbidden = errors.New("pet de outro usuário")
)
