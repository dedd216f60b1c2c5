package vaccinations

import "context"

type Repository interface {
	// Create atribui o ID e devolve o registro gravado.
	Create(ctx context.Context, v Vaccination) (Vaccination, error)
	Update(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id int64) (Vaccination, error)
	// ListByPet ordena por data de aplicação decrescente.
	ListByPet(ctx context.Context, petID int64) ([]Vaccination, error)
	Delete(ctx context.Context, id int64) error
}
