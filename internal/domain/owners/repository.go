package owners

import "context"

type Repository interface {
	// Create atribui o ID e devolve o registro gravado.
	// Email duplicado (constraint do store) vira ErrEmailTaken.
	Create(ctx context.Context, o Owner) (Owner, error)
	Update(ctx context.Context, o Owner) error
	GetByID(ctx context.Context, id int64) (Owner, error)
	GetByEmail(ctx context.Context, email string) (Owner, error)
	List(ctx context.Context) ([]Owner, error)
	// Delete remove o usuário e, em cascata, seus pets e vacinas.
	Delete(ctx context.Context, id int64) error
}
