package pets

import "context"

type Repository interface {
	// Create atribui o ID e devolve o registro gravado.
	// Violação da unicidade (usuario_id, lower(nome)) vira ErrNameTaken.
	Create(ctx context.Context, p Pet) (Pet, error)
	Update(ctx context.Context, p Pet) error
	GetByID(ctx context.Context, id int64) (Pet, error)
	// ListByOwner ordena por lower(nome).
	ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error)
	// NameExists compara case-insensitive dentro do mesmo usuário.
	NameExists(ctx context.Context, ownerID int64, nome string) (bool, error)
	// Delete remove o pet e, em cascata, suas vacinas.
	Delete(ctx context.Context, id int64) error
}
