package memory

import (
	"context"
	"strings"

	"registro-pet/internal/domain/owners"
)

type ownersRepo struct {
	s *Store
}

func (r *ownersRepo) Create(_ context.Context, o owners.Owner) (owners.Owner, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// constraint única de email, como no postgres
	for _, existing := range r.s.owners {
		if strings.EqualFold(existing.Email, o.Email) {
			return owners.Owner{}, owners.ErrEmailTaken
		}
	}

	r.s.nextOwnerID++
	o.ID = r.s.nextOwnerID
	r.s.owners[o.ID] = o
	return o, nil
}

func (r *ownersRepo) Update(_ context.Context, o owners.Owner) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[o.ID]; !ok {
		return owners.ErrNotFound
	}
	r.s.owners[o.ID] = o
	return nil
}

func (r *ownersRepo) GetByID(_ context.Context, id int64) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	o, ok := r.s.owners[id]
	if !ok {
		return owners.Owner{}, owners.ErrNotFound
	}
	return o, nil
}

func (r *ownersRepo) GetByEmail(_ context.Context, email string) (owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, o := range r.s.owners {
		if strings.EqualFold(o.Email, email) {
			return o, nil
		}
	}
	return owners.Owner{}, owners.ErrNotFound
}

func (r *ownersRepo) List(_ context.Context) ([]owners.Owner, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]owners.Owner, 0, len(r.s.owners))
	for _, o := range r.s.owners {
		out = append(out, o)
	}
	sortByID(out, func(o owners.Owner) int64 { return o.ID })
	return out, nil
}

func (r *ownersRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.owners[id]; !ok {
		return owners.ErrNotFound
	}

	// cascata: pets do usuário e vacinas desses pets
	for petID, p := range r.s.pets {
		if p.UsuarioID == id {
			r.s.deletePetLocked(petID)
		}
	}
	delete(r.s.owners, id)
	return nil
}
