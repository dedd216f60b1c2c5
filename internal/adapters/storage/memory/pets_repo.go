package memory

import (
	"context"
	"sort"
	"strings"

	"registro-pet/internal/domain/pets"
)

type petsRepo struct {
	s *Store
}

func (r *petsRepo) Create(_ context.Context, p pets.Pet) (pets.Pet, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	// constraint única (usuario_id, lower(nome)), como no postgres
	if r.nameExistsLocked(p.UsuarioID, p.Nome) {
		return pets.Pet{}, pets.ErrNameTaken
	}

	r.s.nextPetID++
	p.ID = r.s.nextPetID
	r.s.pets[p.ID] = p
	return p, nil
}

func (r *petsRepo) Update(_ context.Context, p pets.Pet) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[p.ID]; !ok {
		return pets.ErrNotFound
	}
	r.s.pets[p.ID] = p
	return nil
}

func (r *petsRepo) GetByID(_ context.Context, id int64) (pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	p, ok := r.s.pets[id]
	if !ok {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (r *petsRepo) ListByOwner(_ context.Context, ownerID int64) ([]pets.Pet, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.s.pets {
		if p.UsuarioID == ownerID {
			out = append(out, p)
		}
	}

	sort.Slice(out, func(i, j int) bool {
		return strings.ToLower(out[i].Nome) < strings.ToLower(out[j].Nome)
	})
	return out, nil
}

func (r *petsRepo) NameExists(_ context.Context, ownerID int64, nome string) (bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return r.nameExistsLocked(ownerID, nome), nil
}

func (r *petsRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.pets[id]; !ok {
		return pets.ErrNotFound
	}
	r.s.deletePetLocked(id)
	return nil
}

func (r *petsRepo) nameExistsLocked(ownerID int64, nome string) bool {
	for _, p := range r.s.pets {
		if p.UsuarioID == ownerID && strings.EqualFold(p.Nome, nome) {
			return true
		}
	}
	return false
}
