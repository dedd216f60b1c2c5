package memory

import (
	"context"
	"sort"

	"registro-pet/internal/domain/vaccinations"
)

type vaccinationsRepo struct {
	s *Store
}

func (r *vaccinationsRepo) Create(_ context.Context, v vaccinations.Vaccination) (vaccinations.Vaccination, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.nextVacID++
	v.ID = r.s.nextVacID
	r.s.vaccinations[v.ID] = v
	return v, nil
}

func (r *vaccinationsRepo) Update(_ context.Context, v vaccinations.Vaccination) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[v.ID]; !ok {
		return vaccinations.ErrNotFound
	}
	r.s.vaccinations[v.ID] = v
	return nil
}

func (r *vaccinationsRepo) GetByID(_ context.Context, id int64) (vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	v, ok := r.s.vaccinations[id]
	if !ok {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}
	return v, nil
}

func (r *vaccinationsRepo) ListByPet(_ context.Context, petID int64) ([]vaccinations.Vaccination, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.s.vaccinations {
		if v.PetID == petID {
			out = append(out, v)
		}
	}

	// aplicação mais recente primeiro
	sort.Slice(out, func(i, j int) bool {
		return out[i].Aplicacao.After(out[j].Aplicacao)
	})
	return out, nil
}

func (r *vaccinationsRepo) Delete(_ context.Context, id int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.vaccinations[id]; !ok {
		return vaccinations.ErrNotFound
	}
	delete(r.s.vaccinations, id)
	return nil
}
