package vaccinations

import (
	"context"
	"errors"
	"time"

	"registro-pet/internal/payload"
	"registro-pet/internal/validation"
)

// PetOwnership expõe o dono de um pet. Implementado por pets.Service
// (evita ciclo de imports entre os domínios).
type PetOwnership interface {
	OwnerOf(ctx context.Context, petID int64) (int64, error)
}

type Service struct {
	repo Repository
	pets PetOwnership
	now  func() time.Time
}

func NewService(repo Repository, pets PetOwnership) *Service {
	return &Service{
		repo: repo,
		pets: pets,
		now:  time.Now,
	}
}

// Create valida o payload completo e registra a vacina sob o pet do usuário.
func (s *Service) Create(ctx context.Context, petID, callerID int64, raw payload.Raw) (Vaccination, error) {
	if err := s.authorizePet(ctx, petID, callerID); err != nil {
		return Vaccination{}, err
	}

	p, errs := parsePayload(raw)
	normalize(&p)

	errs.Merge(validateFields(p, true))
	fab, apl, ven, rev := effective(p, nil)
	errs.Merge(validateDates(fab, apl, ven, rev, s.now()))
	if errs.Any() {
		return Vaccination{}, validation.Fail(errs)
	}

	v := Vaccination{PetID: petID}
	apply(&v, p)

	return s.repo.Create(ctx, v)
}

// Update aplica um payload parcial. As regras de data rodam sobre os valores
// efetivos: mudar só a fabricação ainda é validado contra a aplicação gravada.
func (s *Service) Update(ctx context.Context, petID, vacID, callerID int64, raw payload.Raw) (Vaccination, error) {
	current, err := s.getUnderPet(ctx, petID, vacID, callerID)
	if err != nil {
		return Vaccination{}, err
	}

	p, errs := parsePayload(raw)
	normalize(&p)

	if imm := checkImmutable(&p, current); imm.Any() {
		return Vaccination{}, validation.Fail(imm)
	}
	p = editableOnly(p)

	errs.Merge(validateFields(p, false))
	fab, apl, ven, rev := effective(p, &current)
	errs.Merge(validateDates(fab, apl, ven, rev, s.now()))
	if errs.Any() {
		return Vaccination{}, validation.Fail(errs)
	}

	updated := current
	apply(&updated, p)

	if err := s.repo.Update(ctx, updated); err != nil {
		return Vaccination{}, err
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, petID, vacID, callerID int64) (Vaccination, error) {
	return s.getUnderPet(ctx, petID, vacID, callerID)
}

func (s *Service) ListByPet(ctx context.Context, petID, callerID int64) ([]Vaccination, error) {
	if err := s.authorizePet(ctx, petID, callerID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

func (s *Service) Delete(ctx context.Context, petID, vacID, callerID int64) error {
	if _, err := s.getUnderPet(ctx, petID, vacID, callerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, vacID)
}

// authorizePet confirma que o pet existe e pertence ao chamador.
func (s *Service) authorizePet(ctx context.Context, petID, callerID int64) error {
	ownerID, err := s.pets.OwnerOf(ctx, petID)
	if err != nil {
		return ErrNotFound
	}
	if ownerID != callerID {
		return ErrForbidden
	}
	return nil
}

func (s *Service) getUnderPet(ctx context.Context, petID, vacID, callerID int64) (Vaccination, error) {
	if err := s.authorizePet(ctx, petID, callerID); err != nil {
		return Vaccination{}, err
	}

	v, err := s.repo.GetByID(ctx, vacID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Vaccination{}, ErrNotFound
		}
		return Vaccination{}, err
	}
	if v.PetID != petID {
		return Vaccination{}, ErrNotFound
	}
	return v, nil
}
