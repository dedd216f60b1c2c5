package pets

import (
	"context"
	"time"

	"registro-pet/internal/payload"
	"registro-pet/internal/validation"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create valida o payload completo e persiste o pet sob o usuário.
// A duplicidade de nome é pré-checada aqui e reforçada pela constraint do
// store — a pré-checagem sozinha é vulnerável a corrida.
func (s *Service) Create(ctx context.Context, ownerID int64, raw payload.Raw) (Pet, error) {
	p, errs := parsePayload(raw)
	normalize(&p)

	errs.Merge(validateFields(p, true))
	nasc, cheg := effectiveDates(p, nil)
	errs.Merge(validateDates(nasc, cheg, true, s.now()))
	if errs.Any() {
		return Pet{}, validation.Fail(errs)
	}

	nome, _ := p.Nome.Get()
	exists, err := s.repo.NameExists(ctx, ownerID, nome)
	if err != nil {
		return Pet{}, err
	}
	if exists {
		return Pet{}, ErrNameTaken
	}

	pet := Pet{
		UsuarioID: ownerID,
		CriadoEm:  s.now(),
	}
	apply(&pet, p)

	return s.repo.Create(ctx, pet)
}

// Update aplica um payload parcial: imutáveis verificados e descartados,
// demais chaves restritas ao allow-list, regras de data avaliadas sobre os
// valores efetivos (payload quando presente, instância gravada quando não).
func (s *Service) Update(ctx context.Context, petID, ownerID int64, raw payload.Raw) (Pet, error) {
	current, err := s.getOwned(ctx, petID, ownerID)
	if err != nil {
		return Pet{}, err
	}

	p, errs := parsePayload(raw)
	normalize(&p)

	if imm := checkImmutable(&p, current); imm.Any() {
		return Pet{}, validation.Fail(imm)
	}
	p = editableOnly(p)

	errs.Merge(validateFields(p, false))

	// a regra "pelo menos uma data" só dispara em update se o payload
	// tocou em alguma data (após o descarte da imutável)
	touched := p.DataChegada.Set
	nasc, cheg := effectiveDates(p, &current)
	errs.Merge(validateDates(nasc, cheg, touched, s.now()))
	if errs.Any() {
		return Pet{}, validation.Fail(errs)
	}

	updated := current
	apply(&updated, p)

	if err := s.repo.Update(ctx, updated); err != nil {
		return Pet{}, err
	}
	return updated, nil
}

func (s *Service) Get(ctx context.Context, petID, ownerID int64) (Pet, error) {
	return s.getOwned(ctx, petID, ownerID)
}

func (s *Service) ListByOwner(ctx context.Context, ownerID int64) ([]Pet, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Delete remove o pet; as vacinas caem junto por cascata do store.
func (s *Service) Delete(ctx context.Context, petID, ownerID int64) error {
	if _, err := s.getOwned(ctx, petID, ownerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, petID)
}

// OwnerOf expõe o dono de um pet para o módulo de vacinas sem criar ciclo de
// import entre os domínios.
func (s *Service) OwnerOf(ctx context.Context, petID int64) (int64, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return 0, err
	}
	return p.UsuarioID, nil
}

// getOwned devolve o pet quando pertence ao usuário; pet existente de outro
// usuário é ErrForbidden, não 404.
func (s *Service) getOwned(ctx context.Context, petID, ownerID int64) (Pet, error) {
	p, err := s.repo.GetByID(ctx, petID)
	if err != nil {
		return Pet{}, err
	}
	if p.UsuarioID != ownerID {
		return Pet{}, ErrForbidden
	}
	return p, nil
}
