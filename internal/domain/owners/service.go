package owners

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"registro-pet/internal/payload"
	"registro-pet/internal/ports/mail"
	"registro-pet/internal/validation"
)

type Service struct {
	repo Repository
	mx   mail.MXChecker
	now  func() time.Time
}

func NewService(repo Repository, mx mail.MXChecker) *Service {
	return &Service{
		repo: repo,
		mx:   mx,
		now:  time.Now,
	}
}

// Register cria a conta: normaliza, valida (todos os campos obrigatórios),
// checa duplicidade de email e persiste com a senha já hasheada.
// A constraint única do store é a segunda linha de defesa contra corrida
// entre a pré-checagem e o commit.
func (s *Service) Register(ctx context.Context, raw payload.Raw) (Owner, error) {
	p, errs := parsePayload(raw)
	normalize(&p)
	errs.Merge(validate(ctx, p, true, s.mx, s.now()))
	if errs.Any() {
		return Owner{}, validation.Fail(errs)
	}

	email, _ := p.Email.Get()
	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return Owner{}, ErrEmailTaken
	} else if !errors.Is(err, ErrNotFound) {
		return Owner{}, err
	}

	senha, _ := p.Senha.Get()
	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return Owner{}, err
	}

	var o Owner
	apply(&o, p)
	o.SenhaHash = string(hash)

	return s.repo.Create(ctx, o)
}

// Update aplica um payload parcial sobre a conta: email é imutável,
// os demais campos presentes são validados e mesclados.
func (s *Service) Update(ctx context.Context, id int64, raw payload.Raw) (Owner, error) {
	current, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Owner{}, err
	}

	p, errs := parsePayload(raw)
	normalize(&p)

	if imm := checkImmutable(&p, current); imm.Any() {
		return Owner{}, validation.Fail(imm)
	}

	errs.Merge(validate(ctx, p, false, s.mx, s.now()))
	if errs.Any() {
		return Owner{}, validation.Fail(errs)
	}

	updated := current
	apply(&updated, p)

	if senha, ok := p.Senha.Get(); ok {
		hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
		if err != nil {
			return Owner{}, err
		}
		updated.SenhaHash = string(hash)
	}

	if err := s.repo.Update(ctx, updated); err != nil {
		return Owner{}, err
	}
	return updated, nil
}

func (s *Service) GetByID(ctx context.Context, id int64) (Owner, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) List(ctx context.Context) ([]Owner, error) {
	return s.repo.List(ctx)
}

// Delete remove a conta; pets e vacinas caem junto por cascata do store.
func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// Authenticate valida as credenciais de login.
// Falhas de formato viram *validation.Error; email desconhecido vira
// ErrNotFound e senha errada vira ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, email, senha string) (Owner, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	if email == "" || senha == "" {
		return Owner{}, validation.Fail(validation.Errors{"_": {"Email e senha são obrigatórios."}})
	}
	at := strings.IndexByte(email, '@')
	if at <= 0 || at == len(email)-1 {
		return Owner{}, validation.Fail(validation.Errors{"email": {"Email inválido."}})
	}
	if !s.mx.HasMX(ctx, email[at+1:]) {
		return Owner{}, validation.Fail(validation.Errors{"email": {"O domínio do e-mail não existe ou não recebe e-mails (sem registro MX)."}})
	}

	o, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return Owner{}, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(o.SenhaHash), []byte(senha)); err != nil {
		return Owner{}, ErrInvalidCredentials
	}
	return o, nil
}
