package owners

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"registro-pet/internal/payload"
	"registro-pet/internal/ports/mail"
	"registro-pet/internal/validation"
)

// fakeRepo replica o contrato do store em memória, sem cascata.
type fakeRepo struct {
	byID   map[int64]Owner
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]Owner{}}
}

func (r *fakeRepo) Create(_ context.Context, o Owner) (Owner, error) {
	for _, cur := range r.byID {
		if strings.EqualFold(cur.Email, o.Email) {
			return Owner{}, ErrEmailTaken
		}
	}
	r.nextID++
	o.ID = r.nextID
	r.byID[o.ID] = o
	return o, nil
}

func (r *fakeRepo) Update(_ context.Context, o Owner) error {
	if _, ok := r.byID[o.ID]; !ok {
		return ErrNotFound
	}
	r.byID[o.ID] = o
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (Owner, error) {
	o, ok := r.byID[id]
	if !ok {
		return Owner{}, ErrNotFound
	}
	return o, nil
}

func (r *fakeRepo) GetByEmail(_ context.Context, email string) (Owner, error) {
	for _, o := range r.byID {
		if strings.EqualFold(o.Email, email) {
			return o, nil
		}
	}
	return Owner{}, ErrNotFound
}

func (r *fakeRepo) List(_ context.Context) ([]Owner, error) {
	out := make([]Owner, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var (
	mxOK   = mail.MXCheckerFunc(func(context.Context, string) bool { return true })
	mxFail = mail.MXCheckerFunc(func(context.Context, string) bool { return false })
)

var hoje = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, mx mail.MXChecker) *Service {
	svc := NewService(repo, mx)
	svc.now = func() time.Time { return hoje }
	return svc
}

func rawBody(t *testing.T, body string) payload.Raw {
	t.Helper()
	raw, err := payload.Decode(strings.NewReader(body))
	require.NoError(t, err)
	return raw
}

const validRegisterBody = `{
	"nome": "Ana Silva",
	"data": "1990-05-10",
	"rua": "Rua das Flores",
	"bairro": "Centro",
	"numero": "123",
	"cep": "01000-000",
	"cidade": "São Paulo",
	"estado": "sp",
	"complemento": "Apto 2",
	"funcao": "Tutor",
	"email": "Ana@Exemplo.com.br",
	"senha": "s3nh4-forte"
}`

func fieldsOf(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

func TestRegister(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	o, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)
	require.Equal(t, int64(1), o.ID)

	// normalização: email minúsculo, estado maiúsculo, funcao minúscula
	require.Equal(t, "ana@exemplo.com.br", o.Email)
	require.Equal(t, "SP", o.Estado)
	require.Equal(t, FuncaoTutor, o.Funcao)

	// a senha em claro nunca é gravada
	require.NotEqual(t, "s3nh4-forte", o.SenhaHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(o.SenhaHash), []byte("s3nh4-forte")))
}

func TestRegister_CollectsFieldErrors(t *testing.T) {
	svc := newTestService(newFakeRepo(), mxOK)

	raw := rawBody(t, `{
		"nome": "Ana 2",
		"data": "2010-01-01",
		"rua": "Rua das Flores",
		"bairro": "Centro",
		"numero": "12a",
		"cep": "1000-00",
		"cidade": "São Paulo",
		"estado": "SAO",
		"funcao": "gerente",
		"email": "ana@exemplo.com.br",
		"senha": ""
	}`)

	_, err := svc.Register(context.Background(), raw)
	fields := fieldsOf(t, err)

	// todas as violações chegam juntas, nenhuma aborta as demais
	require.Contains(t, fields["nome"], "Use apenas letras e espaços.")
	require.Contains(t, fields["numero"], "Número deve conter apenas dígitos.")
	require.Contains(t, fields["cep"], "CEP inválido (use 00000-000).")
	require.Contains(t, fields["estado"], "Use a sigla de 2 letras (ex.: SP).")
	require.Contains(t, fields["funcao"], "Função deve ser Tutor ou ONG.")
	require.Contains(t, fields["senha"], "Campo obrigatório.")
	require.Contains(t, fields["data"], "Você precisa ter 18 anos ou mais para se cadastrar.")
}

func TestRegister_MissingFields(t *testing.T) {
	svc := newTestService(newFakeRepo(), mxOK)

	_, err := svc.Register(context.Background(), rawBody(t, `{}`))
	fields := fieldsOf(t, err)

	for _, k := range []string{"nome", "data", "rua", "bairro", "numero", "cep", "cidade", "estado", "funcao", "email", "senha"} {
		require.Contains(t, fields[k], "Campo obrigatório.", "campo %s", k)
	}
	// complemento é opcional
	require.NotContains(t, fields, "complemento")
}

func TestRegister_NoMX(t *testing.T) {
	svc := newTestService(newFakeRepo(), mxFail)

	_, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["email"], "O domínio do e-mail não existe ou não recebe e-mails (sem registro MX).")
}

func TestRegister_EmailTaken(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	_, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestUpdate_Partial(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	o, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), o.ID, rawBody(t, `{"cidade": "Campinas"}`))
	require.NoError(t, err)
	require.Equal(t, "Campinas", updated.Cidade)

	// os demais campos permanecem
	require.Equal(t, o.Nome, updated.Nome)
	require.Equal(t, o.Email, updated.Email)
	require.Equal(t, o.SenhaHash, updated.SenhaHash)
}

func TestUpdate_EmailImmutable(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	o, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)

	// reenviar o mesmo email (ou em branco) é no-op tolerado
	_, err = svc.Update(context.Background(), o.ID, rawBody(t, `{"email": "ana@exemplo.com.br", "cidade": "Campinas"}`))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), o.ID, rawBody(t, `{"email": null}`))
	require.NoError(t, err)

	// valor diferente é rejeitado antes das demais validações
	_, err = svc.Update(context.Background(), o.ID, rawBody(t, `{"email": "outra@exemplo.com.br", "cidade": "Rua 9"}`))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["email"], "Este campo não pode ser alterado.")
	require.NotContains(t, fields, "cidade")
}

func TestUpdate_BlankRequiredField(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	o, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)

	// zerar explicitamente um obrigatório falha, mesmo em update parcial
	_, err = svc.Update(context.Background(), o.ID, rawBody(t, `{"nome": ""}`))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["nome"], "Campo obrigatório.")
}

func TestUpdate_ClearsComplemento(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	o, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)
	require.Equal(t, "Apto 2", o.Complemento)

	updated, err := svc.Update(context.Background(), o.ID, rawBody(t, `{"complemento": null}`))
	require.NoError(t, err)
	require.Empty(t, updated.Complemento)
}

func TestUpdate_RehashesSenha(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	o, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), o.ID, rawBody(t, `{"senha": "nova-senha"}`))
	require.NoError(t, err)
	require.NotEqual(t, o.SenhaHash, updated.SenhaHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.SenhaHash), []byte("nova-senha")))
}

func TestAuthenticate(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, mxOK)

	_, err := svc.Register(context.Background(), rawBody(t, validRegisterBody))
	require.NoError(t, err)

	o, err := svc.Authenticate(context.Background(), " Ana@Exemplo.com.br ", "s3nh4-forte")
	require.NoError(t, err)
	require.Equal(t, "ana@exemplo.com.br", o.Email)

	_, err = svc.Authenticate(context.Background(), "ana@exemplo.com.br", "errada")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Authenticate(context.Background(), "ninguem@exemplo.com.br", "s3nh4-forte")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Authenticate(context.Background(), "", "")
	fields := fieldsOf(t, err)
	require.Contains(t, fields["_"], "Email e senha são obrigatórios.")

	_, err = svc.Authenticate(context.Background(), "sem-arroba", "x")
	fields = fieldsOf(t, err)
	require.Contains(t, fields["email"], "Email inválido.")
}

func TestAuthenticate_NoMX(t *testing.T) {
	svc := newTestService(newFakeRepo(), mxFail)

	_, err := svc.Authenticate(context.Background(), "ana@dominio-inexistente.zz", "x")
	fields := fieldsOf(t, err)
	require.Contains(t, fields["email"], "O domínio do e-mail não existe ou não recebe e-mails (sem registro MX).")
	require.False(t, errors.Is(err, ErrNotFound))
}
