package vaccinations

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"registro-pet/internal/payload"
	"registro-pet/internal/validation"
)

type fakeRepo struct {
	byID   map[int64]Vaccination
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]Vaccination{}}
}

func (r *fakeRepo) Create(_ context.Context, v Vaccination) (Vaccination, error) {
	r.nextID++
	v.ID = r.nextID
	r.byID[v.ID] = v
	return v, nil
}

func (r *fakeRepo) Update(_ context.Context, v Vaccination) error {
	if _, ok := r.byID[v.ID]; !ok {
		return ErrNotFound
	}
	r.byID[v.ID] = v
	return nil
}

func (r *fakeRepo) GetByID(_ context.Context, id int64) (Vaccination, error) {
	v, ok := r.byID[id]
	if !ok {
		return Vaccination{}, ErrNotFound
	}
	return v, nil
}

func (r *fakeRepo) ListByPet(_ context.Context, petID int64) ([]Vaccination, error) {
	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
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

// fakeOwnership mapeia pet → dono sem envolver o módulo de pets.
type fakeOwnership map[int64]int64

func (f fakeOwnership) OwnerOf(_ context.Context, petID int64) (int64, error) {
	owner, ok := f[petID]
	if !ok {
		return 0, ErrNotFound
	}
	return owner, nil
}

var hoje = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func newTestService(repo Repository, pets PetOwnership) *Service {
	svc := NewService(repo, pets)
	svc.now = func() time.Time { return hoje }
	return svc
}

func rawBody(t *testing.T, body string) payload.Raw {
	t.Helper()
	raw, err := payload.Decode(strings.NewReader(body))
	require.NoError(t, err)
	return raw
}

func fieldsOf(t *testing.T, err error) validation.Errors {
	t.Helper()
	var verr *validation.Error
	require.ErrorAs(t, err, &verr)
	return verr.Fields
}

const validVacBody = `{
	"nome": "Antirrábica",
	"fabricante": "VetLab",
	"fabricacao": "2026-01-05",
	"aplicacao": "2026-02-10",
	"vencimento": "2027-01-05",
	"revacinacao": "2027-02-10",
	"lote": "L-2026-01",
	"dose_tamanho": "1ml",
	"observacoes": "sem reação"
}`

func TestCreate(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	v, err := svc.Create(context.Background(), 10, 1, rawBody(t, validVacBody))
	require.NoError(t, err)
	require.Equal(t, int64(1), v.ID)
	require.Equal(t, int64(10), v.PetID)
	require.Equal(t, "Antirrábica", v.Nome)
	require.NotNil(t, v.Observacoes)
}

func TestCreate_MissingFields(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	_, err := svc.Create(context.Background(), 10, 1, rawBody(t, `{}`))
	fields := fieldsOf(t, err)

	for _, k := range []string{"nome", "fabricante", "lote", "dose_tamanho", "aplicacao", "fabricacao", "vencimento", "revacinacao"} {
		require.Contains(t, fields[k], "Campo obrigatório.", "campo %s", k)
	}
	// observações é opcional
	require.NotContains(t, fields, "observacoes")
}

func TestCreate_DateRules(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	body := strings.NewReplacer(
		`"2026-01-05"`, `"2026-03-01"`, // fabricação depois da aplicação
		`"2027-01-05"`, `"2026-02-01"`, // vencimento antes das duas
		`"2027-02-10"`, `"2026-02-10"`, // revacinação igual à aplicação
	).Replace(validVacBody)

	_, err := svc.Create(context.Background(), 10, 1, rawBody(t, body))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["aplicacao"], "Aplicação não pode ser anterior à fabricação.")
	require.Contains(t, fields["vencimento"], "Vencimento deve ser após fabricação.")
	require.Contains(t, fields["vencimento"], "Vencimento deve ser após aplicação.")
	require.Contains(t, fields["revacinacao"], "Revacinação deve ser posterior à aplicação.")
}

func TestCreate_NoFutureDates(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	body := strings.NewReplacer(
		`"2026-01-05"`, `"2026-10-01"`,
		`"2026-02-10"`, `"2026-11-10"`,
	).Replace(validVacBody)

	_, err := svc.Create(context.Background(), 10, 1, rawBody(t, body))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["fabricacao"], "Não pode ser no futuro.")
	require.Contains(t, fields["aplicacao"], "Não pode ser no futuro.")
}

func TestUpdate_EffectiveDates(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	v, err := svc.Create(context.Background(), 10, 1, rawBody(t, validVacBody))
	require.NoError(t, err)

	// fabricação nova é validada contra a aplicação gravada
	_, err = svc.Update(context.Background(), 10, v.ID, 1, rawBody(t, `{"fabricacao": "2026-03-01"}`))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["aplicacao"], "Aplicação não pode ser anterior à fabricação.")

	updated, err := svc.Update(context.Background(), 10, v.ID, 1, rawBody(t, `{"fabricacao": "2026-02-01", "lote": "L-2026-02"}`))
	require.NoError(t, err)
	require.Equal(t, "2026-02-01", updated.Fabricacao.Format("2006-01-02"))
	require.Equal(t, "L-2026-02", updated.Lote)
	require.Equal(t, v.Aplicacao, updated.Aplicacao)
}

func TestUpdate_Immutables(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	v, err := svc.Create(context.Background(), 10, 1, rawBody(t, validVacBody))
	require.NoError(t, err)

	// reenviar os valores atuais é no-op tolerado
	_, err = svc.Update(context.Background(), 10, v.ID, 1, rawBody(t, `{"nome": "Antirrábica", "aplicacao": "2026-02-10"}`))
	require.NoError(t, err)

	_, err = svc.Update(context.Background(), 10, v.ID, 1, rawBody(t, `{"nome": "V10", "observacoes": "x"}`))
	fields := fieldsOf(t, err)
	require.Contains(t, fields["nome"], "Este campo não pode ser alterado.")
	require.NotContains(t, fields, "observacoes")

	_, err = svc.Update(context.Background(), 10, v.ID, 1, rawBody(t, `{"aplicacao": "2026-02-11"}`))
	fields = fieldsOf(t, err)
	require.Contains(t, fields["aplicacao"], "Este campo não pode ser alterado.")
}

func TestUpdate_ClearsObservacoes(t *testing.T) {
	svc := newTestService(newFakeRepo(), fakeOwnership{10: 1})

	v, err := svc.Create(context.Background(), 10, 1, rawBody(t, validVacBody))
	require.NoError(t, err)

	updated, err := svc.Update(context.Background(), 10, v.ID, 1, rawBody(t, `{"observacoes": ""}`))
	require.NoError(t, err)
	require.Nil(t, updated.Observacoes)
}

func TestAuthorization(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo, fakeOwnership{10: 1, 20: 2})

	v, err := svc.Create(context.Background(), 10, 1, rawBody(t, validVacBody))
	require.NoError(t, err)

	// pet de outro usuário
	_, err = svc.ListByPet(context.Background(), 10, 2)
	require.ErrorIs(t, err, ErrForbidden)

	// pet inexistente
	_, err = svc.Create(context.Background(), 99, 1, rawBody(t, validVacBody))
	require.ErrorIs(t, err, ErrNotFound)

	// vacina fora do pet da URL é escondida
	_, err = svc.Get(context.Background(), 20, v.ID, 2)
	require.ErrorIs(t, err, ErrNotFound)

	err = svc.Delete(context.Background(), 10, v.ID, 2)
	require.ErrorIs(t, err, ErrForbidden)
}
