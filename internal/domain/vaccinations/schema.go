package vaccinations

import (
	"strings"
	"time"

	"registro-pet/internal/payload"
	"registro-pet/internal/validation"
)

// Payload é o corpo de criação/atualização já tipado, com presença por chave.
type Payload struct {
	Nome        payload.Field[string]
	Fabricante  payload.Field[string]
	Lote        payload.Field[string]
	DoseTamanho payload.Field[string]
	Observacoes payload.Field[string]

	Aplicacao   payload.Field[time.Time]
	Fabricacao  payload.Field[time.Time]
	Vencimento  payload.Field[time.Time]
	Revacinacao payload.Field[time.Time]
}

const (
	msgRequired  = "Campo obrigatório."
	msgImmutable = "Este campo não pode ser alterado."
	msgBadDate   = "Data inválida (use AAAA-MM-DD)."
	msgBadValue  = "Valor inválido."
	msgFuture    = "Não pode ser no futuro."
)

func parsePayload(raw payload.Raw) (Payload, validation.Errors) {
	errs := validation.Errors{}
	var p Payload

	str := func(key string, dst *payload.Field[string]) {
		f, ok := raw.String(key)
		if !ok {
			errs.Add(key, msgBadValue)
		}
		*dst = f
	}
	date := func(key string, dst *payload.Field[time.Time]) {
		f, ok := raw.Date(key)
		if !ok {
			errs.Add(key, msgBadDate)
		}
		*dst = f
	}

	str("nome", &p.Nome)
	str("fabricante", &p.Fabricante)
	str("lote", &p.Lote)
	str("dose_tamanho", &p.DoseTamanho)
	str("observacoes", &p.Observacoes)
	date("aplicacao", &p.Aplicacao)
	date("fabricacao", &p.Fabricacao)
	date("vencimento", &p.Vencimento)
	date("revacinacao", &p.Revacinacao)

	return p, errs
}

func normalize(p *Payload) {
	trim := func(f *payload.Field[string]) {
		if v, ok := f.Get(); ok {
			t := strings.TrimSpace(v)
			f.Val = &t
		}
	}

	trim(&p.Nome)
	trim(&p.Fabricante)
	trim(&p.Lote)
	trim(&p.DoseTamanho)

	// observações em branco equivalem a não informado
	if v, ok := p.Observacoes.Get(); ok {
		t := strings.TrimSpace(v)
		if t == "" {
			p.Observacoes.Val = nil
		} else {
			p.Observacoes.Val = &t
		}
	}
}

func validateFields(p Payload, requireAll bool) validation.Errors {
	errs := validation.Errors{}

	checkText := func(key string, f payload.Field[string]) {
		v, ok := f.Get()
		if (!ok || v == "") && (requireAll || f.Set) {
			errs.Add(key, msgRequired)
		}
	}
	checkDate := func(key string, f payload.Field[time.Time]) {
		if _, ok := f.Get(); !ok && (requireAll || f.Set) {
			errs.Add(key, msgRequired)
		}
	}

	checkText("nome", p.Nome)
	checkText("fabricante", p.Fabricante)
	checkText("lote", p.Lote)
	checkText("dose_tamanho", p.DoseTamanho)
	checkDate("aplicacao", p.Aplicacao)
	checkDate("fabricacao", p.Fabricacao)
	checkDate("vencimento", p.Vencimento)
	checkDate("revacinacao", p.Revacinacao)

	return errs
}

// effective computa os valores pós-mescla das quatro datas.
func effective(p Payload, current *Vaccination) (fab, apl, ven, rev *time.Time) {
	pick := func(f payload.Field[time.Time], stored *time.Time) *time.Time {
		if f.Set {
			return f.Val
		}
		return stored
	}

	var sFab, sApl, sVen, sRev *time.Time
	if current != nil {
		sFab, sApl, sVen, sRev = &current.Fabricacao, &current.Aplicacao, &current.Vencimento, &current.Revacinacao
	}

	return pick(p.Fabricacao, sFab), pick(p.Aplicacao, sApl), pick(p.Vencimento, sVen), pick(p.Revacinacao, sRev)
}

// validateDates aplica as regras cruzadas sobre os valores efetivos,
// coletando todas as violações:
//   - fabricação e aplicação não podem estar no futuro
//   - aplicação >= fabricação
//   - vencimento >= fabricação e >= aplicação
//   - revacinação > aplicação
func validateDates(fab, apl, ven, rev *time.Time, today time.Time) validation.Errors {
	errs := validation.Errors{}

	if fab != nil && fab.After(today) {
		errs.Add("fabricacao", msgFuture)
	}
	if apl != nil && apl.After(today) {
		errs.Add("aplicacao", msgFuture)
	}

	if fab != nil && apl != nil && apl.Before(*fab) {
		errs.Add("aplicacao", "Aplicação não pode ser anterior à fabricação.")
	}

	if fab != nil && ven != nil && ven.Before(*fab) {
		errs.Add("vencimento", "Vencimento deve ser após fabricação.")
	}
	if apl != nil && ven != nil && ven.Before(*apl) {
		errs.Add("vencimento", "Vencimento deve ser após aplicação.")
	}

	if apl != nil && rev != nil && !rev.After(*apl) {
		errs.Add("revacinacao", "Revacinação deve ser posterior à aplicação.")
	}

	return errs
}

// checkImmutable valida nome e aplicação em update: valor igual ao gravado
// (ou em branco) é no-op; diferente é rejeitado. Chaves descartadas depois.
func checkImmutable(p *Payload, current Vaccination) validation.Errors {
	errs := validation.Errors{}

	if p.Nome.Set {
		if v, ok := p.Nome.Get(); ok && v != "" && v != current.Nome {
			errs.Add("nome", msgImmutable)
		}
		p.Nome.Clear()
	}

	if p.Aplicacao.Set {
		if v, ok := p.Aplicacao.Get(); ok && !v.Equal(current.Aplicacao) {
			errs.Add("aplicacao", msgImmutable)
		}
		p.Aplicacao.Clear()
	}

	return errs
}

// editableOnly restringe o payload ao allow-list de update.
func editableOnly(p Payload) Payload {
	return Payload{
		Fabricante:  p.Fabricante,
		Fabricacao:  p.Fabricacao,
		Vencimento:  p.Vencimento,
		Lote:        p.Lote,
		DoseTamanho: p.DoseTamanho,
		Revacinacao: p.Revacinacao,
		Observacoes: p.Observacoes,
	}
}

func apply(dst *Vaccination, p Payload) {
	setStr := func(field *string, f payload.Field[string]) {
		if v, ok := f.Get(); ok {
			*field = v
		}
	}
	setDate := func(field *time.Time, f payload.Field[time.Time]) {
		if v, ok := f.Get(); ok {
			*field = v
		}
	}

	setStr(&dst.Nome, p.Nome)
	setStr(&dst.Fabricante, p.Fabricante)
	setStr(&dst.Lote, p.Lote)
	setStr(&dst.DoseTamanho, p.DoseTamanho)
	setDate(&dst.Aplicacao, p.Aplicacao)
	setDate(&dst.Fabricacao, p.Fabricacao)
	setDate(&dst.Vencimento, p.Vencimento)
	setDate(&dst.Revacinacao, p.Revacinacao)

	if p.Observacoes.Set {
		dst.Observacoes = p.Observacoes.Val
	}
}
