package pets

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"registro-pet/internal/payload"
	"registro-pet/internal/validation"
)

// Payload é o corpo de criação/atualização já tipado, com presença por chave.
// Peso fica como literal (string) porque a regra de casas decimais depende do
// texto enviado, não do float resultante.
type Payload struct {
	Nome                  payload.Field[string]
	DataNascimento        payload.Field[time.Time]
	DataChegada           payload.Field[time.Time]
	Especie               payload.Field[string]
	Porte                 payload.Field[string]
	Peso                  payload.Field[string]
	Raca                  payload.Field[string]
	CorPelagem            payload.Field[string]
	IdadeAproximada       payload.Field[string]
	OutrasCaracteristicas payload.Field[string]
}

const (
	msgRequired     = "Campo obrigatório."
	msgImmutable    = "Este campo não pode ser alterado."
	msgBadDate      = "Data inválida (use AAAA-MM-DD)."
	msgBadValue     = "Valor inválido."
	msgNeedAnyDate  = "Informe data de nascimento ou data de chegada."
	msgFutureDate   = "Não pode ser no futuro."
	msgArrivalOrder = "Data de chegada não pode ser anterior à data de nascimento."
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
	str("especie", &p.Especie)
	str("porte", &p.Porte)
	str("raca", &p.Raca)
	str("cor_pelagem", &p.CorPelagem)
	str("idade_aproximada", &p.IdadeAproximada)
	str("outras_caracteristicas", &p.OutrasCaracteristicas)
	date("data_nascimento", &p.DataNascimento)
	date("data_chegada", &p.DataChegada)

	if f, ok := raw.NumberString("peso"); ok {
		p.Peso = f
	} else {
		errs.Add("peso", msgBadValue)
	}

	return p, errs
}

// normalize limpa os campos presentes: trim nos textos, vírgula vira ponto no
// peso, opcionais em branco viram ausentes (nulos).
func normalize(p *Payload) {
	trim := func(f *payload.Field[string]) {
		if v, ok := f.Get(); ok {
			t := strings.TrimSpace(v)
			f.Val = &t
		}
	}

	trim(&p.Nome)
	trim(&p.Especie)
	trim(&p.Porte)
	trim(&p.Raca)
	trim(&p.CorPelagem)

	if v, ok := p.Peso.Get(); ok {
		t := strings.TrimSpace(strings.ReplaceAll(v, ",", "."))
		p.Peso.Val = &t
	}

	// opcionais: string vazia equivale a não informado
	blankToNil := func(f *payload.Field[string]) {
		if v, ok := f.Get(); ok {
			t := strings.TrimSpace(v)
			if t == "" {
				f.Val = nil
			} else {
				f.Val = &t
			}
		}
	}
	blankToNil(&p.IdadeAproximada)
	blankToNil(&p.OutrasCaracteristicas)
}

// validateFields aplica as regras por campo. Regras de data ficam em
// validateDates, que trabalha sobre os valores efetivos (pós-mescla).
func validateFields(p Payload, requireAll bool) validation.Errors {
	errs := validation.Errors{}

	checkText := func(key string, f payload.Field[string], rule func(string) (bool, string)) {
		v, ok := f.Get()
		if !ok || v == "" {
			if requireAll || f.Set {
				errs.Add(key, msgRequired)
			}
			return
		}
		if rule != nil {
			if valid, msg := rule(v); !valid {
				errs.Add(key, msg)
			}
		}
	}

	checkText("nome", p.Nome, nil)
	checkText("especie", p.Especie, nil)
	checkText("porte", p.Porte, nil)
	checkText("raca", p.Raca, nil)
	checkText("cor_pelagem", p.CorPelagem, func(v string) (bool, string) {
		return validation.LettersAndHyphen.MatchString(v), "Use apenas letras (sem números)."
	})
	checkText("peso", p.Peso, validatePeso)

	if v, ok := p.IdadeAproximada.Get(); ok {
		if !validation.OnlyDigits.MatchString(v) {
			errs.Add("idade_aproximada", "Use apenas dígitos.")
		}
	}

	return errs
}

// validatePeso exige decimal positivo COM parte fracionária. Valores inteiros
// são rejeitados mesmo escritos com casas ("7" e "7.0" falham, "7.5" passa).
func validatePeso(v string) (bool, string) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return false, "Peso inválido."
	}
	if d.Sign() <= 0 {
		return false, "Peso deve ser maior que zero."
	}
	if d.IsInteger() {
		return false, "Informe o peso com casas decimais (ex.: 7.5)."
	}
	return true, ""
}

// validateDates aplica as regras cruzadas sobre os valores efetivos.
// Todas as violações são coletadas juntas; nenhuma aborta as demais.
//   - pelo menos uma data (no create, ou no update que mexeu em datas)
//   - nenhuma no futuro
//   - chegada não pode ser anterior ao nascimento
func validateDates(nasc, cheg *time.Time, enforceAnyDate bool, today time.Time) validation.Errors {
	errs := validation.Errors{}

	if nasc == nil && cheg == nil {
		if enforceAnyDate {
			errs.Add("data_nascimento", msgNeedAnyDate)
			errs.Add("data_chegada", msgNeedAnyDate)
		}
		return errs
	}

	if nasc != nil && nasc.After(today) {
		errs.Add("data_nascimento", msgFutureDate)
	}
	if cheg != nil && cheg.After(today) {
		errs.Add("data_chegada", msgFutureDate)
	}
	if nasc != nil && cheg != nil && cheg.Before(*nasc) {
		errs.Add("data_chegada", msgArrivalOrder)
	}

	return errs
}

// checkImmutable valida nome e data de nascimento em update: reenviar o valor
// atual (ou em branco) é no-op tolerado; valor diferente é rejeitado. As
// chaves são descartadas após a checagem.
func checkImmutable(p *Payload, current Pet) validation.Errors {
	errs := validation.Errors{}

	if p.Nome.Set {
		if v, ok := p.Nome.Get(); ok && v != "" && v != current.Nome {
			errs.Add("nome", msgImmutable)
		}
		p.Nome.Clear()
	}

	if p.DataNascimento.Set {
		if v, ok := p.DataNascimento.Get(); ok {
			if current.DataNascimento == nil || !v.Equal(*current.DataNascimento) {
				errs.Add("data_nascimento", msgImmutable)
			}
		}
		p.DataNascimento.Clear()
	}

	return errs
}

// editableOnly restringe o payload ao allow-list de update; chaves fora dele
// são descartadas em silêncio (não é erro).
func editableOnly(p Payload) Payload {
	return Payload{
		Especie:               p.Especie,
		Porte:                 p.Porte,
		Peso:                  p.Peso,
		Raca:                  p.Raca,
		CorPelagem:            p.CorPelagem,
		IdadeAproximada:       p.IdadeAproximada,
		OutrasCaracteristicas: p.OutrasCaracteristicas,
		DataChegada:           p.DataChegada,
	}
}

// effectiveDates calcula o valor efetivo de cada data: payload quando a chave
// veio, senão o que está gravado na instância.
func effectiveDates(p Payload, current *Pet) (nasc, cheg *time.Time) {
	if p.DataNascimento.Set {
		nasc = p.DataNascimento.Val
	} else if current != nil {
		nasc = current.DataNascimento
	}
	if p.DataChegada.Set {
		cheg = p.DataChegada.Val
	} else if current != nil {
		cheg = current.DataChegada
	}
	return nasc, cheg
}

// apply grava no destino os campos presentes do payload já validado.
func apply(dst *Pet, p Payload) {
	setStr := func(field *string, f payload.Field[string]) {
		if v, ok := f.Get(); ok {
			*field = v
		}
	}

	setStr(&dst.Nome, p.Nome)
	setStr(&dst.Especie, p.Especie)
	setStr(&dst.Porte, p.Porte)
	setStr(&dst.Raca, p.Raca)
	setStr(&dst.CorPelagem, p.CorPelagem)

	if v, ok := p.Peso.Get(); ok {
		if d, err := decimal.NewFromString(v); err == nil {
			dst.Peso = d.InexactFloat64()
		}
	}

	if p.DataNascimento.Set {
		dst.DataNascimento = p.DataNascimento.Val
	}
	if p.DataChegada.Set {
		dst.DataChegada = p.DataChegada.Val
	}
	if p.IdadeAproximada.Set {
		dst.IdadeAproximada = p.IdadeAproximada.Val
	}
	if p.OutrasCaracteristicas.Set {
		dst.OutrasCaracteristicas = p.OutrasCaracteristicas.Val
	}
}
