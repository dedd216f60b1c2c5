package owners

import (
	"context"
	"strings"
	"time"

	"registro-pet/internal/payload"
	"registro-pet/internal/ports/mail"
	"registro-pet/internal/validation"
)

// Payload é o corpo de criação/atualização já tipado, com presença por chave.
type Payload struct {
	Nome        payload.Field[string]
	Data        payload.Field[time.Time]
	Rua         payload.Field[string]
	Bairro      payload.Field[string]
	Numero      payload.Field[string]
	Cep         payload.Field[string]
	Cidade      payload.Field[string]
	Estado      payload.Field[string]
	Complemento payload.Field[string]
	Funcao      payload.Field[string]
	Email       payload.Field[string]
	Senha       payload.Field[string]
}

const (
	msgRequired  = "Campo obrigatório."
	msgImmutable = "Este campo não pode ser alterado."
	msgBadDate   = "Data inválida (use AAAA-MM-DD)."
	msgBadValue  = "Valor inválido."
)

// parsePayload tipa o corpo cru. Erros de tipo viram erros de campo,
// nunca exceções.
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

	str("nome", &p.Nome)
	str("rua", &p.Rua)
	str("bairro", &p.Bairro)
	str("numero", &p.Numero)
	str("cep", &p.Cep)
	str("cidade", &p.Cidade)
	str("estado", &p.Estado)
	str("complemento", &p.Complemento)
	str("funcao", &p.Funcao)
	str("email", &p.Email)
	str("senha", &p.Senha)

	if f, ok := raw.Date("data"); ok {
		p.Data = f
	} else {
		errs.Add("data", msgBadDate)
	}

	return p, errs
}

// normalize limpa os campos presentes: trim geral, email minúsculo,
// estado maiúsculo, funcao minúscula. Senha é preservada como veio.
func normalize(p *Payload) {
	trim := func(f *payload.Field[string]) {
		if v, ok := f.Get(); ok {
			t := strings.TrimSpace(v)
			f.Val = &t
		}
	}

	trim(&p.Nome)
	trim(&p.Rua)
	trim(&p.Bairro)
	trim(&p.Numero)
	trim(&p.Cep)
	trim(&p.Cidade)
	trim(&p.Estado)
	trim(&p.Complemento)
	trim(&p.Funcao)
	trim(&p.Email)

	if v, ok := p.Email.Get(); ok {
		lower := strings.ToLower(v)
		p.Email.Val = &lower
	}
	if v, ok := p.Estado.Get(); ok {
		upper := strings.ToUpper(v)
		p.Estado.Val = &upper
	}
	if v, ok := p.Funcao.Get(); ok {
		lower := strings.ToLower(v)
		p.Funcao.Val = &lower
	}
}

// validate aplica as regras de campo. Com requireAll (create) todo campo
// obrigatório precisa vir preenchido; em update só os presentes são checados,
// mas zerar explicitamente um campo obrigatório também falha.
func validate(ctx context.Context, p Payload, requireAll bool, mx mail.MXChecker, today time.Time) validation.Errors {
	errs := validation.Errors{}

	checkText := func(key string, f payload.Field[string], required bool, rule func(string) (bool, string)) {
		v, ok := f.Get()
		blank := !ok || v == ""
		if blank {
			if required && (requireAll || f.Set) {
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

	letters := func(v string) (bool, string) {
		return validation.OnlyLetters.MatchString(v), "Use apenas letras e espaços."
	}

	checkText("nome", p.Nome, true, letters)
	checkText("rua", p.Rua, true, letters)
	checkText("bairro", p.Bairro, true, letters)
	checkText("cidade", p.Cidade, true, letters)
	checkText("estado", p.Estado, true, func(v string) (bool, string) {
		return validation.TwoLetterState.MatchString(v), "Use a sigla de 2 letras (ex.: SP)."
	})
	checkText("cep", p.Cep, true, func(v string) (bool, string) {
		return validation.CEP.MatchString(v), "CEP inválido (use 00000-000)."
	})
	checkText("numero", p.Numero, true, func(v string) (bool, string) {
		return validation.OnlyDigits.MatchString(v), "Número deve conter apenas dígitos."
	})
	checkText("funcao", p.Funcao, true, func(v string) (bool, string) {
		return v == string(FuncaoTutor) || v == string(FuncaoOng), "Função deve ser Tutor ou ONG."
	})
	checkText("senha", p.Senha, true, nil)

	checkText("email", p.Email, true, func(v string) (bool, string) {
		at := strings.IndexByte(v, '@')
		if at <= 0 || at == len(v)-1 {
			return false, "Email inválido."
		}
		domain := strings.TrimSpace(v[at+1:])
		if !mx.HasMX(ctx, domain) {
			return false, "O domínio do e-mail não existe ou não recebe e-mails (sem registro MX)."
		}
		return true, ""
	})

	if v, ok := p.Data.Get(); ok {
		if validation.Age(v, today) < 18 {
			errs.Add("data", "Você precisa ter 18 anos ou mais para se cadastrar.")
		}
	} else if requireAll || p.Data.Set {
		errs.Add("data", msgRequired)
	}

	return errs
}

// checkImmutable valida a regra do email em update: reenviar o mesmo valor
// (ou em branco) é tolerado; valor diferente é rejeitado. A chave é descartada
// depois da checagem para não ser reaplicada.
func checkImmutable(p *Payload, current Owner) validation.Errors {
	if !p.Email.Set {
		return nil
	}
	v, _ := p.Email.Get()
	if v != "" && v != current.Email {
		return validation.Errors{"email": {msgImmutable}}
	}
	p.Email.Clear()
	return nil
}

// apply grava no destino os campos presentes e não-nulos do payload.
// Senha fica por conta do serviço (precisa do hash).
func apply(dst *Owner, p Payload) {
	setStr := func(dst *string, f payload.Field[string]) {
		if v, ok := f.Get(); ok {
			*dst = v
		}
	}

	setStr(&dst.Nome, p.Nome)
	setStr(&dst.Rua, p.Rua)
	setStr(&dst.Bairro, p.Bairro)
	setStr(&dst.Numero, p.Numero)
	setStr(&dst.Cep, p.Cep)
	setStr(&dst.Cidade, p.Cidade)
	setStr(&dst.Estado, p.Estado)
	setStr(&dst.Email, p.Email)

	if v, ok := p.Funcao.Get(); ok {
		dst.Funcao = Funcao(v)
	}

	if v, ok := p.Data.Get(); ok {
		dst.Data = v
	}
	// complemento é opcional: presente-e-nulo limpa o campo
	if p.Complemento.Set {
		if v, ok := p.Complemento.Get(); ok {
			dst.Complemento = v
		} else {
			dst.Complemento = ""
		}
	}
}
