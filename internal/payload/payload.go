// Package payload lê corpos JSON preservando a informação de presença de
// cada chave. Um PATCH/PUT parcial precisa distinguir "chave ausente" de
// "chave enviada com null/vazio" — um struct com ponteiros não basta.
package payload

import (
	"encoding/json"
	"errors"
	"io"
	"strings"
	"time"
)

// Field carrega um valor opcional vindo do payload.
// Set indica que a chave veio no JSON; Val == nil indica null (ou vazio
// normalizado para ausente).
type Field[T any] struct {
	Set bool
	Val *T
}

// Get devolve o valor quando presente e não-nulo.
func (f Field[T]) Get() (T, bool) {
	if !f.Set || f.Val == nil {
		var zero T
		return zero, false
	}
	return *f.Val, true
}

// Clear zera o campo (usado para descartar chaves imutáveis já verificadas).
func (f *Field[T]) Clear() {
	f.Set = false
	f.Val = nil
}

// Raw é o corpo JSON decodificado chave a chave, sem interpretar valores.
type Raw map[string]json.RawMessage

var ErrBadBody = errors.New("corpo JSON inválido")

// Decode lê um único objeto JSON do corpo. Limita a 1 MB.
func Decode(r io.Reader) (Raw, error) {
	dec := json.NewDecoder(io.LimitReader(r, 1<<20))
	var raw Raw
	if err := dec.Decode(&raw); err != nil {
		return nil, ErrBadBody
	}
	if dec.More() {
		return nil, ErrBadBody
	}
	if raw == nil {
		raw = Raw{}
	}
	return raw, nil
}

// String extrai um campo texto. Aceita string ou null; qualquer outro tipo
// devolve ok=false para o chamador registrar erro de campo.
func (r Raw) String(key string) (Field[string], bool) {
	v, exists := r[key]
	if !exists {
		return Field[string]{}, true
	}
	if string(v) == "null" {
		return Field[string]{Set: true}, true
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return Field[string]{Set: true}, false
	}
	return Field[string]{Set: true, Val: &s}, true
}

// Date extrai um campo data no formato AAAA-MM-DD.
// String vazia e null contam como presente-porém-nulo (ver normalizador).
func (r Raw) Date(key string) (Field[time.Time], bool) {
	v, exists := r[key]
	if !exists {
		return Field[time.Time]{}, true
	}
	if string(v) == "null" {
		return Field[time.Time]{Set: true}, true
	}
	var s string
	if err := json.Unmarshal(v, &s); err != nil {
		return Field[time.Time]{Set: true}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return Field[time.Time]{Set: true}, true
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return Field[time.Time]{Set: true}, false
	}
	return Field[time.Time]{Set: true, Val: &t}, true
}

// NumberString extrai um campo numérico preservando o literal enviado.
// "7.0" e 7.0 chegam como "7.0": a regra de casas decimais do peso depende
// do texto original, não do float resultante.
func (r Raw) NumberString(key string) (Field[string], bool) {
	v, exists := r[key]
	if !exists {
		return Field[string]{}, true
	}
	if string(v) == "null" {
		return Field[string]{Set: true}, true
	}
	if len(v) > 0 && v[0] == '"' {
		var s string
		if err := json.Unmarshal(v, &s); err != nil {
			return Field[string]{Set: true}, false
		}
		if strings.TrimSpace(s) == "" {
			return Field[string]{Set: true}, true
		}
		return Field[string]{Set: true, Val: &s}, true
	}
	lit := string(v)
	return Field[string]{Set: true, Val: &lit}, true
}
