package validation

import (
	"fmt"
	"sort"
	"strings"
)

// Errors acumula mensagens de validação por campo.
// O shape serializado é {"errors": {campo: [msg, ...]}}.
type Errors map[string][]string

func (e Errors) Add(field, msg string) {
	e[field] = append(e[field], msg)
}

// Merge incorpora as mensagens de outro mapa, preservando as já existentes.
func (e Errors) Merge(other Errors) {
	for field, msgs := range other {
		e[field] = append(e[field], msgs...)
	}
}

func (e Errors) Any() bool {
	return len(e) > 0
}

// Error embrulha um Errors para atravessar a camada de serviço como error.
// O handler desembrulha com errors.As e responde 400 com o mapa completo.
type Error struct {
	Fields Errors
}

func (e *Error) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validação falhou: %s", strings.Join(fields, ", "))
}

// Fail devolve um *Error se houver mensagens acumuladas, senão nil.
func Fail(fields Errors) error {
	if !fields.Any() {
		return nil
	}
	return &Error{Fields: fields}
}
