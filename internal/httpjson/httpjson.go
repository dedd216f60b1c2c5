// Package httpjson concentra os helpers de resposta compartilhados pelos
// handlers. Todas as falhas seguem o shape {"errors": {campo: [msg, ...]}}.
package httpjson

import (
	"encoding/json"
	"net/http"

	"registro-pet/internal/validation"
)

func Write(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteErrors responde o mapa de erros de validação completo.
func WriteErrors(w http.ResponseWriter, status int, errs validation.Errors) {
	Write(w, status, map[string]any{"errors": errs})
}

// WriteFieldError responde um erro único de campo no mesmo shape agregado.
func WriteFieldError(w http.ResponseWriter, status int, field, msg string) {
	WriteErrors(w, status, validation.Errors{field: {msg}})
}

// Shorthands para as falhas fora do fluxo de validação. A chave "_" marca
// erros que não pertencem a um campo específico.

func Unauthorized(w http.ResponseWriter) {
	WriteFieldError(w, http.StatusUnauthorized, "_", "Não autorizado")
}

func Forbidden(w http.ResponseWriter) {
	WriteFieldError(w, http.StatusForbidden, "_", "Acesso negado.")
}

func NotFound(w http.ResponseWriter) {
	WriteFieldError(w, http.StatusNotFound, "_", "Não encontrado.")
}

func BadBody(w http.ResponseWriter) {
	WriteFieldError(w, http.StatusBadRequest, "_", "JSON inválido.")
}

// Internal nunca vaza detalhe interno; o handler loga o erro original.
func Internal(w http.ResponseWriter) {
	WriteFieldError(w, http.StatusInternalServerError, "_", "Erro interno.")
}
