package pets

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"registro-pet/internal/httpjson"
	"registro-pet/internal/middleware"
	"registro-pet/internal/payload"
	"registro-pet/internal/platform/logger"
	"registro-pet/internal/validation"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Post("/", createHandler(svc, log))
		pr.Get("/", listHandler(svc, log))
		pr.Get("/{petID}", getHandler(svc, log))
		pr.Put("/{petID}", updateHandler(svc, log))
		pr.Delete("/{petID}", deleteHandler(svc, log))
	})
}

type petResponse struct {
	ID                    int64   `json:"id"`
	UsuarioID             int64   `json:"usuario_id"`
	Nome                  string  `json:"nome"`
	DataNascimento        *string `json:"data_nascimento"`
	DataChegada           *string `json:"data_chegada"`
	Especie               string  `json:"especie"`
	Porte                 string  `json:"porte"`
	Peso                  float64 `json:"peso"`
	Raca                  string  `json:"raca"`
	CorPelagem            string  `json:"cor_pelagem"`
	IdadeAproximada       *string `json:"idade_aproximada"`
	OutrasCaracteristicas *string `json:"outras_caracteristicas"`
}

func toPetResponse(p Pet) petResponse {
	return petResponse{
		ID:                    p.ID,
		UsuarioID:             p.UsuarioID,
		Nome:                  p.Nome,
		DataNascimento:        formatDate(p.DataNascimento),
		DataChegada:           formatDate(p.DataChegada),
		Especie:               p.Especie,
		Porte:                 p.Porte,
		Peso:                  p.Peso,
		Raca:                  p.Raca,
		CorPelagem:            p.CorPelagem,
		IdadeAproximada:       p.IdadeAproximada,
		OutrasCaracteristicas: p.OutrasCaracteristicas,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format("2006-01-02")
	return &s
}

// @Summary Cadastrar pet do usuário logado
// @Router /pets [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}

		p, err := svc.Create(r.Context(), claims.OwnerID, raw)
		if err != nil {
			writePetError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toPetResponse(p))
	}
}

// @Summary Listar pets do usuário logado
// @Router /pets [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		items, err := svc.ListByOwner(r.Context(), claims.OwnerID)
		if err != nil {
			writePetError(w, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Buscar pet por id
// @Router /pets/{petID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		id, okID := petIDParam(r)
		if !okID {
			httpjson.NotFound(w)
			return
		}

		p, err := svc.Get(r.Context(), id, claims.OwnerID)
		if err != nil {
			writePetError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

// @Summary Atualizar pet (merge parcial; nome e nascimento imutáveis)
// @Router /pets/{petID} [put]
func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		id, okID := petIDParam(r)
		if !okID {
			httpjson.NotFound(w)
			return
		}

		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}

		p, err := svc.Update(r.Context(), id, claims.OwnerID, raw)
		if err != nil {
			writePetError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toPetResponse(p))
	}
}

// @Summary Excluir pet (cascata: vacinas)
// @Router /pets/{petID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		id, okID := petIDParam(r)
		if !okID {
			httpjson.NotFound(w)
			return
		}

		if err := svc.Delete(r.Context(), id, claims.OwnerID); err != nil {
			writePetError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func petIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "petID"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func writePetError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpjson.WriteErrors(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, ErrNameTaken):
		httpjson.WriteFieldError(w, http.StatusConflict, "nome", "Você já possui um pet com esse nome.")
	case errors.Is(err, ErrNotFound):
		httpjson.NotFound(w)
	case errors.Is(err, ErrForbidden):
		httpjson.Forbidden(w)
	default:
		log.Error("erro inesperado em pets", map[string]any{"err": err.Error()})
		httpjson.Internal(w)
	}
}
