package vaccinations

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
	r.Route("/pets/{petID}/vacinas", func(vr chi.Router) {
		vr.Post("/", createHandler(svc, log))
		vr.Get("/", listHandler(svc, log))
		vr.Get("/{vacinaID}", getHandler(svc, log))
		vr.Put("/{vacinaID}", updateHandler(svc, log))
		vr.Delete("/{vacinaID}", deleteHandler(svc, log))
	})
}

type vaccinationResponse struct {
	ID          int64   `json:"id"`
	PetID       int64   `json:"pet_id"`
	Nome        string  `json:"nome"`
	Fabricante  string  `json:"fabricante"`
	Aplicacao   string  `json:"aplicacao"`
	Fabricacao  string  `json:"fabricacao"`
	Vencimento  string  `json:"vencimento"`
	Revacinacao string  `json:"revacinacao"`
	Lote        string  `json:"lote"`
	DoseTamanho string  `json:"dose_tamanho"`
	Observacoes *string `json:"observacoes"`
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	day := func(t time.Time) string { return t.Format("2006-01-02") }
	return vaccinationResponse{
		ID:          v.ID,
		PetID:       v.PetID,
		Nome:        v.Nome,
		Fabricante:  v.Fabricante,
		Aplicacao:   day(v.Aplicacao),
		Fabricacao:  day(v.Fabricacao),
		Vencimento:  day(v.Vencimento),
		Revacinacao: day(v.Revacinacao),
		Lote:        v.Lote,
		DoseTamanho: v.DoseTamanho,
		Observacoes: v.Observacoes,
	}
}

// @Summary Registrar vacina do pet
// @Router /pets/{petID}/vacinas [post]
func createHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		petID, okID := idParam(r, "petID")
		if !okID {
			httpjson.NotFound(w)
			return
		}

		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}

		v, err := svc.Create(r.Context(), petID, claims.OwnerID, raw)
		if err != nil {
			writeVacError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusCreated, toVaccinationResponse(v))
	}
}

// @Summary Listar vacinas do pet
// @Router /pets/{petID}/vacinas [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		petID, okID := idParam(r, "petID")
		if !okID {
			httpjson.NotFound(w)
			return
		}

		items, err := svc.ListByPet(r.Context(), petID, claims.OwnerID)
		if err != nil {
			writeVacError(w, log, err)
			return
		}

		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Buscar vacina por id
// @Router /pets/{petID}/vacinas/{vacinaID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		petID, okPet := idParam(r, "petID")
		vacID, okVac := idParam(r, "vacinaID")
		if !okPet || !okVac {
			httpjson.NotFound(w)
			return
		}

		v, err := svc.Get(r.Context(), petID, vacID, claims.OwnerID)
		if err != nil {
			writeVacError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toVaccinationResponse(v))
	}
}

// @Summary Atualizar vacina (merge parcial; nome e aplicação imutáveis)
// @Router /pets/{petID}/vacinas/{vacinaID} [put]
func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		petID, okPet := idParam(r, "petID")
		vacID, okVac := idParam(r, "vacinaID")
		if !okPet || !okVac {
			httpjson.NotFound(w)
			return
		}

		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}

		v, err := svc.Update(r.Context(), petID, vacID, claims.OwnerID, raw)
		if err != nil {
			writeVacError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toVaccinationResponse(v))
	}
}

// @Summary Excluir vacina
// @Router /pets/{petID}/vacinas/{vacinaID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		petID, okPet := idParam(r, "petID")
		vacID, okVac := idParam(r, "vacinaID")
		if !okPet || !okVac {
			httpjson.NotFound(w)
			return
		}

		if err := svc.Delete(r.Context(), petID, vacID, claims.OwnerID); err != nil {
			writeVacError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func idParam(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

func writeVacError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpjson.WriteErrors(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, ErrNotFound):
		httpjson.NotFound(w)
	case errors.Is(err, ErrForbidden):
		httpjson.Forbidden(w)
	default:
		log.Error("erro inesperado em vacinas", map[string]any{"err": err.Error()})
		httpjson.Internal(w)
	}
}
