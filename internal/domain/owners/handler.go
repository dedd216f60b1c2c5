package owners

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"registro-pet/internal/httpjson"
	"registro-pet/internal/middleware"
	"registro-pet/internal/payload"
	"registro-pet/internal/platform/logger"
	"registro-pet/internal/ports/auth"
	"registro-pet/internal/validation"
)

func RegisterRoutes(r chi.Router, svc *Service, tokens auth.Issuer, log logger.Logger) {
	r.Route("/usuarios", func(ur chi.Router) {
		ur.Post("/", registerHandler(svc, tokens, log))
		ur.Get("/", listHandler(svc, log))
		ur.Get("/{usuarioID}", getHandler(svc, log))
		ur.Put("/{usuarioID}", updateHandler(svc, log))
		ur.Delete("/{usuarioID}", deleteHandler(svc, log))
	})

	r.Post("/login", loginHandler(svc, tokens, log))
	r.Get("/me", meHandler(svc, log))
}

type ownerResponse struct {
	ID          int64  `json:"id"`
	Nome        string `json:"nome"`
	Data        string `json:"data"`
	Rua         string `json:"rua"`
	Bairro      string `json:"bairro"`
	Numero      string `json:"numero"`
	Cep         string `json:"cep"`
	Cidade      string `json:"cidade"`
	Estado      string `json:"estado"`
	Complemento string `json:"complemento"`
	Funcao      string `json:"funcao"`
	Email       string `json:"email"`
}

// registerResponse devolve a conta criada junto com o token de sessão.
type registerResponse struct {
	ownerResponse
	Token string `json:"token"`
}

func toOwnerResponse(o Owner) ownerResponse {
	return ownerResponse{
		ID:          o.ID,
		Nome:        o.Nome,
		Data:        o.Data.Format("2006-01-02"),
		Rua:         o.Rua,
		Bairro:      o.Bairro,
		Numero:      o.Numero,
		Cep:         o.Cep,
		Cidade:      o.Cidade,
		Estado:      o.Estado,
		Complemento: o.Complemento,
		Funcao:      string(o.Funcao),
		Email:       o.Email,
	}
}

// @Summary Cadastrar usuário
// @Router /usuarios [post]
func registerHandler(svc *Service, tokens auth.Issuer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}

		o, err := svc.Register(r.Context(), raw)
		if err != nil {
			writeOwnerError(w, log, err)
			return
		}

		token, err := tokens.Issue(o.ID, o.Email)
		if err != nil {
			log.Error("falha ao emitir token", map[string]any{"err": err.Error(), "usuario_id": o.ID})
			httpjson.Internal(w)
			return
		}

		httpjson.Write(w, http.StatusCreated, registerResponse{
			ownerResponse: toOwnerResponse(o),
			Token:         token,
		})
	}
}

// @Summary Listar usuários
// @Router /usuarios [get]
func listHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context())
		if err != nil {
			writeOwnerError(w, log, err)
			return
		}

		out := make([]ownerResponse, 0, len(items))
		for _, o := range items {
			out = append(out, toOwnerResponse(o))
		}
		httpjson.Write(w, http.StatusOK, out)
	}
}

// @Summary Buscar usuário por id
// @Router /usuarios/{usuarioID} [get]
func getHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := ownerIDParam(r)
		if !ok {
			httpjson.NotFound(w)
			return
		}

		o, err := svc.GetByID(r.Context(), id)
		if err != nil {
			writeOwnerError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toOwnerResponse(o))
	}
}

// @Summary Atualizar a própria conta (merge parcial, email imutável)
// @Router /usuarios/{usuarioID} [put]
func updateHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		id, okID := ownerIDParam(r)
		if !okID {
			httpjson.NotFound(w)
			return
		}
		if id != claims.OwnerID {
			httpjson.Forbidden(w)
			return
		}

		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}

		o, err := svc.Update(r.Context(), id, raw)
		if err != nil {
			writeOwnerError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toOwnerResponse(o))
	}
}

// @Summary Excluir a própria conta (cascata: pets e vacinas)
// @Router /usuarios/{usuarioID} [delete]
func deleteHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		id, okID := ownerIDParam(r)
		if !okID {
			httpjson.NotFound(w)
			return
		}
		if id != claims.OwnerID {
			httpjson.Forbidden(w)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			writeOwnerError(w, log, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// @Summary Usuário logado
// @Router /me [get]
func meHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok {
			httpjson.Unauthorized(w)
			return
		}

		o, err := svc.GetByID(r.Context(), claims.OwnerID)
		if err != nil {
			writeOwnerError(w, log, err)
			return
		}
		httpjson.Write(w, http.StatusOK, toOwnerResponse(o))
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Senha    string `json:"senha"`
	Password string `json:"password"` // alias aceito por clientes antigos
}

type loginResponse struct {
	Token string `json:"token"`
	ID    int64  `json:"id"`
	Nome  string `json:"nome"`
	Email string `json:"email"`
}

// @Summary Login por email e senha
// @Router /login [post]
func loginHandler(svc *Service, tokens auth.Issuer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw, err := payload.Decode(r.Body)
		if err != nil {
			httpjson.BadBody(w)
			return
		}
		var req loginRequest
		{
			f, _ := raw.String("email")
			req.Email, _ = f.Get()
			f, _ = raw.String("senha")
			req.Senha, _ = f.Get()
			f, _ = raw.String("password")
			req.Password, _ = f.Get()
		}
		if req.Senha == "" {
			req.Senha = req.Password
		}

		o, err := svc.Authenticate(r.Context(), req.Email, req.Senha)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				httpjson.WriteFieldError(w, http.StatusNotFound, "email", "Usuário não existente.")
			case errors.Is(err, ErrInvalidCredentials):
				httpjson.WriteFieldError(w, http.StatusUnauthorized, "senha", "Senha incorreta.")
			default:
				writeOwnerError(w, log, err)
			}
			return
		}

		token, err := tokens.Issue(o.ID, o.Email)
		if err != nil {
			log.Error("falha ao emitir token", map[string]any{"err": err.Error(), "usuario_id": o.ID})
			httpjson.Internal(w)
			return
		}

		httpjson.Write(w, http.StatusOK, loginResponse{
			Token: token,
			ID:    o.ID,
			Nome:  o.Nome,
			Email: o.Email,
		})
	}
}

func ownerIDParam(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "usuarioID"), 10, 64)
	if err != nil || id < 1 {
		return 0, false
	}
	return id, true
}

// writeOwnerError traduz os erros conhecidos do domínio; o que sobrar é
// logado e vira 500 genérico.
func writeOwnerError(w http.ResponseWriter, log logger.Logger, err error) {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		httpjson.WriteErrors(w, http.StatusBadRequest, verr.Fields)
	case errors.Is(err, ErrEmailTaken):
		httpjson.WriteFieldError(w, http.StatusConflict, "email", "Já cadastrado.")
	case errors.Is(err, ErrNotFound):
		httpjson.NotFound(w)
	case errors.Is(err, ErrForbidden):
		httpjson.Forbidden(w)
	default:
		log.Error("erro inesperado em usuários", map[string]any{"err": err.Error()})
		httpjson.Internal(w)
	}
}
