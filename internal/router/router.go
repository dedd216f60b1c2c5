package router

import (
	"database/sql"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	mem "registro-pet/internal/adapters/storage/memory"
	pg "registro-pet/internal/adapters/storage/postgres"
	"registro-pet/internal/domain/owners"
	"registro-pet/internal/domain/pets"
	"registro-pet/internal/domain/vaccinations"
	"registro-pet/internal/middleware"
	"registro-pet/internal/platform/logger"
	"registro-pet/internal/ports/auth"
	"registro-pet/internal/ports/mail"
)

type Options struct {
	TokenIssuer   auth.Issuer
	TokenVerifier auth.Verifier
	MXChecker     mail.MXChecker
	Logger        logger.Logger

	// Opcional: com DB usa Postgres; sem, repositórios in-memory (dev/teste).
	DB *sql.DB
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLog(opts.Logger))
	r.Use(middleware.RateLimit)
	r.Use(middleware.AuthContext(opts.TokenVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	var (
		ownersRepo owners.Repository
		petsRepo   pets.Repository
		vacsRepo   vaccinations.Repository
	)

	if opts.DB != nil {
		ownersRepo = pg.NewOwnersRepo(opts.DB)
		petsRepo = pg.NewPetsRepo(opts.DB)
		vacsRepo = pg.NewVaccinationsRepo(opts.DB)
	} else {
		store := mem.NewStore()
		ownersRepo = store.Owners()
		petsRepo = store.Pets()
		vacsRepo = store.Vaccinations()
	}

	// serviços por módulo
	ownersSvc := owners.NewService(ownersRepo, opts.MXChecker)
	petsSvc := pets.NewService(petsRepo)
	vacsSvc := vaccinations.NewService(vacsRepo, petsSvc)

	// rotas por módulo
	owners.RegisterRoutes(r, ownersSvc, opts.TokenIssuer, opts.Logger)
	pets.RegisterRoutes(r, petsSvc, opts.Logger)
	vaccinations.RegisterRoutes(r, vacsSvc, opts.Logger)

	return r
}
