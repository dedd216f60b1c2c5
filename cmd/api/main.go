package main

import (
	"database/sql"
	"net/http"
	"os"
	"time"

	"registro-pet/internal/adapters/auth/jwttoken"
	"registro-pet/internal/adapters/mail/dnsmx"
	pg "registro-pet/internal/adapters/storage/postgres"
	"registro-pet/internal/platform/config"
	"registro-pet/internal/platform/logger"
	"registro-pet/internal/router"
)

func main() {
	cfg := config.FromEnv()
	log := logger.NewFromEnv()

	var db *sql.DB
	if cfg.DBDSN != "" {
		opened, err := pg.Open(cfg.DBDSN)
		if err != nil {
			log.Error("falha ao conectar no postgres", map[string]any{"err": err.Error()})
			os.Exit(1)
		}
		db = opened
		defer db.Close()
	} else {
		log.Warn("DB_DSN ausente: usando repositórios in-memory", nil)
	}

	tokens := jwttoken.New(cfg.JWTSecret, cfg.TokenTTL)

	r := router.NewRouter(router.Options{
		TokenIssuer:   tokens,
		TokenVerifier: tokens,
		MXChecker:     dnsmx.New(),
		Logger:        log,
		DB:            db,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("servidor iniciado", map[string]any{"addr": cfg.Addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("erro no servidor", map[string]any{"err": err.Error()})
		os.Exit(1)
	}
}
