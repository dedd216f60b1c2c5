package config

import (
	"os"
	"time"
)

// Config reúne a configuração lida do ambiente para o main ficar enxuto.
type Config struct {
	Addr      string
	DBDSN     string
	JWTSecret string
	TokenTTL  time.Duration
}

// FromEnv monta a configuração a partir das variáveis de ambiente.
// Sem DB_DSN o app sobe com os repositórios in-memory (modo dev).
func FromEnv() Config {
	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		// default de desenvolvimento; obrigatório sobrescrever em produção
		secret = "dev-secret-trocar-em-producao"
	}

	ttl := 12 * time.Hour
	if v := os.Getenv("TOKEN_TTL"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}

	return Config{
		Addr:      addr,
		DBDSN:     os.Getenv("DB_DSN"),
		JWTSecret: secret,
		TokenTTL:  ttl,
	}
}
