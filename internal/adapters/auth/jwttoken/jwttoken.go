// Package jwttoken implementa emissão e verificação de tokens HS256.
package jwttoken

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"registro-pet/internal/ports/auth"
)

const DefaultTTL = 12 * time.Hour

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service emite e verifica tokens. Implementa auth.Issuer e auth.Verifier.
type Service struct {
	signingKey []byte
	ttl        time.Duration
	now        func() time.Time
}

func New(signingKey string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		signingKey: []byte(signingKey),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *Service) Issue(ownerID int64, email string) (string, error) {
	now := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(ownerID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			ID:        uuid.NewString(),
		},
	})
	return token.SignedString(s.signingKey)
}

// Verify devolve auth.ErrUnauthenticated para qualquer falha: assinatura,
// expiração e token malformado são indistinguíveis para quem chama.
func (s *Service) Verify(_ context.Context, tokenString string) (auth.Claims, error) {
	tokenString = strings.TrimSpace(tokenString)
	if tokenString == "" {
		return auth.Claims{}, auth.ErrUnauthenticated
	}

	parsed, err := jwt.ParseWithClaims(tokenString, &claims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.signingKey, nil
	}, jwt.WithTimeFunc(func() time.Time { return s.now() }))
	if err != nil || !parsed.Valid {
		return auth.Claims{}, auth.ErrUnauthenticated
	}

	c, ok := parsed.Claims.(*claims)
	if !ok {
		return auth.Claims{}, auth.ErrUnauthenticated
	}
	ownerID, err := strconv.ParseInt(c.Subject, 10, 64)
	if err != nil || ownerID <= 0 {
		return auth.Claims{}, auth.ErrUnauthenticated
	}

	return auth.Claims{OwnerID: ownerID, Email: c.Email}, nil
}
