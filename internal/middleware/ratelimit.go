package middleware

import (
	"net"
	"net/http"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"registro-pet/internal/httpjson"
	"registro-pet/internal/validation"
)

// client guarda o limiter por IP e o último acesso, para expirar entradas.
type client struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimit aplica token bucket por IP: 10 req/s com burst de 20.
// Entradas não vistas há 3 minutos são removidas por uma goroutine de limpeza.
func RateLimit(next http.Handler) http.Handler {
	var (
		mu      sync.Mutex
		clients = make(map[string]*client)
	)

	go func() {
		for {
			time.Sleep(time.Minute)
			mu.Lock()
			for ip, c := range clients {
				if time.Since(c.lastSeen) > 3*time.Minute {
					delete(clients, ip)
				}
			}
			mu.Unlock()
		}
	}()

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			ip = r.RemoteAddr
		}

		mu.Lock()
		c, found := clients[ip]
		if !found {
			c = &client{limiter: rate.NewLimiter(rate.Limit(10), 20)}
			clients[ip] = c
		}
		c.lastSeen = time.Now()
		allowed := c.limiter.Allow()
		mu.Unlock()

		if !allowed {
			httpjson.WriteErrors(w, http.StatusTooManyRequests,
				validation.Errors{"_": {"Muitas requisições. Tente novamente em instantes."}})
			return
		}

		next.ServeHTTP(w, r)
	})
}
