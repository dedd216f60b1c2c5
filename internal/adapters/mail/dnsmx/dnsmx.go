// Package dnsmx verifica registros MX via resolver do sistema.
package dnsmx

import (
	"context"
	"net"
	"strings"
	"time"
)

// Timeout limita a vida total do lookup.
const Timeout = 2 * time.Second

// Checker implementa mail.MXChecker com net.Resolver.
type Checker struct {
	resolver *net.Resolver
	timeout  time.Duration
}

func New() *Checker {
	return &Checker{
		resolver: net.DefaultResolver,
		timeout:  Timeout,
	}
}

// HasMX devolve true se o domínio tem pelo menos um registro MX.
// Qualquer falha de resolução (NXDOMAIN, timeout, erro de rede) vira false;
// nunca propaga erro.
func (c *Checker) HasMX(ctx context.Context, domain string) bool {
	domain = strings.TrimSpace(strings.ToLower(domain))
	if domain == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	records, err := c.resolver.LookupMX(ctx, domain)
	if err != nil {
		return false
	}
	return len(records) > 0
}
