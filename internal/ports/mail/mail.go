package mail

import "context"

// MXChecker verifica se um domínio recebe e-mail (registro MX).
// Implementações devem absorver qualquer falha de resolução como false:
// o chamador só enxerga "alcançável ou não".
type MXChecker interface {
	HasMX(ctx context.Context, domain string) bool
}

// MXCheckerFunc adapta uma função ao contrato (útil em testes).
type MXCheckerFunc func(ctx context.Context, domain string) bool

func (f MXCheckerFunc) HasMX(ctx context.Context, domain string) bool {
	return f(ctx, domain)
}
