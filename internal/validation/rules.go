package validation

import (
	"regexp"
	"time"
)

// Regras de campo compartilhadas entre os módulos de domínio.

var (
	// Letras latinas (acentuadas incluídas) e espaços.
	OnlyLetters = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s]+$`)
	// Variante para pelagem: aceita hífen (ex.: "preto-fosco").
	LettersAndHyphen = regexp.MustCompile(`^[A-Za-zÀ-ÖØ-öø-ÿ\s-]+$`)
	OnlyDigits       = regexp.MustCompile(`^\d+$`)
	TwoLetterState   = regexp.MustCompile(`^[A-Za-z]{2}$`)
	CEP              = regexp.MustCompile(`^\d{5}-?\d{3}$`)
)

// Age calcula idade em anos completos na data de referência.
// Subtrai um ano se o aniversário ainda não ocorreu no ano corrente.
func Age(birth, today time.Time) int {
	years := today.Year() - birth.Year()
	if today.Month() < birth.Month() ||
		(today.Month() == birth.Month() && today.Day() < birth.Day()) {
		years--
	}
	return years
}
