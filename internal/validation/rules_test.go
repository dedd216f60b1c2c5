package validation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestAge_Calendar(t *testing.T) {
	today := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)

	// aniversário hoje: completa 18
	require.Equal(t, 18, Age(time.Date(2008, 9, 1, 0, 0, 0, 0, time.UTC), today))
	// aniversário amanhã: ainda 17
	require.Equal(t, 17, Age(time.Date(2008, 9, 2, 0, 0, 0, 0, time.UTC), today))
	require.Equal(t, 35, Age(time.Date(1990, 12, 25, 0, 0, 0, 0, time.UTC), today))
}

func TestRegexes(t *testing.T) {
	require.True(t, OnlyLetters.MatchString("Ana Silva"))
	require.True(t, OnlyLetters.MatchString("São João"))
	require.False(t, OnlyLetters.MatchString("Rua 7"))

	require.True(t, LettersAndHyphen.MatchString("preto-fosco"))
	require.False(t, LettersAndHyphen.MatchString("preto2"))

	require.True(t, CEP.MatchString("01000-000"))
	require.True(t, CEP.MatchString("01000000"))
	require.False(t, CEP.MatchString("1000-000"))

	require.True(t, TwoLetterState.MatchString("SP"))
	require.False(t, TwoLetterState.MatchString("SAO"))

	require.True(t, OnlyDigits.MatchString("123"))
	require.False(t, OnlyDigits.MatchString("12a"))
}

func TestFail(t *testing.T) {
	require.NoError(t, Fail(Errors{}))

	errs := Errors{}
	errs.Add("nome", "Campo obrigatório.")
	errs.Merge(Errors{"nome": {"Use apenas letras e espaços."}, "cep": {"CEP inválido (use 00000-000)."}})

	err := Fail(errs)
	require.Error(t, err)

	verr, ok := err.(*Error)
	require.True(t, ok)
	require.Len(t, verr.Fields["nome"], 2)
	require.Len(t, verr.Fields["cep"], 1)
}
