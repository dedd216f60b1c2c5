package payload

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, body string) Raw {
	t.Helper()
	raw, err := Decode(strings.NewReader(body))
	require.NoError(t, err)
	return raw
}

func TestDecode(t *testing.T) {
	raw := decode(t, `{"nome": "Rex", "peso": 7.5}`)
	require.Len(t, raw, 2)

	_, err := Decode(strings.NewReader(`não é json`))
	require.ErrorIs(t, err, ErrBadBody)

	// mais de um valor no corpo também é rejeitado
	_, err = Decode(strings.NewReader(`{"a":1}{"b":2}`))
	require.ErrorIs(t, err, ErrBadBody)
}

func TestString_Presence(t *testing.T) {
	raw := decode(t, `{"nome": "Rex", "raca": null, "peso": 7}`)

	// chave ausente: Set=false, sem erro
	f, ok := raw.String("cor")
	require.True(t, ok)
	require.False(t, f.Set)

	// null: presente porém nulo
	f, ok = raw.String("raca")
	require.True(t, ok)
	require.True(t, f.Set)
	_, has := f.Get()
	require.False(t, has)

	f, ok = raw.String("nome")
	require.True(t, ok)
	v, has := f.Get()
	require.True(t, has)
	require.Equal(t, "Rex", v)

	// tipo errado vira erro de campo no chamador
	_, ok = raw.String("peso")
	require.False(t, ok)
}

func TestDate(t *testing.T) {
	raw := decode(t, `{"a": "2026-01-15", "b": "", "c": "15/01/2026", "d": null}`)

	f, ok := raw.Date("a")
	require.True(t, ok)
	v, has := f.Get()
	require.True(t, has)
	require.Equal(t, "2026-01-15", v.Format("2006-01-02"))

	// string vazia conta como presente-porém-nulo
	f, ok = raw.Date("b")
	require.True(t, ok)
	require.True(t, f.Set)
	_, has = f.Get()
	require.False(t, has)

	_, ok = raw.Date("c")
	require.False(t, ok)

	f, ok = raw.Date("d")
	require.True(t, ok)
	require.True(t, f.Set)
	_, has = f.Get()
	require.False(t, has)
}

func TestNumberString_KeepsLiteral(t *testing.T) {
	// "7.0" precisa chegar como texto para a regra de casas decimais
	raw := decode(t, `{"a": 7.0, "b": "7,5", "c": 7}`)

	f, ok := raw.NumberString("a")
	require.True(t, ok)
	v, _ := f.Get()
	require.Equal(t, "7.0", v)

	f, ok = raw.NumberString("b")
	require.True(t, ok)
	v, _ = f.Get()
	require.Equal(t, "7,5", v)

	f, ok = raw.NumberString("c")
	require.True(t, ok)
	v, _ = f.Get()
	require.Equal(t, "7", v)
}
