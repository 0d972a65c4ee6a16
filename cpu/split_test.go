package cpu

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line   string
		tokens []string
	}{
		{"", nil},
		{"   \t  ", nil},
		{"; just a comment", nil},
		{"nop", []string{"nop"}},
		{"  mov   a,#10 ; load", []string{"mov", "a", "#10"}},
		{"mov a, b", []string{"mov", "a", "b"}},
		{"\tjmp\tloop", []string{"jmp", "loop"}},
		{"db 'a', 'b'", []string{"db", "'a'", "'b'"}},
		{`str "hello, world" ; greet`, []string{"str", `"hello, world"`}},
		{`str "a;b"`, []string{"str", `"a;b"`}},
		{"str `tick`", []string{"str", "`tick`"}},
		{`db '\n'`, []string{"db", "'\n'"}},
		{`db '\t' '\b'`, []string{"db", "'\t'", "'\b'"}},
		{`db '\d'`, []string{"db", "'d'"}},
		{`db '\\'`, []string{"db", `'\'`}},
		{`db '\''`, []string{"db", `'''`}},
		{`str abc\;def`, []string{"str", "abc;def"}},
		{`str a\ b`, []string{"str", "a b"}},
		{`str 'x'y`, []string{"str", "'x'", "y"}},
		{"label: nop", []string{"label:", "nop"}},
		{`end\`, []string{"end"}},
	}

	for _, entry := range table {
		tokens, err := Split(entry.line)
		assert.NoError(err, entry.line)
		assert.Equal(entry.tokens, tokens, entry.line)
	}
}

func TestSplit_MismatchedQuote(t *testing.T) {
	assert := assert.New(t)

	for _, line := range []string{
		"db 'jan",
		`db '\'`,
		`str "abc`,
		"str `abc",
		`db 'a\`,
	} {
		tokens, err := Split(line)
		assert.Nil(tokens, line)
		var mismatch ErrMismatchedQuote
		assert.True(errors.As(err, &mismatch), line)
		assert.Equal(line, mismatch.Line)
	}

	_, err := Split(`str "abc`)
	assert.Equal(ErrMismatchedQuote{Quote: '"', Line: `str "abc`}, err)
}

func TestUnquote(t *testing.T) {
	assert := assert.New(t)

	text, ok := unquote("'a'")
	assert.True(ok)
	assert.Equal("a", text)

	text, ok = unquote(`""`)
	assert.True(ok)
	assert.Equal("", text)

	text, ok = unquote("'a\"")
	assert.False(ok)
	assert.Equal("'a\"", text)

	_, ok = unquote("a")
	assert.False(ok)
}

func FuzzSplit(f *testing.F) {
	f.Add("mov a,#10 ; comment")
	f.Add(`db 'a', "b", '\n'`)
	f.Add("str `x\\`y`")
	f.Add(`\;`)

	f.Fuzz(func(t *testing.T, line string) {
		tokens, err := Split(line)
		if err != nil {
			assert.Nil(t, tokens)
			return
		}
		for _, token := range tokens {
			assert.NotEmpty(t, token)
			if _, quoted := unquote(token); quoted {
				continue
			}
			if !strings.Contains(line, "\\") {
				assert.False(t, strings.ContainsAny(token, " \t,;"), token)
			}
		}
	})
}

func TestMapCode(t *testing.T) {
	upper := func(code string) (string, error) {
		return strings.ToUpper(code), nil
	}

	table := [](struct {
		line     string
		expected string
	}){
		{"", ""},
		{"mov a,#1", "MOV A,#1"},
		{"str 'a;b' c ; comment", "STR 'a;b' C "},
		{`db "x\"y" z`, `DB "x\"y" Z`},
		{`nop \; hlt`, `NOP \; HLT`},
		{"; only $(a) comment", ""},
		{"str `it's`", "STR `it's`"},
	}

	for _, entry := range table {
		t.Run(entry.line, func(t *testing.T) {
			assert := assert.New(t)

			out, err := mapCode(entry.line, upper)
			assert.NoError(err)
			assert.Equal(entry.expected, out)
		})
	}
}

func TestMapCode_Error(t *testing.T) {
	assert := assert.New(t)

	calls := 0
	_, err := mapCode("db 1 'x' 2", func(code string) (string, error) {
		calls++
		return "", ErrValueInvalid(code)
	})
	assert.ErrorIs(err, ErrValueInvalid("db 1 "))
	assert.Equal(1, calls)
}
