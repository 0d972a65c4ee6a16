package cpu

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

// parseValue parses a directive number: $hex, 0x/0b/0o prefixed, legacy
// octal or decimal, with an optional sign.
func parseValue(word string) (value int, err error) {
	text := word
	if strings.HasPrefix(text, "$") {
		text = "0x" + text[1:]
	}
	v64, err := strconv.ParseInt(text, 0, 32)
	if err != nil {
		err = ErrValueInvalid(word)
		return
	}
	value = int(v64)
	return
}

// parseAddress parses a value that must fit the address space.
func parseAddress(word string) (addr int, err error) {
	addr, err = parseValue(word)
	if err != nil {
		return
	}
	if addr < ADDRESS_MIN || addr > ADDRESS_MAX {
		err = ErrAddressRange(addr)
	}
	return
}

// dataValues converts a data token into byte values. count is the number
// of bytes per value (1 for db, 2 for dw) or 0 for free-form data, where a
// quoted string contributes every byte.
//
// Values are returned unmasked so that out-of-range bytes can be reported
// when the image is written.
func dataValues(count int, word string) (values []int, err error) {
	if text, ok := unquote(word); ok {
		raw := []byte(text)
		if count == 0 {
			for _, b := range raw {
				values = append(values, int(b))
			}
			return
		}
		if len(raw) != 1 {
			err = ErrByteCount{Text: word, Want: 1, Got: len(raw)}
			return
		}
		return widen(count, int(raw[0]))
	}

	var v64 int64
	lower := strings.ToLower(word)
	switch {
	case strings.HasPrefix(word, "0"):
		v64, err = strconv.ParseInt(word, 0, 32)
	case len(word) > 1 && lower[0] == 'b' && (len(word)-1)%8 == 0:
		v64, err = strconv.ParseInt(word[1:], 2, 32)
	case len(word) > 1 && strings.ContainsRune("$xX", rune(word[0])) && (len(word)-1)%2 == 0:
		v64, err = strconv.ParseInt(word[1:], 16, 32)
	default:
		v64, err = strconv.ParseInt(word, 10, 32)
	}
	if err != nil {
		err = ErrValueInvalid(word)
		return
	}

	return widen(count, int(v64))
}

// widen splits a value into count bytes.
func widen(count int, value int) (values []int, err error) {
	if count != 2 {
		values = []int{value}
		return
	}

	if value < -0x8000 || value > 0xffff {
		err = ErrByteRange(value)
		return
	}
	values = []int{value & 0xff, (value >> 8) & 0xff}
	return
}

var reExpression = regexp.MustCompile(`\$\([^\$]*\)`)

// evaluate does compile-time $(...) evaluations against the values
// visible so far.
func evaluate(expr string, values map[string]int) (value int, err error) {
	thread := starlark.Thread{Name: "expr"}
	opts := syntax.FileOptions{}
	pred := starlark.StringDict{}
	for key, val := range values {
		pred[key] = starlark.MakeInt(val)
	}
	prog := "rc=" + expr + "\n"
	dict, err := starlark.ExecFileOptions(&opts, &thread, "expr", prog, pred)
	if err != nil {
		err = ErrParseExpression(expr)
		return
	}
	st_int, ok := dict["rc"].(starlark.Int)
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	st_int64, ok := st_int.Int64()
	if !ok {
		err = ErrParseExpression(expr)
		return
	}
	value = int(st_int64)
	return
}

// expand replaces every $(...) in a line by its value.
func expand(line string, values map[string]int) (out string, err error) {
	if !strings.Contains(line, "$(") {
		return line, nil
	}

	out = reExpression.ReplaceAllStringFunc(line, func(str string) string {
		value, _err := evaluate(str[2:len(str)-1], values)
		if _err != nil {
			if err == nil {
				err = _err
			}
			return str
		}
		if value < 0 {
			return fmt.Sprintf("%d", value)
		}
		return fmt.Sprintf("0x%x", value)
	})

	return
}
