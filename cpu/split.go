package cpu

import (
	"strings"
)

// lexState is a tokenizer state. States nest: an escape may be pending
// inside a quoted span.
type lexState int

const (
	lexNormal      = lexState(0)
	lexQuoteSingle = lexState(1) // '
	lexQuoteDouble = lexState(2) // "
	lexQuoteBack   = lexState(3) // `
	lexEscape      = lexState(4) // \
)

var quoteStates = map[rune]lexState{
	'\'': lexQuoteSingle,
	'"':  lexQuoteDouble,
	'`':  lexQuoteBack,
}

// quote returns the terminating character of a quoted state.
func (state lexState) quote() rune {
	for ch, st := range quoteStates {
		if st == state {
			return ch
		}
	}
	return 0
}

// unescape maps the character after a backslash inside quotes.
func unescape(ch rune) rune {
	switch ch {
	case 'n':
		return '\n'
	case 't':
		return '\t'
	case 'b':
		return '\b'
	default:
		return ch
	}
}

// isSeparator reports the characters that split tokens outside of quotes.
func isSeparator(ch rune) bool {
	switch ch {
	case ' ', '\t', ',', '\r', '\n':
		return true
	}
	return false
}

// Split breaks a source line into tokens.
//
// Comments (from an unquoted ';') are dropped, whitespace and commas
// separate tokens, and quoted spans are kept as single tokens including
// their quote characters, with \n, \t and \b escapes expanded. Outside of
// quotes a backslash takes the next character literally.
func Split(line string) (tokens []string, err error) {
	var states Stack[lexState]
	var token strings.Builder

	flush := func() {
		if token.Len() > 0 {
			tokens = append(tokens, token.String())
			token.Reset()
		}
	}

scan:
	for _, ch := range line {
		state, _ := states.Peek()
		switch state {
		case lexNormal:
			quote, is_quote := quoteStates[ch]
			switch {
			case ch == ';':
				break scan
			case is_quote:
				flush()
				token.WriteRune(ch)
				states.Push(quote)
			case ch == '\\':
				states.Push(lexEscape)
			case isSeparator(ch):
				flush()
			default:
				token.WriteRune(ch)
			}
		case lexEscape:
			states.Pop()
			if outer, _ := states.Peek(); outer != lexNormal {
				ch = unescape(ch)
			}
			token.WriteRune(ch)
		default:
			switch ch {
			case '\\':
				states.Push(lexEscape)
			case state.quote():
				token.WriteRune(ch)
				states.Pop()
				flush()
			default:
				token.WriteRune(ch)
			}
		}
	}

	// A trailing backslash has nothing to escape.
	if state, _ := states.Peek(); state == lexEscape {
		states.Pop()
	}

	if state, ok := states.Peek(); ok {
		err = ErrMismatchedQuote{Quote: state.quote(), Line: line}
		tokens = nil
		return
	}

	flush()

	return
}

// unquote returns the contents of a quoted token, and whether it was quoted.
func unquote(token string) (text string, ok bool) {
	if len(token) < 2 {
		return token, false
	}
	first := rune(token[0])
	if _, is_quote := quoteStates[first]; !is_quote || token[len(token)-1] != token[0] {
		return token, false
	}
	return token[1 : len(token)-1], true
}

// mapCode rewrites the unquoted runs of a line with fn. Quoted spans and
// escaped characters are kept as written, and any comment is dropped.
func mapCode(line string, fn func(code string) (string, error)) (out string, err error) {
	var states Stack[lexState]
	var code, text strings.Builder

	flush := func() (err error) {
		if code.Len() == 0 {
			return
		}
		mapped, err := fn(code.String())
		code.Reset()
		if err != nil {
			return
		}
		text.WriteString(mapped)
		return
	}

scan:
	for _, ch := range line {
		state, _ := states.Peek()
		switch state {
		case lexNormal:
			quote, is_quote := quoteStates[ch]
			switch {
			case ch == ';':
				break scan
			case is_quote:
				states.Push(quote)
			case ch == '\\':
				states.Push(lexEscape)
			default:
				code.WriteRune(ch)
				continue
			}
			err = flush()
			if err != nil {
				return
			}
			text.WriteRune(ch)
		case lexEscape:
			states.Pop()
			text.WriteRune(ch)
		default:
			text.WriteRune(ch)
			switch ch {
			case '\\':
				states.Push(lexEscape)
			case state.quote():
				states.Pop()
			}
		}
	}

	err = flush()
	if err != nil {
		return
	}

	out = text.String()
	return
}
