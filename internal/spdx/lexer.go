package spdx

import "strings"

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokLParen
	tokRParen
	tokAnd
	tokOr
	tokWith
	tokIdent
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of expression"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokAnd:
		return "AND"
	case tokOr:
		return "OR"
	case tokWith:
		return "WITH"
	default:
		return "identifier"
	}
}

type token struct {
	kind   tokenKind
	text   string
	offset int
}

// Mode selects how forgiving the parser is.
type Mode int

const (
	// Strict follows the SPDX grammar: operators must be upper case.
	Strict Mode = iota
	// Lax also accepts lower case operators and "/" as OR, as found in
	// hand-written package metadata ("MIT/Apache-2.0").
	Lax
)

func isIdentByte(c byte) bool {
	switch {
	case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		return true
	case c == '.' || c == '-' || c == '+' || c == ':':
		return true
	}
	return false
}

func lex(input string, mode Mode) ([]token, error) {
	var out []token
	i := 0
	for i < len(input) {
		c := input[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case c == '(':
			out = append(out, token{kind: tokLParen, text: "(", offset: i})
			i++
		case c == ')':
			out = append(out, token{kind: tokRParen, text: ")", offset: i})
			i++
		case c == '/' && mode == Lax:
			out = append(out, token{kind: tokOr, text: "/", offset: i})
			i++
		case isIdentByte(c):
			start := i
			for i < len(input) && isIdentByte(input[i]) {
				i++
			}
			word := input[start:i]
			out = append(out, token{kind: operatorKind(word, mode), text: word, offset: start})
		default:
			return nil, &ParseError{Input: input, Offset: i, Reason: "unexpected character " + quoteByte(c)}
		}
	}
	out = append(out, token{kind: tokEOF, offset: len(input)})
	return out, nil
}

func operatorKind(word string, mode Mode) tokenKind {
	w := word
	if mode == Lax {
		w = strings.ToUpper(word)
	}
	switch w {
	case "AND":
		return tokAnd
	case "OR":
		return tokOr
	case "WITH":
		return tokWith
	}
	return tokIdent
}

func quoteByte(c byte) string {
	return "'" + string(rune(c)) + "'"
}
