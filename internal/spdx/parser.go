package spdx

import (
	"strings"
)

// Parse parses text with the strict SPDX grammar.
func Parse(text string) (Expression, error) {
	return ParseMode(text, Strict)
}

// ParseMode parses text using the given mode.
//
//	expr    = and { OR and }
//	and     = with { AND with }
//	with    = primary [ WITH exception ]
//	primary = "(" expr ")" | license
func ParseMode(text string, mode Mode) (Expression, error) {
	toks, err := lex(text, mode)
	if err != nil {
		return Expression{}, err
	}
	p := &parser{input: text, toks: toks}
	if p.peek().kind == tokEOF {
		return Expression{}, p.fail(p.peek(), "empty expression")
	}
	root, err := p.parseOr()
	if err != nil {
		return Expression{}, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return Expression{}, p.fail(t, "unexpected "+describe(t))
	}
	return Expression{root: root}, nil
}

// CanonicalRequirement respells a known requirement ("mit" becomes "MIT")
// so it compares equal to minimized output. Anything that does not parse as
// a single requirement is returned unchanged.
func CanonicalRequirement(text string) string {
	r, err := ParseRequirement(text)
	if err != nil {
		return text
	}
	return r.String()
}

// ParseRequirement parses a single requirement such as "MIT" or
// "Apache-2.0 WITH LLVM-exception".
func ParseRequirement(text string) (Requirement, error) {
	e, err := Parse(text)
	if err != nil {
		return Requirement{}, err
	}
	r, ok := e.root.(Requirement)
	if !ok {
		return Requirement{}, &ParseError{Input: text, Reason: "expected a single license requirement"}
	}
	return r, nil
}

type parser struct {
	input string
	toks  []token
	pos   int
}

func (p *parser) peek() token { return p.toks[p.pos] }

func (p *parser) next() token {
	t := p.toks[p.pos]
	if t.kind != tokEOF {
		p.pos++
	}
	return t
}

func (p *parser) fail(t token, reason string) error {
	return &ParseError{Input: p.input, Offset: t.offset, Reason: reason}
}

func (p *parser) parseOr() (Node, error) {
	left, err := p.parseAnd()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokOr {
		p.next()
		right, err := p.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Or{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseAnd() (Node, error) {
	left, err := p.parseWith()
	if err != nil {
		return nil, err
	}
	for p.peek().kind == tokAnd {
		p.next()
		right, err := p.parseWith()
		if err != nil {
			return nil, err
		}
		left = And{Left: left, Right: right}
	}
	return left, nil
}

func (p *parser) parseWith() (Node, error) {
	grouped := p.peek().kind == tokLParen
	n, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	if p.peek().kind != tokWith {
		return n, nil
	}
	with := p.next()
	req, ok := n.(Requirement)
	if !ok || grouped {
		return nil, p.fail(with, "WITH must follow a single license")
	}
	t := p.next()
	if t.kind != tokIdent {
		return nil, p.fail(t, "expected exception after WITH, found "+describe(t))
	}
	exc, err := p.exception(t)
	if err != nil {
		return nil, err
	}
	req.Exception = exc
	return req, nil
}

func (p *parser) parsePrimary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokLParen:
		n, err := p.parseOr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			return nil, p.fail(c, "expected ')', found "+describe(c))
		}
		return n, nil
	case tokIdent:
		return p.license(t)
	default:
		return nil, p.fail(t, "expected license, found "+describe(t))
	}
}

func (p *parser) license(t token) (Requirement, error) {
	id := t.text
	orLater := false
	if strings.HasSuffix(id, "+") {
		id = strings.TrimSuffix(id, "+")
		orLater = true
	}
	if id == "" || strings.Contains(id, "+") {
		return Requirement{}, p.fail(t, "invalid license identifier "+quote(t.text))
	}

	if ref, ok := licenseRef(id); ok {
		return Requirement{License: ref, OrLater: orLater}, nil
	}
	canonical, ok := LookupLicense(id)
	if !ok {
		return Requirement{}, p.fail(t, "unknown license identifier "+quote(t.text))
	}
	return Requirement{License: canonical, OrLater: orLater}, nil
}

func (p *parser) exception(t token) (string, error) {
	if strings.HasPrefix(t.text, "AdditionRef-") && validRefSuffix(strings.TrimPrefix(t.text, "AdditionRef-")) {
		return t.text, nil
	}
	canonical, ok := LookupException(t.text)
	if !ok {
		return "", p.fail(t, "unknown exception identifier "+quote(t.text))
	}
	return canonical, nil
}

// licenseRef accepts "LicenseRef-x" and "DocumentRef-y:LicenseRef-x".
func licenseRef(id string) (string, bool) {
	rest := id
	if strings.HasPrefix(rest, "DocumentRef-") {
		doc, lic, ok := strings.Cut(strings.TrimPrefix(rest, "DocumentRef-"), ":")
		if !ok || !validRefSuffix(doc) {
			return "", false
		}
		rest = lic
	}
	if !strings.HasPrefix(rest, "LicenseRef-") || !validRefSuffix(strings.TrimPrefix(rest, "LicenseRef-")) {
		return "", false
	}
	return id, true
}

func validRefSuffix(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' || c == '.' || c == '-') {
			return false
		}
	}
	return true
}

func describe(t token) string {
	if t.kind == tokIdent {
		return quote(t.text)
	}
	return t.kind.String()
}

func quote(s string) string {
	return "\"" + s + "\""
}
