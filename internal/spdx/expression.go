package spdx

import (
	"iter"
	"strings"
)

// Node is one of Requirement, And or Or.
type Node interface {
	isNode()
}

// Requirement is a leaf of an expression: one license, optionally "or later"
// and optionally qualified by an exception.
type Requirement struct {
	License   string
	OrLater   bool
	Exception string
}

// And requires both operands.
type And struct {
	Left, Right Node
}

// Or requires at least one operand.
type Or struct {
	Left, Right Node
}

func (Requirement) isNode() {}
func (And) isNode()         {}
func (Or) isNode()          {}

func (r Requirement) String() string {
	var b strings.Builder
	b.WriteString(r.License)
	if r.OrLater {
		b.WriteByte('+')
	}
	if r.Exception != "" {
		b.WriteString(" WITH ")
		b.WriteString(r.Exception)
	}
	return b.String()
}

// Expression is a parsed SPDX license expression. The zero value is empty and
// has no requirements.
type Expression struct {
	root Node
}

// Root exposes the tree for callers that need to walk it themselves.
func (e Expression) Root() Node { return e.root }

func (e Expression) IsZero() bool { return e.root == nil }

// Requirements yields every leaf depth-first, left to right, duplicates
// included. Each call starts a fresh traversal.
func (e Expression) Requirements() iter.Seq[Requirement] {
	return func(yield func(Requirement) bool) {
		walk(e.root, yield)
	}
}

func walk(n Node, yield func(Requirement) bool) bool {
	switch n := n.(type) {
	case Requirement:
		return yield(n)
	case And:
		return walk(n.Left, yield) && walk(n.Right, yield)
	case Or:
		return walk(n.Left, yield) && walk(n.Right, yield)
	}
	return true
}

// Len counts the requirement leaves.
func (e Expression) Len() int {
	n := 0
	for range e.Requirements() {
		n++
	}
	return n
}

// Evaluate reports whether the expression holds when exactly the
// requirements for which satisfied returns true are met.
func (e Expression) Evaluate(satisfied func(Requirement) bool) bool {
	if e.root == nil {
		return false
	}
	return eval(e.root, satisfied)
}

func eval(n Node, satisfied func(Requirement) bool) bool {
	switch n := n.(type) {
	case Requirement:
		return satisfied(n)
	case And:
		return eval(n.Left, satisfied) && eval(n.Right, satisfied)
	case Or:
		return eval(n.Left, satisfied) || eval(n.Right, satisfied)
	}
	return false
}

// String renders the canonical form. Parentheses appear only where an OR is
// an operand of an AND.
func (e Expression) String() string {
	if e.root == nil {
		return ""
	}
	var b strings.Builder
	write(&b, e.root, false)
	return b.String()
}

func write(b *strings.Builder, n Node, underAnd bool) {
	switch n := n.(type) {
	case Requirement:
		b.WriteString(n.String())
	case And:
		write(b, n.Left, true)
		b.WriteString(" AND ")
		write(b, n.Right, true)
	case Or:
		if underAnd {
			b.WriteByte('(')
		}
		write(b, n.Left, false)
		b.WriteString(" OR ")
		write(b, n.Right, false)
		if underAnd {
			b.WriteByte(')')
		}
	}
}

func (e Expression) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

func (e *Expression) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text), Lax)
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
