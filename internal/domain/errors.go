package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification.
var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidConfig = errors.New("invalid config")
	ErrInconsistent  = errors.New("internal inconsistency")
	ErrExecution     = errors.New("execution error")
)

// ErrorKind is a coarse-grained categorization for errors.
type ErrorKind string

const (
	KindNotFound            ErrorKind = "not_found"
	KindInvalidConfig       ErrorKind = "invalid_config"
	KindExecution           ErrorKind = "execution"
	KindMalformedExpression ErrorKind = "malformed_expression"
	KindUnsatisfiable       ErrorKind = "unsatisfiable_license"
	KindCorpusUnavailable   ErrorKind = "corpus_unavailable"
	KindInternal            ErrorKind = "internal_inconsistency"
)

// OpError wraps an underlying error with operation context and a kind.
type OpError struct {
	Op      string
	Kind    ErrorKind
	Package string // Optional: "name version" of the package being processed
	Path    string // Optional: relevant file path
	Err     error
}

func (e *OpError) Error() string {
	if e == nil {
		return "<nil>"
	}

	base := fmt.Sprintf("%s: %s", e.Op, e.Kind)
	if e.Package != "" {
		base += fmt.Sprintf(" (package=%s)", e.Package)
	}
	if e.Path != "" {
		base += fmt.Sprintf(" (path=%s)", e.Path)
	}
	if e.Err != nil {
		base += fmt.Sprintf(": %v", e.Err)
	}
	return base
}

func (e *OpError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// IsKind helps callers classify errors without depending on infra packages.
// It also looks inside errors joined with errors.Join.
func IsKind(err error, kind ErrorKind) bool {
	var oe *OpError
	if errors.As(err, &oe) && oe.Kind == kind {
		return true
	}
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			if IsKind(e, kind) {
				return true
			}
		}
	}
	return false
}
