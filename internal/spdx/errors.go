package spdx

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedExpression = errors.New("malformed license expression")
	ErrUnsatisfiable       = errors.New("unsatisfiable license expression")
)

// ParseError reports where and why an expression failed to parse.
type ParseError struct {
	Input  string
	Offset int
	Reason string
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s: %s at offset %d in %q", ErrMalformedExpression, e.Reason, e.Offset, e.Input)
}

func (e *ParseError) Is(target error) bool {
	return target == ErrMalformedExpression
}
