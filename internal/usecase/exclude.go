package usecase

import (
	"fmt"

	"github.com/bmatcuk/doublestar"
)

// Excluder matches package names against glob patterns.
type Excluder struct {
	patterns []string
}

// NewExcluder validates every pattern up front.
func NewExcluder(patterns ...string) (*Excluder, error) {
	for _, p := range patterns {
		if _, err := doublestar.Match(p, "x"); err != nil {
			return nil, fmt.Errorf("exclude pattern %q: %w", p, err)
		}
	}
	return &Excluder{patterns: patterns}, nil
}

// Excluded reports whether name matches any pattern. A nil Excluder
// excludes nothing.
func (e *Excluder) Excluded(name string) bool {
	if e == nil {
		return false
	}
	for _, p := range e.patterns {
		if ok, _ := doublestar.Match(p, name); ok {
			return true
		}
	}
	return false
}
