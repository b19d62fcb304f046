package spdx

import (
	"slices"
	"strings"
)

// Policy is the set of requirements an organisation accepts. Membership is
// exact on the canonical requirement string, so "Apache-2.0" does not accept
// "Apache-2.0 WITH LLVM-exception".
type Policy struct {
	accepted map[string]struct{}
}

// NewPolicy validates and canonicalises every entry.
func NewPolicy(ids ...string) (Policy, error) {
	p := Policy{accepted: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id == "" {
			continue
		}
		r, err := ParseRequirement(id)
		if err != nil {
			return Policy{}, err
		}
		p.accepted[r.String()] = struct{}{}
	}
	return p, nil
}

// Accepts reports whether r is a member of the policy.
func (p Policy) Accepts(r Requirement) bool {
	_, ok := p.accepted[r.String()]
	return ok
}

func (p Policy) Len() int { return len(p.accepted) }

// IDs returns the accepted requirements in sorted order.
func (p Policy) IDs() []string {
	out := make([]string, 0, len(p.accepted))
	for id := range p.accepted {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

func (p Policy) String() string {
	return "[" + strings.Join(p.IDs(), ", ") + "]"
}
