package spdx

import (
	"fmt"
	"slices"
)

// exhaustiveLimit bounds the number of distinct accepted requirements for
// which every combination is tried.
const exhaustiveLimit = 16

// MinimizedRequirements returns the smallest set of accepted requirements
// that satisfies the expression, sorted by canonical string.
//
// Up to exhaustiveLimit candidates the result has minimum cardinality, and
// among sets of that size it is the lexicographically smallest. Above the
// limit the result is computed per node (fewest-requirement OR branch, union
// for AND) and then reduced until no element can be dropped. In both cases no
// proper subset of the result satisfies the expression.
func (e Expression) MinimizedRequirements(p Policy) ([]Requirement, error) {
	if e.root == nil {
		return nil, fmt.Errorf("%w: empty expression", ErrUnsatisfiable)
	}

	candidates := acceptedRequirements(e, p)
	if !e.Evaluate(member(candidates)) {
		return nil, fmt.Errorf("%w: %q with accepted %s", ErrUnsatisfiable, e.String(), p)
	}

	if len(candidates) <= exhaustiveLimit {
		if set, ok := smallestCombination(e, candidates); ok {
			return set, nil
		}
	}

	set, ok := minimalFor(e.root, p)
	if !ok {
		return nil, fmt.Errorf("%w: %q with accepted %s", ErrUnsatisfiable, e.String(), p)
	}
	return reduce(e, set), nil
}

// acceptedRequirements returns the distinct accepted leaves, sorted.
func acceptedRequirements(e Expression, p Policy) []Requirement {
	seen := map[string]bool{}
	var out []Requirement
	for r := range e.Requirements() {
		key := r.String()
		if seen[key] || !p.Accepts(r) {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	sortRequirements(out)
	return out
}

func member(set []Requirement) func(Requirement) bool {
	keys := make(map[string]struct{}, len(set))
	for _, r := range set {
		keys[r.String()] = struct{}{}
	}
	return func(r Requirement) bool {
		_, ok := keys[r.String()]
		return ok
	}
}

// smallestCombination walks combinations of the sorted candidates by
// increasing size, each size in lexicographic order, and returns the first
// one that satisfies e.
func smallestCombination(e Expression, candidates []Requirement) ([]Requirement, bool) {
	n := len(candidates)
	for k := 1; k <= n; k++ {
		idx := make([]int, k)
		for i := range idx {
			idx[i] = i
		}
		for {
			set := make([]Requirement, k)
			for i, j := range idx {
				set[i] = candidates[j]
			}
			if e.Evaluate(member(set)) {
				return set, true
			}
			if !nextCombination(idx, n) {
				break
			}
		}
	}
	return nil, false
}

func nextCombination(idx []int, n int) bool {
	k := len(idx)
	i := k - 1
	for i >= 0 && idx[i] == n-k+i {
		i--
	}
	if i < 0 {
		return false
	}
	idx[i]++
	for j := i + 1; j < k; j++ {
		idx[j] = idx[j-1] + 1
	}
	return true
}

// minimalFor applies the per-node rule. The returned slice is sorted and
// free of duplicates.
func minimalFor(n Node, p Policy) ([]Requirement, bool) {
	switch n := n.(type) {
	case Requirement:
		if !p.Accepts(n) {
			return nil, false
		}
		return []Requirement{n}, true
	case And:
		l, ok := minimalFor(n.Left, p)
		if !ok {
			return nil, false
		}
		r, ok := minimalFor(n.Right, p)
		if !ok {
			return nil, false
		}
		return union(l, r), true
	case Or:
		l, lok := minimalFor(n.Left, p)
		r, rok := minimalFor(n.Right, p)
		switch {
		case lok && rok:
			if compareSets(r, l) < 0 {
				return r, true
			}
			return l, true
		case lok:
			return l, true
		case rok:
			return r, true
		}
	}
	return nil, false
}

// reduce drops elements, in sorted order, as long as e stays satisfied.
func reduce(e Expression, set []Requirement) []Requirement {
	out := slices.Clone(set)
	for i := 0; i < len(out); {
		trial := slices.Delete(slices.Clone(out), i, i+1)
		if e.Evaluate(member(trial)) {
			out = trial
			continue
		}
		i++
	}
	return out
}

func union(a, b []Requirement) []Requirement {
	out := slices.Clone(a)
	for _, r := range b {
		if !slices.ContainsFunc(out, func(x Requirement) bool { return x.String() == r.String() }) {
			out = append(out, r)
		}
	}
	sortRequirements(out)
	return out
}

// compareSets orders sets by size, then element-wise by canonical string.
func compareSets(a, b []Requirement) int {
	if len(a) != len(b) {
		return len(a) - len(b)
	}
	for i := range a {
		if c := compareRequirements(a[i], b[i]); c != 0 {
			return c
		}
	}
	return 0
}

func compareRequirements(a, b Requirement) int {
	as, bs := a.String(), b.String()
	switch {
	case as < bs:
		return -1
	case as > bs:
		return 1
	}
	return 0
}

func sortRequirements(rs []Requirement) {
	slices.SortFunc(rs, compareRequirements)
}
