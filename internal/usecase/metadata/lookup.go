package metadata

import (
	"context"
	"fmt"
	"strings"

	"github.com/PaesslerAG/jsonpath"
)

// Path is a compiled JSONPath into a package's free-form metadata.
type Path struct {
	expr string
	eval func(context.Context, any) (any, error)
}

// Compile parses expr once so it can be applied to every package.
func Compile(expr string) (*Path, error) {
	expr = strings.TrimSpace(expr)
	if expr == "" {
		return nil, fmt.Errorf("empty jsonpath expression")
	}
	eval, err := jsonpath.New(expr)
	if err != nil {
		return nil, fmt.Errorf("jsonpath %q: %w", expr, err)
	}
	return &Path{expr: expr, eval: eval}, nil
}

func (p *Path) String() string { return p.expr }

// Lookup returns the string found at the path. Missing keys, nulls and
// empty values all report false: most packages carry no such entry. Objects
// and multiple matches report false too.
func (p *Path) Lookup(doc any) (string, bool) {
	if doc == nil {
		return "", false
	}
	val, err := p.eval(context.Background(), doc)
	if err != nil || isEmptyValue(val) {
		return "", false
	}
	s, err := toString(val)
	if err != nil || s == "" {
		return "", false
	}
	return s, true
}

func isEmptyValue(v any) bool {
	if v == nil {
		return true
	}
	switch t := v.(type) {
	case string:
		return t == ""
	case []any:
		return len(t) == 0
	case map[string]any:
		return len(t) == 0
	default:
		return false
	}
}

func toString(v any) (string, error) {
	// Wildcards and filters yield a slice; a single match is unwrapped.
	if arr, ok := v.([]any); ok {
		if len(arr) == 0 {
			return "", fmt.Errorf("empty array")
		}
		if len(arr) == 1 {
			return toString(arr[0])
		}
		return "", fmt.Errorf("jsonpath matched %d values", len(arr))
	}

	switch t := v.(type) {
	case string:
		return t, nil
	case float64, bool, int, int64, uint64:
		return fmt.Sprint(t), nil
	case map[string]any:
		return "", fmt.Errorf("jsonpath matched an object, not a file name")
	default:
		return fmt.Sprint(t), nil
	}
}
