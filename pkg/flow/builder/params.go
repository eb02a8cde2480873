package builder

import (
	"fmt"
	"sort"
	"strings"
)

// UndefinedParameterError is returned when worker params reference
// "$name" placeholders that are missing from the build parameters.
type UndefinedParameterError struct {
	// Node is the id of the node whose worker references the names.
	Node string

	// Names lists the missing parameter names in sorted order.
	Names []string
}

// Error implements the error interface.
func (e *UndefinedParameterError) Error() string {
	if len(e.Names) == 1 {
		return fmt.Sprintf("node %s: undefined parameter: $%s", e.Node, e.Names[0])
	}
	return fmt.Sprintf("node %s: undefined parameters: $%s", e.Node, strings.Join(e.Names, ", $"))
}

// substitute returns a copy of params with "$name" placeholders replaced.
//
// A string value of the form "$name" is replaced as a whole by values[name],
// keeping the type of the replacement. "$$text" yields the literal "$text".
// Nested maps and lists are substituted recursively. Missing names are
// collected and reported together.
func substitute(params, values map[string]any) (map[string]any, []string) {
	if params == nil {
		return nil, nil
	}

	missing := map[string]bool{}
	out := substituteMap(params, values, missing)
	if len(missing) == 0 {
		return out, nil
	}

	names := make([]string, 0, len(missing))
	for name := range missing {
		names = append(names, name)
	}
	sort.Strings(names)
	return nil, names
}

func substituteMap(m, values map[string]any, missing map[string]bool) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = substituteValue(v, values, missing)
	}
	return out
}

func substituteValue(v any, values map[string]any, missing map[string]bool) any {
	switch val := v.(type) {
	case string:
		name, ok := placeholder(val)
		if !ok {
			if strings.HasPrefix(val, "$$") {
				return val[1:]
			}
			return val
		}
		if replacement, found := values[name]; found {
			return replacement
		}
		missing[name] = true
		return val
	case map[string]any:
		return substituteMap(val, values, missing)
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = substituteValue(item, values, missing)
		}
		return out
	default:
		return v
	}
}

// placeholder returns the name of a "$name" value.
func placeholder(s string) (string, bool) {
	if len(s) < 2 || s[0] != '$' || s[1] == '$' {
		return "", false
	}
	return s[1:], true
}
