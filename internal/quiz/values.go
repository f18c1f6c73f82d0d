package quiz

import "quiz-trainer/internal/domain"

// Bank content arrives through encoding/json, so numbers are float64 and
// lists are []any. Hand-built questions (tests, seeds) use native Go values.
// These helpers normalize both forms.

// asIndex converts a scalar answer payload to an option index.
func asIndex(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n == float64(int(n)) {
			return int(n), true
		}
	}
	return 0, false
}

// asList converts a list-shaped answer payload to a []any. The named
// selection type from the presentation layers is handled alongside the
// underlying slice kinds; a type switch does not see through named types.
func asList(v any) ([]any, bool) {
	switch l := v.(type) {
	case []any:
		return l, true
	case []int:
		out := make([]any, len(l))
		for i, n := range l {
			out[i] = n
		}
		return out, true
	case []string:
		return stringsToAny(l), true
	case domain.YesNoSelection:
		return stringsToAny(l), true
	}
	return nil, false
}

func stringsToAny(l []string) []any {
	out := make([]any, len(l))
	for i, s := range l {
		out[i] = s
	}
	return out
}

// asObject converts a mapping-shaped answer payload to a map[string]any.
func asObject(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[string]string:
		out := make(map[string]any, len(m))
		for k, s := range m {
			out[k] = s
		}
		return out, true
	}
	return nil, false
}

// indexList converts a list payload to option indices; ok is false if any
// element is not an integral number.
func indexList(v any) ([]int, bool) {
	list, ok := asList(v)
	if !ok {
		return nil, false
	}
	out := make([]int, 0, len(list))
	for _, item := range list {
		n, ok := asIndex(item)
		if !ok {
			return nil, false
		}
		out = append(out, n)
	}
	return out, true
}

// stringList converts a list payload to strings; ok is false on any
// non-string element.
func stringList(v any) ([]string, bool) {
	list, ok := asList(v)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, false
		}
		out = append(out, s)
	}
	return out, true
}

// objectList converts a list payload to objects; ok is false if the list is
// empty or any element is not a mapping.
func objectList(v any) ([]map[string]any, bool) {
	list, ok := asList(v)
	if !ok || len(list) == 0 {
		return nil, false
	}
	out := make([]map[string]any, 0, len(list))
	for _, item := range list {
		obj, ok := asObject(item)
		if !ok {
			return nil, false
		}
		out = append(out, obj)
	}
	return out, true
}
