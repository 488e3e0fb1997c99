package config

import (
	"fmt"
	"math"
	"sort"
)

// table reads typed values out of one settings table. Rejected values
// leave the destination untouched and are recorded as warnings.
type table struct {
	name string
	m    map[string]any
	used map[string]bool
	errs *[]error
}

func (t *table) lookup(key string) (any, bool) {
	t.used[key] = true
	v, ok := t.m[key]
	return v, ok
}

func (t *table) reject(key string, v any, code ValidationErrorCode, msg string) {
	*t.errs = append(*t.errs, &ValidationError{
		Path: t.name + "." + key, Message: msg, Value: v, Code: code,
	})
}

func (t *table) mismatch(key string, v any, want string) {
	t.reject(key, v, ErrCodeTypeMismatch, fmt.Sprintf("expected %s, got %s", want, typeName(v)))
}

func (t *table) getInt(key string, dst *int, min int) {
	v, ok := t.lookup(key)
	if !ok {
		return
	}
	n, ok := toInt(v)
	if !ok {
		t.mismatch(key, v, "int")
		return
	}
	if n < min {
		t.reject(key, v, ErrCodeOutOfRange, fmt.Sprintf("must be at least %d", min))
		return
	}
	*dst = n
}

func (t *table) getSignedInt(key string, dst *int) {
	t.getInt(key, dst, math.MinInt)
}

// getFloat accepts integers too. Values must exceed min, or equal it
// when inclusive is set.
func (t *table) getFloat(key string, dst *float64, min float64, inclusive bool) {
	v, ok := t.lookup(key)
	if !ok {
		return
	}
	f, ok := toFloat(v)
	if !ok {
		t.mismatch(key, v, "number")
		return
	}
	if f < min || (!inclusive && f == min) {
		op := "greater than"
		if inclusive {
			op = "at least"
		}
		t.reject(key, v, ErrCodeOutOfRange, fmt.Sprintf("must be %s %v", op, min))
		return
	}
	*dst = f
}

func (t *table) getBool(key string, dst *bool) {
	v, ok := t.lookup(key)
	if !ok {
		return
	}
	b, ok := v.(bool)
	if !ok {
		t.mismatch(key, v, "bool")
		return
	}
	*dst = b
}

func (t *table) getString(key string, dst *string) {
	v, ok := t.lookup(key)
	if !ok {
		return
	}
	s, ok := v.(string)
	if !ok {
		t.mismatch(key, v, "string")
		return
	}
	*dst = s
}

func (t *table) getStrings(key string, dst *[]string) {
	v, ok := t.lookup(key)
	if !ok {
		return
	}
	list, ok := v.([]any)
	if !ok {
		t.mismatch(key, v, "array of strings")
		return
	}
	out := make([]string, 0, len(list))
	for _, it := range list {
		s, ok := it.(string)
		if !ok || s == "" {
			t.mismatch(key, v, "array of strings")
			return
		}
		out = append(out, s)
	}
	if len(out) == 0 {
		t.reject(key, v, ErrCodeRequiredMissing, "must not be empty")
		return
	}
	*dst = out
}

// unknown reports keys that were never read.
func (t *table) unknown() {
	keys := make([]string, 0, len(t.m))
	for k := range t.m {
		if !t.used[k] {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		t.reject(k, t.m[k], ErrCodeUnknownSetting, "unknown setting")
	}
}

func toInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case uint64:
		if n > math.MaxInt {
			return 0, false
		}
		return int(n), true
	case float64:
		if n != math.Trunc(n) {
			return 0, false
		}
		return int(n), true
	default:
		return 0, false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

func typeName(v any) string {
	switch v.(type) {
	case nil:
		return "nil"
	case string:
		return "string"
	case int, int64, uint64:
		return "int"
	case float64:
		return "float"
	case bool:
		return "bool"
	case []any:
		return "array"
	case map[string]any:
		return "table"
	default:
		return fmt.Sprintf("%T", v)
	}
}
