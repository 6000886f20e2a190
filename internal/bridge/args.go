package bridge

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Args is an action's argument payload as decoded from JSON (numbers arrive as float64).
type Args map[string]any

func (a Args) String(key string) string {
	switch v := a[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Int reads key as an integer. ok is false when the key is missing, not a
// whole number, or outside the int range.
func (a Args) Int(key string) (n int, ok bool) {
	switch v := a[key].(type) {
	case int:
		return v, true
	case int64:
		if v < math.MinInt || v > math.MaxInt {
			return 0, false
		}
		return int(v), true
	case float64:
		if v != math.Trunc(v) || v < float64(math.MinInt) || v >= -float64(math.MinInt) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		return n, err == nil
	default:
		return 0, false
	}
}

func (a Args) requireString(key string) (string, error) {
	s := a.String(key)
	if s == "" {
		return "", fmt.Errorf("missing argument %q", key)
	}
	return s, nil
}

func (a Args) requireInt(key string) (int, error) {
	n, ok := a.Int(key)
	if !ok {
		return 0, fmt.Errorf("argument %q must be a whole number", key)
	}
	return n, nil
}
