package server

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/mj1618/win-ctrl/internal/apperr"
)

// args are the arguments of one tool call.
type args map[string]any

func (a args) str(key, defaultVal string) string {
	v, ok := a[key]
	if !ok || v == nil {
		return defaultVal
	}
	if s, ok := v.(string); ok {
		return s
	}
	// Clients sometimes send numbers for string fields ("1" as 1).
	return fmt.Sprintf("%v", v)
}

func (a args) flag(key string, defaultVal bool) bool {
	switch b := a[key].(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	}
	return defaultVal
}

func (a args) number(key string, defaultVal float64) (float64, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return defaultVal, nil
	}
	switch n := v.(type) {
	case float64:
		return n, nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
			return f, nil
		}
	}
	return 0, apperr.Invalidf(apperr.Details{"parameter": key, "provided": v}, "%s must be a number", key)
}

func (a args) integer(key string, defaultVal int) (int, error) {
	p, err := a.optionalInt(key)
	if err != nil || p == nil {
		return defaultVal, err
	}
	return *p, nil
}

// optionalInt returns nil when key is absent or null.
func (a args) optionalInt(key string) (*int, error) {
	v, ok := a[key]
	if !ok || v == nil {
		return nil, nil
	}
	var n int
	switch t := v.(type) {
	case float64:
		if t != math.Trunc(t) {
			return nil, notInteger(key, v)
		}
		n = int(t)
	case int:
		n = t
	case int64:
		n = int(t)
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return nil, notInteger(key, v)
		}
		n = parsed
	default:
		return nil, notInteger(key, v)
	}
	return &n, nil
}

func notInteger(key string, v any) error {
	return apperr.Invalidf(apperr.Details{"parameter": key, "provided": v}, "%s must be an integer", key)
}

// list accepts an array of strings or a single comma-separated string.
func (a args) list(key string) []string {
	switch v := a[key].(type) {
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	case []string:
		return v
	case string:
		var out []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
		return out
	}
	return nil
}
