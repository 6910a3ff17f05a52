// Package coerce holds the value-coercion helpers that generated model
// code uses in its FromMap builders. Keeping the semantics here, instead
// of inlining them into every generated file, makes the round-trip
// contract of generated models testable in one place.
//
// Required fields coerce with a zero-value fallback; nullable fields pass
// representable raw values through and otherwise yield nil, never a
// coerced zero.
package coerce

import "strconv"

// String coerces a raw map value to a string, falling back to "".
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if p, ok := v.(*string); ok && p != nil {
		return *p
	}
	return ""
}

// Int coerces a raw map value to an int, falling back to 0. JSON decoders
// hand numbers over as float64, so that is the common case.
func Int(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		return int(n)
	case float64:
		return int(n)
	case float32:
		return int(n)
	case string:
		if i, err := strconv.Atoi(n); err == nil {
			return i
		}
	case *int:
		if n != nil {
			return *n
		}
	}
	return 0
}

// Float coerces a raw map value to a float64, falling back to 0.
func Float(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int:
		return float64(n)
	case int64:
		return float64(n)
	case string:
		if f, err := strconv.ParseFloat(n, 64); err == nil {
			return f
		}
	case *float64:
		if n != nil {
			return *n
		}
	}
	return 0
}

// Bool coerces a raw map value to a bool, falling back to false.
func Bool(v any) bool {
	switch b := v.(type) {
	case bool:
		return b
	case string:
		if parsed, err := strconv.ParseBool(b); err == nil {
			return parsed
		}
	case *bool:
		if b != nil {
			return *b
		}
	}
	return false
}

// NullableString passes a representable raw value through as *string and
// yields nil for anything else, including absence.
func NullableString(v any) *string {
	switch s := v.(type) {
	case string:
		out := s
		return &out
	case *string:
		if s == nil {
			return nil
		}
		out := *s
		return &out
	}
	return nil
}

// NullableInt passes a representable raw value through as *int and yields
// nil for anything else.
func NullableInt(v any) *int {
	switch n := v.(type) {
	case int:
		out := n
		return &out
	case int64:
		out := int(n)
		return &out
	case float64:
		out := int(n)
		return &out
	case *int:
		if n == nil {
			return nil
		}
		out := *n
		return &out
	}
	return nil
}

// NullableFloat passes a representable raw value through as *float64 and
// yields nil for anything else.
func NullableFloat(v any) *float64 {
	switch n := v.(type) {
	case float64:
		out := n
		return &out
	case float32:
		out := float64(n)
		return &out
	case int:
		out := float64(n)
		return &out
	case *float64:
		if n == nil {
			return nil
		}
		out := *n
		return &out
	}
	return nil
}

// NullableBool passes a representable raw value through as *bool and
// yields nil for anything else.
func NullableBool(v any) *bool {
	switch b := v.(type) {
	case bool:
		out := b
		return &out
	case *bool:
		if b == nil {
			return nil
		}
		out := *b
		return &out
	}
	return nil
}
