// internal/settings/compare.go
package settings

/*
 * Value comparison and truthiness.
 *
 * Scalar equality is strict across types (a string never equals a number)
 * but tolerant across numeric representations: JSON decoding yields float64
 * while typed Go callers pass int/int64, and 1 must equal 1.0 regardless of
 * which side produced which.
 *
 * Truthiness follows the configuration language the documents come from:
 * nil, false, zero numbers, and empty strings are falsy; everything else,
 * including non-empty structured values, is truthy. Used for answers-map
 * lookups and custom evaluator results.
 */

// scalarEqual performs equality comparison with numeric type mixing.
func scalarEqual(a, b any) bool {
	if na, oka := toFloat64(a); oka {
		nb, okb := toFloat64(b)
		return okb && na == nb
	}
	if _, okb := toFloat64(b); okb {
		return false
	}
	return a == b
}

// memberOf checks membership with scalarEqual semantics.
func memberOf(value any, members []any) bool {
	for _, elem := range members {
		if scalarEqual(value, elem) {
			return true
		}
	}
	return false
}

// toFloat64 converts value to float64 if it is a numeric type.
// Handles float64 from JSON unmarshaling plus the fixed-width types
// programmatic callers use.
func toFloat64(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case uint:
		return float64(n), true
	case uint8:
		return float64(n), true
	case uint16:
		return float64(n), true
	case uint32:
		return float64(n), true
	case uint64:
		return float64(n), true
	default:
		return 0, false
	}
}

// isTruthy coerces an arbitrary value to a boolean match result.
func isTruthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	default:
		if n, ok := toFloat64(v); ok {
			return n != 0
		}
		return true
	}
}
