package utils

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ToInt64 converts various types to int64 using explicit type switching.
// It handles standard integer types, floats (truncated), strings, and byte slices.
// The second return value reports whether the conversion succeeded.
func ToInt64(val any) (int64, bool) {
	switch v := val.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case int32:
		return int64(v), true
	case int16:
		return int64(v), true
	case int8:
		return int64(v), true
	case uint:
		return int64(v), true
	case uint64:
		return int64(v), true
	case uint32:
		return int64(v), true
	case uint16:
		return int64(v), true
	case uint8:
		return int64(v), true
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return 0, false
		}
		return int64(v), true
	case float32:
		return ToInt64(float64(v))
	case string:
		i, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		return i, err == nil
	case []byte:
		return ToInt64(string(v))
	default:
		return 0, false
	}
}

// ToFloat converts numeric values to float64.
// Anything that is not a number (including XML-RPC false for empty fields) yields 0.
func ToFloat(val any) float64 {
	switch v := val.(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case string:
		f, _ := strconv.ParseFloat(strings.TrimSpace(v), 64)
		return f
	default:
		if i, ok := ToInt64(v); ok {
			return float64(i)
		}
		return 0
	}
}

// ToString converts various types to string.
// Odoo encodes empty char fields as boolean false, which maps to "".
func ToString(val any) string {
	switch v := val.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case bool:
		if !v {
			return ""
		}
		return "true"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// IsFalsy reports whether val is empty in the loose sense RPC servers use:
// nil, false, zero numbers and empty strings.
func IsFalsy(val any) bool {
	switch v := val.(type) {
	case nil:
		return true
	case bool:
		return !v
	case string:
		return v == ""
	default:
		if i, ok := ToInt64(v); ok {
			return i == 0
		}
		return false
	}
}
