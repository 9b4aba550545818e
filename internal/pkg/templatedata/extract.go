// Package templatedata reads typed scalars out of the loosely typed template
// payloads producers attach to notification requests.
//
// Producers disagree on key naming (projectName, project_name, name), so every
// lookup takes an ordered alias list. Lookups never fail: a nil payload, a
// missing key or a value of the wrong shape all read as absent.
package templatedata

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const ellipsis = "..."

// String returns the first alias whose value is a non-blank string.
func String(data map[string]any, keys ...string) (string, bool) {
	return lookup(data, asString, keys)
}

// Int returns the first alias whose value is numeric or a string holding an integer.
// Values that fail to convert are skipped and the next alias is tried.
func Int(data map[string]any, keys ...string) (int, bool) {
	return lookup(data, asInt, keys)
}

// Truncate keeps the first max characters of s and appends an ellipsis when s is longer.
func Truncate(s string, max int) string {
	r := []rune(s)
	if max < 0 || len(r) <= max {
		return s
	}
	return string(r[:max]) + ellipsis
}

func lookup[T any](data map[string]any, convert func(any) (T, bool), keys []string) (T, bool) {
	var zero T
	if data == nil {
		return zero, false
	}
	for _, k := range keys {
		v, ok := data[k]
		if !ok || v == nil {
			continue
		}
		if out, ok := convert(v); ok {
			return out, true
		}
	}
	return zero, false
}

func asString(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int8:
		return int(n), true
	case int16:
		return int(n), true
	case int32:
		return int(n), true
	case int64:
		return int(n), true
	case uint:
		return int(n), true
	case uint8:
		return int(n), true
	case uint16:
		return int(n), true
	case uint32:
		return int(n), true
	case uint64:
		return int(n), true
	case float32:
		return floatToInt(float64(n))
	case float64:
		return floatToInt(n)
	case json.Number:
		if i, err := n.Int64(); err == nil {
			return int(i), true
		}
		if f, err := n.Float64(); err == nil {
			return floatToInt(f)
		}
		return 0, false
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// floatToInt truncates toward zero; NaN and infinities are not numbers a producer meant.
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return int(f), true
}
