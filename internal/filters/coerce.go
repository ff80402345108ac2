package filters

import (
	"encoding/json"
	"errors"
	"math"
	"strconv"
	"strings"
)

// coerceInt is the single integer coercion used by every adapter. present is
// false for nil and blank strings; ok is false when a present value is not an
// integer.
func coerceInt(raw any) (value int, present bool, ok bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false, true
	case int:
		return v, true, true
	case int8:
		return int(v), true, true
	case int16:
		return int(v), true, true
	case int32:
		return int(v), true, true
	case int64:
		return clampInt64(v), true, true
	case uint:
		return clampUint64(uint64(v)), true, true
	case uint8:
		return int(v), true, true
	case uint16:
		return int(v), true, true
	case uint32:
		return clampUint64(uint64(v)), true, true
	case uint64:
		return clampUint64(v), true, true
	case float32:
		return coerceFloat(float64(v))
	case float64:
		return coerceFloat(v)
	case json.Number:
		return coerceString(string(v))
	case string:
		return coerceString(v)
	case *int:
		if v == nil {
			return 0, false, true
		}
		return *v, true, true
	case *string:
		if v == nil {
			return 0, false, true
		}
		return coerceString(*v)
	}
	return 0, true, false
}

func coerceString(s string) (int, bool, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false, true
	}
	n, err := strconv.ParseInt(s, 10, 64)
	switch {
	case err == nil:
		return clampInt64(n), true, true
	case errors.Is(err, strconv.ErrRange):
		// Out-of-range integers are still integers; the bounds check rejects them.
		if strings.HasPrefix(s, "-") {
			return math.MinInt, true, true
		}
		return math.MaxInt, true, true
	}
	return 0, true, false
}

func coerceFloat(f float64) (int, bool, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
		return 0, true, false
	}
	if f >= math.MaxInt64 {
		return math.MaxInt, true, true
	}
	if f <= math.MinInt64 {
		return math.MinInt, true, true
	}
	return clampInt64(int64(f)), true, true
}

func clampInt64(v int64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	if v < math.MinInt {
		return math.MinInt
	}
	return int(v)
}

func clampUint64(v uint64) int {
	if v > math.MaxInt {
		return math.MaxInt
	}
	return int(v)
}

// normalizeString returns nil for absent or blank values.
func normalizeString(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
