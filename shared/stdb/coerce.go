package stdb

import (
	"encoding/json"
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"
)

var (
	algebraicInt   = regexp.MustCompile(`^[iu](8|16|32|64|128|256)$`)
	algebraicFloat = regexp.MustCompile(`^f(32|64)$`)
)

// CoerceRow converts form values to the JSON types expected by each column.
// Values for columns missing from the schema are kept as strings.
func CoerceRow(t TableInfo, values map[string]string) map[string]any {
	out := make(map[string]any, len(values))
	for name, v := range values {
		col, ok := t.Column(name)
		if !ok {
			out[name] = v
			continue
		}
		out[name] = CoerceValue(col, v)
	}
	return out
}

// CoerceValue converts one form value according to its column type.
func CoerceValue(col ColumnInfo, value string) any {
	typ := strings.ToLower(strings.TrimSpace(col.Type))

	switch {
	case value == "" && col.Nullable:
		return nil
	case strings.Contains(typ, "int") || strings.Contains(typ, "number") || algebraicInt.MatchString(typ):
		return parseInteger(value)
	case strings.Contains(typ, "float") || strings.Contains(typ, "double") || algebraicFloat.MatchString(typ):
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil || math.IsNaN(f) {
			return float64(0)
		}
		return f
	case strings.Contains(typ, "bool"):
		return strings.ToLower(value) == "true"
	default:
		return value
	}
}

// parseInteger accepts signed, large unsigned and fractional input; anything
// unparsable becomes 0. Integers wider than 64 bits are returned as
// json.Number so every digit reaches the service.
func parseInteger(value string) any {
	v := strings.TrimSpace(value)
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if u, err := strconv.ParseUint(v, 10, 64); err == nil {
		return u
	}
	if b, ok := new(big.Int).SetString(v, 10); ok {
		return json.Number(b.String())
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil && !math.IsNaN(f) && !math.IsInf(f, 0) {
		if f >= math.MinInt64 && f < math.MaxInt64 {
			return int64(f)
		}
		b, _ := big.NewFloat(f).Int(nil)
		return json.Number(b.String())
	}
	return int64(0)
}

// CoerceData applies CoerceValue to the string values of data. Values that
// already carry a JSON type are kept.
func CoerceData(t TableInfo, data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for name, v := range data {
		s, isString := v.(string)
		col, known := t.Column(name)
		if !isString || !known {
			out[name] = v
			continue
		}
		out[name] = CoerceValue(col, s)
	}
	return out
}
