package tools

import (
	"encoding/json"
	"strconv"

	"github.com/shopspring/decimal"
)

// Parameter extraction is permissive: the model is free to send numbers as
// strings or integers as floats, and anything unusable degrades to the zero
// value rather than an error.

func stringParam(m map[string]any, key string) string {
	v, _ := m[key].(string)
	return v
}

func decimalParam(m map[string]any, key string) *decimal.Decimal {
	v, ok := m[key]
	if !ok || v == nil {
		return nil
	}
	var d decimal.Decimal
	switch n := v.(type) {
	case float64:
		d = decimal.NewFromFloat(n)
	case int:
		d = decimal.NewFromInt(int64(n))
	case json.Number:
		parsed, err := decimal.NewFromString(n.String())
		if err != nil {
			return nil
		}
		d = parsed
	case string:
		parsed, err := decimal.NewFromString(n)
		if err != nil {
			return nil
		}
		d = parsed
	default:
		return nil
	}
	return &d
}

func intParamDefault(m map[string]any, key string, def int) int {
	v, ok := m[key]
	if !ok || v == nil {
		return def
	}
	switch n := v.(type) {
	case float64:
		return int(n)
	case int:
		return n
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return def
		}
		return int(i)
	case string:
		i, err := strconv.Atoi(n)
		if err != nil {
			return def
		}
		return i
	}
	return def
}

func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
