package payment

import (
	"encoding/json"
	"strconv"
)

// CoerceAmount normalizes an amount that may arrive as a float, an integer,
// a json.Number or a numeric string. Anything else, and anything not
// strictly positive, is rejected with ErrInvalidAmount.
func CoerceAmount(v any) (float64, error) {
	var amount float64
	switch n := v.(type) {
	case float64:
		amount = n
	case float32:
		amount = float64(n)
	case int:
		amount = float64(n)
	case int64:
		amount = float64(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, ErrInvalidAmount
		}
		amount = f
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0, ErrInvalidAmount
		}
		amount = f
	default:
		return 0, ErrInvalidAmount
	}

	if amount <= 0 {
		return 0, ErrInvalidAmount
	}
	return amount, nil
}
