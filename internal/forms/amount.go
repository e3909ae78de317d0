package forms

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
)

// ErrInvalidAmount is returned for amounts that are not a positive number.
var ErrInvalidAmount = errors.New("amount must be a positive number")

// Stored amounts are NUMERIC(12,2).
const (
	MinAmount = 0.01
	MaxAmount = 9999999999.99
)

// PresetAmounts are the donation buttons of the support wizard.
var PresetAmounts = []string{"$25", "$50", "$100", "$250", "$500"}

// CustomAmount selects the free-text amount input.
const CustomAmount = "custom"

var nonAmountChars = regexp.MustCompile(`[^0-9.]`)

// NormalizeAmount turns a display amount such as "$1,250.00" into a number
// rounded to cents. Every character other than digits and dots is stripped
// first. The rounded amount must lie within MinAmount and MaxAmount.
func NormalizeAmount(raw interface{}) (float64, error) {
	var value float64
	switch v := raw.(type) {
	case float64:
		value = v
	case int:
		value = float64(v)
	case int64:
		value = float64(v)
	case string:
		cleaned := nonAmountChars.ReplaceAllString(v, "")
		if cleaned == "" {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, v)
		}
		parsed, err := strconv.ParseFloat(cleaned, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q", ErrInvalidAmount, v)
		}
		value = parsed
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidAmount, raw)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, raw)
	}
	value = math.Round(value*100) / 100
	if value < MinAmount || value > MaxAmount {
		return 0, fmt.Errorf("%w: %v", ErrInvalidAmount, raw)
	}
	return value, nil
}

// FormatAmount renders an amount with two decimals for storage.
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', 2, 64)
}
