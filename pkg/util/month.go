package util

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

var yearRegex = regexp.MustCompile(`^\d{4}$`)

const (
	MinPaymentYear = 1900
	MaxPaymentYear = 2099
)

// NormalizeMonth resolves a payment month to its 1-based integer. A value
// that parses as a number is used directly; otherwise it is interpreted as an
// English month name ("July" or "Jul", any casing).
func NormalizeMonth(v any) (int, error) {
	if m, ok := CoerceInt(v); ok {
		if m < 1 || m > 12 {
			return 0, fmt.Errorf("month must be between 1 and 12, got %d", m)
		}
		return m, nil
	}

	name, ok := v.(string)
	if !ok || strings.TrimSpace(name) == "" {
		return 0, fmt.Errorf("month must be a number 1-12 or an English month name")
	}
	name = titleCase(strings.TrimSpace(name))

	if t, err := time.Parse("January", name); err == nil {
		return int(t.Month()), nil
	}
	if t, err := time.Parse("Jan", name); err == nil {
		return int(t.Month()), nil
	}
	return 0, fmt.Errorf("unrecognized month name %q", name)
}

// NormalizeYear resolves a payment year. The value must render as a 4-digit
// string and lie within [1900, 2099].
func NormalizeYear(v any) (int, error) {
	s := CoerceString(v)
	if !yearRegex.MatchString(s) {
		return 0, fmt.Errorf("year must be a 4-digit number")
	}
	y, _ := CoerceInt(s)
	if y < MinPaymentYear || y > MaxPaymentYear {
		return 0, fmt.Errorf("year must be between %d and %d, got %d", MinPaymentYear, MaxPaymentYear, y)
	}
	return y, nil
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
