package converter

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/internal/form"
)

// FieldError is a value that passed the form schema but could not be
// converted for the backend. Key is a translation key.
type FieldError struct {
	Field string
	Key   string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Key
}

const (
	msgInvalidNumber = "validation.numeric"
	msgInvalidItems  = "validation.scanItems"
	msgInvalidDate   = "validation.date"
)

func boolString(b bool) string {
	return strconv.FormatBool(b)
}

func intValue(v form.Values, field string) (int, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &FieldError{Field: field, Key: msgInvalidNumber}
	}
	return n, nil
}

func intString(n int) string {
	return strconv.Itoa(n)
}

func decimalValue(v form.Values, field string) (decimal.Decimal, error) {
	raw := strings.TrimSpace(v.Get(field))
	if raw == "" {
		return decimal.Zero, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, &FieldError{Field: field, Key: msgInvalidNumber}
	}
	return d, nil
}

func decimalString(d decimal.Decimal) string {
	return d.String()
}
