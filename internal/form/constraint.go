package form

import "regexp"

// Constraint is one rule on a field value. The set is closed: Validator
// knows every implementation.
type Constraint interface {
	constraint()
}

type Required struct{}

type MinLength struct{ N int }

type MaxLength struct{ N int }

// Numeric requires a decimal number, or a whole number when Integer is set.
type Numeric struct{ Integer bool }

type Min struct{ Value float64 }

type Max struct{ Value float64 }

// Pattern requires a regular expression match. Message is a translation key;
// empty falls back to the generic pattern message.
type Pattern struct {
	Expr    *regexp.Regexp
	Message string
}

type Email struct{}

type OneOf struct{ Options []string }

// EqualTo requires the value to equal another field of the same form.
type EqualTo struct{ Field string }

func (Required) constraint()  {}
func (MinLength) constraint() {}
func (MaxLength) constraint() {}
func (Numeric) constraint()   {}
func (Min) constraint()       {}
func (Max) constraint()       {}
func (Pattern) constraint()   {}
func (Email) constraint()     {}
func (OneOf) constraint()     {}
func (EqualTo) constraint()   {}
