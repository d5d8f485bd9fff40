package form

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/MohamedHaro0on/radiology-lab-managment-system-sub002/pkg/validator"
)

// Message keys produced by Validator. Params always carry "field" (the
// translated label) plus the constraint's argument where it has one.
const (
	MsgRequired  = "validation.required"
	MsgMinLength = "validation.minLength"
	MsgMaxLength = "validation.maxLength"
	MsgNumeric   = "validation.numeric"
	MsgInteger   = "validation.integer"
	MsgMin       = "validation.min"
	MsgMax       = "validation.max"
	MsgPattern   = "validation.pattern"
	MsgEmail     = "validation.email"
	MsgOneOf     = "validation.oneOf"
	MsgEqualTo   = "validation.equalTo"
)

// MessageFunc renders a message key with params, typically a translator.
type MessageFunc func(key string, params map[string]interface{}) string

// Validator evaluates constraints through the shared go-playground validator.
type Validator struct {
	cv  *validator.CustomValidator
	msg MessageFunc
}

func NewValidator(cv *validator.CustomValidator, msg MessageFunc) *Validator {
	if msg == nil {
		msg = func(key string, _ map[string]interface{}) string { return key }
	}
	return &Validator{cv: cv, msg: msg}
}

// Field returns the first failing constraint's message for one field, or "".
// An optional field left empty passes without evaluating anything else.
func (v *Validator) Field(f Field, values Values) string {
	raw := values[f.Name]
	label := v.msg(f.Label, nil)

	if strings.TrimSpace(raw) == "" {
		if f.Required() {
			return v.msg(MsgRequired, map[string]interface{}{"field": label})
		}
		return ""
	}

	for _, c := range f.Constraints {
		if key, params := v.check(c, raw, values); key != "" {
			params["field"] = label
			return v.msg(key, params)
		}
	}
	return ""
}

// Validate runs every field and returns the failing ones.
func (v *Validator) Validate(schema Schema, values Values) Errors {
	errs := Errors{}
	for _, f := range schema.Fields {
		if msg := v.Field(f, values); msg != "" {
			errs[f.Name] = msg
		}
	}
	return errs
}

func (v *Validator) check(c Constraint, raw string, values Values) (string, map[string]interface{}) {
	params := map[string]interface{}{}

	switch c := c.(type) {
	case Required:
		if v.cv.Var(strings.TrimSpace(raw), "required") != nil {
			return MsgRequired, params
		}
	case MinLength:
		if v.cv.Var(raw, fmt.Sprintf("min=%d", c.N)) != nil {
			params["min"] = c.N
			return MsgMinLength, params
		}
	case MaxLength:
		if v.cv.Var(raw, fmt.Sprintf("max=%d", c.N)) != nil {
			params["max"] = c.N
			return MsgMaxLength, params
		}
	case Numeric:
		if c.Integer {
			if v.cv.Var(strings.TrimPrefix(raw, "-"), "number") != nil {
				return MsgInteger, params
			}
		} else if v.cv.Var(raw, "numeric") != nil {
			return MsgNumeric, params
		}
	case Min:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			if v.cv.Var(n, "gte="+formatBound(c.Value)) != nil {
				params["min"] = formatBound(c.Value)
				return MsgMin, params
			}
		}
	case Max:
		if n, err := strconv.ParseFloat(raw, 64); err == nil {
			if v.cv.Var(n, "lte="+formatBound(c.Value)) != nil {
				params["max"] = formatBound(c.Value)
				return MsgMax, params
			}
		}
	case Pattern:
		if c.Expr != nil && !c.Expr.MatchString(raw) {
			if c.Message != "" {
				return c.Message, params
			}
			return MsgPattern, params
		}
	case Email:
		if v.cv.Var(raw, "email") != nil {
			return MsgEmail, params
		}
	case OneOf:
		if v.cv.Var(raw, "oneof="+quoteOptions(c.Options)) != nil {
			params["options"] = strings.Join(c.Options, ", ")
			return MsgOneOf, params
		}
	case EqualTo:
		if v.cv.VarWithValue(raw, values[c.Field], "eqfield") != nil {
			params["other"] = c.Field
			return MsgEqualTo, params
		}
	}
	return "", params
}

func formatBound(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func quoteOptions(options []string) string {
	quoted := make([]string, len(options))
	for i, o := range options {
		quoted[i] = "'" + o + "'"
	}
	return strings.Join(quoted, " ")
}
