package form

import (
	"net/http"
	"strings"
)

// Kind selects how a field is rendered and parsed.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindEmail    Kind = "email"
	KindTel      Kind = "tel"
	KindPassword Kind = "password"
	KindTextarea Kind = "textarea"
	KindSelect   Kind = "select"
	KindCheckbox Kind = "checkbox"
	KindDate     Kind = "date"
)

type Option struct {
	Value string
	Label string
}

type Field struct {
	Name  string
	Label string
	Kind  Kind
	// Prefix is shown in front of the input, e.g. the dialing code of a national number.
	Prefix         string
	Placeholder    string
	Options        []Option
	ReadOnlyOnEdit bool
	Default        string
	Constraints    []Constraint
}

// Required reports whether the field carries a Required constraint.
func (f Field) Required() bool {
	for _, c := range f.Constraints {
		if _, ok := c.(Required); ok {
			return true
		}
	}
	return false
}

type Schema struct {
	Fields []Field
}

func NewSchema(fields ...Field) Schema {
	return Schema{Fields: fields}
}

func (s Schema) Field(name string) (Field, bool) {
	for _, f := range s.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Defaults is the empty record a create dialog opens with.
func (s Schema) Defaults() Values {
	values := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		switch {
		case f.Default != "":
			values[f.Name] = f.Default
		case f.Kind == KindCheckbox:
			values[f.Name] = "false"
		default:
			values[f.Name] = ""
		}
	}
	return values
}

// Parse reads the schema's fields out of a submitted form. Unchecked
// checkboxes are absent from the body and parse as "false".
func (s Schema) Parse(r *http.Request) Values {
	_ = r.ParseForm()
	values := make(Values, len(s.Fields))
	for _, f := range s.Fields {
		raw := r.PostForm.Get(f.Name)
		if f.Kind == KindCheckbox {
			if raw == "" || raw == "false" || raw == "off" {
				values[f.Name] = "false"
			} else {
				values[f.Name] = "true"
			}
			continue
		}
		if f.Kind != KindPassword && f.Kind != KindTextarea {
			raw = strings.TrimSpace(raw)
		}
		values[f.Name] = raw
	}
	return values
}

// Values is a record of field name to raw input.
type Values map[string]string

func (v Values) Get(name string) string {
	return v[name]
}

func (v Values) Bool(name string) bool {
	return v[name] == "true"
}

func (v Values) Clone() Values {
	out := make(Values, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

// Equal compares two records treating a missing key as "".
func (v Values) Equal(other Values) bool {
	for k, val := range v {
		if other[k] != val {
			return false
		}
	}
	for k, val := range other {
		if v[k] != val {
			return false
		}
	}
	return true
}

type Errors map[string]string

type Touched map[string]bool
