package form

import (
	"context"
	"errors"
)

var (
	ErrInvalid    = errors.New("form has validation errors")
	ErrSubmitting = errors.New("form is already submitting")
)

// Handle is the state of one form instance: values, touched flags, errors
// and the submit-in-flight flag. It belongs to a single dialog and is not
// shared between goroutines.
type Handle struct {
	schema     Schema
	check      *Validator
	initial    Values
	values     Values
	touched    Touched
	errors     Errors
	submitting bool
}

func New(schema Schema, initial Values, check *Validator) *Handle {
	h := &Handle{schema: schema, check: check}
	h.hydrate(initial)
	return h
}

func (h *Handle) hydrate(initial Values) {
	base := h.schema.Defaults()
	for k, v := range initial {
		base[k] = v
	}
	h.initial = base
	h.values = base.Clone()
	h.touched = Touched{}
	h.errors = Errors{}
	h.submitting = false
}

func (h *Handle) Schema() Schema { return h.schema }

func (h *Handle) Values() Values { return h.values.Clone() }

func (h *Handle) Initial() Values { return h.initial.Clone() }

func (h *Handle) Touched() Touched {
	out := make(Touched, len(h.touched))
	for k, v := range h.touched {
		out[k] = v
	}
	return out
}

func (h *Handle) Errors() Errors {
	out := make(Errors, len(h.errors))
	for k, v := range h.errors {
		out[k] = v
	}
	return out
}

// Error is the message to show under a field: only once the field was touched.
func (h *Handle) Error(name string) string {
	if !h.touched[name] {
		return ""
	}
	return h.errors[name]
}

// IsValid evaluates the whole schema against the current values.
func (h *Handle) IsValid() bool {
	return len(h.check.Validate(h.schema, h.values)) == 0
}

func (h *Handle) Dirty() bool { return !h.values.Equal(h.initial) }

func (h *Handle) Submitting() bool { return h.submitting }

func (h *Handle) SetValues(values Values, validate bool) {
	for k, v := range values {
		h.values[k] = v
	}
	if validate {
		h.errors = h.check.Validate(h.schema, h.values)
	}
}

// ResetForm goes back to the initial record with no touched or error state.
func (h *Handle) ResetForm() {
	h.hydrate(h.initial)
}

// Reinitialize rehydrates from a new initial record. An unchanged record
// leaves in-progress edits alone.
func (h *Handle) Reinitialize(initial Values) {
	next := h.schema.Defaults()
	for k, v := range initial {
		next[k] = v
	}
	if next.Equal(h.initial) {
		return
	}
	h.hydrate(next)
}

func (h *Handle) SetFieldValue(name, value string, validate bool) {
	h.values[name] = value
	if validate {
		h.validateField(name)
	}
}

// SetErrors surfaces server-side messages keyed by field. Fields not in the
// schema are kept so the caller can show them elsewhere.
func (h *Handle) SetErrors(errs map[string]string) {
	for field, msg := range errs {
		h.errors[field] = msg
		h.touched[field] = true
	}
}

func (h *Handle) HandleChange(name, value string) {
	h.SetFieldValue(name, value, true)
}

func (h *Handle) HandleBlur(name string) {
	h.touched[name] = true
	h.validateField(name)
}

func (h *Handle) TouchAll() {
	for _, f := range h.schema.Fields {
		h.touched[f.Name] = true
	}
}

// HandleSubmit validates everything and, when valid, runs submit with the
// submitting flag raised. The flag is lowered before HandleSubmit returns.
func (h *Handle) HandleSubmit(ctx context.Context, submit func(context.Context, Values) error) error {
	if h.submitting {
		return ErrSubmitting
	}

	h.TouchAll()
	h.errors = h.check.Validate(h.schema, h.values)
	if len(h.errors) > 0 {
		return ErrInvalid
	}

	h.submitting = true
	defer func() { h.submitting = false }()

	return submit(ctx, h.values.Clone())
}

func (h *Handle) validateField(name string) {
	f, ok := h.schema.Field(name)
	if !ok {
		return
	}
	if msg := h.check.Field(f, h.values); msg != "" {
		h.errors[name] = msg
	} else {
		delete(h.errors, name)
	}

	// Fields that mirror this one need rechecking too.
	for _, other := range h.schema.Fields {
		for _, c := range other.Constraints {
			if eq, ok := c.(EqualTo); ok && eq.Field == name && h.touched[other.Name] {
				if msg := h.check.Field(other, h.values); msg != "" {
					h.errors[other.Name] = msg
				} else {
					delete(h.errors, other.Name)
				}
			}
		}
	}
}
