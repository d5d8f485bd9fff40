package backend

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// Kind classifies a failed backend call.
type Kind string

const (
	KindNetwork      Kind = "network"
	KindUnauthorized Kind = "unauthorized"
	KindForbidden    Kind = "forbidden"
	KindValidation   Kind = "validation"
	KindConflict     Kind = "conflict"
	KindServer       Kind = "server"
	KindNotFound     Kind = "not-found"
	KindRequest      Kind = "request"
)

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the structured failure every backend call returns.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  []FieldError
	cause   error
}

func (e *Error) Error() string {
	if e.Status == 0 {
		return fmt.Sprintf("backend %s error: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("backend %s error (%d): %s", e.Kind, e.Status, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// FieldMap turns the validation entries into {field: message}. The first
// message for a field wins.
func (e *Error) FieldMap() map[string]string {
	out := make(map[string]string, len(e.Fields))
	for _, f := range e.Fields {
		if f.Field == "" {
			continue
		}
		if _, ok := out[f.Field]; !ok {
			out[f.Field] = f.Message
		}
	}
	return out
}

func KindForStatus(status int) Kind {
	switch {
	case status == http.StatusUnauthorized:
		return KindUnauthorized
	case status == http.StatusForbidden:
		return KindForbidden
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return KindValidation
	case status == http.StatusNotFound:
		return KindNotFound
	case status == http.StatusConflict:
		return KindConflict
	case status >= 500:
		return KindServer
	default:
		return KindRequest
	}
}

// AsError extracts the backend error from an error chain.
func AsError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}

// KindOf returns the kind of err, or "" when err is not a backend error.
func KindOf(err error) Kind {
	if be, ok := AsError(err); ok {
		return be.Kind
	}
	return ""
}

func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}

type errorBody struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Errors  json.RawMessage `json:"errors"`
}

type rawFieldError struct {
	Field   string `json:"field"`
	Path    string `json:"path"`
	Param   string `json:"param"`
	Message string `json:"message"`
	Msg     string `json:"msg"`
}

func parseError(status int, body []byte) *Error {
	e := &Error{Kind: KindForStatus(status), Status: status}

	var eb errorBody
	if err := json.Unmarshal(body, &eb); err != nil {
		e.Message = strings.TrimSpace(string(body))
		if e.Message == "" {
			e.Message = http.StatusText(status)
		}
		return e
	}

	e.Message = eb.Message
	if e.Message == "" {
		e.Message = eb.Error
	}
	if e.Message == "" {
		e.Message = http.StatusText(status)
	}
	e.Fields = parseFieldErrors(eb.Errors)
	return e
}

// parseFieldErrors accepts [{field,message}], the express-validator
// [{path|param,msg}] shape and a {field: message} object.
func parseFieldErrors(raw json.RawMessage) []FieldError {
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}

	var list []rawFieldError
	if err := json.Unmarshal(raw, &list); err == nil {
		out := make([]FieldError, 0, len(list))
		for _, r := range list {
			field := firstNonEmpty(r.Field, r.Path, r.Param)
			msg := firstNonEmpty(r.Message, r.Msg)
			if field == "" && msg == "" {
				continue
			}
			out = append(out, FieldError{Field: field, Message: msg})
		}
		return out
	}

	var byField map[string]string
	if err := json.Unmarshal(raw, &byField); err == nil {
		out := make([]FieldError, 0, len(byField))
		for field, msg := range byField {
			out = append(out, FieldError{Field: field, Message: msg})
		}
		return out
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
