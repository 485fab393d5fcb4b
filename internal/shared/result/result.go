// Package result defines the envelope every mutating operation returns.
package result

import "net/http"

// Kind classifies a Result for the transport layer. It is never serialised.
type Kind int

const (
	KindOK Kind = iota
	KindInvalid
	KindNotFound
	KindConflict
	KindFailure
)

const (
	MsgNotFound   = "not found"
	MsgUnexpected = "An unexpected error occurred, please try again later"
)

// FieldErrors maps a field name to every message raised against it.
type FieldErrors map[string][]string

// Add appends msg to field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// Result is the uniform {success, message?, errors?, values?} envelope.
// success=true never carries errors; success=false always carries a message,
// errors, or both.
type Result struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Errors  FieldErrors `json:"errors,omitempty"`
	Values  any         `json:"values,omitempty"`
	Kind    Kind        `json:"-"`
}

func OK(message string) Result {
	return Result{Success: true, Message: message, Kind: KindOK}
}

// Invalid echoes the submitted values so the caller can redisplay the form.
func Invalid(errs FieldErrors, values any) Result {
	if len(errs) == 0 {
		return Fail(MsgUnexpected)
	}
	return Result{Errors: errs, Values: values, Kind: KindInvalid}
}

// NotFound scopes a "not found" error to the key field.
func NotFound(field string, values any) Result {
	return Result{
		Errors: FieldErrors{field: {MsgNotFound}},
		Values: values,
		Kind:   KindNotFound,
	}
}

func Conflict(message string, values any) Result {
	return Result{Message: message, Values: values, Kind: KindConflict}
}

func Fail(message string) Result {
	if message == "" {
		message = MsgUnexpected
	}
	return Result{Message: message, Kind: KindFailure}
}

// StatusCode maps the kind to an HTTP status. created selects 201 over 200 on
// success.
func (r Result) StatusCode(created bool) int {
	switch r.Kind {
	case KindOK:
		if created {
			return http.StatusCreated
		}
		return http.StatusOK
	case KindInvalid:
		return http.StatusUnprocessableEntity
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
