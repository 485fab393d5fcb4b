package crud

import (
	"errors"
	"fmt"

	"go-pos/internal/authz"
	"go-pos/internal/shared/result"
	"go-pos/internal/store"

	"go.uber.org/zap"
)

// FieldError reports a problem with one payload field discovered during
// persistence, e.g. not enough stock for an order line.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Message
}

func NewFieldError(field, format string, args ...any) *FieldError {
	return &FieldError{Field: field, Message: fmt.Sprintf(format, args...)}
}

var errMissing = errors.New("crud: target does not exist")

// failure converts a transaction error into a Result. Raw errors are logged,
// never returned.
func (r *Repository[T, A, E]) failure(err error, action string, values any) result.Result {
	var fe *FieldError
	switch {
	case errors.As(err, &fe):
		return result.Invalid(result.FieldErrors{fe.Field: {fe.Message}}, values)
	case errors.Is(err, errMissing):
		return result.NotFound(r.spec.KeyField, values)
	case errors.Is(err, store.ErrDuplicate):
		r.logger.Warn("duplicate record", zap.Error(err))
		return result.Conflict(r.spec.label()+" already exists", values)
	case errors.Is(err, store.ErrReference):
		r.logger.Warn("reference constraint", zap.Error(err))
		if action == authz.ActionDelete {
			return result.Conflict(r.spec.label()+" is still referenced by other records", values)
		}
		return result.Conflict(r.spec.label()+" references a record that does not exist", values)
	}

	r.logger.Error("persistence failed", zap.Error(err))
	res := result.Fail(result.MsgUnexpected)
	res.Values = values
	return res
}
