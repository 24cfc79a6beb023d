package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for non-positive windows or limits.
var ErrInvalidArgument = errors.New("invalid argument")

// QueryError is a warehouse failure annotated with the operation that ran it.
type QueryError struct {
	Op     string
	Params map[string]any
	Err    error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: warehouse query failed: %v", e.Op, e.Err)
}

func (e *QueryError) Unwrap() error {
	return e.Err
}

// NewQueryError wraps err with the operation name and its bound parameters.
func NewQueryError(op string, params map[string]any, err error) *QueryError {
	return &QueryError{Op: op, Params: params, Err: err}
}
