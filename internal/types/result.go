package types

import (
	"encoding/json"

	"workbench/internal/errors"
)

// Result represents a generic result that can contain either data or an error
type Result[T any] struct {
	data T
	err  error
}

// NewResult creates a new Result with data
func NewResult[T any](data T) Result[T] {
	return Result[T]{data: data}
}

// NewErrorResult creates a new Result with an error
func NewErrorResult[T any](err error) Result[T] {
	var zero T
	return Result[T]{data: zero, err: err}
}

// IsError returns true if the result contains an error
func (r Result[T]) IsError() bool {
	return r.err != nil
}

// IsSuccess returns true if the result contains data (no error)
func (r Result[T]) IsSuccess() bool {
	return r.err == nil
}

// Unwrap returns the data and error
func (r Result[T]) Unwrap() (T, error) {
	return r.data, r.err
}

// Error returns the error
func (r Result[T]) Error() error {
	return r.err
}

// OrElse returns the result if successful, otherwise returns the alternative
func (r Result[T]) OrElse(alternative T) T {
	if r.err != nil {
		return alternative
	}
	return r.data
}

// MarshalJSON implements json.Marshaler
func (r Result[T]) MarshalJSON() ([]byte, error) {
	if r.err != nil {
		if we, ok := r.err.(*errors.WorkbenchError); ok {
			return json.Marshal(map[string]interface{}{
				"error": we,
			})
		}
		return json.Marshal(map[string]interface{}{
			"error": map[string]string{
				"message": r.err.Error(),
			},
		})
	}
	return json.Marshal(map[string]interface{}{
		"data": r.data,
	})
}
